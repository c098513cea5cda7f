package validation

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// Validator validates request payloads against their struct tags and turns
// the first violation into a human-readable message.
type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// New creates a Validator with English error messages.
func New() (*Validator, error) {
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)

	translator, ok := uni.GetTranslator("en")
	if !ok {
		return nil, errors.New("failed to get en translator")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		return nil, err
	}

	return &Validator{
		validate:   validate,
		translator: translator,
	}, nil
}

// Struct validates s and returns the underlying validator error, or nil.
func (v *Validator) Struct(s any) error {
	return v.validate.Struct(s)
}

// FirstError translates the first violation in err into a message. It
// returns an empty string when err carries no field violations.
func (v *Validator) FirstError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ""
	}

	return fieldErrs[0].Translate(v.translator)
}

// FailedOn reports whether err contains a violation of the given tag.
func FailedOn(err error, tag string) bool {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return false
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == tag {
			return true
		}
	}

	return false
}
