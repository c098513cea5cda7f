package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/krmu/lostfound-api/internal/otp"
	"github.com/krmu/lostfound-api/shared/mailer"
)

// OTPUsecase defines the one-time-code send and verify use cases.
type OTPUsecase interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) error
}

type otpUsecase struct {
	store  otp.Store
	sender mailer.Sender
}

// NewOTPUsecase creates a new OTPUsecase.
func NewOTPUsecase(store otp.Store, sender mailer.Sender) OTPUsecase {
	return &otpUsecase{
		store:  store,
		sender: sender,
	}
}

// SendCode generates a fresh 6-digit code, stores it for the email, and
// dispatches it. A new send overwrites any prior code for the same email.
func (u *otpUsecase) SendCode(_ context.Context, email string) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	u.store.Save(email, code)

	if _, err := u.sender.SendHTML(email, "Your Login OTP", otpEmailHTML(code)); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}

	return nil
}

// VerifyCode consumes the outstanding code for email. The store reports
// otp.ErrNotFound, otp.ErrExpired or otp.ErrMismatch, which the handler
// maps to the client-facing messages.
func (u *otpUsecase) VerifyCode(_ context.Context, email, code string) error {
	return u.store.Consume(email, code)
}

// generateCode draws a uniform 6-digit numeric code.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func otpEmailHTML(code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <h2>Your Verification Code</h2>
  <p>Use the OTP below to verify your login:</p>
  <h1 style="background: #f3f3f3; padding: 10px; width: max-content; border-radius: 6px;">%s</h1>
  <p>This OTP is valid for 10 minutes.</p>
</div>`, code)
}
