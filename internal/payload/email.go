package payload

type SendEmailRequest struct {
	To      string `json:"to"      validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	HTML    string `json:"html"    validate:"required"`
}

type ClaimRequest struct {
	StudentEmail string `json:"studentEmail" validate:"required,email"`
	ItemName     string `json:"itemName"     validate:"required"`
	ImageURL     string `json:"imageUrl"     validate:"required,url"`
}
