package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/krmu/lostfound-api/internal/config"
	"github.com/krmu/lostfound-api/shared/mailer"
)

// NotifyUsecase defines the ad-hoc email and claim-submission use cases.
type NotifyUsecase interface {
	SendEmail(ctx context.Context, to, subject, html string) (string, error)
	SubmitClaim(ctx context.Context, params ClaimParams) (*ClaimResult, error)
}

// ClaimParams defines the parameters of a claim submission. A claim is a
// notification trigger, not a state transition on any found item.
type ClaimParams struct {
	StudentEmail string
	ItemName     string
	ImageURL     string
}

// ClaimResult carries the message identifiers of both notification emails.
type ClaimResult struct {
	StudentMessageID string
	AdminMessageID   string
}

var (
	ErrSMTPNotConfigured       = errors.New("SMTP configuration missing")
	ErrAdminEmailNotConfigured = errors.New("ADMIN_EMAIL not configured")
)

// ClaimSendError reports which of the two claim emails failed. When the
// admin notification fails after the student confirmation already went out,
// StudentMessageID carries the identifier of the message that was sent.
type ClaimSendError struct {
	Stage            string // "student" or "admin"
	StudentMessageID string
	Err              error
}

func (e *ClaimSendError) Error() string {
	return fmt.Sprintf("%s email failed: %v", e.Stage, e.Err)
}

func (e *ClaimSendError) Unwrap() error {
	return e.Err
}

type notifyUsecase struct {
	sender mailer.Sender
	cfg    *config.Config
}

// NewNotifyUsecase creates a new NotifyUsecase.
func NewNotifyUsecase(sender mailer.Sender, cfg *config.Config) NotifyUsecase {
	return &notifyUsecase{
		sender: sender,
		cfg:    cfg,
	}
}

// SendEmail dispatches one ad-hoc HTML email and returns its message
// identifier.
func (u *notifyUsecase) SendEmail(_ context.Context, to, subject, html string) (string, error) {
	return u.sender.SendHTML(to, subject, html)
}

// SubmitClaim sends the two claim notifications sequentially: first the
// receipt confirmation to the student, then the verification request to the
// fixed admin address. Both sends are attempted in order; the first failure
// aborts and is reported with the stage it happened at. The server-side
// configuration is checked before the mailer is touched.
func (u *notifyUsecase) SubmitClaim(_ context.Context, params ClaimParams) (*ClaimResult, error) {
	if u.cfg.SMTPUser == "" || u.cfg.SMTPPass == "" {
		return nil, ErrSMTPNotConfigured
	}
	if u.cfg.AdminEmail == "" {
		return nil, ErrAdminEmailNotConfigured
	}

	studentMessageID, err := u.sender.SendHTML(
		params.StudentEmail,
		"K.R. Mangalam University - Your Claim Request Has Been Received",
		claimStudentHTML(params),
	)
	if err != nil {
		return nil, &ClaimSendError{Stage: "student", Err: err}
	}

	adminMessageID, err := u.sender.SendHTML(
		u.cfg.AdminEmail,
		"K.R. Mangalam University - New Item Claim Submitted - Action Required",
		claimAdminHTML(params),
	)
	if err != nil {
		return nil, &ClaimSendError{
			Stage:            "admin",
			StudentMessageID: studentMessageID,
			Err:              err,
		}
	}

	return &ClaimResult{
		StudentMessageID: studentMessageID,
		AdminMessageID:   adminMessageID,
	}, nil
}

func claimStudentHTML(params ClaimParams) string {
	return fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <div style="text-align: center; background: #2c3e50; color: white; padding: 15px; border-radius: 8px;">
    <h1 style="margin: 0;">K.R. Mangalam University</h1>
    <p style="margin: 5px 0 0 0; font-size: 16px;">Lost &amp; Found Department</p>
  </div>
  <h2>Claim Request Received</h2>
  <p>Your claim request has been received and is being processed by the Lost &amp; Found Department.</p>
  <p><strong>Registered Email:</strong> %s</p>
  <h3>Item: %s</h3>
  <img src="%s" width="200" style="margin-top:12px;border-radius:8px;" />
  <p>Please visit the Lost &amp; Found office to complete verification and collect your item.
  Bring your Student ID and the original bill or purchase receipt for verification purposes.</p>
  <p><strong>Office Hours:</strong> Monday-Friday, 9AM-5PM</p>
  <p><strong>Location:</strong> Administration Block, Room 101</p>
</div>`, params.StudentEmail, params.ItemName, params.ImageURL)
}

func claimAdminHTML(params ClaimParams) string {
	return fmt.Sprintf(`<div style="font-family: Arial; padding: 20px;">
  <div style="text-align: center; background: #2c3e50; color: white; padding: 15px; border-radius: 8px;">
    <h1 style="margin: 0;">K.R. Mangalam University</h1>
    <p style="margin: 5px 0 0 0; font-size: 16px;">Lost &amp; Found Department - Admin Notification</p>
  </div>
  <h2>New Item Claim Submitted</h2>
  <p>A student has submitted a claim request for a lost item.</p>
  <p><strong>Student Email:</strong> %s</p>
  <p><strong>Claimed Item:</strong> %s</p>
  <p><strong>Claim Date:</strong> %s</p>
  <img src="%s" width="200" style="margin-top:12px;border-radius:8px;" />
  <p><strong>Action Required:</strong> Contact the student to schedule the item handover and verify
  their identity along with the original purchase receipt or bill.</p>
</div>`, params.StudentEmail, params.ItemName, time.Now().Format("02/01/2006"), params.ImageURL)
}
