package mailer

import (
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// Sender dispatches a single HTML email and returns the message identifier
// it was sent with. Implementations fail with the provider's error detail.
type Sender interface {
	SendHTML(to, subject, htmlBody string) (string, error)
}

// fromName is the display name every outgoing email carries.
const fromName = "K.R. Mangalam University Lost & Found"

// Mailer sends HTML email through an SMTP relay.
type Mailer struct {
	dialer   *gomail.Dialer
	username string
}

// New creates a Mailer for the given SMTP relay. Credentials are not
// verified here; the first send surfaces any authentication failure.
func New(host string, port int, username, password string) *Mailer {
	return &Mailer{
		dialer:   gomail.NewDialer(host, port, username, password),
		username: username,
	}
}

// SendHTML dispatches one HTML email and returns the Message-ID it was
// stamped with. The send blocks until the relay accepts the message.
func (m *Mailer) SendHTML(to, subject, htmlBody string) (string, error) {
	messageID := fmt.Sprintf("<%s@lostfound-api>", uuid.NewString())

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.username, fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return messageID, nil
}
