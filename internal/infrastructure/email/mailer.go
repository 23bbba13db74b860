package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"plantops/internal/config"
)

// SMTPMailer delivers outbound mail through the configured SMTP account.
type SMTPMailer struct {
	dialer       *gomail.Dialer
	from         string
	resetBaseURL string
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:       gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:         cfg.From,
		resetBaseURL: cfg.ResetBaseURL,
	}
}

// SendPasswordReset mails the reset link. The raw token travels only in
// this message; storage keeps its hash.
func (m *SMTPMailer) SendPasswordReset(to, name, rawToken string) error {
	link := fmt.Sprintf("%s/reset-password/%s", m.resetBaseURL, rawToken)

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password reset request")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>Hello %s,</p>
<p>A password reset was requested for your account. The link below is valid for one hour and can be used once:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this message.</p>`,
		name, link, link,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}

	return nil
}
