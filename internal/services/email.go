package services

import (
	"fmt"
	"net/smtp"

	"github.com/lumehq/lume-api/internal/config"
)

type EmailService struct {
	cfg config.SMTPConfig
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.FromName, s.cfg.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendNewProfile emails a freshly created user their plaintext one-time
// password. The password exists only for this delivery and is never stored.
func (s *EmailService) SendNewProfile(to, name, password string) error {
	subject := "You have a new profile!"
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>Welcome, %s!</h2>
			<p>A profile has been created for you.</p>
			<p>Sign in with your email address and the temporary password below, then change it right away.</p>
			<p><strong>%s</strong></p>
		</body>
		</html>
	`, name, password)

	return s.Send(to, subject, body)
}
