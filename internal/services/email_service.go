package services

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendLoginCode(email, code string, expiresAt time.Time, magicLink string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

// разбиваем "482913" на "4 8 2 9 1 3" — так код читается из письма
func spacedCode(code string) string {
	return strings.Join(strings.Split(code, ""), " ")
}

func (s *emailService) SendLoginCode(email, code string, expiresAt time.Time, magicLink string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your login code")

	ttl := time.Until(expiresAt).Round(time.Second)
	body := fmt.Sprintf(`
		<h2>Your Login Code</h2>
		<p>Use this code to sign in to your account:</p>
		<p style="font-size:32px;letter-spacing:8px;"><strong>%s</strong></p>
		<p>This code expires in %s. For security reasons, please do not share it with anyone.</p>
		<p>Or use this magic link to sign in: <a href="%s">Sign In Instantly</a></p>
		<p>If you didn't request this code, you can safely ignore this email.</p>
	`, spacedCode(code), ttl, magicLink)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}

	return nil
}
