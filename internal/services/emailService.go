package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"skilltwin/internal/config"
)

var ErrMailerNotConfigured = errors.New("smtp is not configured")

type EmailService interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type emailService struct {
	from   string
	dialer *gomail.Dialer
}

// NewEmailService returns an SMTP-backed EmailService. Without SMTP
// credentials every send fails with ErrMailerNotConfigured.
func NewEmailService(cfg config.SMTPConfig) EmailService {
	if cfg.Username == "" || cfg.Password == "" {
		log.Warn().Msg("SMTP credentials not set, outgoing email is disabled")
		return &emailService{}
	}

	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &emailService{
		from:   from,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (e *emailService) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if e.dialer == nil {
		return ErrMailerNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	if err := e.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	log.Debug().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

const otpSubject = "SkillTwin password reset code"

var otpEmailTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #1f2937;">
    <h2>Password reset</h2>
    <p>Hello,</p>
    <p>Use the code below to reset the password of your SkillTwin {{.Kind}} account ({{.Email}}).</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
    <p>The code expires in {{.Minutes}} minutes and can be used once.</p>
    <p>If you did not request a password reset you can ignore this email.</p>
  </body>
</html>
`))

type otpEmailData struct {
	Email   string
	Kind    string
	Code    string
	Minutes int
}

func renderOTPEmail(email, kind, code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	data := otpEmailData{
		Email:   email,
		Kind:    kind,
		Code:    code,
		Minutes: int(ttl.Round(time.Minute) / time.Minute),
	}
	if err := otpEmailTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render otp email: %w", err)
	}
	return buf.String(), nil
}
