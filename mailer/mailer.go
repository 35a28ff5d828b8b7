// Package mailer delivers one-time codes over SMTP as HTML email. It
// implements the engine's Notifier contract and owns the message templates;
// code generation and validity windows belong to the engine.
package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// Config carries the SMTP endpoint and sender identity. Port 465 with
// implicit TLS is assumed; STARTTLS upgrade is not attempted.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	// CodeTTL is rendered into the message body so the reader knows how
	// long the code stays valid. It must match the engine's OTP TTL.
	CodeTTL time.Duration
}

// Sender sends verification and reset codes. Safe for concurrent use.
type Sender struct {
	config Config
}

// NewSender builds a Sender. From falls back to Username when empty.
func NewSender(cfg Config) *Sender {
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	if cfg.CodeTTL <= 0 {
		cfg.CodeTTL = 10 * time.Minute
	}
	return &Sender{config: cfg}
}

type codeEmail struct {
	Heading string
	Lead    string
	Code    string
	Minutes int
	Closing string
}

var codeTemplate = template.Must(template.New("code").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>{{.Heading}}</h2>
  <p>{{.Lead}}</p>
  <div style="background-color: #f4f4f4; padding: 10px; text-align: center; font-size: 24px; letter-spacing: 5px; margin: 20px 0;">
    <strong>{{.Code}}</strong>
  </div>
  <p>This code will expire in {{.Minutes}} minutes.</p>
  <p>{{.Closing}}</p>
</div>
`))

// SendVerificationCode mails the registration code to the address.
func (s *Sender) SendVerificationCode(ctx context.Context, email, code string) error {
	return s.sendCode(ctx, email, "Email Verification", codeEmail{
		Heading: "Verify Your Email",
		Lead:    "Thank you for registering. Please use the following code to verify your email:",
		Code:    code,
		Closing: "If you didn't request this verification, please ignore this email.",
	})
}

// SendResetCode mails the password reset code to the address.
func (s *Sender) SendResetCode(ctx context.Context, email, code string) error {
	return s.sendCode(ctx, email, "Password Reset Request", codeEmail{
		Heading: "Reset Your Password",
		Lead:    "We received a request to reset your password. Please use the following code to reset your password:",
		Code:    code,
		Closing: "If you didn't request a password reset, please ignore this email.",
	})
}

func (s *Sender) sendCode(ctx context.Context, to, subject string, data codeEmail) error {
	data.Minutes = int(s.config.CodeTTL.Minutes())

	var body bytes.Buffer
	if err := codeTemplate.Execute(&body, data); err != nil {
		return err
	}

	return s.send(ctx, to, subject, body.String())
}

func (s *Sender) send(ctx context.Context, to, subject, body string) error {
	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.config.From) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	serverAddr := s.config.Host + ":" + s.config.Port

	dialer := &tls.Dialer{Config: &tls.Config{ServerName: s.config.Host}}
	conn, err := dialer.DialContext(ctx, "tcp", serverAddr)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return err
	}
	defer client.Quit()

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := client.Auth(auth); err != nil {
		return err
	}

	if err := client.Mail(s.config.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}
