package mailer

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewSenderDefaults(t *testing.T) {
	s := NewSender(Config{
		Host:     "smtp.example.com",
		Port:     "465",
		Username: "noreply@example.com",
		Password: "secret",
	})

	if s.config.From != "noreply@example.com" {
		t.Fatalf("From must fall back to Username, got %q", s.config.From)
	}
	if s.config.CodeTTL != 10*time.Minute {
		t.Fatalf("CodeTTL default = %v", s.config.CodeTTL)
	}
}

func TestCodeTemplateRendersCodeAndExpiry(t *testing.T) {
	var body bytes.Buffer
	err := codeTemplate.Execute(&body, codeEmail{
		Heading: "Verify Your Email",
		Lead:    "Thank you for registering.",
		Code:    "1234",
		Minutes: 10,
		Closing: "If you didn't request this verification, please ignore this email.",
	})
	if err != nil {
		t.Fatalf("template execution failed: %v", err)
	}

	rendered := body.String()
	for _, want := range []string{
		"<strong>1234</strong>",
		"This code will expire in 10 minutes.",
		"Verify Your Email",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("rendered body missing %q:\n%s", want, rendered)
		}
	}
}

func TestCodeTemplateEscapesInput(t *testing.T) {
	var body bytes.Buffer
	err := codeTemplate.Execute(&body, codeEmail{
		Heading: "Verify Your Email",
		Lead:    "x",
		Code:    "<script>alert(1)</script>",
		Minutes: 10,
		Closing: "y",
	})
	if err != nil {
		t.Fatalf("template execution failed: %v", err)
	}

	if strings.Contains(body.String(), "<script>") {
		t.Fatal("template must escape HTML in interpolated values")
	}
}
