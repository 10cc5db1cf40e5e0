package email

import "testing"

// TestNewSenderDisabled verifies nil config and empty provider both
// disable email without error.
func TestNewSenderDisabled(t *testing.T) {
	sender, err := NewSender(nil)
	if err != nil {
		t.Fatalf("NewSender(nil) error = %v", err)
	}
	if sender != nil {
		t.Error("NewSender(nil) = sender, want nil")
	}

	sender, err = NewSender(&Config{Provider: ""})
	if err != nil {
		t.Fatalf("NewSender(empty provider) error = %v", err)
	}
	if sender != nil {
		t.Error("NewSender(empty provider) = sender, want nil")
	}
}

// TestNewSenderSMTP verifies provider selection and config validation.
func TestNewSenderSMTP(t *testing.T) {
	sender, err := NewSender(&Config{
		Provider: "smtp",
		SMTP: &SMTPConfig{
			Host: "smtp.example.com",
			Port: "587",
			From: "noreply@example.com",
		},
	})
	if err != nil {
		t.Fatalf("NewSender(smtp) error = %v", err)
	}
	if _, ok := sender.(*SMTPSender); !ok {
		t.Errorf("NewSender(smtp) = %T, want *SMTPSender", sender)
	}
}

// TestNewSenderInvalidSMTP rejects incomplete SMTP configuration.
func TestNewSenderInvalidSMTP(t *testing.T) {
	if _, err := NewSender(&Config{Provider: "smtp", SMTP: &SMTPConfig{Host: "smtp.example.com"}}); err == nil {
		t.Error("NewSender(incomplete smtp) succeeded, want error")
	}
	if _, err := NewSender(&Config{Provider: "smtp"}); err == nil {
		t.Error("NewSender(smtp without config) succeeded, want error")
	}
}

// TestNewSenderSendGrid verifies SendGrid provider selection.
func TestNewSenderSendGrid(t *testing.T) {
	sender, err := NewSender(&Config{
		Provider: "sendgrid",
		SendGrid: &SendGridConfig{Key: "sg-key", From: "noreply@example.com"},
	})
	if err != nil {
		t.Fatalf("NewSender(sendgrid) error = %v", err)
	}
	if _, ok := sender.(*SendGridSender); !ok {
		t.Errorf("NewSender(sendgrid) = %T, want *SendGridSender", sender)
	}
}

// TestNewSenderMailgun verifies Mailgun provider selection.
func TestNewSenderMailgun(t *testing.T) {
	sender, err := NewSender(&Config{
		Provider: "mailgun",
		Mailgun:  &MailgunConfig{Key: "mg-key", Domain: "mg.example.com", From: "noreply@example.com"},
	})
	if err != nil {
		t.Fatalf("NewSender(mailgun) error = %v", err)
	}
	if _, ok := sender.(*MailgunSender); !ok {
		t.Errorf("NewSender(mailgun) = %T, want *MailgunSender", sender)
	}
}
