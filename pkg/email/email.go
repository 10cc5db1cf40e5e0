// Package email provides outbound mail delivery through pluggable providers.
package email

import (
	"errors"
)

// Config holds the configuration for all email providers
type Config struct {
	Provider string          `json:"provider" yaml:"provider"`
	SMTP     *SMTPConfig     `json:"smtp" yaml:"smtp"`
	SendGrid *SendGridConfig `json:"sendgrid" yaml:"sendgrid"`
	Mailgun  *MailgunConfig  `json:"mailgun" yaml:"mailgun"`
}

// Message represents a single outbound email
type Message struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// Sender is a generic interface for sending emails
type Sender interface {
	SendEmail(recipientEmail string, msg Message) (string, error)
}

// validateConfig validates the provider-specific configuration
func validateConfig(config any) error {
	switch c := config.(type) {
	case *SMTPConfig:
		return validateSMTPConfig(c)
	case *SendGridConfig:
		return validateSendGridConfig(c)
	case *MailgunConfig:
		return validateMailgunConfig(c)
	default:
		return errors.New("invalid email configuration")
	}
}

// NewSender returns a Sender for the configured provider.
// A nil config or an unknown provider yields a nil Sender without error,
// which callers treat as "email disabled".
func NewSender(cfg *Config) (Sender, error) {
	if cfg == nil {
		return nil, nil
	}

	switch cfg.Provider {
	case "smtp":
		if err := validateConfig(cfg.SMTP); err != nil {
			return nil, err
		}
		return &SMTPSender{Config: cfg.SMTP}, nil
	case "sendgrid":
		if err := validateConfig(cfg.SendGrid); err != nil {
			return nil, err
		}
		return &SendGridSender{Config: cfg.SendGrid}, nil
	case "mailgun":
		if err := validateConfig(cfg.Mailgun); err != nil {
			return nil, err
		}
		return &MailgunSender{Config: cfg.Mailgun}, nil
	default:
		return nil, nil
	}
}
