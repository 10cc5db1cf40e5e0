package email

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the configuration for plain SMTP sending
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"`
}

// SMTPSender implements Sender over net/smtp
type SMTPSender struct {
	Config *SMTPConfig
}

func (s *SMTPSender) SendEmail(recipientEmail string, msg Message) (string, error) {
	auth := smtp.PlainAuth("", s.Config.Username, s.Config.Password, s.Config.Host)
	to := []string{recipientEmail}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", s.Config.From)
	fmt.Fprintf(&b, "To: %s\r\n", recipientEmail)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	if msg.HTML != "" {
		b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.HTML)
	} else {
		b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		b.WriteString(msg.Text)
	}

	addr := fmt.Sprintf("%s:%s", s.Config.Host, s.Config.Port)
	if err := smtp.SendMail(addr, auth, s.Config.From, to, []byte(b.String())); err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}
	return "", nil
}

func validateSMTPConfig(config *SMTPConfig) error {
	if config == nil || config.Host == "" || config.Port == "" || config.From == "" {
		return errors.New("invalid SMTP configuration")
	}
	return nil
}
