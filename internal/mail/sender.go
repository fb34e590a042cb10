// internal/mail/sender.go

// Package mail sends signup notifications via SMTP. It wraps
// github.com/wneessen/go-mail and layers the Doge Day routing rules
// (VIP redirect, sponsor CC, fail-open on missing configuration) on top.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Config holds SMTP server configuration.
type Config struct {
	// Host is the SMTP server hostname (e.g., "smtp.fastmail.com")
	Host string

	// Port is the SMTP server port (typically 587 for STARTTLS, 465 for SSL)
	Port int

	// Username for SMTP authentication
	Username string

	// Password for SMTP authentication
	Password string

	// FromAddress is the sender email address
	FromAddress string

	// FromName is the sender display name (optional)
	FromName string

	// UseSSL enables implicit SSL/TLS (for port 465); otherwise STARTTLS
	UseSSL bool

	// Timeout for SMTP operations (default: 30 seconds)
	Timeout time.Duration
}

// Configured reports whether the transport can be used at all. Host, user,
// and credential are the minimum; without them dispatch is skipped rather
// than failed (fail-open for unconfigured environments).
func (c Config) Configured() bool {
	return strings.TrimSpace(c.Host) != "" &&
		strings.TrimSpace(c.Username) != "" &&
		strings.TrimSpace(c.Password) != ""
}

// Message represents an email message to be sent.
type Message struct {
	To          []string
	Cc          []string
	Subject     string
	TextBody    string
	Attachments []Attachment
}

// Attachment is a file attachment.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Sender delivers a message. *SMTPSender is the production implementation;
// tests substitute a fake.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPSender sends messages using the configured SMTP server. A client is
// dialed per send; submissions are rare enough that connection reuse isn't
// worth the state.
type SMTPSender struct {
	cfg Config
}

// NewSMTPSender creates an SMTP sender with the given configuration.
func NewSMTPSender(cfg Config) *SMTPSender {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Port == 465 {
		cfg.UseSSL = true
	}
	return &SMTPSender{cfg: cfg}
}

// Send sends an email message.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("mail: no recipients specified")
	}
	if msg.TextBody == "" {
		return fmt.Errorf("mail: message body is empty")
	}

	m := gomail.NewMsg()

	if s.cfg.FromName != "" {
		if err := m.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
			return fmt.Errorf("mail: invalid from address: %w", err)
		}
	} else {
		if err := m.From(s.cfg.FromAddress); err != nil {
			return fmt.Errorf("mail: invalid from address: %w", err)
		}
	}

	if err := m.To(msg.To...); err != nil {
		return fmt.Errorf("mail: invalid to address: %w", err)
	}
	if len(msg.Cc) > 0 {
		if err := m.Cc(msg.Cc...); err != nil {
			return fmt.Errorf("mail: invalid cc address: %w", err)
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.TextBody)

	for _, att := range msg.Attachments {
		opts := []gomail.FileOption{}
		if att.ContentType != "" {
			opts = append(opts, gomail.WithFileContentType(gomail.ContentType(att.ContentType)))
		}
		if err := m.AttachReader(att.Filename, bytes.NewReader(att.Data), opts...); err != nil {
			return fmt.Errorf("mail: attach %q: %w", att.Filename, err)
		}
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTimeout(s.cfg.Timeout),
	}

	if s.cfg.Username != "" {
		opts = append(opts, gomail.WithSMTPAuth(gomail.SMTPAuthPlain))
		opts = append(opts, gomail.WithUsername(s.cfg.Username))
		opts = append(opts, gomail.WithPassword(s.cfg.Password))
	}

	if s.cfg.UseSSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPortPolicy(gomail.TLSMandatory))
	}

	c, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("mail: failed to create client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mail: failed to send: %w", err)
	}

	return nil
}
