// Package notify delivers alert messages.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/law-makers/pricewatch/internal/report"
	"github.com/rs/zerolog/log"
)

// Notifier sends a rendered alert message
type Notifier interface {
	Notify(ctx context.Context, msg report.Message) error
}

// SMTPConfig holds mail relay settings
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// Validate reports missing settings
func (c SMTPConfig) Validate() error {
	var missing []string
	if c.Host == "" {
		missing = append(missing, "MAIL_DOMAIN")
	}
	if c.User == "" {
		missing = append(missing, "MAIL_USER")
	}
	if c.Password == "" {
		missing = append(missing, "MAIL_PASS")
	}
	if c.To == "" {
		missing = append(missing, "MAIL_TO")
	}
	if len(missing) > 0 {
		return fmt.Errorf("mail settings missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier sends mail through a relay using STARTTLS and PLAIN auth
type SMTPNotifier struct {
	cfg  SMTPConfig
	send SendFunc
}

// NewSMTPNotifier creates a notifier. A nil send uses smtp.SendMail.
func NewSMTPNotifier(cfg SMTPConfig, send SendFunc) (*SMTPNotifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if send == nil {
		send = smtp.SendMail
	}
	return &SMTPNotifier{cfg: cfg, send: send}, nil
}

// Notify sends msg to the configured recipient
func (n *SMTPNotifier) Notify(ctx context.Context, msg report.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Password, n.cfg.Host)

	if err := n.send(addr, auth, n.cfg.User, []string{n.cfg.To}, Compose(n.cfg.User, n.cfg.To, msg)); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", addr, err)
	}

	log.Info().
		Str("to", n.cfg.To).
		Str("subject", msg.Subject).
		Msg("Alert mail sent")
	return nil
}

// Compose builds an RFC 5322 message with UTF-8 plain text body
func Compose(from, to string, msg report.Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Body, "\n", "\r\n"))
	return []byte(b.String())
}

// LogNotifier writes the message to the log instead of sending it
type LogNotifier struct {
	Reason string
}

func (n LogNotifier) Notify(ctx context.Context, msg report.Message) error {
	log.Info().
		Str("subject", msg.Subject).
		Str("reason", n.Reason).
		Str("body", msg.Body).
		Msg("Alert mail not sent")
	return nil
}
