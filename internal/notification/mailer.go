package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"go.uber.org/zap"

	"github.com/work-nest/backoffice/internal/config"
)

// Message is a rendered outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer is the notification port. Implementations may fail independently
// of the core transaction; callers log and swallow delivery errors.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPMailer delivers mail over plain SMTP.
type SMTPMailer struct {
	cfg config.MailConfig
}

// NewSMTPMailer builds the mailer.
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers the message. Fails when no SMTP host is configured.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	if strings.TrimSpace(m.cfg.SMTPHost) == "" {
		return fmt.Errorf("smtp host not configured")
	}

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	var body strings.Builder
	body.WriteString("From: " + m.cfg.From + "\r\n")
	body.WriteString("To: " + msg.To + "\r\n")
	body.WriteString("Subject: " + msg.Subject + "\r\n")
	body.WriteString("MIME-Version: 1.0\r\n")
	body.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	body.WriteString("\r\n")
	body.WriteString(msg.HTML)

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	return smtp.SendMail(addr, auth, m.cfg.From, []string{msg.To}, []byte(body.String()))
}

// LogMailer logs messages instead of sending them; used when SMTP is not
// configured (development).
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info("mail (not sent, no smtp configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
