package services

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/gitkushall/lostfound-project/internal/config"
)

// Mailer sends emails. Delivery is best-effort: callers log and swallow
// failures rather than surfacing them to the originating workflow.
type Mailer interface {
	Send(to, subject, text string) error
}

type smtpMailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

type noopMailer struct{}

func (noopMailer) Send(to, subject, text string) error { return nil }

// NewMailer builds an SMTP mailer from config.
// Returns a no-op mailer if no SMTP host is configured (dev mode).
func NewMailer(cfg *config.Config) Mailer {
	if cfg.SMTPHost == "" {
		log.Println("SMTP: no host configured, notification emails disabled")
		return noopMailer{}
	}
	return &smtpMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *smtpMailer) Send(to, subject, text string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, text)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}
