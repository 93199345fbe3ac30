// Package mail sends the reflection and digest emails over SMTP.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mhersey/vaultkeeper/internal/core/ports/driven"
	"github.com/mhersey/vaultkeeper/internal/logger"
)

// Gmail SMTP submission endpoint. smtp.SendMail negotiates STARTTLS.
const (
	DefaultHost = "smtp.gmail.com"
	DefaultPort = "587"
)

// SendFunc matches smtp.SendMail, injectable for tests.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer implements driven.Mailer over authenticated SMTP. The sender
// account doubles as the From address, matching the single-user setup.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	send     SendFunc
}

// New creates an SMTPMailer for the Gmail account. password is an
// app-specific password, not the account password.
func New(username, password string) *SMTPMailer {
	return &SMTPMailer{
		host:     DefaultHost,
		port:     DefaultPort,
		username: username,
		password: password,
		send:     smtp.SendMail,
	}
}

// Send delivers the message.
func (m *SMTPMailer) Send(_ context.Context, msg driven.Email) error {
	if len(msg.To) == 0 {
		msg.To = []string{m.username}
	}

	auth := smtp.PlainAuth("", m.username, m.password, m.host)
	raw := BuildMessage(m.username, msg)

	if err := m.send(m.host+":"+m.port, auth, m.username, msg.To, raw); err != nil {
		return fmt.Errorf("sending %q: %w", msg.Subject, err)
	}
	logger.Info("sent email %q to %s", msg.Subject, strings.Join(msg.To, ", "))
	return nil
}

// BuildMessage assembles an RFC 5322 HTML message.
func BuildMessage(from string, msg driven.Email) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(msg.To, ", ") + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)
	return []byte(b.String())
}
