package jobs

import (
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer sends plain-text mail through a relay such as Mailpit.
type SMTPMailer struct {
	Addr string
	From string
}

// NewSMTPMailer builds a mailer for the given host and port.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{Addr: fmt.Sprintf("%s:%d", host, port), From: from}
}

// Send delivers one message. The relay is assumed to sit on a trusted
// network, so no auth is attempted.
func (m *SMTPMailer) Send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg.String()))
}

var _ Mailer = (*SMTPMailer)(nil)
