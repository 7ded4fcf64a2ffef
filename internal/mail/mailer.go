package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gottaspeak/backend/internal/config"
)

// SendInput describes one outbound mail.
type SendInput struct {
	To      string
	Subject string
	Text    string
	ReplyTo string
}

// Mailer sends plain-text mail over SMTP.
type Mailer struct {
	cfg config.MailConfig
}

// NewMailer constructs the mailer.
func NewMailer(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Configured reports whether an SMTP host was provided.
func (m *Mailer) Configured() bool {
	return m.cfg.SMTPHost != ""
}

// Send delivers one message. Blocking; callers run it off the request path.
func (m *Mailer) Send(input SendInput) error {
	if !m.Configured() {
		return fmt.Errorf("smtp not configured")
	}

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.FromEmail)
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", input.To)
	if input.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", input.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", input.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(input.Text)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var a smtp.Auth
	if m.cfg.SMTPUser != "" {
		a = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	return smtp.SendMail(addr, a, m.cfg.FromEmail, []string{input.To}, []byte(b.String()))
}
