package mailer

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/Skotchmaster/storefront/internal/config"
)

type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SMTPMailer sends one message per connection using STARTTLS and PLAIN auth.
// The From address is the SMTP user.
type SMTPMailer struct {
	cfg     config.SMTP
	timeout time.Duration
}

func New(cfg config.SMTP, timeout time.Duration) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, timeout: timeout}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	port, err := strconv.Atoi(m.cfg.Port)
	if err != nil {
		return fmt.Errorf("SMTP_PORT %q is not a number", m.cfg.Port)
	}
	mm, err := Build(m.cfg.User, msg)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithTLSPortPolicy(mail.TLSMandatory),
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.User),
		mail.WithPassword(m.cfg.Password),
	}
	if m.timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.timeout))
	}
	client, err := mail.NewClient(m.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// Build assembles a multipart/alternative message with a plain-text and an
// HTML part.
func Build(from string, msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := mm.To(msg.To); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	mm.Subject(msg.Subject)
	mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	mm.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return mm, nil
}
