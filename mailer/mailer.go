package mailer

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"storefront-service/config"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Result is what callers get back instead of the transport error.
type Result struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

type Sender interface {
	Send(ctx context.Context, to, subject, body string) Result
}

// SMTPMailer sends plain text mail through an authenticated relay,
// upgrading the connection with STARTTLS.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUsername,
		Password: cfg.EmailPassword,
		From:     cfg.EmailFrom,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) Result {
	msg, err := NewMessage(m.From, to, subject, body)
	if err != nil {
		return Failure(err)
	}

	client, err := mail.NewClient(m.Host,
		mail.WithPort(m.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.Username),
		mail.WithPassword(m.Password),
	)
	if err != nil {
		return Failure(err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return Failure(err)
	}
	return Result{Status: StatusSuccess, Message: fmt.Sprintf("Email sent to %s", to)}
}

func NewMessage(from, to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

func Failure(err error) Result {
	return Result{Status: StatusError, Message: err.Error()}
}
