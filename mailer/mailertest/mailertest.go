// Package mailertest provides an in-memory mailer.Sender.
package mailertest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront-service/mailer"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Recorder keeps every message it is asked to send. When Err is set, sends fail with it.
type Recorder struct {
	mu   sync.Mutex
	Sent []Message
	Err  error
}

func (r *Recorder) Send(_ context.Context, to, subject, body string) mailer.Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return mailer.Failure(r.Err)
	}
	r.Sent = append(r.Sent, Message{To: to, Subject: subject, Body: body})
	return mailer.Result{Status: mailer.StatusSuccess, Message: fmt.Sprintf("Email sent to %s", to)}
}

func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.Sent...)
}

var ErrRelayDown = errors.New("dial tcp: connection refused")
