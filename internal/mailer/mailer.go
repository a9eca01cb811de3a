// Package mailer sends the account lifecycle emails. Delivery is fire-and-forget:
// callers never wait on the provider and never see its errors, which are logged.
package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Message is a plain-text email to a single recipient.
type Message struct {
	To      string
	ToName  string
	Subject string
	Text    string
}

// Sender delivers a message through an email provider.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher renders the welcome and cancellation emails and hands them to a
// Sender on a background goroutine.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger
	wg     sync.WaitGroup
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Welcome sends the signup email.
func (d *Dispatcher) Welcome(email, name string) {
	d.dispatch(Message{
		To:      email,
		ToName:  name,
		Subject: "Welcome to Ctrl-Alt-Del App!",
		Text: fmt.Sprintf("Dear %s,\n"+
			"Thank you for joining with us.", name),
	})
}

// Cancellation sends the account removal email.
func (d *Dispatcher) Cancellation(email, name string) {
	d.dispatch(Message{
		To:      email,
		ToName:  name,
		Subject: "Sorry to see you go!",
		Text: fmt.Sprintf("Goodbye %s,\n"+
			"We (Ctrl-Alt-Del App Team) hope to see you back soon! Thanks for being with us till now. "+
			"We've removed all of your tasks as you (%s) are the owner of them.", name, name),
	})
}

// Wait blocks until every dispatched email has been handed to the sender.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(msg Message) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("email sender panicked", "subject", msg.Subject, "panic", r)
			}
		}()

		if err := d.sender.Send(context.Background(), msg); err != nil {
			d.logger.Warn("failed to send email", "to", msg.To, "subject", msg.Subject, "error", err)
			return
		}
		d.logger.Info("email sent", "to", msg.To, "subject", msg.Subject)
	}()
}
