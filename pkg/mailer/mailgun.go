// Package mailer holds the outbound email transport and the queue payload
// exchanged between the API and the email worker.
package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration. SenderName/Sender form the From
// contact ("Name <address>").
type Mailgun struct {
	Domain     string
	APIKey     string
	Sender     string
	SenderName string
}

func NewMailgun(domain, apiKey, sender, senderName string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender, SenderName: senderName}
}

func (m *Mailgun) from() string {
	if m.SenderName == "" {
		return m.Sender
	}
	return m.SenderName + " <" + m.Sender + ">"
}

// Send sends an email via Mailgun. html is optional; if provided it is used as
// the HTML body alongside the text fallback.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.from(), subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
