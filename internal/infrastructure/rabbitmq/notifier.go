// Package rabbitmq adapts the application's notification boundary onto an
// AMQP queue consumed by the email worker.
package rabbitmq

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/goidm/identity-backend/internal/application"
	"github.com/goidm/identity-backend/pkg/helpers"
	"github.com/goidm/identity-backend/pkg/mailer"
)

// Notifier publishes the registered event as an EmailJob on the durable email
// queue. Publishing is synchronous; Register waits for broker confirmation of
// the enqueue, delivery itself is the worker's problem.
type Notifier struct {
	Pub         *helpers.RabbitPublisher
	ActivateURL string
	Logger      *logrus.Logger
}

func NewNotifier(pub *helpers.RabbitPublisher, activateURL string, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, ActivateURL: activateURL, Logger: logger}
}

func (n *Notifier) NotifyUserRegistered(ctx context.Context, event application.UserRegistered) error {
	job := mailer.EmailJob{
		To:       event.Email,
		Template: mailer.TemplateAccountVerification,
		Data: map[string]any{
			"Username":     event.Username,
			"ActivateLink": n.ActivateURL + "?token=" + event.VerificationToken,
		},
	}
	if err := n.Pub.PublishJSON(ctx, job); err != nil {
		n.Logger.WithError(err).WithField("email", event.Email).Error("publish registered notification failed")
		return err
	}
	n.Logger.WithField("email", event.Email).Debug("registered notification enqueued")
	return nil
}

var _ application.Notifier = (*Notifier)(nil)
