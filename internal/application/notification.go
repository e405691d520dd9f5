package application

import "context"

// UserRegistered is published after a registration commits. It carries
// everything the email pipeline needs to send the verification message.
type UserRegistered struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	VerificationToken string `json:"verification_token"`
}

// Notifier is the notification boundary. Exactly one implementation is
// expected to turn the event into an outbound email; delivery itself happens
// outside this core. Notify is awaited before Register returns.
type Notifier interface {
	NotifyUserRegistered(ctx context.Context, event UserRegistered) error
}
