package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goidm/identity-backend/internal/domain/entity"
	"github.com/goidm/identity-backend/pkg/apperrors"
)

func nullLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestRegistrationService_Register_Success(t *testing.T) {
	t.Parallel()

	var added *entity.User
	repo := &mockUsersRepository{
		AddFunc: func(_ context.Context, user *entity.User) error {
			added = user
			return nil
		},
	}
	notifier := &mockNotifier{}
	svc := NewRegistrationService(repo, notifier, nullLogger())

	err := svc.Register(context.Background(), "alice", "alice@EXAMPLE.com", "Sup3rSecret!")
	require.NoError(t, err)

	require.NotNil(t, added)
	assert.Equal(t, "alice", added.Username)
	assert.Equal(t, "alice@example.com", added.Email.Value())
	assert.False(t, added.IsActive, "new accounts must start inactive")
	assert.True(t, added.Password.Validate("Sup3rSecret!"))
	assert.Equal(t, 1, repo.CommitCalls)

	token := added.LiveToken(entity.TokenTypeAccountVerification)
	require.NotNil(t, token, "registration must mint a verification token")

	require.Len(t, notifier.Events, 1, "exactly one notification per registration")
	event := notifier.Events[0]
	assert.Equal(t, "alice", event.Username)
	assert.Equal(t, "alice@example.com", event.Email)
	assert.Equal(t, token.Token, event.VerificationToken)
}

func TestRegistrationService_Register_ExistingEmail(t *testing.T) {
	t.Parallel()

	repo := &mockUsersRepository{
		ExistsFunc: func(_ context.Context, _ string) (bool, error) { return true, nil },
	}
	notifier := &mockNotifier{}
	svc := NewRegistrationService(repo, notifier, nullLogger())

	err := svc.Register(context.Background(), "alice", "alice@example.com", "Sup3rSecret!")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUserAlreadyExists, appErr.Code)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind)

	assert.Zero(t, repo.AddCalls, "conflicting registration must not persist anything")
	assert.Zero(t, repo.CommitCalls)
	assert.Empty(t, notifier.Events, "conflicting registration must not notify")
}

func TestRegistrationService_Register_DomainErrorsPropagateVerbatim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		email    string
		password string
		wantCode apperrors.Code
	}{
		{name: "bad email", username: "alice", email: "nope", password: "Sup3rSecret!", wantCode: apperrors.CodeInvalidEmailFormat},
		{name: "empty email", username: "alice", email: "", password: "Sup3rSecret!", wantCode: apperrors.CodeEmailCannotBeEmpty},
		{name: "weak password", username: "alice", email: "alice@example.com", password: "short", wantCode: apperrors.CodePasswordTooShort},
		{name: "empty username", username: "", email: "alice@example.com", password: "Sup3rSecret!", wantCode: apperrors.CodeUsernameCannotBeEmpty},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockUsersRepository{}
			notifier := &mockNotifier{}
			svc := NewRegistrationService(repo, notifier, nullLogger())

			err := svc.Register(context.Background(), tt.username, tt.email, tt.password)

			var appErr *apperrors.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.NotEqual(t, apperrors.KindInternal, appErr.Kind, "domain errors must not be flattened")
			assert.Zero(t, repo.AddCalls)
			assert.Empty(t, notifier.Events)
		})
	}
}

func TestRegistrationService_Register_RepositoryFailureFlattened(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	repo := &mockUsersRepository{
		ExistsFunc: func(_ context.Context, _ string) (bool, error) { return false, cause },
	}
	svc := NewRegistrationService(repo, &mockNotifier{}, nullLogger())

	err := svc.Register(context.Background(), "alice", "alice@example.com", "Sup3rSecret!")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeRegistrationFailed, appErr.Code)
	assert.Equal(t, apperrors.KindInternal, appErr.Kind)
	assert.ErrorIs(t, err, cause, "the cause must stay reachable through Unwrap")
}

func TestRegistrationService_Register_DuplicateAtCommit(t *testing.T) {
	t.Parallel()

	repo := &mockUsersRepository{
		CommitFunc: func(_ context.Context) error {
			return apperrors.Conflict(apperrors.CodeUserAlreadyExists)
		},
	}
	notifier := &mockNotifier{}
	svc := NewRegistrationService(repo, notifier, nullLogger())

	err := svc.Register(context.Background(), "alice", "alice@example.com", "Sup3rSecret!")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeUserAlreadyExists, appErr.Code)
	assert.Equal(t, apperrors.KindConflict, appErr.Kind, "a commit-time duplicate is a conflict, not an internal error")
	assert.Empty(t, notifier.Events)
}

func TestRegistrationService_Register_NotificationFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("broker down")
	repo := &mockUsersRepository{}
	notifier := &mockNotifier{
		NotifyFunc: func(_ context.Context, _ UserRegistered) error { return cause },
	}
	svc := NewRegistrationService(repo, notifier, nullLogger())

	err := svc.Register(context.Background(), "alice", "alice@example.com", "Sup3rSecret!")

	var appErr *apperrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeRegistrationFailed, appErr.Code)
	assert.Equal(t, 1, repo.CommitCalls, "the write stays committed even when notification fails")
}

func TestRegistrationService_Register_NotificationSurvivesCancelledRequest(t *testing.T) {
	t.Parallel()

	repo := &mockUsersRepository{}
	notifier := &mockNotifier{
		NotifyFunc: func(ctx context.Context, _ UserRegistered) error { return ctx.Err() },
	}
	svc := NewRegistrationService(repo, notifier, nullLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The repo mock ignores cancellation, so the workflow reaches the
	// notification step with an already-cancelled request context.
	err := svc.Register(ctx, "alice", "alice@example.com", "Sup3rSecret!")
	require.NoError(t, err, "notification must run on a cancel-detached context")
	assert.Len(t, notifier.Events, 1)
}
