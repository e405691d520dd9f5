// Package application orchestrates the identity domain: registration and
// account activation. It owns the failure semantics surfaced to callers;
// domain errors propagate verbatim, anything unexpected is flattened to a
// single internal code with the cause kept attached.
package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goidm/identity-backend/internal/domain/entity"
	"github.com/goidm/identity-backend/internal/domain/repository"
	"github.com/goidm/identity-backend/internal/domain/valueobject"
	"github.com/goidm/identity-backend/pkg/apperrors"
)

// RegistrationService runs the registration workflow:
// existence check -> aggregate construction -> token issuance -> persistence
// -> notification, in that order.
type RegistrationService struct {
	Repo     repository.UsersRepository
	Notifier Notifier
	Logger   *logrus.Logger
}

func NewRegistrationService(repo repository.UsersRepository, notifier Notifier, logger *logrus.Logger) *RegistrationService {
	return &RegistrationService{Repo: repo, Notifier: notifier, Logger: logger}
}

// Register validates and persists a new inactive account, mints an
// account-verification token and dispatches the registered notification.
// No partial state is observable: the existence check happens before the
// insert, the insert commits before the notification goes out.
func (s *RegistrationService) Register(ctx context.Context, username, rawEmail, rawPassword string) error {
	exists, err := s.Repo.Exists(ctx, rawEmail)
	if err != nil {
		return s.failUnexpected(rawEmail, err)
	}
	if exists {
		s.Logger.WithField("email", rawEmail).Warn("registration attempt with existing email")
		return apperrors.Conflict(apperrors.CodeUserAlreadyExists)
	}

	email, err := valueobject.NewEmail(rawEmail)
	if err != nil {
		return s.failDomain(rawEmail, err)
	}
	password, err := valueobject.NewPassword(rawPassword)
	if err != nil {
		return s.failDomain(rawEmail, err)
	}
	user, err := entity.NewUser(username, email, password)
	if err != nil {
		return s.failDomain(rawEmail, err)
	}

	token, err := entity.NewUserToken(user, entity.TokenTypeAccountVerification, int(entity.DefaultTokenExpiration/time.Minute))
	if err != nil {
		return s.failUnexpected(rawEmail, err)
	}
	if err := user.AddToken(token, true); err != nil {
		return s.failDomain(rawEmail, err)
	}

	if err := s.Repo.Add(ctx, user); err != nil {
		return s.failUnexpected(rawEmail, err)
	}
	if err := s.Repo.Commit(ctx); err != nil {
		// The storage layer enforces email uniqueness; a committed duplicate
		// surfaces here when two registrations race past the existence check.
		var appErr *apperrors.Error
		if errors.As(err, &appErr) && appErr.Code == apperrors.CodeUserAlreadyExists {
			s.Logger.WithField("email", rawEmail).Warn("duplicate email rejected at commit")
			return appErr
		}
		return s.failUnexpected(rawEmail, err)
	}

	s.Logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   email.Value(),
	}).Info("user registered")

	// The write is committed; a cancelled request must not abort the
	// notification, so it runs on a cancel-detached context.
	notifyCtx := context.WithoutCancel(ctx)
	err = s.Notifier.NotifyUserRegistered(notifyCtx, UserRegistered{
		Username:          user.Username,
		Email:             email.Value(),
		VerificationToken: token.Token,
	})
	if err != nil {
		return s.failUnexpected(rawEmail, err)
	}
	return nil
}

// failDomain logs and re-returns a recognized domain error unchanged.
func (s *RegistrationService) failDomain(email string, err error) error {
	s.Logger.WithError(err).WithField("email", email).Warn("registration rejected")
	return err
}

// failUnexpected logs with full context and flattens the failure to the
// generic registration error, keeping the cause wrapped.
func (s *RegistrationService) failUnexpected(email string, err error) error {
	s.Logger.WithError(err).WithField("email", email).Error("registration failed unexpectedly")
	return apperrors.Internal(apperrors.CodeRegistrationFailed, err)
}
