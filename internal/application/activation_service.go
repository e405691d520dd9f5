package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goidm/identity-backend/internal/domain/entity"
	"github.com/goidm/identity-backend/internal/domain/repository"
	"github.com/goidm/identity-backend/pkg/apperrors"
)

// ActivationService redeems account-verification tokens.
type ActivationService struct {
	Repo   repository.UsersRepository
	Logger *logrus.Logger
}

func NewActivationService(repo repository.UsersRepository, logger *logrus.Logger) *ActivationService {
	return &ActivationService{Repo: repo, Logger: logger}
}

// Activate looks up the user owning the token, checks that the token is still
// redeemable (unused, unrevoked, unexpired), marks it used and activates the
// account. Redeeming the same token twice fails.
func (s *ActivationService) Activate(ctx context.Context, token string) error {
	user, err := s.Repo.GetByToken(ctx, token)
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return err
		}
		return s.failUnexpected(err)
	}

	var match *entity.UserToken
	for _, t := range user.Tokens() {
		if t.Token == token && t.Type == entity.TokenTypeAccountVerification {
			match = t
			break
		}
	}
	if match == nil {
		return apperrors.NotFound(apperrors.CodeUserNotFound)
	}
	if !match.IsValid(time.Now().UTC()) {
		s.Logger.WithField("user_id", user.ID).Warn("activation with dead token")
		return apperrors.Invalid(apperrors.CodeInvalidUserTokenExpiration)
	}

	match.MarkAsUsed()
	user.Activate()
	if err := s.Repo.Update(ctx, user); err != nil {
		return s.failUnexpected(err)
	}

	s.Logger.WithField("user_id", user.ID).Info("account activated")
	return nil
}

// failUnexpected logs and flattens the failure to the generic activation
// error, keeping the cause wrapped.
func (s *ActivationService) failUnexpected(err error) error {
	s.Logger.WithError(err).Error("activation failed unexpectedly")
	return apperrors.Internal(apperrors.CodeActivationFailed, err)
}
