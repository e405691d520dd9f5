package repository

import (
	"context"

	"github.com/goidm/identity-backend/internal/domain/entity"
)

// UsersRepository is the persistence boundary for the User aggregate. Add only
// stages an insert; nothing is visible to other callers until Commit flushes
// the staged changes. A storage-level unique index on the normalized email is
// expected, and a violation of it surfaces from Commit as
// Conflict(UserAlreadyExists).
type UsersRepository interface {
	// Exists reports whether a user with the given normalized email is stored.
	Exists(ctx context.Context, email string) (bool, error)
	// Add stages the aggregate (user plus owned tokens) for insertion.
	Add(ctx context.Context, user *entity.User) error
	// GetByEmail loads a user with tokens, or a NotFound error.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetByToken loads the user owning the given token string, or NotFound.
	GetByToken(ctx context.Context, token string) (*entity.User, error)
	// Update persists mutations of an already-stored aggregate and its tokens.
	Update(ctx context.Context, user *entity.User) error
	// Commit flushes staged inserts in one transaction.
	Commit(ctx context.Context) error
}
