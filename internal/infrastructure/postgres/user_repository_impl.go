package postgres

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/goidm/identity-backend/internal/domain/entity"
	"github.com/goidm/identity-backend/internal/domain/repository"
	"github.com/goidm/identity-backend/internal/domain/valueobject"
	"github.com/goidm/identity-backend/pkg/apperrors"
)

const uniqueViolation = "23505" // postgres error code

// UsersRepository persists the User aggregate with pgx. Add stages aggregates
// in memory; Commit inserts user and tokens in one transaction. The users
// table carries a unique index on lower(email), so a duplicate-email race
// between two registrations is resolved at Commit and reported as a conflict.
type UsersRepository struct {
	pool *pgxpool.Pool

	mu     sync.Mutex
	staged []*entity.User
}

func NewUsersRepository(pool *pgxpool.Pool) *UsersRepository {
	return &UsersRepository{pool: pool}
}

func (r *UsersRepository) Exists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))
	`, email).Scan(&exists)
	return exists, err
}

func (r *UsersRepository) Add(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.staged = append(r.staged, user)
	return nil
}

func (r *UsersRepository) Commit(ctx context.Context) error {
	r.mu.Lock()
	staged := r.staged
	r.staged = nil
	r.mu.Unlock()
	if len(staged) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, u := range staged {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func insertUser(ctx context.Context, tx pgx.Tx, u *entity.User) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, is_active, created_at, updated_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Username, u.Email.Value(), u.Password.Hash(), u.IsActive, u.CreatedAt, u.UpdatedAt, u.LastLogin)
	if err != nil {
		return translateUnique(err)
	}
	for _, t := range u.Tokens() {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_tokens (user_id, type, token, expiration_date, used, revoked)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, t.UserID, int(t.Type), t.Token, t.ExpirationDate, t.Used, t.Revoked)
		if err != nil {
			return translateUnique(err)
		}
	}
	return nil
}

func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return apperrors.Conflict(apperrors.CodeUserAlreadyExists)
	}
	return err
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `lower(u.email) = lower($1)`, email)
}

func (r *UsersRepository) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, `u.id = (SELECT user_id FROM user_tokens WHERE token = $1)`, token)
}

func (r *UsersRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var emailRaw, passwordHash string
	row := r.pool.QueryRow(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.is_active, u.created_at, u.updated_at, u.last_login
		FROM users u
		WHERE `+where, arg)
	if err := row.Scan(&u.ID, &u.Username, &emailRaw, &passwordHash, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(apperrors.CodeUserNotFound)
		}
		return nil, err
	}

	email, err := valueobject.NewEmail(emailRaw)
	if err != nil {
		return nil, err
	}
	u.Email = email
	u.Password = valueobject.PasswordFromHash(passwordHash)

	tokens, err := r.loadTokens(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.RestoreTokens(tokens)
	return u, nil
}

func (r *UsersRepository) loadTokens(ctx context.Context, userID string) ([]*entity.UserToken, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, type, token, expiration_date, used, revoked
		FROM user_tokens
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []*entity.UserToken
	for rows.Next() {
		t := &entity.UserToken{}
		var typ int
		if err := rows.Scan(&t.UserID, &typ, &t.Token, &t.ExpirationDate, &t.Used, &t.Revoked); err != nil {
			return nil, err
		}
		t.Type = entity.TokenType(typ)
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (r *UsersRepository) Update(ctx context.Context, u *entity.User) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	res, err := tx.Exec(ctx, `
		UPDATE users
		SET username = $1, is_active = $2, updated_at = $3, last_login = $4
		WHERE id = $5
	`, u.Username, u.IsActive, u.UpdatedAt, u.LastLogin, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperrors.NotFound(apperrors.CodeUserNotFound)
	}
	for _, t := range u.Tokens() {
		_, err = tx.Exec(ctx, `
			INSERT INTO user_tokens (user_id, type, token, expiration_date, used, revoked)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (token) DO UPDATE SET used = EXCLUDED.used, revoked = EXCLUDED.revoked
		`, t.UserID, int(t.Type), t.Token, t.ExpirationDate, t.Used, t.Revoked)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

var _ repository.UsersRepository = (*UsersRepository)(nil)
