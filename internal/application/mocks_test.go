package application

import (
	"context"

	"github.com/goidm/identity-backend/internal/domain/entity"
)

type mockUsersRepository struct {
	ExistsFunc     func(ctx context.Context, email string) (bool, error)
	AddFunc        func(ctx context.Context, user *entity.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	GetByTokenFunc func(ctx context.Context, token string) (*entity.User, error)
	UpdateFunc     func(ctx context.Context, user *entity.User) error
	CommitFunc     func(ctx context.Context) error

	AddCalls    int
	CommitCalls int
	UpdateCalls int
}

func (m *mockUsersRepository) Exists(ctx context.Context, email string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(ctx, email)
	}
	return false, nil
}

func (m *mockUsersRepository) Add(ctx context.Context, user *entity.User) error {
	m.AddCalls++
	if m.AddFunc != nil {
		return m.AddFunc(ctx, user)
	}
	return nil
}

func (m *mockUsersRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUsersRepository) GetByToken(ctx context.Context, token string) (*entity.User, error) {
	if m.GetByTokenFunc != nil {
		return m.GetByTokenFunc(ctx, token)
	}
	return nil, nil
}

func (m *mockUsersRepository) Update(ctx context.Context, user *entity.User) error {
	m.UpdateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *mockUsersRepository) Commit(ctx context.Context) error {
	m.CommitCalls++
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

type mockNotifier struct {
	NotifyFunc func(ctx context.Context, event UserRegistered) error
	Events     []UserRegistered
}

func (m *mockNotifier) NotifyUserRegistered(ctx context.Context, event UserRegistered) error {
	m.Events = append(m.Events, event)
	if m.NotifyFunc != nil {
		return m.NotifyFunc(ctx, event)
	}
	return nil
}
