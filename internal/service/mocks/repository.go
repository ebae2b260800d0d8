package mocks

import (
	"context"
	"errors"

	"github.com/acadeval/report-server/internal/repository/models"
)

// MockUserRepository is a mock implementation of the UserRepository interface
// for testing the service layer.
type MockUserRepository struct {
	GetByUsernameFunc  func(ctx context.Context, username string) (models.UserAccount, error)
	CreateFunc         func(ctx context.Context, u models.UserAccount) error
	ListFunc           func(ctx context.Context) ([]models.UserAccount, error)
	UpdatePasswordFunc func(ctx context.Context, username, passwordHash string) error
	UpdateRoleFunc     func(ctx context.Context, username, role string) error
	DeleteFunc         func(ctx context.Context, username string) error
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (models.UserAccount, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return models.UserAccount{}, errors.New("GetByUsernameFunc not implemented")
}

func (m *MockUserRepository) Create(ctx context.Context, u models.UserAccount) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return errors.New("CreateFunc not implemented")
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.UserAccount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, errors.New("ListFunc not implemented")
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, username, passwordHash)
	}
	return errors.New("UpdatePasswordFunc not implemented")
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, username, role string) error {
	if m.UpdateRoleFunc != nil {
		return m.UpdateRoleFunc(ctx, username, role)
	}
	return errors.New("UpdateRoleFunc not implemented")
}

func (m *MockUserRepository) Delete(ctx context.Context, username string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, username)
	}
	return errors.New("DeleteFunc not implemented")
}
