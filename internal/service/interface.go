package service

import (
	"context"

	"github.com/acadeval/report-server/internal/repository/models"
)

// UserRepository defines the interface for credential storage operations.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.UserAccount, error)
	Create(ctx context.Context, u models.UserAccount) error
	List(ctx context.Context) ([]models.UserAccount, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	UpdateRole(ctx context.Context, username, role string) error
	Delete(ctx context.Context, username string) error
}
