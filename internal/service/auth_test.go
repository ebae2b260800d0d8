package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadeval/report-server/internal/repository"
	"github.com/acadeval/report-server/internal/repository/models"
	"github.com/acadeval/report-server/internal/service/mocks"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func TestNewAuthService(t *testing.T) {
	t.Run("valid parameters", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{}
		logger := zap.NewNop()

		svc := NewAuthService(mockRepo, logger)

		assert.NotNil(t, svc)
		assert.Equal(t, mockRepo, svc.storage)
		assert.Equal(t, logger, svc.logger)
	})

	t.Run("nil storage panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewAuthService(nil, zap.NewNop())
		})
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := NewAuthService(&mocks.MockUserRepository{}, nil)

		assert.NotNil(t, svc)
		assert.NotNil(t, svc.logger)
	})
}

func TestLogin(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()
	storedHash := hashFor(t, "s3cret")

	t.Run("successful login", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				assert.Equal(t, "dean", username)
				return models.UserAccount{Username: "dean", PasswordHash: storedHash, Role: models.RoleAdmin}, nil
			},
		}

		svc := NewAuthService(mockRepo, logger)
		account, err := svc.Login(ctx, "dean", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, "dean", account.Username)
		assert.Equal(t, models.RoleAdmin, account.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				return models.UserAccount{Username: "dean", PasswordHash: storedHash}, nil
			},
		}

		svc := NewAuthService(mockRepo, logger)
		_, err := svc.Login(ctx, "dean", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username maps to invalid credentials", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				return models.UserAccount{}, repository.ErrNotFound
			},
		}

		svc := NewAuthService(mockRepo, logger)
		_, err := svc.Login(ctx, "ghost", "whatever")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				return models.UserAccount{}, errors.New("disk on fire")
			},
		}

		svc := NewAuthService(mockRepo, logger)
		_, err := svc.Login(ctx, "dean", "s3cret")

		assert.ErrorIs(t, err, ErrStorageFailure)
		assert.Contains(t, err.Error(), "disk on fire")
	})
}

func TestCreateUser(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("hashes the password before storing", func(t *testing.T) {
		var stored models.UserAccount
		mockRepo := &mocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, u models.UserAccount) error {
				stored = u
				return nil
			},
		}

		svc := NewAuthService(mockRepo, logger)
		err := svc.CreateUser(ctx, "reviewer", "hunter2", models.RoleUser)

		assert.NoError(t, err)
		assert.Equal(t, "reviewer", stored.Username)
		assert.NotEqual(t, "hunter2", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("hunter2")))
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			CreateFunc: func(ctx context.Context, u models.UserAccount) error {
				return repository.ErrDuplicate
			},
		}

		svc := NewAuthService(mockRepo, logger)
		err := svc.CreateUser(ctx, "reviewer", "hunter2", models.RoleUser)

		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("invalid role rejected", func(t *testing.T) {
		svc := NewAuthService(&mocks.MockUserRepository{}, logger)
		err := svc.CreateUser(ctx, "reviewer", "hunter2", "superuser")

		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("empty username or password rejected", func(t *testing.T) {
		svc := NewAuthService(&mocks.MockUserRepository{}, logger)

		assert.ErrorIs(t, svc.CreateUser(ctx, "", "pw", models.RoleUser), ErrInvalidCredentials)
		assert.ErrorIs(t, svc.CreateUser(ctx, "someone", "", models.RoleUser), ErrInvalidCredentials)
	})
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("password hashes are stripped", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			ListFunc: func(ctx context.Context) ([]models.UserAccount, error) {
				return []models.UserAccount{
					{Username: "admin", PasswordHash: "hash1", Role: models.RoleAdmin},
					{Username: "reviewer", PasswordHash: "hash2", Role: models.RoleUser},
				}, nil
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		users, err := svc.ListUsers(ctx)

		assert.NoError(t, err)
		assert.Len(t, users, 2)
		for _, u := range users {
			assert.Empty(t, u.PasswordHash)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			ListFunc: func(ctx context.Context) ([]models.UserAccount, error) {
				return nil, errors.New("locked")
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		_, err := svc.ListUsers(ctx)

		assert.ErrorIs(t, err, ErrStorageFailure)
	})
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()

	t.Run("valid role", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			UpdateRoleFunc: func(ctx context.Context, username, role string) error {
				assert.Equal(t, models.RoleAdmin, role)
				return nil
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		assert.NoError(t, svc.ChangeRole(ctx, "reviewer", models.RoleAdmin))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			UpdateRoleFunc: func(ctx context.Context, username, role string) error {
				return repository.ErrNotFound
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		assert.ErrorIs(t, svc.ChangeRole(ctx, "ghost", models.RoleUser), ErrUserNotFound)
	})

	t.Run("invalid role", func(t *testing.T) {
		svc := NewAuthService(&mocks.MockUserRepository{}, zap.NewNop())
		assert.ErrorIs(t, svc.ChangeRole(ctx, "reviewer", "root"), ErrInvalidRole)
	})
}

func TestEnsureBootstrapAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when absent", func(t *testing.T) {
		created := false
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				return models.UserAccount{}, repository.ErrNotFound
			},
			CreateFunc: func(ctx context.Context, u models.UserAccount) error {
				created = true
				assert.Equal(t, "admin", u.Username)
				assert.Equal(t, models.RoleAdmin, u.Role)
				return nil
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		assert.NoError(t, svc.EnsureBootstrapAdmin(ctx, "changeme"))
		assert.True(t, created)
	})

	t.Run("no-op when admin exists", func(t *testing.T) {
		mockRepo := &mocks.MockUserRepository{
			GetByUsernameFunc: func(ctx context.Context, username string) (models.UserAccount, error) {
				return models.UserAccount{Username: "admin"}, nil
			},
		}

		svc := NewAuthService(mockRepo, zap.NewNop())
		assert.NoError(t, svc.EnsureBootstrapAdmin(ctx, "changeme"))
	})
}
