package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/acadeval/report-server/internal/repository"
	"github.com/acadeval/report-server/internal/repository/models"
)

const (
	dbTimeout = 1 * time.Second

	bcryptCost = bcrypt.DefaultCost
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRole        = errors.New("role must be admin or user")
	ErrStorageFailure     = errors.New("storage failure")
)

// AuthService verifies logins and manages user accounts.
type AuthService struct {
	storage UserRepository
	logger  *zap.Logger
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(storage UserRepository, logger *zap.Logger) *AuthService {
	if storage == nil {
		panic("storage must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &AuthService{
		storage: storage,
		logger:  logger,
	}
}

// Login checks the supplied credentials and returns the matching account.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (models.UserAccount, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	account, err := s.storage.GetByUsername(dbCtx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.UserAccount{}, ErrInvalidCredentials
		}
		return models.UserAccount{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return models.UserAccount{}, ErrInvalidCredentials
	}

	s.logger.Info("login succeeded",
		zap.String("username", account.Username),
		zap.String("role", account.Role))

	return account, nil
}

// CreateUser adds a new account with a freshly hashed password.
func (s *AuthService) CreateUser(ctx context.Context, username, password, role string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	err = s.storage.Create(dbCtx, models.UserAccount{
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("user created",
		zap.String("username", username),
		zap.String("role", role))
	return nil
}

// ListUsers returns all accounts with password hashes blanked out.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.UserAccount, error) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	users, err := s.storage.List(dbCtx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ChangePassword rehashes and stores a new password for the account.
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.UpdatePassword(dbCtx, username, string(hash)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

// ChangeRole switches the account between admin and user.
func (s *AuthService) ChangeRole(ctx context.Context, username, role string) error {
	if !models.ValidRole(role) {
		return ErrInvalidRole
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.UpdateRole(dbCtx, username, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("role changed",
		zap.String("username", username),
		zap.String("role", role))
	return nil
}

// RemoveUser deletes the account by username.
func (s *AuthService) RemoveUser(ctx context.Context, username string) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.Delete(dbCtx, username); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("user removed", zap.String("username", username))
	return nil
}

// EnsureBootstrapAdmin creates the default admin account on first run so
// the instance is never left without a way to log in.
func (s *AuthService) EnsureBootstrapAdmin(ctx context.Context, password string) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	_, err := s.storage.GetByUsername(dbCtx, "admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if err := s.CreateUser(ctx, "admin", password, models.RoleAdmin); err != nil {
		return err
	}
	s.logger.Info("bootstrap admin account created")
	return nil
}
