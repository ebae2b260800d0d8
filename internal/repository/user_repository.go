package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/acadeval/report-server/internal/repository/models"
)

// ErrNotFound is returned when a username has no matching row.
var ErrNotFound = errors.New("user not found")

// ErrDuplicate is returned when an insert violates the username key.
var ErrDuplicate = errors.New("username already exists")

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Migrate creates the users table if it does not exist yet.
func (r *UserRepository) Migrate(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS users (
			username   TEXT PRIMARY KEY,
			password   TEXT NOT NULL,
			role       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate users table: %w", err)
	}
	return nil
}

// GetByUsername fetches a single account by its unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.UserAccount, error) {
	const query = `
		SELECT username, password, role, created_at
		FROM users
		WHERE username = ?
	`

	var u models.UserAccount
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, username).Scan(&u.Username, &u.PasswordHash, &u.Role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserAccount{}, ErrNotFound
		}
		return models.UserAccount{}, fmt.Errorf("query GetByUsername: %w", err)
	}

	if ts, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
		u.CreatedAt = ts
	}
	return u, nil
}

// Create inserts a new account. Duplicate usernames map to ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u models.UserAccount) error {
	const query = `
		INSERT INTO users (username, password, role, created_at)
		VALUES (?, ?, ?, ?)
	`

	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query, u.Username, u.PasswordHash, u.Role, createdAt.Format(time.RFC3339))
	if err != nil {
		// sqlite reports key violations as "UNIQUE constraint failed"
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// List returns all accounts ordered by username.
func (r *UserRepository) List(ctx context.Context) ([]models.UserAccount, error) {
	const query = `
		SELECT username, password, role, created_at
		FROM users
		ORDER BY username
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query List: %w", err)
	}
	defer rows.Close()

	var users []models.UserAccount
	for rows.Next() {
		var u models.UserAccount
		var createdAt string
		if err := rows.Scan(&u.Username, &u.PasswordHash, &u.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("scan List row: %w", err)
		}
		if ts, perr := time.Parse(time.RFC3339, createdAt); perr == nil {
			u.CreatedAt = ts
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate List: %w", err)
	}
	return users, nil
}

// UpdatePassword replaces the stored credential for one account.
func (r *UserRepository) UpdatePassword(ctx context.Context, username, passwordHash string) error {
	return r.updateColumn(ctx, "password", username, passwordHash)
}

// UpdateRole changes the role of one account.
func (r *UserRepository) UpdateRole(ctx context.Context, username, role string) error {
	return r.updateColumn(ctx, "role", username, role)
}

func (r *UserRepository) updateColumn(ctx context.Context, column, username, value string) error {
	query := fmt.Sprintf(`UPDATE users SET %s = ? WHERE username = ?`, column)

	res, err := r.db.ExecContext(ctx, query, value, username)
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user %s: %w", column, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an account by username.
func (r *UserRepository) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
