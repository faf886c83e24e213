// Package auth_repo provides PostgreSQL implementations for auth repositories.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"freightdesk/internal/core/apperror"
	"freightdesk/internal/core/id"
	"freightdesk/internal/domain/auth"
	"freightdesk/internal/infrastructure/storage/postgres"
)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepo)(nil)

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO users (
			id, email, password_hash, name, role,
			is_active, is_admin, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Role,
		user.IsActive, user.IsAdmin, user.Version, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	return r.getOne(ctx, "id = $1", userID)
}

// GetByEmail retrieves user by email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	return r.getOne(ctx, "email = $1", email)
}

func (r *UserRepo) getOne(ctx context.Context, where string, arg any) (*auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT id, email, password_hash, name, role,
			   is_active, is_admin, last_login_at,
			   failed_login_attempts, locked_until,
			   created_at, updated_at, version
		FROM users
		WHERE ` + where

	var user auth.User
	err := q.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.IsActive, &user.IsAdmin, &user.LastLoginAt,
		&user.FailedLoginAttempts, &user.LockedUntil,
		&user.CreatedAt, &user.UpdatedAt, &user.Version,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", fmt.Sprintf("%v", arg))
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// Update updates user data.
func (r *UserRepo) Update(ctx context.Context, user *auth.User) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		UPDATE users SET
			email = $2, name = $3, role = $4,
			is_active = $5, is_admin = $6, last_login_at = $7,
			failed_login_attempts = $8, locked_until = $9,
			updated_at = NOW(), version = version + 1
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.Role,
		user.IsActive, user.IsAdmin, user.LastLoginAt,
		user.FailedLoginAttempts, user.LockedUntil,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("user", user.ID.String())
	}

	return nil
}

// Exists checks if email exists.
func (r *UserRepo) Exists(ctx context.Context, email string) (bool, error) {
	q := r.txm.GetQuerier(ctx)

	var exists bool
	err := q.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)",
		email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}

	return exists, nil
}
