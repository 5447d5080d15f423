package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-api-v2/api"
)

// UserStore is the credential store. It is the only component that reads or
// writes password hashes; callers above the auth service never see them.
type UserStore struct {
	DB *sql.DB
}

// CreateUser inserts a new user. Email uniqueness rests on the database's
// unique index over LOWER(email), never an application-level check, so two
// concurrent registrations yield exactly one ErrDuplicateEmail.
func (s *UserStore) CreateUser(ctx context.Context, email, passwordHash string) (api.User, error) {
	now := time.Now().UTC()
	u := api.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO users (email, password_hash, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		email, passwordHash, now, now,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return api.User{}, ErrDuplicateEmail
		}
		return api.User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks up a user by case-insensitive email match.
func (s *UserStore) GetUserByEmail(ctx context.Context, email string) (api.User, error) {
	var u api.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE LOWER(email) = LOWER($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.User{}, ErrNotFound
		}
		return api.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

// GetUserByID looks up a user by id.
func (s *UserStore) GetUserByID(ctx context.Context, id int) (api.User, error) {
	var u api.User
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return api.User{}, ErrNotFound
		}
		return api.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return u, nil
}
