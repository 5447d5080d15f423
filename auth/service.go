// Package auth implements registration, login, and bearer-token handling.
// Raw passwords enter here and leave only as bcrypt hashes bound for the
// credential store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"todo-api-v2/api"
	"todo-api-v2/store"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password, so login failures cannot be used to enumerate accounts.
var ErrInvalidCredentials = errors.New("incorrect email or password")

// minPasswordLen is the password policy: at least 8 characters, no
// complexity classes.
const minPasswordLen = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CredentialStore is the slice of the user store the auth service needs.
type CredentialStore interface {
	CreateUser(ctx context.Context, email, passwordHash string) (api.User, error)
	GetUserByEmail(ctx context.Context, email string) (api.User, error)
}

// Service orchestrates registration and login.
type Service struct {
	users  CredentialStore
	tokens *TokenService
	cost   int
}

// NewService builds an auth Service hashing passwords at the given bcrypt cost.
func NewService(users CredentialStore, tokens *TokenService, cost int) *Service {
	return &Service{users: users, tokens: tokens, cost: cost}
}

// Register validates the credentials, stores the new user, and issues a
// token. Validation runs before any persistence mutation. Hashing happens on
// the request goroutine and holds no locks.
func (s *Service) Register(ctx context.Context, email, password string) (api.User, string, error) {
	email = strings.TrimSpace(email)

	var verrs api.ValidationErrors
	if !emailPattern.MatchString(email) {
		verrs = append(verrs, api.FieldError{Loc: []string{"body", "email"}, Msg: "Invalid email format", Type: "value_error"})
	}
	if len(password) < minPasswordLen {
		verrs = append(verrs, api.FieldError{Loc: []string{"body", "password"}, Msg: "Password must be at least 8 characters", Type: "value_error"})
	}
	if verrs != nil {
		return api.User{}, "", verrs
	}

	hash, err := hashPassword(password, s.cost)
	if err != nil {
		return api.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, email, hash)
	if err != nil {
		return api.User{}, "", err
	}
	user.PasswordHash = ""

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return api.User{}, "", err
	}
	return user, token, nil
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password both cost one bcrypt comparison and return the same error.
func (s *Service) Login(ctx context.Context, email, password string) (api.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			checkPasswordHash(password, dummyHash)
			return api.User{}, "", ErrInvalidCredentials
		}
		return api.User{}, "", err
	}

	if !checkPasswordHash(password, user.PasswordHash) {
		return api.User{}, "", ErrInvalidCredentials
	}
	user.PasswordHash = ""

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return api.User{}, "", err
	}
	return user, token, nil
}
