// Package api holds the wire types shared between the service and its clients.
// Field names match the shared type contracts and must not drift.
package api

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// TaskStatus is the completion state of a task.
type TaskStatus string

const (
	StatusComplete   TaskStatus = "Complete"
	StatusIncomplete TaskStatus = "Incomplete"
)

// Valid reports whether s is one of the two known statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusComplete || s == StatusIncomplete
}

// User is a registered account. The password hash never leaves the server.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Task is a single todo item owned by exactly one user.
type Task struct {
	ID          int        `json:"id"`
	UserID      int        `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Claims is the JWT claim set carried by access tokens.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// Credentials is the request body for /register and /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskCreate is the request body for POST /tasks.
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// Validate trims the title and checks field constraints.
func (c *TaskCreate) Validate() ValidationErrors {
	var errs ValidationErrors
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		errs = append(errs, FieldError{Loc: []string{"body", "title"}, Msg: "Title cannot be empty", Type: "value_error"})
	} else if utf8.RuneCountInString(c.Title) > MaxTitleLen {
		errs = append(errs, FieldError{Loc: []string{"body", "title"}, Msg: "Title exceeds 200 characters", Type: "value_error"})
	}
	if c.Description != nil && utf8.RuneCountInString(*c.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{Loc: []string{"body", "description"}, Msg: "Description exceeds 1000 characters", Type: "value_error"})
	}
	return errs
}

// TaskUpdate is the request body for PATCH /tasks/{id}. Nil fields are
// left unchanged (merge semantics).
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// Validate trims a supplied title and checks field constraints.
func (u *TaskUpdate) Validate() ValidationErrors {
	var errs ValidationErrors
	if u.Title != nil {
		trimmed := strings.TrimSpace(*u.Title)
		u.Title = &trimmed
		if trimmed == "" {
			errs = append(errs, FieldError{Loc: []string{"body", "title"}, Msg: "Title cannot be empty", Type: "value_error"})
		} else if utf8.RuneCountInString(trimmed) > MaxTitleLen {
			errs = append(errs, FieldError{Loc: []string{"body", "title"}, Msg: "Title exceeds 200 characters", Type: "value_error"})
		}
	}
	if u.Description != nil && utf8.RuneCountInString(*u.Description) > MaxDescriptionLen {
		errs = append(errs, FieldError{Loc: []string{"body", "description"}, Msg: "Description exceeds 1000 characters", Type: "value_error"})
	}
	return errs
}

// StatusUpdate is the request body for PATCH /tasks/{id}/status.
type StatusUpdate struct {
	Status TaskStatus `json:"status"`
}

// Validate checks the status enum.
func (s *StatusUpdate) Validate() ValidationErrors {
	if !s.Status.Valid() {
		return ValidationErrors{{Loc: []string{"body", "status"}, Msg: "Status must be 'Complete' or 'Incomplete'", Type: "value_error"}}
	}
	return nil
}

// RegisterResponse is the 201 body for POST /register.
type RegisterResponse struct {
	ID          int       `json:"id"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
}

// LoginResponse is the 200 body for POST /login.
type LoginResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TaskList is the 200 body for GET /tasks. Total counts all of the
// caller's tasks, not just the returned page.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// FieldError is one entry of a validation error detail list.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrors is the detail payload of a 400 response. It implements
// error so services can return it through a plain error value.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	return "request validation failed"
}
