// Package handlers maps HTTP requests onto the auth and task services and
// converts domain errors into the HTTP error taxonomy.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"todo-api-v2/api"
	"todo-api-v2/auth"
	"todo-api-v2/store"
)

// dbTimeout bounds the persistence work done for one request.
const dbTimeout = 3 * time.Second

// Handlers holds the services shared by all request handlers.
type Handlers struct {
	Auth  *auth.Service
	Tasks *store.TaskStore
	Cache *store.TaskCache
}

// Register handles POST /register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, token, err := h.Auth.Register(ctx, creds.Email, creds.Password)
	if err != nil {
		var verrs api.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			respondWithValidationErrors(w, verrs)
		case errors.Is(err, store.ErrDuplicateEmail):
			respondWithError(w, http.StatusConflict, "Email already registered")
		default:
			serverError(w, err)
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, api.RegisterResponse{
		ID:          user.ID,
		Email:       user.Email,
		CreatedAt:   user.CreatedAt,
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Login handles POST /login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), dbTimeout)
	defer cancel()

	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, token, err := h.Auth.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondWithError(w, http.StatusUnauthorized, "Incorrect email or password")
			return
		}
		serverError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, api.LoginResponse{
		ID:          user.ID,
		Email:       user.Email,
		AccessToken: token,
		TokenType:   "bearer",
	})
}
