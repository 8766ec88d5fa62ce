// Package http provides the HTTP handlers and routing for the kotodex API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/atinyakov/kotodex/internal/middleware"
	"github.com/atinyakov/kotodex/internal/models"
	"github.com/atinyakov/kotodex/internal/service"
)

// AuthService defines the account operations required by the HTTP handlers.
type AuthService interface {
	// Register creates a new user from the raw registration fields.
	Register(ctx context.Context, fullName, email, password string) (*models.User, error)
	// Authenticate verifies an email/password pair.
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	// GetByID fetches a user by identifier.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenIssuer produces signed session tokens for a user identifier.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthHandler handles HTTP requests for registration, login and the user
// profile.
type AuthHandler struct {
	// AuthService performs the underlying account operations.
	AuthService AuthService
	// Tokens issues session tokens on successful registration or login.
	Tokens TokenIssuer
}

// registerRequest represents the JSON payload for account creation.
type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest represents the JSON payload for login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userPayload is the user object embedded in registration and login responses.
// It never carries the password hash.
type userPayload struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// CreateAccount handles POST /create-account.
// It validates the three fields, rejects duplicate emails and responds with
// the created user and a fresh access token.
func (h *AuthHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.AuthService.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if ve, ok := service.AsValidation(err); ok {
			writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		if errors.Is(err, service.ErrDuplicateEmail) {
			writeError(w, http.StatusBadRequest, "user already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	accessToken, err := h.Tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"error":       false,
		"user":        userPayload{ID: user.ID, FullName: user.FullName, Email: user.Email},
		"accessToken": accessToken,
		"message":     "registration successful",
	})
}

// Login handles POST /login.
// Missing fields, unknown emails and bad passwords all map to 400 so the
// endpoint does not distinguish which part failed beyond the message.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.AuthService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusBadRequest, "user not found")
		case errors.Is(err, service.ErrInvalidCredential):
			writeError(w, http.StatusBadRequest, "invalid credentials")
		default:
			if ve, ok := service.AsValidation(err); ok {
				writeError(w, http.StatusBadRequest, ve.Message)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	accessToken, err := h.Tokens.Issue(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":       false,
		"message":     "login successful",
		"user":        userPayload{ID: user.ID, FullName: user.FullName, Email: user.Email},
		"accessToken": accessToken,
	})
}

// profilePayload is the user object returned by GET /get-user.
type profilePayload struct {
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	ID        string    `json:"_id"`
	CreatedAt time.Time `json:"createOn"`
}

// GetUser handles GET /get-user.
// The identity comes from the verified token; if the user record no longer
// resolves the response is a bare 401.
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.AuthService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": profilePayload{
			FullName:  user.FullName,
			Email:     user.Email,
			ID:        user.ID,
			CreatedAt: user.CreatedAt,
		},
		"message": "",
	})
}
