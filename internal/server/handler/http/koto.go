package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/atinyakov/kotodex/internal/middleware"
	"github.com/atinyakov/kotodex/internal/models"
	"github.com/atinyakov/kotodex/internal/service"
	"github.com/go-chi/chi/v5"
)

// KotoService defines the vocabulary collection operations required by the
// HTTP handlers. Every call is scoped to the authenticated owner.
type KotoService interface {
	Create(ctx context.Context, ownerID string, in service.KotoInput) (*models.Koto, error)
	Update(ctx context.Context, ownerID, id string, in service.KotoInput) (*models.Koto, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Koto, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetPinned(ctx context.Context, ownerID, id string, pinned bool) (*models.Koto, error)
}

// KotoHandler handles HTTP requests for the vocabulary entry endpoints.
type KotoHandler struct {
	KotoService KotoService
}

// kotoRequest represents the JSON payload for adding or editing an entry.
// Optional fields left out of the body keep their zero values; edits replace
// the whole entry with exactly these values.
type kotoRequest struct {
	Kotoba   string   `json:"kotoba"`
	Tags     []string `json:"tags"`
	Lectura  string   `json:"lectura"`
	Frase    string   `json:"frase"`
	Español  string   `json:"español"`
	Ingles   string   `json:"ingles"`
	IsPinned bool     `json:"isPinned"`
}

func (req *kotoRequest) input() service.KotoInput {
	return service.KotoInput{
		Kotoba:   req.Kotoba,
		Tags:     req.Tags,
		Lectura:  req.Lectura,
		Frase:    req.Frase,
		Español:  req.Español,
		Ingles:   req.Ingles,
		IsPinned: req.IsPinned,
	}
}

// writeKotoError maps the koto service error taxonomy onto status codes.
func writeKotoError(w http.ResponseWriter, err error) {
	if ve, ok := service.AsValidation(err); ok {
		writeError(w, http.StatusBadRequest, ve.Message)
		return
	}
	switch {
	case errors.Is(err, service.ErrDuplicateKotoba):
		writeError(w, http.StatusBadRequest, "a word or kanji with that name already exists")
	case errors.Is(err, service.ErrKotoNotFound):
		writeError(w, http.StatusNotFound, "kotoba not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Add handles POST /add-koto. New entries always start unpinned.
func (h *KotoHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req kotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	koto, err := h.KotoService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.input())
	if err != nil {
		writeKotoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"koto":    koto,
		"message": "kotoba added successfully",
	})
}

// Edit handles PUT /edit-koto/{id} with full-replace semantics.
func (h *KotoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req kotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	koto, err := h.KotoService.Update(r.Context(), middleware.GetUserIDFromContext(r.Context()), id, req.input())
	if err != nil {
		writeKotoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"koto":    koto,
		"message": "kotoba updated successfully",
	})
}

// GetAll handles GET /get-all-kotos/, returning the owner's entries with
// pinned ones first.
func (h *KotoHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	kotobas, err := h.KotoService.ListByOwner(r.Context(), middleware.GetUserIDFromContext(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"kotobas": kotobas,
		"message": "all kotobas retrieved successfully",
	})
}

// Delete handles DELETE /delete-koto/{kotoId}. A foreign entry looks exactly
// like a missing one.
func (h *KotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "kotoId")

	if err := h.KotoService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), id); err != nil {
		writeKotoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"message": "kotoba deleted successfully",
	})
}

// pinRequest represents the JSON payload for the pin-toggle endpoint.
type pinRequest struct {
	IsPinned bool `json:"isPinned"`
}

// UpdatePinned handles PUT /update-koto-pinned/{kotoId}, mutating only the
// pinned flag.
func (h *KotoHandler) UpdatePinned(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "kotoId")

	var req pinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	koto, err := h.KotoService.SetPinned(r.Context(), middleware.GetUserIDFromContext(r.Context()), id, req.IsPinned)
	if err != nil {
		writeKotoError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"error":   false,
		"koto":    koto,
		"message": "koto updated successfully",
	})
}
