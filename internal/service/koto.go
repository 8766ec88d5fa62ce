package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/kotodex/internal/models"
	"github.com/atinyakov/kotodex/internal/repository"
	"github.com/google/uuid"
)

// KotoRepository defines the persistence operations required by the
// vocabulary entry service.
type KotoRepository interface {
	// KotobaExists reports whether the headword exists anywhere in the
	// store, optionally ignoring the entry excludeID.
	KotobaExists(ctx context.Context, kotoba, excludeID string) (bool, error)
	// CreateKoto persists a new entry.
	CreateKoto(ctx context.Context, koto *models.Koto) error
	// UpdateKoto replaces all mutable fields of an entry, scoped to its owner.
	UpdateKoto(ctx context.Context, koto *models.Koto) (*models.Koto, error)
	// GetKotosByUser returns the owner's entries, pinned first.
	GetKotosByUser(ctx context.Context, userID string) ([]models.Koto, error)
	// DeleteKoto removes an entry, scoped to its owner.
	DeleteKoto(ctx context.Context, userID, id string) error
	// SetKotoPinned updates only the pinned flag, scoped to the owner.
	SetKotoPinned(ctx context.Context, userID, id string, pinned bool) (*models.Koto, error)
}

// KotoInput carries the mutable fields of an entry as supplied by a request.
// Absent optional fields arrive as zero values and stay that way: edits are a
// full replace, not a merge.
type KotoInput struct {
	Kotoba   string
	Tags     []string
	Lectura  string
	Frase    string
	Español  string
	Ingles   string
	IsPinned bool
}

// validate enforces the required fields in their documented order: headword
// first, then example sentence.
func (in *KotoInput) validate() error {
	if in.Kotoba == "" {
		return &ValidationError{Message: "at least one kanji or word is required"}
	}
	if in.Frase == "" {
		return &ValidationError{Message: "an example sentence is required"}
	}
	return nil
}

// KotoService implements the owned vocabulary collection on top of a
// KotoRepository.
type KotoService struct {
	repo KotoRepository
}

// NewKotoService constructs a new KotoService using the provided repository.
func NewKotoService(repo KotoRepository) *KotoService {
	return &KotoService{repo: repo}
}

// Create validates the input, enforces global headword uniqueness and
// persists a new entry owned by ownerID. New entries are never pinned.
func (s *KotoService) Create(ctx context.Context, ownerID string, in KotoInput) (*models.Koto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.KotobaExists(ctx, in.Kotoba, "")
	if err != nil {
		return nil, fmt.Errorf("check kotoba: %w", err)
	}
	if exists {
		return nil, ErrDuplicateKotoba
	}

	koto := &models.Koto{
		ID:        uuid.NewString(),
		Kotoba:    in.Kotoba,
		Tags:      in.Tags,
		Lectura:   in.Lectura,
		Frase:     in.Frase,
		Español:   in.Español,
		Ingles:    in.Ingles,
		UserID:    ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if koto.Tags == nil {
		koto.Tags = []string{}
	}

	if err := s.repo.CreateKoto(ctx, koto); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateKotoba
		}
		return nil, fmt.Errorf("create koto: %w", err)
	}
	return koto, nil
}

// Update replaces every mutable field of the entry with the supplied values.
// The duplicate check excludes the entry itself, and the lookup is scoped to
// ownerID, so foreign entries are indistinguishable from missing ones.
func (s *KotoService) Update(ctx context.Context, ownerID, id string, in KotoInput) (*models.Koto, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.KotobaExists(ctx, in.Kotoba, id)
	if err != nil {
		return nil, fmt.Errorf("check kotoba: %w", err)
	}
	if exists {
		return nil, ErrDuplicateKotoba
	}

	now := time.Now().UTC()
	koto := &models.Koto{
		ID:       id,
		Kotoba:   in.Kotoba,
		Tags:     in.Tags,
		Lectura:  in.Lectura,
		Frase:    in.Frase,
		Español:  in.Español,
		Ingles:   in.Ingles,
		IsPinned: in.IsPinned,
		UserID:   ownerID,
		OnEdit:   &now,
	}
	if koto.Tags == nil {
		koto.Tags = []string{}
	}

	updated, err := s.repo.UpdateKoto(ctx, koto)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrKotoNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrDuplicateKotoba
		}
		return nil, fmt.Errorf("update koto: %w", err)
	}
	return updated, nil
}

// ListByOwner returns all of ownerID's entries, pinned entries first.
func (s *KotoService) ListByOwner(ctx context.Context, ownerID string) ([]models.Koto, error) {
	return s.repo.GetKotosByUser(ctx, ownerID)
}

// Delete removes the entry, scoped to ownerID.
func (s *KotoService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.DeleteKoto(ctx, ownerID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrKotoNotFound
		}
		return fmt.Errorf("delete koto: %w", err)
	}
	return nil
}

// SetPinned toggles only the pinned flag of the entry, scoped to ownerID.
func (s *KotoService) SetPinned(ctx context.Context, ownerID, id string, pinned bool) (*models.Koto, error) {
	koto, err := s.repo.SetKotoPinned(ctx, ownerID, id, pinned)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrKotoNotFound
		}
		return nil, fmt.Errorf("set pinned: %w", err)
	}
	return koto, nil
}
