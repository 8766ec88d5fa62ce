// Package models defines the core data structures for users and vocabulary entries.
package models

import "time"

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string `json:"id"`
	// FullName is the display name supplied at registration.
	FullName string `json:"fullName"`
	// Email is the unique login email.
	Email string `json:"email"`
	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized into responses.
	PasswordHash string `json:"-"`
	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createOn"`
}

// Koto is a single vocabulary entry owned by one user.
//
// The JSON tags follow the public wire format of the API, so a Koto can be
// embedded directly in response bodies.
type Koto struct {
	// ID is the unique identifier for the entry.
	ID string `json:"_id"`
	// Kotoba is the headword (kanji or word). Unique across the whole store.
	Kotoba string `json:"kotoba"`
	// Tags are free-form labels attached to the entry.
	Tags []string `json:"tags"`
	// Lectura is the reading (kana, romaji, ...).
	Lectura string `json:"lectura"`
	// Frase is the example sentence.
	Frase string `json:"frase"`
	// Español is the Spanish translation.
	Español string `json:"español"`
	// Ingles is the English translation.
	Ingles string `json:"ingles"`
	// IsPinned promotes the entry to the front of listings.
	IsPinned bool `json:"isPinned"`
	// UserID is the identifier of the owning user, set at creation.
	UserID string `json:"userId"`
	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"createOn"`
	// OnEdit is the time of the last full edit, nil if never edited.
	OnEdit *time.Time `json:"onEdit,omitempty"`
	// OnPinKoto is the time of the last pin-state change, nil if never toggled.
	OnPinKoto *time.Time `json:"onPinKoto,omitempty"`
}
