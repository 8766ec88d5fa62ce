package service

import "errors"

var (
	// ErrDuplicateEmail is returned when a registration collides with an
	// existing account's email.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredential is returned when the password does not match the
	// stored hash.
	ErrInvalidCredential = errors.New("invalid credentials")
	// ErrDuplicateKotoba is returned when a headword collides with an
	// existing entry, regardless of owner.
	ErrDuplicateKotoba = errors.New("a word or kanji with that name already exists")
	// ErrKotoNotFound is returned when no entry matches both the id and the
	// requesting owner.
	ErrKotoNotFound = errors.New("koto not found")
)

// ValidationError reports a missing or empty required field. The message is
// safe to show to the caller.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AsValidation reports whether err is a ValidationError and returns it.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
