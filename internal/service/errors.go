package service

import (
	"errors"
	"fmt"
	"strings"
)

// Base error kinds. The HTTP layer maps them to status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrPatientNotFound  = fmt.Errorf("patient %w", ErrNotFound)
	ErrDocumentNotFound = fmt.Errorf("document %w", ErrNotFound)
	ErrEntryNotFound    = fmt.Errorf("waiting room entry %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrPatientExists  = fmt.Errorf("%w: a patient with this name already exists", ErrConflict)
	ErrEmailTaken     = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrAlreadyWaiting = fmt.Errorf("%w: patient is already in the waiting room", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// Mobile upload errors.
var (
	// ErrSessionNotFound is returned for unknown, expired and consumed upload sessions.
	ErrSessionNotFound = errors.New("invalid or expired upload session")
	// ErrInvalidUpload is returned when a request carries no file.
	ErrInvalidUpload = errors.New("no file uploaded")
	// ErrStorageFailure wraps any write or record failure while persisting files.
	ErrStorageFailure = errors.New("storage failure")
)

// requireFields takes name/value pairs and reports the names whose value is blank.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s required", ErrInvalidInput, strings.Join(missing, ", "))
}
