package services

import (
	"errors"
	"fmt"
	"log"

	"job-board-api/internal/storage"
)

// mapRepoError maps storage errors to service errors. The operation string
// stays in the server logs; the returned errors only carry messages that are
// safe to surface to API clients.
func mapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, storage.ErrDuplicateApplication) {
		return fmt.Errorf("%w: you have already applied for this job", ErrConflict)
	}
	if errors.Is(err, storage.ErrDuplicateEmail) {
		return fmt.Errorf("%w: email is already registered", ErrConflict)
	}
	if errors.Is(err, storage.ErrStaleVersion) {
		return fmt.Errorf("%w: the resource was modified by another request", ErrConflict)
	}
	if errors.Is(err, storage.ErrConflict) {
		return ErrConflict
	}
	// Log other unexpected errors
	log.Printf("Unexpected repository error during %s: %v", operation, err)
	return fmt.Errorf("internal error during %s: %w", operation, err)
}
