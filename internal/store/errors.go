package store

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/nhle/chckd/internal/slot"
)

// Error kinds. Callers match them with errors.Is.
var (
	// ErrNotFound is returned when an update targets a missing record, or a
	// record references a missing parent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for records that violate field rules,
	// such as a blank title.
	ErrInvalidInput = errors.New("invalid input")

	// ErrStorageUnavailable is returned when no backend could be initialized,
	// or a flat-store write failed for a reason other than size.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrQuotaExceeded is returned when the flat store rejects a write for
	// size reasons.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrEngineOpen marks a failure to open the indexed engine. The Store
	// recovers from it by falling back to the flat store.
	ErrEngineOpen = errors.New("indexed engine open failed")

	// ErrMalformedData marks a flat document that could not be parsed. The
	// flat store recovers from it by starting from an empty document.
	ErrMalformedData = errors.New("malformed persisted data")
)

// classifyWriteError maps a slot write failure onto ErrQuotaExceeded or
// ErrStorageUnavailable, keeping the original error in the chain.
func classifyWriteError(err error) error {
	if isQuotaError(err) {
		return fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
	}
	return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
}

func isQuotaError(err error) bool {
	if errors.Is(err, slot.ErrQuotaExceeded) || errors.Is(err, syscall.ENOSPC) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "quota")
}
