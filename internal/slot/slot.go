// Package slot provides single-key value stores that hold the flat-store
// document. A slot keeps exactly one opaque byte payload.
package slot

import (
	"context"
	"errors"
	"fmt"
)

// ErrQuotaExceeded is returned when a payload is larger than the slot allows.
var ErrQuotaExceeded = errors.New("slot quota exceeded")

// Slot is a single-value key-value cell.
type Slot interface {
	// Load returns the stored payload, or nil when nothing was stored yet.
	Load(ctx context.Context) ([]byte, error)

	// Store replaces the payload. On error the previous payload is kept.
	Store(ctx context.Context, data []byte) error
}

// checkQuota rejects payloads over maxBytes. A zero maxBytes means unlimited.
func checkQuota(data []byte, maxBytes int) error {
	if maxBytes > 0 && len(data) > maxBytes {
		return fmt.Errorf("payload of %d bytes over %d byte limit: %w",
			len(data), maxBytes, ErrQuotaExceeded)
	}
	return nil
}
