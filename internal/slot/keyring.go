package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

// ServiceName is the keyring service the flat document is filed under.
const ServiceName = "chckd"

// Keyring keeps the payload as one item of an OS keyring (or the keyring
// library's encrypted file backend).
type Keyring struct {
	ring     keyring.Keyring
	key      string
	maxBytes int
}

// NewKeyring wraps an opened keyring.
func NewKeyring(ring keyring.Keyring, key string, maxBytes int) *Keyring {
	return &Keyring{ring: ring, key: key, maxBytes: maxBytes}
}

// OpenKeyring opens the system keyring, preferring native backends and
// falling back to an encrypted file under fileDir.
func OpenKeyring(fileDir, key string, maxBytes int) (*Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: ServiceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("chckd-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewKeyring(ring, key, maxBytes), nil
}

// Load returns the stored item data; a missing item yields nil.
func (k *Keyring) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := k.ring.Get(k.key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting keyring item %q: %w", k.key, err)
	}
	return item.Data, nil
}

// Store replaces the item data.
func (k *Keyring) Store(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkQuota(data, k.maxBytes); err != nil {
		return err
	}
	err := k.ring.Set(keyring.Item{
		Key:         k.key,
		Data:        data,
		Label:       "chckd checklists",
		Description: "flat-store checklist document",
	})
	if err != nil {
		return fmt.Errorf("setting keyring item %q: %w", k.key, err)
	}
	return nil
}
