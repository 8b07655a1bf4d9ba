package store

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/slot"
)

// flatKeyringKey names the keyring item holding the flat document.
const flatKeyringKey = "document"

// Open returns a Store wired from configuration: SQLite at the configured
// database path, and the configured flat-store slot as fallback. With
// backend "flat" the indexed engine is never probed.
func Open(cfg model.StorageConfig, logger *slog.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	probe := Probe(ProbeSQLite)
	if cfg.Backend == model.BackendFlat {
		probe = Unavailable
	}

	engines := Engines{
		Probe: probe,
		OpenIndexed: func(ctx context.Context) (Backend, error) {
			db, err := NewSQLiteStore(cfg.DatabasePath())
			if err != nil {
				return nil, err
			}
			return db, nil
		},
		OpenFlat: func(ctx context.Context) (Backend, error) {
			s, err := openSlot(cfg)
			if err != nil {
				return nil, err
			}
			return NewFlatStore(s, logger), nil
		},
	}

	return New(engines, append([]Option{WithLogger(logger)}, opts...)...)
}

func openSlot(cfg model.StorageConfig) (slot.Slot, error) {
	if cfg.Flat.Slot == model.SlotKeyring {
		return slot.OpenKeyring(filepath.Join(cfg.DataDir, "keyring"), flatKeyringKey, cfg.Flat.MaxBytes)
	}
	return slot.NewFile(afero.NewOsFs(), cfg.FlatPath(), cfg.Flat.MaxBytes), nil
}
