package store

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/nhle/chckd/internal/model"
)

// Engines tells a Store how to reach its two backends.
type Engines struct {
	// Probe reports whether the indexed engine is usable. A nil Probe
	// treats the engine as available whenever OpenIndexed is set.
	Probe Probe

	// OpenIndexed opens the preferred backend. May be nil.
	OpenIndexed func(ctx context.Context) (Backend, error)

	// OpenFlat opens the fallback backend.
	OpenFlat func(ctx context.Context) (Backend, error)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for backend selection and recovery events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for createdAt/updatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// backendState is the outcome of initialization: which backend serves
// requests, or why none does.
type backendState struct {
	backend Backend
	kind    Kind
	err     error
}

// Store is the single entry point of the persistence layer. It picks a
// backend once, lazily, and runs every operation against it through the
// backend-neutral Tx contract, so cascade and ordering rules are written
// once for both engines.
type Store struct {
	engines Engines
	logger  *slog.Logger
	now     func() time.Time

	once  sync.Once
	state backendState
}

// New returns a Store that initializes on first use.
func New(engines Engines, opts ...Option) *Store {
	s := &Store{
		engines: engines,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize selects the backend. It runs at most once; every other method
// calls it and waits for the same result. A failing indexed engine is not an
// error: the Store falls back to the flat store for the rest of its life.
func (s *Store) Initialize(ctx context.Context) error {
	s.once.Do(func() {
		s.state = s.initialize(context.WithoutCancel(ctx))
	})
	return s.state.err
}

func (s *Store) initialize(ctx context.Context) backendState {
	if s.engines.OpenIndexed != nil {
		if s.engines.Probe == nil || s.engines.Probe() {
			b, err := s.engines.OpenIndexed(ctx)
			if err == nil {
				return s.activate(ctx, b)
			}
			s.logger.Warn("indexed engine failed to open, falling back to flat store",
				"error", fmt.Errorf("%w: %w", ErrEngineOpen, err))
		} else {
			s.logger.Warn("indexed engine unavailable, falling back to flat store")
		}
	}

	if s.engines.OpenFlat == nil {
		return backendState{err: fmt.Errorf("%w: no flat store configured", ErrStorageUnavailable)}
	}
	b, err := s.engines.OpenFlat(ctx)
	if err != nil {
		return backendState{err: fmt.Errorf("%w: opening flat store: %w", ErrStorageUnavailable, err)}
	}
	return s.activate(ctx, b)
}

func (s *Store) activate(ctx context.Context, b Backend) backendState {
	s.logger.Info("persistence backend selected", "backend", string(b.Kind()))

	n, err := s.migrateSortOrders(ctx, b)
	if err != nil {
		s.logger.Warn("assigning missing checklist sort orders failed", "error", err)
	} else if n > 0 {
		s.logger.Info("assigned missing checklist sort orders", "count", n)
	}
	return backendState{backend: b, kind: b.Kind()}
}

// Kind reports which backend serves requests.
func (s *Store) Kind(ctx context.Context) (Kind, error) {
	if err := s.Initialize(ctx); err != nil {
		return "", err
	}
	return s.state.kind, nil
}

// Close releases the active backend. The Store is unusable afterwards.
func (s *Store) Close() error {
	s.once.Do(func() {
		s.state = backendState{err: fmt.Errorf("%w: store closed", ErrStorageUnavailable)}
	})
	if s.state.backend == nil {
		return nil
	}
	b := s.state.backend
	s.state = backendState{err: fmt.Errorf("%w: store closed", ErrStorageUnavailable)}
	return b.Close()
}

func (s *Store) view(ctx context.Context, fn func(tx Tx) error) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	return s.state.backend.View(ctx, fn)
}

func (s *Store) update(ctx context.Context, fn func(tx Tx) error) error {
	if err := s.Initialize(ctx); err != nil {
		return err
	}
	return s.state.backend.Update(ctx, fn)
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func validateTitle(kind, title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%s title must not be empty: %w", kind, ErrInvalidInput)
	}
	return nil
}

// byOrder sorts by sort order, breaking ties by id so both backends agree.
func byOrder(aOrder, bOrder int, aID, bID int64) int {
	if c := cmp.Compare(aOrder, bOrder); c != 0 {
		return c
	}
	return cmp.Compare(aID, bID)
}

func sortGroups(groups []model.ChecklistGroup) {
	slices.SortStableFunc(groups, func(a, b model.ChecklistGroup) int {
		return byOrder(a.SortOrder, b.SortOrder, a.ID, b.ID)
	})
}

func sortChecklists(checklists []model.Checklist) {
	slices.SortStableFunc(checklists, func(a, b model.Checklist) int {
		return byOrder(a.SortOrder, b.SortOrder, a.ID, b.ID)
	})
}

func sortItems(items []model.ChecklistItem) {
	slices.SortStableFunc(items, func(a, b model.ChecklistItem) int {
		return byOrder(a.SortOrder, b.SortOrder, a.ID, b.ID)
	})
}

// nextRootOrder returns 1 + the highest sort order shared by groups and
// ungrouped checklists, or 0 when that namespace is empty.
func nextRootOrder(ctx context.Context, tx Tx) (int, error) {
	groups, err := tx.Groups(ctx)
	if err != nil {
		return 0, err
	}
	ungrouped, err := tx.Checklists(ctx, UngroupedChecklists)
	if err != nil {
		return 0, err
	}

	highest := -1
	for _, g := range groups {
		highest = max(highest, g.SortOrder)
	}
	for _, c := range ungrouped {
		highest = max(highest, c.SortOrder)
	}
	return highest + 1, nil
}

// nextGroupOrder returns 1 + the highest sort order among the checklists of
// one group, or 0 when the group is empty.
func nextGroupOrder(ctx context.Context, tx Tx, groupID int64) (int, error) {
	checklists, err := tx.Checklists(ctx, InGroup(groupID))
	if err != nil {
		return 0, err
	}
	highest := -1
	for _, c := range checklists {
		highest = max(highest, c.SortOrder)
	}
	return highest + 1, nil
}
