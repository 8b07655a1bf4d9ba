package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/slot"
)

// FlatStore is the fallback backend. It keeps the whole dataset as one JSON
// document in a key-value slot: every unit of work reads the document once
// and writes it back at most once.
type FlatStore struct {
	slot   slot.Slot
	logger *slog.Logger

	// mu serializes read-modify-write cycles.
	mu sync.Mutex
}

// NewFlatStore returns a flat store persisting into s.
func NewFlatStore(s slot.Slot, logger *slog.Logger) *FlatStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FlatStore{slot: s, logger: logger}
}

// Kind reports KindFlat.
func (f *FlatStore) Kind() Kind { return KindFlat }

// Close is a no-op; slots hold no open handles.
func (f *FlatStore) Close() error { return nil }

// load reads and decodes the document. A document that fails to parse is
// replaced by an empty one.
func (f *FlatStore) load(ctx context.Context) (*document, error) {
	raw, err := f.slot.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		f.logger.Warn("discarding unreadable flat-store document", "error", err, "bytes", len(raw))
		return emptyDocument(), nil
	}
	return doc, nil
}

func (f *FlatStore) save(ctx context.Context, doc *document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling flat-store document: %w", err)
	}
	if err := f.slot.Store(ctx, data); err != nil {
		return classifyWriteError(err)
	}
	return nil
}

// View runs fn against a freshly loaded document.
func (f *FlatStore) View(ctx context.Context, fn func(tx Tx) error) error {
	doc, err := f.load(ctx)
	if err != nil {
		return err
	}
	return fn(&flatTx{doc: doc})
}

// Update loads the document, lets fn mutate it in memory and writes it back
// once, only if fn succeeded and changed something.
func (f *FlatStore) Update(ctx context.Context, fn func(tx Tx) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc, err := f.load(ctx)
	if err != nil {
		return err
	}

	tx := &flatTx{doc: doc}
	if err := fn(tx); err != nil {
		return err
	}
	if !tx.dirty {
		return nil
	}
	return f.save(ctx, doc)
}

// flatTx implements Tx over an in-memory document.
type flatTx struct {
	doc   *document
	dirty bool
}

// === Groups ===

func (t *flatTx) Groups(ctx context.Context) ([]model.ChecklistGroup, error) {
	groups := make([]model.ChecklistGroup, 0, len(t.doc.ChecklistGroups))
	for _, g := range t.doc.ChecklistGroups {
		groups = append(groups, g.toModel())
	}
	return groups, nil
}

func (t *flatTx) Group(ctx context.Context, id int64) (*model.ChecklistGroup, error) {
	i := slices.IndexFunc(t.doc.ChecklistGroups, func(g flatGroup) bool { return g.ID == id })
	if i < 0 {
		return nil, nil
	}
	g := t.doc.ChecklistGroups[i].toModel()
	return &g, nil
}

func (t *flatTx) InsertGroup(ctx context.Context, g *model.ChecklistGroup) error {
	g.ID = t.doc.NextChecklistGroupID
	t.doc.NextChecklistGroupID++
	t.doc.ChecklistGroups = append(t.doc.ChecklistGroups, groupFromModel(*g))
	t.dirty = true
	return nil
}

func (t *flatTx) SaveGroup(ctx context.Context, g model.ChecklistGroup) error {
	i := slices.IndexFunc(t.doc.ChecklistGroups, func(r flatGroup) bool { return r.ID == g.ID })
	if i < 0 {
		return fmt.Errorf("group %d: %w", g.ID, ErrNotFound)
	}
	t.doc.ChecklistGroups[i] = groupFromModel(g)
	t.dirty = true
	return nil
}

func (t *flatTx) DeleteGroup(ctx context.Context, id int64) error {
	before := len(t.doc.ChecklistGroups)
	t.doc.ChecklistGroups = slices.DeleteFunc(t.doc.ChecklistGroups, func(g flatGroup) bool { return g.ID == id })
	t.dirty = t.dirty || len(t.doc.ChecklistGroups) != before
	return nil
}

// === Checklists ===

func (t *flatTx) Checklists(ctx context.Context, scope ChecklistScope) ([]model.Checklist, error) {
	var checklists []model.Checklist
	for _, r := range t.doc.Checklists {
		c := r.toModel()
		if scope.Matches(c) {
			checklists = append(checklists, c)
		}
	}
	return checklists, nil
}

func (t *flatTx) Checklist(ctx context.Context, id int64) (*model.Checklist, error) {
	i := slices.IndexFunc(t.doc.Checklists, func(c flatChecklist) bool { return c.ID == id })
	if i < 0 {
		return nil, nil
	}
	c := t.doc.Checklists[i].toModel()
	return &c, nil
}

func (t *flatTx) InsertChecklist(ctx context.Context, c *model.Checklist) error {
	c.ID = t.doc.NextChecklistID
	t.doc.NextChecklistID++
	t.doc.Checklists = append(t.doc.Checklists, checklistFromModel(*c))
	t.dirty = true
	return nil
}

func (t *flatTx) SaveChecklist(ctx context.Context, c model.Checklist) error {
	i := slices.IndexFunc(t.doc.Checklists, func(r flatChecklist) bool { return r.ID == c.ID })
	if i < 0 {
		return fmt.Errorf("checklist %d: %w", c.ID, ErrNotFound)
	}
	t.doc.Checklists[i] = checklistFromModel(c)
	t.dirty = true
	return nil
}

func (t *flatTx) DeleteChecklist(ctx context.Context, id int64) error {
	before := len(t.doc.Checklists)
	t.doc.Checklists = slices.DeleteFunc(t.doc.Checklists, func(c flatChecklist) bool { return c.ID == id })
	t.dirty = t.dirty || len(t.doc.Checklists) != before
	return nil
}

func (t *flatTx) UnorderedChecklistIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for _, c := range t.doc.Checklists {
		if c.SortOrder == nil {
			ids = append(ids, c.ID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// === Items ===

func (t *flatTx) Items(ctx context.Context, checklistID int64) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	for _, it := range t.doc.ChecklistItems {
		if it.ChecklistID == checklistID {
			items = append(items, it.toModel())
		}
	}
	return items, nil
}

func (t *flatTx) Item(ctx context.Context, id int64) (*model.ChecklistItem, error) {
	i := slices.IndexFunc(t.doc.ChecklistItems, func(it flatItem) bool { return it.ID == id })
	if i < 0 {
		return nil, nil
	}
	it := t.doc.ChecklistItems[i].toModel()
	return &it, nil
}

func (t *flatTx) InsertItem(ctx context.Context, it *model.ChecklistItem) error {
	it.ID = t.doc.NextChecklistItemID
	t.doc.NextChecklistItemID++
	t.doc.ChecklistItems = append(t.doc.ChecklistItems, itemFromModel(*it))
	t.dirty = true
	return nil
}

func (t *flatTx) SaveItem(ctx context.Context, it model.ChecklistItem) error {
	i := slices.IndexFunc(t.doc.ChecklistItems, func(r flatItem) bool { return r.ID == it.ID })
	if i < 0 {
		return fmt.Errorf("item %d: %w", it.ID, ErrNotFound)
	}
	t.doc.ChecklistItems[i] = itemFromModel(it)
	t.dirty = true
	return nil
}

func (t *flatTx) DeleteItem(ctx context.Context, id int64) error {
	before := len(t.doc.ChecklistItems)
	t.doc.ChecklistItems = slices.DeleteFunc(t.doc.ChecklistItems, func(it flatItem) bool { return it.ID == id })
	t.dirty = t.dirty || len(t.doc.ChecklistItems) != before
	return nil
}

func (t *flatTx) DeleteItemsByChecklist(ctx context.Context, checklistID int64) (int, error) {
	before := len(t.doc.ChecklistItems)
	t.doc.ChecklistItems = slices.DeleteFunc(t.doc.ChecklistItems, func(it flatItem) bool {
		return it.ChecklistID == checklistID
	})
	removed := before - len(t.doc.ChecklistItems)
	t.dirty = t.dirty || removed > 0
	return removed, nil
}
