package store

import (
	"context"

	"github.com/nhle/chckd/internal/model"
)

// Kind names a persistence backend.
type Kind string

const (
	KindIndexed Kind = "indexed"
	KindFlat    Kind = "flat"
)

// ChecklistScope selects which checklists Tx.Checklists returns.
type ChecklistScope struct {
	// GroupID restricts the result to one group.
	GroupID *int64

	// Ungrouped restricts the result to checklists outside any group.
	Ungrouped bool
}

// AllChecklists matches every checklist.
var AllChecklists = ChecklistScope{}

// InGroup matches the checklists of one group.
func InGroup(groupID int64) ChecklistScope { return ChecklistScope{GroupID: &groupID} }

// UngroupedChecklists matches checklists without a group.
var UngroupedChecklists = ChecklistScope{Ungrouped: true}

// Matches reports whether c falls in the scope.
func (s ChecklistScope) Matches(c model.Checklist) bool {
	switch {
	case s.GroupID != nil:
		return c.GroupID != nil && *c.GroupID == *s.GroupID
	case s.Ungrouped:
		return c.GroupID == nil
	default:
		return true
	}
}

// Backend is a persistence engine. The Store runs every operation through
// View or Update so that each logical operation is one unit of work:
// one transaction for the indexed engine, one read and at most one write for
// the flat store.
type Backend interface {
	Kind() Kind

	// View runs fn against a read-only snapshot.
	View(ctx context.Context, fn func(tx Tx) error) error

	// Update runs fn and commits its changes only if fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}

// Tx holds the record primitives of one unit of work. Get-style methods
// return nil when the record does not exist. Save-style methods return
// ErrNotFound when it does not. Listings come back in storage order; the
// Store sorts them.
type Tx interface {
	// === Groups ===

	Groups(ctx context.Context) ([]model.ChecklistGroup, error)
	Group(ctx context.Context, id int64) (*model.ChecklistGroup, error)
	InsertGroup(ctx context.Context, g *model.ChecklistGroup) error
	SaveGroup(ctx context.Context, g model.ChecklistGroup) error
	DeleteGroup(ctx context.Context, id int64) error

	// === Checklists ===

	Checklists(ctx context.Context, scope ChecklistScope) ([]model.Checklist, error)
	Checklist(ctx context.Context, id int64) (*model.Checklist, error)
	InsertChecklist(ctx context.Context, c *model.Checklist) error
	SaveChecklist(ctx context.Context, c model.Checklist) error
	DeleteChecklist(ctx context.Context, id int64) error

	// UnorderedChecklistIDs lists checklists persisted before sort orders
	// existed, in id order.
	UnorderedChecklistIDs(ctx context.Context) ([]int64, error)

	// === Items ===

	Items(ctx context.Context, checklistID int64) ([]model.ChecklistItem, error)
	Item(ctx context.Context, id int64) (*model.ChecklistItem, error)
	InsertItem(ctx context.Context, it *model.ChecklistItem) error
	SaveItem(ctx context.Context, it model.ChecklistItem) error
	DeleteItem(ctx context.Context, id int64) error
	DeleteItemsByChecklist(ctx context.Context, checklistID int64) (int, error)
}
