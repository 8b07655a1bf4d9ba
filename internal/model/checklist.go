package model

import "time"

// ChecklistGroup is a named folder holding zero or more checklists.
// Groups share one ordering namespace with ungrouped checklists.
type ChecklistGroup struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Icon        string    `json:"icon,omitempty" db:"icon"`
	Color       string    `json:"color,omitempty" db:"color"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Checklist is a named collection of items, optionally inside a group.
type Checklist struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Icon        string    `json:"icon,omitempty" db:"icon"`
	Color       string    `json:"color,omitempty" db:"color"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	GroupID     *int64    `json:"groupId,omitempty" db:"group_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Items is populated by the grouped and ungrouped listings only.
	Items []ChecklistItem `json:"items,omitempty" db:"-"`
}

// IsGrouped reports whether the checklist lives inside a group.
func (c Checklist) IsGrouped() bool { return c.GroupID != nil }

// ChecklistItem is a single checkable entry. Its lifecycle is bound to the
// owning checklist.
type ChecklistItem struct {
	ID          int64     `json:"id" db:"id"`
	ChecklistID int64     `json:"checklistId" db:"checklist_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	IsDone      bool      `json:"isDone" db:"is_done"`
	Icon        string    `json:"icon,omitempty" db:"icon"`
	SubItems    []string  `json:"subItems,omitempty" db:"-"`
	SortOrder   int       `json:"sortOrder" db:"sort_order"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
