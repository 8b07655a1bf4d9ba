package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nhle/chckd/internal/model"
)

// document is the whole flat-store dataset, serialized as one JSON value.
type document struct {
	Checklists           []flatChecklist `json:"checklists"`
	ChecklistItems       []flatItem      `json:"checklistItems"`
	ChecklistGroups      []flatGroup     `json:"checklistGroups"`
	NextChecklistID      int64           `json:"nextChecklistId"`
	NextChecklistItemID  int64           `json:"nextChecklistItemId"`
	NextChecklistGroupID int64           `json:"nextChecklistGroupId"`
}

func emptyDocument() *document {
	return &document{
		Checklists:           []flatChecklist{},
		ChecklistItems:       []flatItem{},
		ChecklistGroups:      []flatGroup{},
		NextChecklistID:      1,
		NextChecklistItemID:  1,
		NextChecklistGroupID: 1,
	}
}

// stamp revives timestamps stored as RFC 3339 strings or epoch milliseconds.
// Unreadable values become the zero time rather than failing the document.
type stamp time.Time

func (s stamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(s).UTC().Format(time.RFC3339Nano))
}

func (s *stamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = stamp{}
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			*s = stamp{}
			return nil
		}
		*s = stamp(t.UTC())
		return nil
	}

	var millis int64
	if err := json.Unmarshal(data, &millis); err == nil {
		*s = stamp(time.UnixMilli(millis).UTC())
		return nil
	}

	*s = stamp{}
	return nil
}

type flatGroup struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	SortOrder   int    `json:"sortOrder"`
	CreatedAt   stamp  `json:"createdAt"`
	UpdatedAt   stamp  `json:"updatedAt"`
}

// flatChecklist keeps SortOrder optional so documents written before sort
// orders existed can be detected and soft-migrated.
type flatChecklist struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color,omitempty"`
	SortOrder   *int   `json:"sortOrder,omitempty"`
	GroupID     *int64 `json:"groupId,omitempty"`
	CreatedAt   stamp  `json:"createdAt"`
	UpdatedAt   stamp  `json:"updatedAt"`
}

type flatItem struct {
	ID          int64    `json:"id"`
	ChecklistID int64    `json:"checklistId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	IsDone      bool     `json:"isDone"`
	Icon        string   `json:"icon,omitempty"`
	SubItems    []string `json:"subItems,omitempty"`
	SortOrder   int      `json:"sortOrder"`
	CreatedAt   stamp    `json:"createdAt"`
	UpdatedAt   stamp    `json:"updatedAt"`
}

func (g flatGroup) toModel() model.ChecklistGroup {
	return model.ChecklistGroup{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Icon:        g.Icon,
		Color:       g.Color,
		SortOrder:   g.SortOrder,
		CreatedAt:   time.Time(g.CreatedAt),
		UpdatedAt:   time.Time(g.UpdatedAt),
	}
}

func groupFromModel(g model.ChecklistGroup) flatGroup {
	return flatGroup{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Icon:        g.Icon,
		Color:       g.Color,
		SortOrder:   g.SortOrder,
		CreatedAt:   stamp(g.CreatedAt.UTC()),
		UpdatedAt:   stamp(g.UpdatedAt.UTC()),
	}
}

func (c flatChecklist) toModel() model.Checklist {
	out := model.Checklist{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		CreatedAt:   time.Time(c.CreatedAt),
		UpdatedAt:   time.Time(c.UpdatedAt),
	}
	if c.SortOrder != nil {
		out.SortOrder = *c.SortOrder
	}
	if c.GroupID != nil {
		id := *c.GroupID
		out.GroupID = &id
	}
	return out
}

func checklistFromModel(c model.Checklist) flatChecklist {
	order := c.SortOrder
	out := flatChecklist{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		SortOrder:   &order,
		CreatedAt:   stamp(c.CreatedAt.UTC()),
		UpdatedAt:   stamp(c.UpdatedAt.UTC()),
	}
	if c.GroupID != nil {
		id := *c.GroupID
		out.GroupID = &id
	}
	return out
}

func (it flatItem) toModel() model.ChecklistItem {
	out := model.ChecklistItem{
		ID:          it.ID,
		ChecklistID: it.ChecklistID,
		Title:       it.Title,
		Description: it.Description,
		IsDone:      it.IsDone,
		Icon:        it.Icon,
		SortOrder:   it.SortOrder,
		CreatedAt:   time.Time(it.CreatedAt),
		UpdatedAt:   time.Time(it.UpdatedAt),
	}
	if len(it.SubItems) > 0 {
		out.SubItems = append([]string(nil), it.SubItems...)
	}
	return out
}

func itemFromModel(it model.ChecklistItem) flatItem {
	out := flatItem{
		ID:          it.ID,
		ChecklistID: it.ChecklistID,
		Title:       it.Title,
		Description: it.Description,
		IsDone:      it.IsDone,
		Icon:        it.Icon,
		SortOrder:   it.SortOrder,
		CreatedAt:   stamp(it.CreatedAt.UTC()),
		UpdatedAt:   stamp(it.UpdatedAt.UTC()),
	}
	if len(it.SubItems) > 0 {
		out.SubItems = append([]string(nil), it.SubItems...)
	}
	return out
}

// decodeDocument parses raw into a document, filling in missing lists and
// repairing id counters so they stay ahead of every stored id.
func decodeDocument(raw []byte) (*document, error) {
	doc := emptyDocument()
	if len(bytes.TrimSpace(raw)) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}

	if doc.Checklists == nil {
		doc.Checklists = []flatChecklist{}
	}
	if doc.ChecklistItems == nil {
		doc.ChecklistItems = []flatItem{}
	}
	if doc.ChecklistGroups == nil {
		doc.ChecklistGroups = []flatGroup{}
	}

	for _, c := range doc.Checklists {
		doc.NextChecklistID = max(doc.NextChecklistID, c.ID+1)
	}
	for _, it := range doc.ChecklistItems {
		doc.NextChecklistItemID = max(doc.NextChecklistItemID, it.ID+1)
	}
	for _, g := range doc.ChecklistGroups {
		doc.NextChecklistGroupID = max(doc.NextChecklistGroupID, g.ID+1)
	}
	doc.NextChecklistID = max(doc.NextChecklistID, 1)
	doc.NextChecklistItemID = max(doc.NextChecklistItemID, 1)
	doc.NextChecklistGroupID = max(doc.NextChecklistGroupID, 1)

	return doc, nil
}
