package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

const itemColumns = "id, checklist_id, title, description, is_done, icon, sub_items, sort_order, created_at, updated_at"

// itemRow mirrors a checklist_items row; sub_items holds a JSON array.
type itemRow struct {
	ID          int64  `db:"id"`
	ChecklistID int64  `db:"checklist_id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	IsDone      bool   `db:"is_done"`
	Icon        string `db:"icon"`
	SubItems    string `db:"sub_items"`
	SortOrder   int    `db:"sort_order"`
	stampColumns
}

func (r itemRow) toModel() (model.ChecklistItem, error) {
	createdAt, updatedAt, err := r.parse()
	if err != nil {
		return model.ChecklistItem{}, fmt.Errorf("item %d: %w", r.ID, err)
	}
	it := model.ChecklistItem{
		ID:          r.ID,
		ChecklistID: r.ChecklistID,
		Title:       r.Title,
		Description: r.Description,
		IsDone:      r.IsDone,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if r.SubItems != "" {
		if err := json.Unmarshal([]byte(r.SubItems), &it.SubItems); err != nil {
			return model.ChecklistItem{}, fmt.Errorf("unmarshaling sub_items of item %d: %w", r.ID, err)
		}
	}
	if len(it.SubItems) == 0 {
		it.SubItems = nil
	}
	return it, nil
}

func marshalSubItems(subItems []string) (string, error) {
	if len(subItems) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(subItems)
	if err != nil {
		return "", fmt.Errorf("marshaling sub_items: %w", err)
	}
	return string(data), nil
}

// Items returns the items of one checklist, using the checklist_id index.
func (t *sqliteTx) Items(ctx context.Context, checklistID int64) ([]model.ChecklistItem, error) {
	items, err := selectModels[model.ChecklistItem, itemRow](ctx, t.tx,
		"SELECT "+itemColumns+" FROM checklist_items WHERE checklist_id = ? ORDER BY sort_order, id",
		checklistID)
	if err != nil {
		return nil, fmt.Errorf("querying items of checklist %d: %w", checklistID, err)
	}
	return items, nil
}

// Item retrieves a single item by ID, or nil when absent.
func (t *sqliteTx) Item(ctx context.Context, id int64) (*model.ChecklistItem, error) {
	it, err := getModel[model.ChecklistItem, itemRow](ctx, t.tx,
		"SELECT "+itemColumns+" FROM checklist_items WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return it, nil
}

// InsertItem inserts it and sets its ID.
func (t *sqliteTx) InsertItem(ctx context.Context, it *model.ChecklistItem) error {
	subItems, err := marshalSubItems(it.SubItems)
	if err != nil {
		return err
	}
	id, err := execInsert(ctx, t.tx, "item", `
		INSERT INTO checklist_items (
			checklist_id, title, description, is_done, icon,
			sub_items, sort_order, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ChecklistID, it.Title, it.Description, boolToInt(it.IsDone), it.Icon,
		subItems, it.SortOrder, formatTime(it.CreatedAt), formatTime(it.UpdatedAt),
	)
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

// SaveItem overwrites every mutable column of an existing item.
func (t *sqliteTx) SaveItem(ctx context.Context, it model.ChecklistItem) error {
	subItems, err := marshalSubItems(it.SubItems)
	if err != nil {
		return err
	}
	return execSave(ctx, t.tx, "item", it.ID, `
		UPDATE checklist_items SET
			checklist_id = ?, title = ?, description = ?, is_done = ?, icon = ?,
			sub_items = ?, sort_order = ?, updated_at = ?
		WHERE id = ?`,
		it.ChecklistID, it.Title, it.Description, boolToInt(it.IsDone), it.Icon,
		subItems, it.SortOrder, formatTime(it.UpdatedAt),
		it.ID,
	)
}

// DeleteItem removes an item row. Missing rows are ignored.
func (t *sqliteTx) DeleteItem(ctx context.Context, id int64) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting item %d: %w", id, err)
	}
	return nil
}

// DeleteItemsByChecklist removes every item of a checklist and reports how
// many rows went away.
func (t *sqliteTx) DeleteItemsByChecklist(ctx context.Context, checklistID int64) (int, error) {
	result, err := t.tx.ExecContext(ctx,
		"DELETE FROM checklist_items WHERE checklist_id = ?", checklistID)
	if err != nil {
		return 0, fmt.Errorf("deleting items of checklist %d: %w", checklistID, err)
	}
	n, _ := result.RowsAffected()
	return int(n), nil
}
