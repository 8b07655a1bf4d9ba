package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

const checklistColumns = "id, title, description, icon, color, sort_order, group_id, created_at, updated_at"

// checklistRow mirrors a checklists row. sort_order is NULL for rows that
// predate schema v2 and have not been soft-migrated yet.
type checklistRow struct {
	ID          int64         `db:"id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	Icon        string        `db:"icon"`
	Color       string        `db:"color"`
	SortOrder   sql.NullInt64 `db:"sort_order"`
	GroupID     sql.NullInt64 `db:"group_id"`
	stampColumns
}

func (r checklistRow) toModel() (model.Checklist, error) {
	createdAt, updatedAt, err := r.parse()
	if err != nil {
		return model.Checklist{}, fmt.Errorf("checklist %d: %w", r.ID, err)
	}
	c := model.Checklist{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		SortOrder:   int(r.SortOrder.Int64),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if r.GroupID.Valid {
		id := r.GroupID.Int64
		c.GroupID = &id
	}
	return c, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// Checklists returns the checklists in scope, using the group_id index for
// grouped and ungrouped lookups.
func (t *sqliteTx) Checklists(ctx context.Context, scope ChecklistScope) ([]model.Checklist, error) {
	query := "SELECT " + checklistColumns + " FROM checklists"
	var args []any
	switch {
	case scope.GroupID != nil:
		query += " WHERE group_id = ?"
		args = append(args, *scope.GroupID)
	case scope.Ungrouped:
		query += " WHERE group_id IS NULL"
	}
	query += " ORDER BY sort_order, id"

	checklists, err := selectModels[model.Checklist, checklistRow](ctx, t.tx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying checklists: %w", err)
	}
	return checklists, nil
}

// Checklist retrieves a single checklist by ID, or nil when absent.
func (t *sqliteTx) Checklist(ctx context.Context, id int64) (*model.Checklist, error) {
	c, err := getModel[model.Checklist, checklistRow](ctx, t.tx,
		"SELECT "+checklistColumns+" FROM checklists WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting checklist %d: %w", id, err)
	}
	return c, nil
}

// InsertChecklist inserts c and sets its ID.
func (t *sqliteTx) InsertChecklist(ctx context.Context, c *model.Checklist) error {
	id, err := execInsert(ctx, t.tx, "checklist", `
		INSERT INTO checklists (title, description, icon, color, sort_order, group_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Icon, c.Color, c.SortOrder, nullableID(c.GroupID),
		formatTime(c.CreatedAt), formatTime(c.UpdatedAt),
	)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// SaveChecklist overwrites every mutable column of an existing checklist.
func (t *sqliteTx) SaveChecklist(ctx context.Context, c model.Checklist) error {
	return execSave(ctx, t.tx, "checklist", c.ID, `
		UPDATE checklists SET
			title = ?, description = ?, icon = ?, color = ?,
			sort_order = ?, group_id = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Icon, c.Color,
		c.SortOrder, nullableID(c.GroupID), formatTime(c.UpdatedAt),
		c.ID,
	)
}

// DeleteChecklist removes a checklist row. Missing rows are ignored.
func (t *sqliteTx) DeleteChecklist(ctx context.Context, id int64) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM checklists WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting checklist %d: %w", id, err)
	}
	return nil
}

// UnorderedChecklistIDs lists checklists whose sort_order is still NULL.
func (t *sqliteTx) UnorderedChecklistIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := t.tx.SelectContext(ctx, &ids,
		"SELECT id FROM checklists WHERE sort_order IS NULL ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying unordered checklists: %w", err)
	}
	return ids, nil
}
