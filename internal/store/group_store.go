package store

import (
	"context"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

const groupColumns = "id, title, description, icon, color, sort_order, created_at, updated_at"

// groupRow mirrors a checklist_groups row.
type groupRow struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	Color       string `db:"color"`
	SortOrder   int    `db:"sort_order"`
	stampColumns
}

func (r groupRow) toModel() (model.ChecklistGroup, error) {
	createdAt, updatedAt, err := r.parse()
	if err != nil {
		return model.ChecklistGroup{}, fmt.Errorf("group %d: %w", r.ID, err)
	}
	return model.ChecklistGroup{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Icon:        r.Icon,
		Color:       r.Color,
		SortOrder:   r.SortOrder,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Groups returns all groups ordered through the sort_order index.
func (t *sqliteTx) Groups(ctx context.Context) ([]model.ChecklistGroup, error) {
	groups, err := selectModels[model.ChecklistGroup, groupRow](ctx, t.tx,
		"SELECT "+groupColumns+" FROM checklist_groups ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("querying groups: %w", err)
	}
	return groups, nil
}

// Group retrieves a single group by ID, or nil when absent.
func (t *sqliteTx) Group(ctx context.Context, id int64) (*model.ChecklistGroup, error) {
	g, err := getModel[model.ChecklistGroup, groupRow](ctx, t.tx,
		"SELECT "+groupColumns+" FROM checklist_groups WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("getting group %d: %w", id, err)
	}
	return g, nil
}

// InsertGroup inserts g and sets its ID.
func (t *sqliteTx) InsertGroup(ctx context.Context, g *model.ChecklistGroup) error {
	id, err := execInsert(ctx, t.tx, "group", `
		INSERT INTO checklist_groups (title, description, icon, color, sort_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Title, g.Description, g.Icon, g.Color, g.SortOrder,
		formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
	)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

// SaveGroup overwrites every mutable column of an existing group.
func (t *sqliteTx) SaveGroup(ctx context.Context, g model.ChecklistGroup) error {
	return execSave(ctx, t.tx, "group", g.ID, `
		UPDATE checklist_groups SET
			title = ?, description = ?, icon = ?, color = ?,
			sort_order = ?, updated_at = ?
		WHERE id = ?`,
		g.Title, g.Description, g.Icon, g.Color,
		g.SortOrder, formatTime(g.UpdatedAt),
		g.ID,
	)
}

// DeleteGroup removes a group row. Missing rows are ignored.
func (t *sqliteTx) DeleteGroup(ctx context.Context, id int64) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM checklist_groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting group %d: %w", id, err)
	}
	return nil
}
