package store

import (
	"context"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

// GetChecklistItems returns the items of one checklist, ascending by sort order.
func (s *Store) GetChecklistItems(ctx context.Context, checklistID int64) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := s.view(ctx, func(tx Tx) error {
		var err error
		items, err = tx.Items(ctx, checklistID)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortItems(items)
	return items, nil
}

// GetChecklistItem returns the item with the given id, or nil when there is none.
func (s *Store) GetChecklistItem(ctx context.Context, id int64) (*model.ChecklistItem, error) {
	var item *model.ChecklistItem
	err := s.view(ctx, func(tx Tx) error {
		var err error
		item, err = tx.Item(ctx, id)
		return err
	})
	return item, err
}

// NextItemSortOrder returns 1 + the highest item sort order of a checklist,
// or 0 for an empty one.
func (s *Store) NextItemSortOrder(ctx context.Context, checklistID int64) (int, error) {
	items, err := s.GetChecklistItems(ctx, checklistID)
	if err != nil {
		return 0, err
	}
	highest := -1
	for _, it := range items {
		highest = max(highest, it.SortOrder)
	}
	return highest + 1, nil
}

// CreateChecklistItem inserts an item with the caller's sort order and
// returns its id. The owning checklist must exist.
func (s *Store) CreateChecklistItem(ctx context.Context, fields model.ItemFields) (int64, error) {
	if err := validateTitle("item", fields.Title); err != nil {
		return 0, err
	}

	now := s.stamp()
	item := model.ChecklistItem{
		ChecklistID: fields.ChecklistID,
		Title:       fields.Title,
		Description: fields.Description,
		IsDone:      fields.IsDone,
		Icon:        fields.Icon,
		SortOrder:   fields.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(fields.SubItems) > 0 {
		item.SubItems = append([]string(nil), fields.SubItems...)
	}

	err := s.update(ctx, func(tx Tx) error {
		if err := requireChecklist(ctx, tx, item.ChecklistID); err != nil {
			return err
		}
		return tx.InsertItem(ctx, &item)
	})
	if err != nil {
		return 0, fmt.Errorf("creating item: %w", err)
	}
	return item.ID, nil
}

// UpdateChecklistItem merges patch over the stored item.
func (s *Store) UpdateChecklistItem(ctx context.Context, id int64, patch model.ItemPatch) error {
	return s.update(ctx, func(tx Tx) error {
		item, err := tx.Item(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("item %d: %w", id, ErrNotFound)
		}

		patch.Apply(item)
		if err := validateTitle("item", item.Title); err != nil {
			return err
		}
		if patch.ChecklistID != nil {
			if err := requireChecklist(ctx, tx, *patch.ChecklistID); err != nil {
				return err
			}
		}
		item.UpdatedAt = s.stamp()
		return tx.SaveItem(ctx, *item)
	})
}

// DeleteChecklistItem removes one item. Missing ids are ignored.
func (s *Store) DeleteChecklistItem(ctx context.Context, id int64) error {
	return s.update(ctx, func(tx Tx) error {
		return tx.DeleteItem(ctx, id)
	})
}

// ReorderChecklistItems gives each listed item its index as sort order,
// in one unit of work. Unknown ids are skipped.
func (s *Store) ReorderChecklistItems(ctx context.Context, orderedIDs []int64) error {
	return s.update(ctx, func(tx Tx) error {
		now := s.stamp()
		for i, id := range orderedIDs {
			item, err := tx.Item(ctx, id)
			if err != nil {
				return err
			}
			if item == nil {
				continue
			}
			item.SortOrder = i
			item.UpdatedAt = now
			if err := tx.SaveItem(ctx, *item); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteChecklistItemsByChecklistID removes every item of a checklist and
// returns how many were removed.
func (s *Store) DeleteChecklistItemsByChecklistID(ctx context.Context, checklistID int64) (int, error) {
	var removed int
	err := s.update(ctx, func(tx Tx) error {
		var err error
		removed, err = tx.DeleteItemsByChecklist(ctx, checklistID)
		return err
	})
	return removed, err
}

// ResetChecklistItemsByChecklistID unchecks every done item of a checklist
// and returns how many changed. Items already unchecked are not rewritten.
func (s *Store) ResetChecklistItemsByChecklistID(ctx context.Context, checklistID int64) (int, error) {
	var reset int
	err := s.update(ctx, func(tx Tx) error {
		var err error
		reset, err = s.resetItems(ctx, tx, checklistID)
		return err
	})
	return reset, err
}

// ResetChecklistItemsByGroupID unchecks every done item in every checklist of
// a group and returns how many changed.
func (s *Store) ResetChecklistItemsByGroupID(ctx context.Context, groupID int64) (int, error) {
	var reset int
	err := s.update(ctx, func(tx Tx) error {
		checklists, err := tx.Checklists(ctx, InGroup(groupID))
		if err != nil {
			return err
		}
		for _, c := range checklists {
			n, err := s.resetItems(ctx, tx, c.ID)
			if err != nil {
				return err
			}
			reset += n
		}
		return nil
	})
	return reset, err
}

func (s *Store) resetItems(ctx context.Context, tx Tx, checklistID int64) (int, error) {
	items, err := tx.Items(ctx, checklistID)
	if err != nil {
		return 0, err
	}

	now := s.stamp()
	reset := 0
	for _, it := range items {
		if !it.IsDone {
			continue
		}
		it.IsDone = false
		it.UpdatedAt = now
		if err := tx.SaveItem(ctx, it); err != nil {
			return 0, err
		}
		reset++
	}
	return reset, nil
}

func requireChecklist(ctx context.Context, tx Tx, id int64) error {
	checklist, err := tx.Checklist(ctx, id)
	if err != nil {
		return err
	}
	if checklist == nil {
		return fmt.Errorf("checklist %d: %w", id, ErrNotFound)
	}
	return nil
}
