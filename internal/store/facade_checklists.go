package store

import (
	"context"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

// GetAllChecklists returns every checklist, ascending by sort order.
// Items are not attached.
func (s *Store) GetAllChecklists(ctx context.Context) ([]model.Checklist, error) {
	var checklists []model.Checklist
	err := s.view(ctx, func(tx Tx) error {
		var err error
		checklists, err = tx.Checklists(ctx, AllChecklists)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortChecklists(checklists)
	return checklists, nil
}

// GetChecklist returns the checklist with the given id, or nil when there
// is none.
func (s *Store) GetChecklist(ctx context.Context, id int64) (*model.Checklist, error) {
	var checklist *model.Checklist
	err := s.view(ctx, func(tx Tx) error {
		var err error
		checklist, err = tx.Checklist(ctx, id)
		return err
	})
	return checklist, err
}

// GetChecklistsByGroupID returns the checklists of one group with their
// items attached, both ascending by sort order.
func (s *Store) GetChecklistsByGroupID(ctx context.Context, groupID int64) ([]model.Checklist, error) {
	return s.checklistsWithItems(ctx, InGroup(groupID))
}

// GetUngroupedChecklists returns checklists outside any group with their
// items attached, both ascending by sort order.
func (s *Store) GetUngroupedChecklists(ctx context.Context) ([]model.Checklist, error) {
	return s.checklistsWithItems(ctx, UngroupedChecklists)
}

func (s *Store) checklistsWithItems(ctx context.Context, scope ChecklistScope) ([]model.Checklist, error) {
	var checklists []model.Checklist
	err := s.view(ctx, func(tx Tx) error {
		var err error
		checklists, err = tx.Checklists(ctx, scope)
		if err != nil {
			return err
		}
		for i := range checklists {
			items, err := tx.Items(ctx, checklists[i].ID)
			if err != nil {
				return err
			}
			sortItems(items)
			checklists[i].Items = items
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortChecklists(checklists)
	return checklists, nil
}

// CreateChecklist inserts a checklist and returns its id. Inside a group it
// goes after the group's last checklist; without one it goes after the last
// entry of the root ordering shared with groups.
func (s *Store) CreateChecklist(ctx context.Context, fields model.ChecklistFields) (int64, error) {
	if err := validateTitle("checklist", fields.Title); err != nil {
		return 0, err
	}

	now := s.stamp()
	checklist := model.Checklist{
		Title:       fields.Title,
		Description: fields.Description,
		Icon:        fields.Icon,
		Color:       fields.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if fields.GroupID != nil {
		id := *fields.GroupID
		checklist.GroupID = &id
	}

	err := s.update(ctx, func(tx Tx) error {
		var order int
		var err error
		if checklist.GroupID != nil {
			if err := requireGroup(ctx, tx, *checklist.GroupID); err != nil {
				return err
			}
			order, err = nextGroupOrder(ctx, tx, *checklist.GroupID)
		} else {
			order, err = nextRootOrder(ctx, tx)
		}
		if err != nil {
			return err
		}
		checklist.SortOrder = order
		return tx.InsertChecklist(ctx, &checklist)
	})
	if err != nil {
		return 0, fmt.Errorf("creating checklist: %w", err)
	}
	return checklist.ID, nil
}

// UpdateChecklist merges patch over the stored checklist. Moving it into a
// group requires the group to exist.
func (s *Store) UpdateChecklist(ctx context.Context, id int64, patch model.ChecklistPatch) error {
	return s.update(ctx, func(tx Tx) error {
		checklist, err := tx.Checklist(ctx, id)
		if err != nil {
			return err
		}
		if checklist == nil {
			return fmt.Errorf("checklist %d: %w", id, ErrNotFound)
		}

		patch.Apply(checklist)
		if err := validateTitle("checklist", checklist.Title); err != nil {
			return err
		}
		if patch.GroupID != nil && !patch.Ungroup {
			if err := requireGroup(ctx, tx, *patch.GroupID); err != nil {
				return err
			}
		}
		checklist.UpdatedAt = s.stamp()
		return tx.SaveChecklist(ctx, *checklist)
	})
}

// ReorderChecklists gives each listed checklist its index as sort order,
// in one unit of work. Unknown ids are skipped.
func (s *Store) ReorderChecklists(ctx context.Context, orderedIDs []int64) error {
	return s.update(ctx, func(tx Tx) error {
		now := s.stamp()
		for i, id := range orderedIDs {
			checklist, err := tx.Checklist(ctx, id)
			if err != nil {
				return err
			}
			if checklist == nil {
				continue
			}
			checklist.SortOrder = i
			checklist.UpdatedAt = now
			if err := tx.SaveChecklist(ctx, *checklist); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteChecklist removes a checklist after removing its items.
func (s *Store) DeleteChecklist(ctx context.Context, id int64) error {
	return s.update(ctx, func(tx Tx) error {
		return deleteChecklistCascade(ctx, tx, id)
	})
}

func deleteChecklistCascade(ctx context.Context, tx Tx, id int64) error {
	if _, err := tx.DeleteItemsByChecklist(ctx, id); err != nil {
		return err
	}
	return tx.DeleteChecklist(ctx, id)
}

func requireGroup(ctx context.Context, tx Tx, id int64) error {
	group, err := tx.Group(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return fmt.Errorf("group %d: %w", id, ErrNotFound)
	}
	return nil
}
