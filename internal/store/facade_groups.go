package store

import (
	"context"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

// GetAllChecklistGroups returns every group, ascending by sort order.
func (s *Store) GetAllChecklistGroups(ctx context.Context) ([]model.ChecklistGroup, error) {
	var groups []model.ChecklistGroup
	err := s.view(ctx, func(tx Tx) error {
		var err error
		groups, err = tx.Groups(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	sortGroups(groups)
	return groups, nil
}

// GetChecklistGroup returns the group with the given id, or nil when there
// is none.
func (s *Store) GetChecklistGroup(ctx context.Context, id int64) (*model.ChecklistGroup, error) {
	var group *model.ChecklistGroup
	err := s.view(ctx, func(tx Tx) error {
		var err error
		group, err = tx.Group(ctx, id)
		return err
	})
	return group, err
}

// CreateChecklistGroup inserts a group at the end of the root ordering,
// which groups share with ungrouped checklists, and returns its id.
func (s *Store) CreateChecklistGroup(ctx context.Context, fields model.GroupFields) (int64, error) {
	if err := validateTitle("group", fields.Title); err != nil {
		return 0, err
	}

	now := s.stamp()
	group := model.ChecklistGroup{
		Title:       fields.Title,
		Description: fields.Description,
		Icon:        fields.Icon,
		Color:       fields.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.update(ctx, func(tx Tx) error {
		order, err := nextRootOrder(ctx, tx)
		if err != nil {
			return err
		}
		group.SortOrder = order
		return tx.InsertGroup(ctx, &group)
	})
	if err != nil {
		return 0, fmt.Errorf("creating group: %w", err)
	}
	return group.ID, nil
}

// UpdateChecklistGroup merges patch over the stored group.
func (s *Store) UpdateChecklistGroup(ctx context.Context, id int64, patch model.GroupPatch) error {
	return s.update(ctx, func(tx Tx) error {
		group, err := tx.Group(ctx, id)
		if err != nil {
			return err
		}
		if group == nil {
			return fmt.Errorf("group %d: %w", id, ErrNotFound)
		}

		patch.Apply(group)
		if err := validateTitle("group", group.Title); err != nil {
			return err
		}
		group.UpdatedAt = s.stamp()
		return tx.SaveGroup(ctx, *group)
	})
}

// ReorderChecklistGroups gives each listed group its index as sort order,
// in one unit of work. Unknown ids are skipped.
func (s *Store) ReorderChecklistGroups(ctx context.Context, orderedIDs []int64) error {
	return s.update(ctx, func(tx Tx) error {
		now := s.stamp()
		for i, id := range orderedIDs {
			group, err := tx.Group(ctx, id)
			if err != nil {
				return err
			}
			if group == nil {
				continue
			}
			group.SortOrder = i
			group.UpdatedAt = now
			if err := tx.SaveGroup(ctx, *group); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteChecklistGroup removes a group together with its checklists and
// their items. Items go before their checklist, checklists before the group.
func (s *Store) DeleteChecklistGroup(ctx context.Context, id int64) error {
	return s.update(ctx, func(tx Tx) error {
		checklists, err := tx.Checklists(ctx, InGroup(id))
		if err != nil {
			return err
		}
		for _, c := range checklists {
			if err := deleteChecklistCascade(ctx, tx, c.ID); err != nil {
				return err
			}
		}
		return tx.DeleteGroup(ctx, id)
	})
}
