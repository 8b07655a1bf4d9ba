package store

import (
	"context"
	"slices"
)

// migrateSortOrders gives checklists stored before sort orders existed a
// trailing position in their scope: the root ordering shared with groups for
// ungrouped checklists, the group's own ordering otherwise. It runs as one
// unit of work and reports how many checklists it touched.
func (s *Store) migrateSortOrders(ctx context.Context, b Backend) (int, error) {
	migrated := 0
	err := b.Update(ctx, func(tx Tx) error {
		ids, err := tx.UnorderedChecklistIDs(ctx)
		if err != nil || len(ids) == 0 {
			return err
		}

		groups, err := tx.Groups(ctx)
		if err != nil {
			return err
		}
		checklists, err := tx.Checklists(ctx, AllChecklists)
		if err != nil {
			return err
		}

		rootMax := -1
		for _, g := range groups {
			rootMax = max(rootMax, g.SortOrder)
		}
		groupMax := make(map[int64]int)
		for _, c := range checklists {
			if slices.Contains(ids, c.ID) {
				continue
			}
			if c.GroupID == nil {
				rootMax = max(rootMax, c.SortOrder)
				continue
			}
			if m, ok := groupMax[*c.GroupID]; !ok || c.SortOrder > m {
				groupMax[*c.GroupID] = c.SortOrder
			}
		}

		now := s.stamp()
		for _, id := range ids {
			c, err := tx.Checklist(ctx, id)
			if err != nil {
				return err
			}
			if c == nil {
				continue
			}

			if c.GroupID == nil {
				rootMax++
				c.SortOrder = rootMax
			} else {
				next := 0
				if m, ok := groupMax[*c.GroupID]; ok {
					next = m + 1
				}
				groupMax[*c.GroupID] = next
				c.SortOrder = next
			}
			c.UpdatedAt = now
			if err := tx.SaveChecklist(ctx, *c); err != nil {
				return err
			}
			migrated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return migrated, nil
}
