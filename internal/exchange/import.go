package exchange

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nhle/chckd/internal/model"
)

// Sink is the write side of the persistence facade.
type Sink interface {
	GetAllChecklistGroups(ctx context.Context) ([]model.ChecklistGroup, error)
	GetAllChecklists(ctx context.Context) ([]model.Checklist, error)
	DeleteChecklistGroup(ctx context.Context, id int64) error
	DeleteChecklist(ctx context.Context, id int64) error
	CreateChecklistGroup(ctx context.Context, fields model.GroupFields) (int64, error)
	CreateChecklist(ctx context.Context, fields model.ChecklistFields) (int64, error)
	CreateChecklistItem(ctx context.Context, fields model.ItemFields) (int64, error)
}

// Options tune Import.
type Options struct {
	// Overwrite deletes every existing group and checklist before importing.
	Overwrite bool
}

// Summary counts what Import created.
type Summary struct {
	Groups     int
	Checklists int
	Items      int
}

// Import recreates the groups, checklists and items described by rows under
// fresh ids. Records are created in row order; rows naming the same group or
// checklist (by exported id, or by title when the id is absent) share it.
func Import(ctx context.Context, dst Sink, rows []Row, opts Options) (Summary, error) {
	var sum Summary

	if opts.Overwrite {
		existing, err := dst.GetAllChecklists(ctx)
		if err != nil {
			return sum, fmt.Errorf("listing checklists: %w", err)
		}
		for _, c := range existing {
			if err := dst.DeleteChecklist(ctx, c.ID); err != nil {
				return sum, fmt.Errorf("deleting checklist %d: %w", c.ID, err)
			}
		}
		oldGroups, err := dst.GetAllChecklistGroups(ctx)
		if err != nil {
			return sum, fmt.Errorf("listing groups: %w", err)
		}
		for _, g := range oldGroups {
			if err := dst.DeleteChecklistGroup(ctx, g.ID); err != nil {
				return sum, fmt.Errorf("deleting group %d: %w", g.ID, err)
			}
		}
	}

	groups := make(map[string]int64)
	checklists := make(map[string]int64)

	for i, r := range rows {
		var groupID *int64
		gkey := ""
		if r.hasGroup() {
			gkey = rowKey(r.GroupID, r.GroupTitle)
			id, ok := groups[gkey]
			if !ok {
				var err error
				id, err = dst.CreateChecklistGroup(ctx, model.GroupFields{
					Title:       r.GroupTitle,
					Description: r.GroupDescription,
					Icon:        r.GroupIcon,
					Color:       r.GroupColor,
				})
				if err != nil {
					return sum, fmt.Errorf("row %d: creating group %q: %w", i+1, r.GroupTitle, err)
				}
				groups[gkey] = id
				sum.Groups++
			}
			groupID = &id
		}

		if !r.hasChecklist() {
			continue
		}
		ckey := gkey + "/" + rowKey(r.ChecklistID, r.ChecklistTitle)
		checklistID, ok := checklists[ckey]
		if !ok {
			var err error
			checklistID, err = dst.CreateChecklist(ctx, model.ChecklistFields{
				Title:       r.ChecklistTitle,
				Description: r.ChecklistDescription,
				Icon:        r.ChecklistIcon,
				Color:       r.ChecklistColor,
				GroupID:     groupID,
			})
			if err != nil {
				return sum, fmt.Errorf("row %d: creating checklist %q: %w", i+1, r.ChecklistTitle, err)
			}
			checklists[ckey] = checklistID
			sum.Checklists++
		}

		if !r.hasItem() {
			continue
		}
		_, err := dst.CreateChecklistItem(ctx, model.ItemFields{
			ChecklistID: checklistID,
			Title:       r.ItemTitle,
			Description: r.ItemDescription,
			IsDone:      r.ItemIsDone,
			Icon:        r.ItemIcon,
			SubItems:    r.ItemSubItems,
			SortOrder:   r.ItemSortOrder,
		})
		if err != nil {
			return sum, fmt.Errorf("row %d: creating item %q: %w", i+1, r.ItemTitle, err)
		}
		sum.Items++
	}
	return sum, nil
}

func rowKey(id int64, title string) string {
	if id != 0 {
		return "#" + strconv.FormatInt(id, 10)
	}
	return "t:" + title
}
