package exchange

import (
	"context"
	"fmt"
	"slices"

	"github.com/nhle/chckd/internal/model"
)

// Source is the read side of the persistence facade.
type Source interface {
	GetAllChecklistGroups(ctx context.Context) ([]model.ChecklistGroup, error)
	GetChecklistsByGroupID(ctx context.Context, groupID int64) ([]model.Checklist, error)
	GetUngroupedChecklists(ctx context.Context) ([]model.Checklist, error)
}

// Selection limits an export. Nil slices select everything of that kind.
type Selection struct {
	GroupIDs     []int64
	ChecklistIDs []int64
}

func (s Selection) group(id int64) bool {
	return s.GroupIDs == nil || slices.Contains(s.GroupIDs, id)
}

func (s Selection) checklist(id int64) bool {
	return s.ChecklistIDs == nil || slices.Contains(s.ChecklistIDs, id)
}

// Export flattens the selected groups and ungrouped checklists into rows.
// Groups come first, in sort order, then ungrouped checklists.
func Export(ctx context.Context, src Source, sel Selection) ([]Row, error) {
	groups, err := src.GetAllChecklistGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing groups: %w", err)
	}

	var rows []Row
	for _, g := range groups {
		if !sel.group(g.ID) {
			continue
		}
		checklists, err := src.GetChecklistsByGroupID(ctx, g.ID)
		if err != nil {
			return nil, fmt.Errorf("listing checklists of group %d: %w", g.ID, err)
		}
		base := groupColumns(g)
		if len(checklists) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, c := range checklists {
			rows = appendChecklist(rows, base, c)
		}
	}

	ungrouped, err := src.GetUngroupedChecklists(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing ungrouped checklists: %w", err)
	}
	for _, c := range ungrouped {
		if !sel.checklist(c.ID) {
			continue
		}
		rows = appendChecklist(rows, Row{}, c)
	}
	return rows, nil
}

func groupColumns(g model.ChecklistGroup) Row {
	return Row{
		GroupID:          g.ID,
		GroupTitle:       g.Title,
		GroupDescription: g.Description,
		GroupIcon:        g.Icon,
		GroupColor:       g.Color,
		GroupSortOrder:   g.SortOrder,
	}
}

func appendChecklist(rows []Row, base Row, c model.Checklist) []Row {
	base.ChecklistID = c.ID
	base.ChecklistTitle = c.Title
	base.ChecklistDescription = c.Description
	base.ChecklistIcon = c.Icon
	base.ChecklistColor = c.Color
	base.ChecklistSortOrder = c.SortOrder

	if len(c.Items) == 0 {
		return append(rows, base)
	}
	for _, it := range c.Items {
		r := base
		r.ItemID = it.ID
		r.ItemTitle = it.Title
		r.ItemDescription = it.Description
		r.ItemIsDone = it.IsDone
		r.ItemIcon = it.Icon
		r.ItemSortOrder = it.SortOrder
		r.ItemSubItems = it.SubItems
		rows = append(rows, r)
	}
	return rows
}
