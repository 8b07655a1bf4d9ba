package main

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/theme"
)

func renderAll(groups []model.ChecklistGroup, byGroup map[int64][]model.Checklist, ungrouped []model.Checklist) string {
	if len(groups) == 0 && len(ungrouped) == 0 {
		return theme.HelpStyle.Render("no checklists yet; try `chckd seed`") + "\n"
	}

	var b strings.Builder
	for _, e := range rootEntries(groups, ungrouped) {
		if e.group != nil {
			b.WriteString(renderGroup(*e.group, byGroup[e.group.ID]))
		} else {
			b.WriteString(renderChecklist(*e.checklist))
		}
	}
	return b.String()
}

// rootEntry is one line of the home view: a group or an ungrouped checklist.
type rootEntry struct {
	group     *model.ChecklistGroup
	checklist *model.Checklist
	sortOrder int
	id        int64
}

// rootEntries merges groups and ungrouped checklists by their shared sort
// order. Ties put groups first, then lower ids.
func rootEntries(groups []model.ChecklistGroup, ungrouped []model.Checklist) []rootEntry {
	entries := make([]rootEntry, 0, len(groups)+len(ungrouped))
	for i := range groups {
		g := &groups[i]
		entries = append(entries, rootEntry{group: g, sortOrder: g.SortOrder, id: g.ID})
	}
	for i := range ungrouped {
		c := &ungrouped[i]
		entries = append(entries, rootEntry{checklist: c, sortOrder: c.SortOrder, id: c.ID})
	}
	slices.SortStableFunc(entries, func(a, b rootEntry) int {
		if c := cmp.Compare(a.sortOrder, b.sortOrder); c != 0 {
			return c
		}
		if (a.group == nil) != (b.group == nil) {
			if a.group != nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.id, b.id)
	})
	return entries
}

func renderGroup(g model.ChecklistGroup, checklists []model.Checklist) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", theme.HeaderStyle.Render(g.Title), theme.HelpStyle.Render(fmt.Sprintf("#%d", g.ID)))
	if len(checklists) == 0 {
		b.WriteString(theme.Indent(theme.HelpStyle.Render("(empty)"), 2) + "\n")
	}
	for _, c := range checklists {
		b.WriteString(theme.Indent(renderChecklist(c), 2))
	}
	return b.String()
}

func renderChecklist(c model.Checklist) string {
	done := 0
	for _, it := range c.Items {
		if it.IsDone {
			done++
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n",
		theme.ChecklistTitle(c.Color).Render(c.Title),
		theme.Progress(done, len(c.Items)),
		theme.HelpStyle.Render(fmt.Sprintf("#%d", c.ID)))
	for _, it := range c.Items {
		style := theme.ItemStyle
		if it.IsDone {
			style = theme.DoneItemStyle
		}
		line := fmt.Sprintf("%s %s", theme.Checkbox(it.IsDone), it.Title)
		fmt.Fprintf(&b, "%s %s\n", style.Render(line), theme.HelpStyle.Render(fmt.Sprintf("#%d", it.ID)))
		for _, sub := range it.SubItems {
			b.WriteString(theme.SubItemStyle.Render("- "+sub) + "\n")
		}
	}
	return b.String()
}
