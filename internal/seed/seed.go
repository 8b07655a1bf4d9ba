// Package seed loads starter checklists into an empty store.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhle/chckd/internal/model"
)

// ErrAlreadySeeded is returned by Load when the store already holds groups.
var ErrAlreadySeeded = errors.New("store already has checklist groups")

// Store is the part of the persistence facade seeding needs.
type Store interface {
	GetAllChecklistGroups(ctx context.Context) ([]model.ChecklistGroup, error)
	GetAllChecklists(ctx context.Context) ([]model.Checklist, error)
	CreateChecklistGroup(ctx context.Context, fields model.GroupFields) (int64, error)
	CreateChecklist(ctx context.Context, fields model.ChecklistFields) (int64, error)
	CreateChecklistItem(ctx context.Context, fields model.ItemFields) (int64, error)
	DeleteChecklist(ctx context.Context, id int64) error
	DeleteChecklistGroup(ctx context.Context, id int64) error
}

// Result counts what Load created.
type Result struct {
	GroupID    int64
	Checklists int
	Items      int
}

// Load creates the starter group and one checklist per template inside it.
// Item sort orders start at 1 and follow template order.
func Load(ctx context.Context, s Store) (Result, error) {
	groups, err := s.GetAllChecklistGroups(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("listing groups: %w", err)
	}
	if len(groups) > 0 {
		return Result{}, ErrAlreadySeeded
	}

	groupID, err := s.CreateChecklistGroup(ctx, model.GroupFields{
		Title: GroupTitle,
		Icon:  GroupIcon,
		Color: GroupColor,
	})
	if err != nil {
		return Result{}, fmt.Errorf("creating group %q: %w", GroupTitle, err)
	}

	res := Result{GroupID: groupID}
	for _, tmpl := range Templates {
		color := tmpl.Color
		if color == "" {
			color = GroupColor
		}
		checklistID, err := s.CreateChecklist(ctx, model.ChecklistFields{
			Title:   tmpl.Title,
			Icon:    tmpl.Icon,
			Color:   color,
			GroupID: &groupID,
		})
		if err != nil {
			return res, fmt.Errorf("creating checklist %q: %w", tmpl.Title, err)
		}
		res.Checklists++

		for i, it := range tmpl.Items {
			_, err := s.CreateChecklistItem(ctx, model.ItemFields{
				ChecklistID: checklistID,
				Title:       it.Title,
				Description: it.Description,
				IsDone:      it.IsDone,
				Icon:        it.Icon,
				SubItems:    it.SubItems,
				SortOrder:   i + 1,
			})
			if err != nil {
				return res, fmt.Errorf("creating item %q in %q: %w", it.Title, tmpl.Title, err)
			}
			res.Items++
		}
	}
	return res, nil
}

// Clear deletes every checklist, then every group.
func Clear(ctx context.Context, s Store) error {
	checklists, err := s.GetAllChecklists(ctx)
	if err != nil {
		return fmt.Errorf("listing checklists: %w", err)
	}
	for _, c := range checklists {
		if err := s.DeleteChecklist(ctx, c.ID); err != nil {
			return fmt.Errorf("deleting checklist %d: %w", c.ID, err)
		}
	}

	groups, err := s.GetAllChecklistGroups(ctx)
	if err != nil {
		return fmt.Errorf("listing groups: %w", err)
	}
	for _, g := range groups {
		if err := s.DeleteChecklistGroup(ctx, g.ID); err != nil {
			return fmt.Errorf("deleting group %d: %w", g.ID, err)
		}
	}
	return nil
}
