package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/store"
	"github.com/nhle/chckd/internal/testutil"
)

func forEachBackend(t *testing.T, fn func(t *testing.T, s *store.Store)) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			s := testutil.NewStore(t, kind)
			got, err := s.Kind(context.Background())
			require.NoError(t, err)
			require.Equal(t, kind, got)
			fn(t, s)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{
			Title: "Camp", Description: "Weekend trips", Icon: "camping", Color: "#1d93c8",
		})
		require.NoError(t, err)

		group, err := s.GetChecklistGroup(ctx, gid)
		require.NoError(t, err)
		require.NotNil(t, group)
		assert.Equal(t, gid, group.ID)
		assert.Equal(t, "Camp", group.Title)
		assert.Equal(t, "Weekend trips", group.Description)
		assert.Equal(t, "camping", group.Icon)
		assert.Equal(t, "#1d93c8", group.Color)
		assert.Equal(t, 0, group.SortOrder)
		assert.True(t, group.CreatedAt.Equal(group.UpdatedAt))

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", Icon: "backpack", GroupID: &gid})
		require.NoError(t, err)

		checklist, err := s.GetChecklist(ctx, cid)
		require.NoError(t, err)
		require.NotNil(t, checklist)
		assert.Equal(t, "Gear", checklist.Title)
		assert.Equal(t, "backpack", checklist.Icon)
		require.NotNil(t, checklist.GroupID)
		assert.Equal(t, gid, *checklist.GroupID)
		assert.Equal(t, 0, checklist.SortOrder)
		assert.True(t, checklist.CreatedAt.Equal(checklist.UpdatedAt))

		iid, err := s.CreateChecklistItem(ctx, model.ItemFields{
			ChecklistID: cid,
			Title:       "Tent",
			Description: "Weatherproof tent with rainfly",
			IsDone:      true,
			Icon:        "home",
			SubItems:    []string{"Tent poles", "Rainfly"},
			SortOrder:   3,
		})
		require.NoError(t, err)

		item, err := s.GetChecklistItem(ctx, iid)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, cid, item.ChecklistID)
		assert.Equal(t, "Tent", item.Title)
		assert.Equal(t, "Weatherproof tent with rainfly", item.Description)
		assert.True(t, item.IsDone)
		assert.Equal(t, "home", item.Icon)
		assert.Equal(t, []string{"Tent poles", "Rainfly"}, item.SubItems)
		assert.Equal(t, 3, item.SortOrder)
		assert.True(t, item.CreatedAt.Equal(item.UpdatedAt))
	})
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		group, err := s.GetChecklistGroup(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, group)

		checklist, err := s.GetChecklist(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, checklist)

		item, err := s.GetChecklistItem(ctx, 42)
		require.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestStore_UpdateMissingIsNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		err := s.UpdateChecklistGroup(ctx, 7, model.GroupPatch{Title: model.Ptr("x")})
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.UpdateChecklist(ctx, 7, model.ChecklistPatch{Title: model.Ptr("x")})
		assert.ErrorIs(t, err, store.ErrNotFound)

		err = s.UpdateChecklistItem(ctx, 7, model.ItemPatch{IsDone: model.Ptr(true)})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestStore_ReferencesMustExist(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		missing := int64(99)
		_, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Orphan", GroupID: &missing})
		assert.ErrorIs(t, err, store.ErrNotFound)

		_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: missing, Title: "Orphan"})
		assert.ErrorIs(t, err, store.ErrNotFound)

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
		require.NoError(t, err)
		err = s.UpdateChecklist(ctx, cid, model.ChecklistPatch{GroupID: &missing})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestStore_BlankTitleIsInvalid(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		_, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "  "})
		assert.ErrorIs(t, err, store.ErrInvalidInput)

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
		require.NoError(t, err)
		err = s.UpdateChecklist(ctx, cid, model.ChecklistPatch{Title: model.Ptr("")})
		assert.ErrorIs(t, err, store.ErrInvalidInput)

		checklist, err := s.GetChecklist(ctx, cid)
		require.NoError(t, err)
		assert.Equal(t, "Food", checklist.Title)
	})
}

func TestStore_UpdateMergesPatchAndRefreshesUpdatedAt(t *testing.T) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			s := testutil.NewStore(t, kind, store.WithClock(testutil.NewClock().Now))
			ctx := context.Background()

			cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food", Color: "red"})
			require.NoError(t, err)
			iid, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: "Rice", Icon: "bowl"})
			require.NoError(t, err)
			before, err := s.GetChecklistItem(ctx, iid)
			require.NoError(t, err)

			require.NoError(t, s.UpdateChecklistItem(ctx, iid, model.ItemPatch{
				IsDone:   model.Ptr(true),
				SubItems: &[]string{"Basmati"},
			}))

			after, err := s.GetChecklistItem(ctx, iid)
			require.NoError(t, err)
			assert.True(t, after.IsDone)
			assert.Equal(t, "Rice", after.Title)
			assert.Equal(t, "bowl", after.Icon)
			assert.Equal(t, []string{"Basmati"}, after.SubItems)
			assert.True(t, after.CreatedAt.Equal(before.CreatedAt))
			assert.True(t, after.UpdatedAt.After(before.UpdatedAt))

			require.NoError(t, s.UpdateChecklist(ctx, cid, model.ChecklistPatch{Title: model.Ptr("Meals")}))
			checklist, err := s.GetChecklist(ctx, cid)
			require.NoError(t, err)
			assert.Equal(t, "Meals", checklist.Title)
			assert.Equal(t, "red", checklist.Color)
		})
	}
}

func TestStore_SharedRootOrdering(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
		require.NoError(t, err)
		c1, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
		require.NoError(t, err)

		group, err := s.GetChecklistGroup(ctx, gid)
		require.NoError(t, err)
		assert.Equal(t, 0, group.SortOrder)
		first, err := s.GetChecklist(ctx, c1)
		require.NoError(t, err)
		assert.Equal(t, 1, first.SortOrder)

		c2, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Drinks"})
		require.NoError(t, err)
		second, err := s.GetChecklist(ctx, c2)
		require.NoError(t, err)
		assert.Equal(t, 2, second.SortOrder)

		// A grouped checklist does not take part in the root ordering.
		inGroup, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", GroupID: &gid})
		require.NoError(t, err)
		grouped, err := s.GetChecklist(ctx, inGroup)
		require.NoError(t, err)
		assert.Equal(t, 0, grouped.SortOrder)

		g2, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Beach"})
		require.NoError(t, err)
		group2, err := s.GetChecklistGroup(ctx, g2)
		require.NoError(t, err)
		assert.Equal(t, 3, group2.SortOrder)
	})
}

func TestStore_SharedRootOrderingFromSameMax(t *testing.T) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()

			setup := func(t *testing.T) *store.Store {
				s := testutil.NewStore(t, kind)
				_, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
				require.NoError(t, err)
				_, err = s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
				require.NoError(t, err)
				return s
			}

			s := setup(t)
			cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Drinks"})
			require.NoError(t, err)
			c, err := s.GetChecklist(ctx, cid)
			require.NoError(t, err)
			assert.Equal(t, 2, c.SortOrder)

			s = setup(t)
			gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Beach"})
			require.NoError(t, err)
			g, err := s.GetChecklistGroup(ctx, gid)
			require.NoError(t, err)
			assert.Equal(t, 2, g.SortOrder)
		})
	}
}

func TestStore_DeleteGroupCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
		require.NoError(t, err)
		c1, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", GroupID: &gid})
		require.NoError(t, err)
		c2, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
		require.NoError(t, err)
		_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: c1, Title: "Tent", SortOrder: 0})
		require.NoError(t, err)
		keep, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: c2, Title: "Rice", SortOrder: 0})
		require.NoError(t, err)

		require.NoError(t, s.DeleteChecklistGroup(ctx, gid))

		groups, err := s.GetAllChecklistGroups(ctx)
		require.NoError(t, err)
		assert.Empty(t, groups)

		gone, err := s.GetChecklist(ctx, c1)
		require.NoError(t, err)
		assert.Nil(t, gone)

		items, err := s.GetChecklistItems(ctx, c1)
		require.NoError(t, err)
		assert.Empty(t, items)

		byGroup, err := s.GetChecklistsByGroupID(ctx, gid)
		require.NoError(t, err)
		assert.Empty(t, byGroup)

		all, err := s.GetAllChecklists(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, c2, all[0].ID)

		kept, err := s.GetChecklistItem(ctx, keep)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})
}

func TestStore_DeleteChecklistCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear"})
		require.NoError(t, err)
		iid, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: "Tent"})
		require.NoError(t, err)

		require.NoError(t, s.DeleteChecklist(ctx, cid))

		item, err := s.GetChecklistItem(ctx, iid)
		require.NoError(t, err)
		assert.Nil(t, item)

		// Deleting again is a no-op.
		require.NoError(t, s.DeleteChecklist(ctx, cid))
	})
}

func TestStore_IDsAreNotReused(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		first, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "A"})
		require.NoError(t, err)
		require.NoError(t, s.DeleteChecklist(ctx, first))

		second, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "B"})
		require.NoError(t, err)
		assert.Greater(t, second, first)
	})
}

func TestStore_ReorderChecklists(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		a, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "A"})
		require.NoError(t, err)
		b, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "B"})
		require.NoError(t, err)

		require.NoError(t, s.ReorderChecklists(ctx, []int64{b, a}))

		all, err := s.GetAllChecklists(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, b, all[0].ID)
		assert.Equal(t, 0, all[0].SortOrder)
		assert.Equal(t, a, all[1].ID)
		assert.Equal(t, 1, all[1].SortOrder)
	})
}

func TestStore_ReorderGroupsAndItems(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		g1, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "One"})
		require.NoError(t, err)
		g2, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Two"})
		require.NoError(t, err)
		require.NoError(t, s.ReorderChecklistGroups(ctx, []int64{g2, 404, g1}))

		groups, err := s.GetAllChecklistGroups(ctx)
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, g2, groups[0].ID)
		assert.Equal(t, 0, groups[0].SortOrder)
		assert.Equal(t, g1, groups[1].ID)
		assert.Equal(t, 2, groups[1].SortOrder)

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear"})
		require.NoError(t, err)
		var ids []int64
		for i, title := range []string{"Tent", "Stove", "Lamp"} {
			id, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: title, SortOrder: i})
			require.NoError(t, err)
			ids = append(ids, id)
		}
		require.NoError(t, s.ReorderChecklistItems(ctx, []int64{ids[2], ids[0], ids[1]}))

		items, err := s.GetChecklistItems(ctx, cid)
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{"Lamp", "Tent", "Stove"}, []string{items[0].Title, items[1].Title, items[2].Title})
		for i, it := range items {
			assert.Equal(t, i, it.SortOrder)
		}
	})
}

func TestStore_GroupedAndUngroupedListingsCarryItems(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
		require.NoError(t, err)
		gear, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", GroupID: &gid})
		require.NoError(t, err)
		food, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
		require.NoError(t, err)
		_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: gear, Title: "Stove", SortOrder: 1})
		require.NoError(t, err)
		_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: gear, Title: "Tent", SortOrder: 0})
		require.NoError(t, err)
		_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: food, Title: "Rice", SortOrder: 0})
		require.NoError(t, err)

		grouped, err := s.GetChecklistsByGroupID(ctx, gid)
		require.NoError(t, err)
		require.Len(t, grouped, 1)
		require.Len(t, grouped[0].Items, 2)
		assert.Equal(t, "Tent", grouped[0].Items[0].Title)
		assert.Equal(t, "Stove", grouped[0].Items[1].Title)

		ungrouped, err := s.GetUngroupedChecklists(ctx)
		require.NoError(t, err)
		require.Len(t, ungrouped, 1)
		assert.Equal(t, food, ungrouped[0].ID)
		require.Len(t, ungrouped[0].Items, 1)
		assert.Equal(t, "Rice", ungrouped[0].Items[0].Title)
	})
}

func TestStore_ResetIsIdempotent(t *testing.T) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			s := testutil.NewStore(t, kind, store.WithClock(testutil.NewClock().Now))
			ctx := context.Background()

			cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear"})
			require.NoError(t, err)
			_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: "Tent", IsDone: true})
			require.NoError(t, err)
			_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: "Stove", SortOrder: 1})
			require.NoError(t, err)

			n, err := s.ResetChecklistItemsByChecklistID(ctx, cid)
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			first, err := s.GetChecklistItems(ctx, cid)
			require.NoError(t, err)
			for _, it := range first {
				assert.False(t, it.IsDone)
			}

			n, err = s.ResetChecklistItemsByChecklistID(ctx, cid)
			require.NoError(t, err)
			assert.Equal(t, 0, n)

			second, err := s.GetChecklistItems(ctx, cid)
			require.NoError(t, err)
			require.Len(t, second, len(first))
			for i := range first {
				assert.True(t, first[i].UpdatedAt.Equal(second[i].UpdatedAt),
					"item %d updatedAt changed on a no-op reset", first[i].ID)
			}
		})
	}
}

func TestStore_ResetByGroup(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		gid, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
		require.NoError(t, err)
		var itemIDs []int64
		for _, title := range []string{"Gear", "Kitchen"} {
			cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: title, GroupID: &gid})
			require.NoError(t, err)
			id, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: "thing", IsDone: true})
			require.NoError(t, err)
			itemIDs = append(itemIDs, id)
		}
		other, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Other"})
		require.NoError(t, err)
		untouched, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: other, Title: "x", IsDone: true})
		require.NoError(t, err)

		n, err := s.ResetChecklistItemsByGroupID(ctx, gid)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		for _, id := range itemIDs {
			it, err := s.GetChecklistItem(ctx, id)
			require.NoError(t, err)
			assert.False(t, it.IsDone)
		}
		it, err := s.GetChecklistItem(ctx, untouched)
		require.NoError(t, err)
		assert.True(t, it.IsDone)
	})
}

func TestStore_DeleteItemsByChecklist(t *testing.T) {
	forEachBackend(t, func(t *testing.T, s *store.Store) {
		ctx := context.Background()

		cid, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear"})
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			_, err := s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: cid, Title: fmt.Sprintf("item %d", i), SortOrder: i})
			require.NoError(t, err)
		}

		next, err := s.NextItemSortOrder(ctx, cid)
		require.NoError(t, err)
		assert.Equal(t, 3, next)

		n, err := s.DeleteChecklistItemsByChecklistID(ctx, cid)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		items, err := s.GetChecklistItems(ctx, cid)
		require.NoError(t, err)
		assert.Empty(t, items)

		checklist, err := s.GetChecklist(ctx, cid)
		require.NoError(t, err)
		assert.NotNil(t, checklist)
	})
}

func TestStore_FallsBackWhenIndexedEngineFailsToOpen(t *testing.T) {
	var opened atomic.Int32
	s := store.New(store.Engines{
		Probe: func() bool { return true },
		OpenIndexed: func(ctx context.Context) (store.Backend, error) {
			return nil, errors.New("version conflict")
		},
		OpenFlat: func(ctx context.Context) (store.Backend, error) {
			opened.Add(1)
			return store.NewFlatStore(testutil.NewFileSlot(0), testutil.DiscardLogger()), nil
		},
	}, store.WithLogger(testutil.DiscardLogger()))
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	_, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food"})
	require.NoError(t, err)

	kind, err := s.Kind(ctx)
	require.NoError(t, err)
	assert.Equal(t, store.KindFlat, kind)
	assert.EqualValues(t, 1, opened.Load())
}

func TestStore_InitializesOnceUnderConcurrentCallers(t *testing.T) {
	var probes, opens atomic.Int32
	s := store.New(store.Engines{
		Probe: func() bool {
			probes.Add(1)
			return false
		},
		OpenIndexed: func(ctx context.Context) (store.Backend, error) {
			return nil, errors.New("unreachable")
		},
		OpenFlat: func(ctx context.Context) (store.Backend, error) {
			opens.Add(1)
			return store.NewFlatStore(testutil.NewFileSlot(0), testutil.DiscardLogger()), nil
		},
	}, store.WithLogger(testutil.DiscardLogger()))
	t.Cleanup(func() { _ = s.Close() })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.GetAllChecklists(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, probes.Load())
	assert.EqualValues(t, 1, opens.Load())
}

func TestStore_NoBackendIsStorageUnavailable(t *testing.T) {
	s := store.New(store.Engines{
		OpenFlat: func(ctx context.Context) (store.Backend, error) {
			return nil, errors.New("no disk")
		},
	}, store.WithLogger(testutil.DiscardLogger()))

	_, err := s.GetAllChecklists(context.Background())
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestStore_ClosedStoreIsUnavailable(t *testing.T) {
	s := testutil.NewStore(t, store.KindFlat)
	require.NoError(t, s.Close())

	_, err := s.GetAllChecklistGroups(context.Background())
	assert.ErrorIs(t, err, store.ErrStorageUnavailable)
}
