package seed_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/seed"
	"github.com/nhle/chckd/internal/testutil"
)

func TestLoad(t *testing.T) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			s := testutil.NewStore(t, kind)

			res, err := seed.Load(ctx, s)
			require.NoError(t, err)
			assert.Equal(t, len(seed.Templates), res.Checklists)

			group, err := s.GetChecklistGroup(ctx, res.GroupID)
			require.NoError(t, err)
			require.NotNil(t, group)
			assert.Equal(t, seed.GroupTitle, group.Title)

			checklists, err := s.GetChecklistsByGroupID(ctx, res.GroupID)
			require.NoError(t, err)
			require.Len(t, checklists, len(seed.Templates))

			items := 0
			done := 0
			for i, c := range checklists {
				tmpl := seed.Templates[i]
				assert.Equal(t, tmpl.Title, c.Title)
				assert.Equal(t, i, c.SortOrder)
				require.Len(t, c.Items, len(tmpl.Items))
				for j, it := range c.Items {
					assert.Equal(t, tmpl.Items[j].Title, it.Title)
					assert.Equal(t, j+1, it.SortOrder)
					assert.Equal(t, tmpl.Items[j].SubItems, it.SubItems)
					if it.IsDone {
						done++
					}
				}
				items += len(c.Items)
			}
			assert.Equal(t, res.Items, items)
			assert.Positive(t, done)
		})
	}
}

func TestLoad_SkipsStoreWithGroups(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t, testutil.Backends[0])

	_, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Mine"})
	require.NoError(t, err)

	_, err = seed.Load(ctx, s)
	assert.ErrorIs(t, err, seed.ErrAlreadySeeded)

	checklists, err := s.GetAllChecklists(ctx)
	require.NoError(t, err)
	assert.Empty(t, checklists)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t, testutil.Backends[1])

	_, err := seed.Load(ctx, s)
	require.NoError(t, err)
	_, err = s.CreateChecklist(ctx, model.ChecklistFields{Title: "Loose"})
	require.NoError(t, err)

	require.NoError(t, seed.Clear(ctx, s))

	groups, err := s.GetAllChecklistGroups(ctx)
	require.NoError(t, err)
	assert.Empty(t, groups)
	checklists, err := s.GetAllChecklists(ctx)
	require.NoError(t, err)
	assert.Empty(t, checklists)

	// Seeding works again once the store is empty.
	_, err = seed.Load(ctx, s)
	require.NoError(t, err)
}
