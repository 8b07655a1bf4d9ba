package exchange_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/chckd/internal/exchange"
	"github.com/nhle/chckd/internal/model"
	"github.com/nhle/chckd/internal/store"
	"github.com/nhle/chckd/internal/testutil"
)

func populate(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()

	camp, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp", Description: "Tents, stoves, etc.", Color: "#1d93c8"})
	require.NoError(t, err)
	_, err = s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Empty"})
	require.NoError(t, err)

	gear, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", GroupID: &camp})
	require.NoError(t, err)
	_, err = s.CreateChecklistItem(ctx, model.ItemFields{
		ChecklistID: gear, Title: "Tent", Description: `Say "dry"`, SubItems: []string{"Poles", "Stakes, spare"}, SortOrder: 1,
	})
	require.NoError(t, err)
	_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: gear, Title: "Stove", IsDone: true, SortOrder: 2})
	require.NoError(t, err)

	_, err = s.CreateChecklist(ctx, model.ChecklistFields{Title: "Nothing yet", GroupID: &camp})
	require.NoError(t, err)

	food, err := s.CreateChecklist(ctx, model.ChecklistFields{Title: "Food", Icon: "restaurant"})
	require.NoError(t, err)
	_, err = s.CreateChecklistItem(ctx, model.ItemFields{ChecklistID: food, Title: "Rice"})
	require.NoError(t, err)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t, store.KindFlat)
	populate(t, s)

	rows, err := exchange.Export(ctx, s, exchange.Selection{})
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "Camp", rows[0].GroupTitle)
	assert.Equal(t, "Gear", rows[0].ChecklistTitle)
	assert.Equal(t, "Tent", rows[0].ItemTitle)
	assert.Equal(t, []string{"Poles", "Stakes, spare"}, rows[0].ItemSubItems)
	assert.Equal(t, "Stove", rows[1].ItemTitle)
	assert.True(t, rows[1].ItemIsDone)
	assert.Equal(t, "Nothing yet", rows[2].ChecklistTitle)
	assert.Empty(t, rows[2].ItemTitle)
	assert.Equal(t, "Empty", rows[3].GroupTitle)
	assert.Empty(t, rows[3].ChecklistTitle)
	assert.Zero(t, rows[4].GroupID)
	assert.Equal(t, "Food", rows[4].ChecklistTitle)
	assert.Equal(t, "Rice", rows[4].ItemTitle)
}

func TestExport_Selection(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t, store.KindIndexed)
	populate(t, s)

	rows, err := exchange.Export(ctx, s, exchange.Selection{GroupIDs: []int64{}, ChecklistIDs: []int64{3}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Food", rows[0].ChecklistTitle)
}

func TestCSV_RoundTripsThroughImport(t *testing.T) {
	ctx := context.Background()
	src := testutil.NewStore(t, store.KindIndexed)
	populate(t, src)

	rows, err := exchange.Export(ctx, src, exchange.Selection{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, exchange.WriteCSV(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "Group ID,Group Title,"))

	parsed, err := exchange.ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(rows))

	dst := testutil.NewStore(t, store.KindFlat)
	sum, err := exchange.Import(ctx, dst, parsed, exchange.Options{})
	require.NoError(t, err)
	assert.Equal(t, exchange.Summary{Groups: 2, Checklists: 3, Items: 3}, sum)

	again, err := exchange.Export(ctx, dst, exchange.Selection{})
	require.NoError(t, err)
	require.Len(t, again, len(rows))
	for i := range rows {
		assert.Equal(t, rows[i].GroupTitle, again[i].GroupTitle)
		assert.Equal(t, rows[i].GroupDescription, again[i].GroupDescription)
		assert.Equal(t, rows[i].ChecklistTitle, again[i].ChecklistTitle)
		assert.Equal(t, rows[i].ChecklistIcon, again[i].ChecklistIcon)
		assert.Equal(t, rows[i].ItemTitle, again[i].ItemTitle)
		assert.Equal(t, rows[i].ItemDescription, again[i].ItemDescription)
		assert.Equal(t, rows[i].ItemIsDone, again[i].ItemIsDone)
		assert.Equal(t, rows[i].ItemSortOrder, again[i].ItemSortOrder)
		assert.Equal(t, rows[i].ItemSubItems, again[i].ItemSubItems)
	}
}

func TestImport_Overwrite(t *testing.T) {
	for _, kind := range testutil.Backends {
		t.Run(string(kind), func(t *testing.T) {
			ctx := context.Background()
			s := testutil.NewStore(t, kind)

			camp, err := s.CreateChecklistGroup(ctx, model.GroupFields{Title: "Camp"})
			require.NoError(t, err)
			_, err = s.CreateChecklist(ctx, model.ChecklistFields{Title: "Gear", GroupID: &camp})
			require.NoError(t, err)
			_, err = s.CreateChecklist(ctx, model.ChecklistFields{Title: "Old"})
			require.NoError(t, err)

			rows, err := exchange.Export(ctx, s, exchange.Selection{GroupIDs: []int64{camp}, ChecklistIDs: []int64{}})
			require.NoError(t, err)

			sum, err := exchange.Import(ctx, s, rows, exchange.Options{Overwrite: true})
			require.NoError(t, err)
			assert.Equal(t, exchange.Summary{Groups: 1, Checklists: 1}, sum)

			groups, err := s.GetAllChecklistGroups(ctx)
			require.NoError(t, err)
			require.Len(t, groups, 1)
			assert.Equal(t, "Camp", groups[0].Title)
			assert.NotEqual(t, camp, groups[0].ID)

			old, err := s.GetChecklistGroup(ctx, camp)
			require.NoError(t, err)
			assert.Nil(t, old)

			all, err := s.GetAllChecklists(ctx)
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "Gear", all[0].Title)
			require.NotNil(t, all[0].GroupID)
			assert.Equal(t, groups[0].ID, *all[0].GroupID)
		})
	}
}

func TestImport_StopsOnInvalidRow(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStore(t, store.KindFlat)

	_, err := exchange.Import(ctx, s, []exchange.Row{{ChecklistID: 9}}, exchange.Options{})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestReadCSV(t *testing.T) {
	t.Run("legacy columns", func(t *testing.T) {
		in := "Checklist ID,Checklist Title,Checklist Icon,Checklist Color,Checklist Sort Order,Item ID,Item Title,Item Description,Item Is Done,Item Icon,Item Sort Order\n" +
			"1,Food,restaurant,,0,1,Rice,\"Long, grain\",TRUE,,2\n" +
			"1,Food,restaurant,,0\n"
		rows, err := exchange.ReadCSV(strings.NewReader(in))
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Food", rows[0].ChecklistTitle)
		assert.Equal(t, "Long, grain", rows[0].ItemDescription)
		assert.True(t, rows[0].ItemIsDone)
		assert.Equal(t, 2, rows[0].ItemSortOrder)
	})

	t.Run("missing title column", func(t *testing.T) {
		_, err := exchange.ReadCSV(strings.NewReader("Title,Icon\nx,y\n"))
		assert.ErrorIs(t, err, exchange.ErrMissingColumn)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := exchange.ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, exchange.ErrMissingColumn)
	})
}

func TestSubItemsCodec(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: nil},
		{in: `["Poles","Stakes, spare"]`, want: []string{"Poles", "Stakes, spare"}},
		{in: `[" a ", ""]`, want: []string{"a"}},
		{in: "Poles; Stakes, spare", want: []string{"Poles", "Stakes, spare"}},
		{in: "Poles, Stakes", want: []string{"Poles", "Stakes"}},
		{in: "[not json", want: []string{"[not json"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, exchange.DecodeSubItems(tt.in), "input %q", tt.in)
	}

	assert.Empty(t, exchange.EncodeSubItems(nil))
	assert.Equal(t, `["a","b"]`, exchange.EncodeSubItems([]string{"a", "b"}))
}
