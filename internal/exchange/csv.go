package exchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// ErrMissingColumn is returned by ReadCSV when the header lacks the
// "Checklist Title" column.
var ErrMissingColumn = errors.New(`missing "Checklist Title" column`)

// WriteCSV writes Header followed by one record per row.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.record()); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Row) record() []string {
	rec := make([]string, len(Header))
	if r.hasGroup() {
		rec[0] = formatID(r.GroupID)
		rec[1] = r.GroupTitle
		rec[2] = r.GroupDescription
		rec[3] = r.GroupIcon
		rec[4] = r.GroupColor
		rec[5] = strconv.Itoa(r.GroupSortOrder)
	}
	if r.hasChecklist() {
		rec[6] = formatID(r.ChecklistID)
		rec[7] = r.ChecklistTitle
		rec[8] = r.ChecklistDescription
		rec[9] = r.ChecklistIcon
		rec[10] = r.ChecklistColor
		rec[11] = strconv.Itoa(r.ChecklistSortOrder)
	}
	if r.hasItem() {
		rec[12] = formatID(r.ItemID)
		rec[13] = r.ItemTitle
		rec[14] = r.ItemDescription
		rec[15] = strconv.FormatBool(r.ItemIsDone)
		rec[16] = r.ItemIcon
		rec[17] = strconv.Itoa(r.ItemSortOrder)
		rec[18] = EncodeSubItems(r.ItemSubItems)
	}
	return rec
}

func formatID(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}

// ReadCSV parses rows written by WriteCSV, or by hand. Columns are located
// by header name, so files with fewer or reordered columns are accepted.
// Records shorter than the header are skipped.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	if !slices.Contains(header, "Checklist Title") {
		return nil, ErrMissingColumn
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}
		if len(rec) < len(header) {
			continue
		}

		col := func(name string) string {
			i := slices.Index(header, name)
			if i < 0 {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}
		row := Row{
			GroupID:              parseID(col("Group ID")),
			GroupTitle:           col("Group Title"),
			GroupDescription:     col("Group Description"),
			GroupIcon:            col("Group Icon"),
			GroupColor:           col("Group Color"),
			GroupSortOrder:       parseInt(col("Group Sort Order")),
			ChecklistID:          parseID(col("Checklist ID")),
			ChecklistTitle:       col("Checklist Title"),
			ChecklistDescription: col("Checklist Description"),
			ChecklistIcon:        col("Checklist Icon"),
			ChecklistColor:       col("Checklist Color"),
			ChecklistSortOrder:   parseInt(col("Checklist Sort Order")),
			ItemID:               parseID(col("Item ID")),
			ItemTitle:            col("Item Title"),
			ItemDescription:      col("Item Description"),
			ItemIsDone:           strings.EqualFold(col("Item Is Done"), "true"),
			ItemIcon:             col("Item Icon"),
			ItemSortOrder:        parseInt(col("Item Sort Order")),
			ItemSubItems:         DecodeSubItems(col("Item Sub Items")),
		}
		if !row.hasGroup() && !row.hasChecklist() {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseID(s string) int64 {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
