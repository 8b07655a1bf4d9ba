// Package exchange moves checklists in and out of the store as flat CSV
// rows: one row per item, with the owning checklist and group repeated on
// every row.
package exchange

import (
	"encoding/json"
	"strings"
)

// Header is the column layout written by WriteCSV.
var Header = []string{
	"Group ID", "Group Title", "Group Description", "Group Icon", "Group Color", "Group Sort Order",
	"Checklist ID", "Checklist Title", "Checklist Description", "Checklist Icon", "Checklist Color", "Checklist Sort Order",
	"Item ID", "Item Title", "Item Description", "Item Is Done", "Item Icon", "Item Sort Order", "Item Sub Items",
}

// Row is one exported line. A row without an item stands for an empty
// checklist; a row without a checklist stands for an empty group. Zero ids
// mean "absent".
type Row struct {
	GroupID          int64
	GroupTitle       string
	GroupDescription string
	GroupIcon        string
	GroupColor       string
	GroupSortOrder   int

	ChecklistID          int64
	ChecklistTitle       string
	ChecklistDescription string
	ChecklistIcon        string
	ChecklistColor       string
	ChecklistSortOrder   int

	ItemID          int64
	ItemTitle       string
	ItemDescription string
	ItemIsDone      bool
	ItemIcon        string
	ItemSortOrder   int
	ItemSubItems    []string
}

func (r Row) hasGroup() bool     { return r.GroupID != 0 || r.GroupTitle != "" }
func (r Row) hasChecklist() bool { return r.ChecklistID != 0 || r.ChecklistTitle != "" }
func (r Row) hasItem() bool      { return r.ItemTitle != "" }

// EncodeSubItems renders sub-items as a JSON list, or "" when there are none.
func EncodeSubItems(subItems []string) string {
	if len(subItems) == 0 {
		return ""
	}
	data, err := json.Marshal(subItems)
	if err != nil {
		return ""
	}
	return string(data)
}

// DecodeSubItems parses a JSON list. Hand-edited files that hold plain text
// are split on ";" or, failing that, ",". Blank entries are dropped.
func DecodeSubItems(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(s, "[") && json.Unmarshal([]byte(s), &parts) == nil {
		return compact(parts)
	}

	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	return compact(strings.Split(s, sep))
}

func compact(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
