package model

// GroupFields are the caller-supplied fields of a new group.
type GroupFields struct {
	Title       string
	Description string
	Icon        string
	Color       string
}

// ChecklistFields are the caller-supplied fields of a new checklist.
// A nil GroupID creates an ungrouped checklist.
type ChecklistFields struct {
	Title       string
	Description string
	Icon        string
	Color       string
	GroupID     *int64
}

// ItemFields are the caller-supplied fields of a new item. Unlike groups and
// checklists, the caller picks the item's SortOrder.
type ItemFields struct {
	ChecklistID int64
	Title       string
	Description string
	IsDone      bool
	Icon        string
	SubItems    []string
	SortOrder   int
}

// GroupPatch is a partial update; nil fields are left untouched.
type GroupPatch struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
}

// ChecklistPatch is a partial update; nil fields are left untouched.
// Ungroup moves the checklist out of its group and takes precedence over GroupID.
type ChecklistPatch struct {
	Title       *string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
	GroupID     *int64
	Ungroup     bool
}

// ItemPatch is a partial update; nil fields are left untouched.
type ItemPatch struct {
	ChecklistID *int64
	Title       *string
	Description *string
	IsDone      *bool
	Icon        *string
	SubItems    *[]string
	SortOrder   *int
}

// Apply merges the patch over g.
func (p GroupPatch) Apply(g *ChecklistGroup) {
	setIf(&g.Title, p.Title)
	setIf(&g.Description, p.Description)
	setIf(&g.Icon, p.Icon)
	setIf(&g.Color, p.Color)
	setIf(&g.SortOrder, p.SortOrder)
}

// Apply merges the patch over c.
func (p ChecklistPatch) Apply(c *Checklist) {
	setIf(&c.Title, p.Title)
	setIf(&c.Description, p.Description)
	setIf(&c.Icon, p.Icon)
	setIf(&c.Color, p.Color)
	setIf(&c.SortOrder, p.SortOrder)
	switch {
	case p.Ungroup:
		c.GroupID = nil
	case p.GroupID != nil:
		id := *p.GroupID
		c.GroupID = &id
	}
}

// Apply merges the patch over it.
func (p ItemPatch) Apply(it *ChecklistItem) {
	setIf(&it.ChecklistID, p.ChecklistID)
	setIf(&it.Title, p.Title)
	setIf(&it.Description, p.Description)
	setIf(&it.IsDone, p.IsDone)
	setIf(&it.Icon, p.Icon)
	if p.SubItems != nil {
		it.SubItems = append([]string(nil), (*p.SubItems)...)
	}
	setIf(&it.SortOrder, p.SortOrder)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T { return &v }
