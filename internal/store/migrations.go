package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// SchemaVersion is the newest schema this build understands.
const SchemaVersion = 3

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS checklists (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	icon        TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS checklist_items (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	checklist_id INTEGER NOT NULL,
	title        TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	is_done      INTEGER NOT NULL DEFAULT 0 CHECK(is_done IN (0, 1)),
	icon         TEXT NOT NULL DEFAULT '',
	sort_order   INTEGER NOT NULL DEFAULT 0,
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_checklists_title ON checklists(title);
CREATE INDEX IF NOT EXISTS idx_checklists_created_at ON checklists(created_at);
CREATE INDEX IF NOT EXISTS idx_checklists_updated_at ON checklists(updated_at);
CREATE INDEX IF NOT EXISTS idx_checklist_items_checklist_id ON checklist_items(checklist_id);
CREATE INDEX IF NOT EXISTS idx_checklist_items_sort_order ON checklist_items(sort_order);
CREATE INDEX IF NOT EXISTS idx_checklist_items_created_at ON checklist_items(created_at);
CREATE INDEX IF NOT EXISTS idx_checklist_items_updated_at ON checklist_items(updated_at);
`,
	},
	{
		// Rows created before v2 keep a NULL sort_order until the Store's
		// soft migration assigns one.
		version: 2,
		sql: `
ALTER TABLE checklists ADD COLUMN description TEXT NOT NULL DEFAULT '';
ALTER TABLE checklists ADD COLUMN sort_order INTEGER;
ALTER TABLE checklist_items ADD COLUMN sub_items TEXT NOT NULL DEFAULT '[]';

CREATE INDEX IF NOT EXISTS idx_checklists_sort_order ON checklists(sort_order);
`,
	},
	{
		version: 3,
		sql: `
CREATE TABLE IF NOT EXISTS checklist_groups (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	icon        TEXT NOT NULL DEFAULT '',
	color       TEXT NOT NULL DEFAULT '',
	sort_order  INTEGER NOT NULL DEFAULT 0,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

ALTER TABLE checklists ADD COLUMN group_id INTEGER;

CREATE INDEX IF NOT EXISTS idx_checklists_group_id ON checklists(group_id);
CREATE INDEX IF NOT EXISTS idx_checklist_groups_title ON checklist_groups(title);
CREATE INDEX IF NOT EXISTS idx_checklist_groups_sort_order ON checklist_groups(sort_order);
CREATE INDEX IF NOT EXISTS idx_checklist_groups_created_at ON checklist_groups(created_at);
CREATE INDEX IF NOT EXISTS idx_checklist_groups_updated_at ON checklist_groups(updated_at);
`,
	},
}
