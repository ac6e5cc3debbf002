package store

// migration represents a single schema migration.
type migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered list of all schema migrations.
var migrations = []migration{
	{
		Version: 1,
		Name:    "create argument templates",
		SQL: `
			CREATE TABLE templates (
				key         TEXT PRIMARY KEY,
				content     TEXT NOT NULL,
				created_at  TEXT NOT NULL DEFAULT (datetime('now')),
				updated_at  TEXT NOT NULL DEFAULT (datetime('now'))
			);
		`,
	},
	{
		Version: 2,
		Name:    "index templates by update time",
		SQL: `
			CREATE INDEX idx_templates_updated ON templates (updated_at);
		`,
	},
}
