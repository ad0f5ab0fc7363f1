package database

// migration moves the schema from version-1 to version.
type migration struct {
	version int
	name    string
	sql     string
}

// SchemaVersion is the schema this build writes.
var SchemaVersion = migrations[len(migrations)-1].version

var migrations = []migration{
	{
		version: 1,
		name:    "runs_and_recolors",
		sql: `
			-- Runs table: one row per generate + discover
			CREATE TABLE runs (
				id TEXT PRIMARY KEY,
				seed INTEGER NOT NULL,
				size INTEGER NOT NULL,
				land_ratio INTEGER NOT NULL,
				island_count INTEGER NOT NULL,
				discovery_ms REAL NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX idx_runs_created ON runs(created_at);

			-- Recolors table: every island repaint requested on a run
			CREATE TABLE recolors (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL,
				cell_row INTEGER NOT NULL,
				cell_col INTEGER NOT NULL,
				color TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_recolors_run ON recolors(run_id);
		`,
	},
}
