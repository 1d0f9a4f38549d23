package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
//
// day_slots is deliberately nullable: SQL NULL means "no day restriction"
// while '[]' means "explicitly no days". The distinction is load-bearing
// for schedule resolution and must survive storage round-trips.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS medications (
	id                TEXT PRIMARY KEY,
	user_id           TEXT NOT NULL,
	name              TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	dose_method       TEXT NOT NULL DEFAULT 'daily',
	dose_unit         TEXT NOT NULL DEFAULT '',
	amount_per_intake REAL NOT NULL DEFAULT 0,
	times_per_day     INTEGER NOT NULL DEFAULT 0,
	total_amount      REAL NOT NULL DEFAULT 0,
	dose_amount       REAL NOT NULL DEFAULT 0,
	day_slots         TEXT,
	time_slots        TEXT NOT NULL DEFAULT '[]',
	memo              TEXT NOT NULL DEFAULT '',
	created_at        DATETIME NOT NULL,
	updated_at        DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS dose_records (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	medication_id TEXT NOT NULL REFERENCES medications(id) ON DELETE CASCADE,
	user_id       TEXT NOT NULL,
	record_date   TEXT NOT NULL,
	taken_at      DATETIME NOT NULL,
	status        TEXT NOT NULL,
	amount        REAL NOT NULL DEFAULT 0,
	memo          TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS meal_records (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	user_id     TEXT NOT NULL,
	record_date TEXT NOT NULL,
	meal_time   TEXT NOT NULL DEFAULT '',
	meal_type   TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_medications_user ON medications(user_id);
CREATE INDEX IF NOT EXISTS idx_dose_records_medication ON dose_records(medication_id);
CREATE INDEX IF NOT EXISTS idx_dose_records_user_date ON dose_records(user_id, record_date);
CREATE INDEX IF NOT EXISTS idx_meal_records_user_date ON meal_records(user_id, record_date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
