package database

import "database/sql"

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sale (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_date TEXT NOT NULL,
		amount INTEGER NOT NULL,
		payment_type TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now')),
		sync_status INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS weather (
		date TEXT PRIMARY KEY,
		avg_temp REAL NOT NULL,
		min_temp REAL NOT NULL,
		max_temp REAL NOT NULL,
		one_hour_rain REAL NOT NULL DEFAULT 0,
		sum_rain REAL NOT NULL DEFAULT 0,
		avg_humidity REAL NOT NULL,
		summary TEXT
	);

	CREATE TABLE IF NOT EXISTS sale_statistics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		period_type TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		payment_type TEXT NOT NULL,
		total_amount INTEGER NOT NULL,
		transaction_count INTEGER NOT NULL,
		avg_amount REAL NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sale_input_date ON sale(input_date);
	CREATE INDEX IF NOT EXISTS idx_sale_payment_type ON sale(payment_type);
	CREATE INDEX IF NOT EXISTS idx_sale_sync_status ON sale(sync_status);
	CREATE INDEX IF NOT EXISTS idx_statistics_period ON sale_statistics(period_type, period_start, period_end);
	CREATE INDEX IF NOT EXISTS idx_statistics_payment_type ON sale_statistics(payment_type);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return err
	}

	// Migration: add columns introduced after the first release (ignore
	// errors for columns that already exist)
	migrations := []string{
		`ALTER TABLE sale ADD COLUMN sync_status INTEGER DEFAULT 0`,
		`ALTER TABLE weather ADD COLUMN one_hour_rain REAL DEFAULT 0`,
		`ALTER TABLE weather ADD COLUMN summary TEXT`,
	}

	for _, m := range migrations {
		db.Exec(m)
	}

	// Backfill rows that predate sync tracking
	db.Exec(`UPDATE sale SET sync_status = 0 WHERE sync_status IS NULL`)

	return nil
}
