package testutil

import (
	"database/sql"
	"testing"

	"github.com/pratik-mahalle/campwatch/internal/repository/postgres"
	_ "modernc.org/sqlite"
)

// NewTestDB creates an in-memory SQLite database with the campwatch
// schema for repository tests.
func NewTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS campaigns (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name VARCHAR(255) NOT NULL,
		platform_id VARCHAR(255),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS triggers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campaign_id INTEGER NOT NULL,
		metric VARCHAR(20) NOT NULL,
		operator VARCHAR(2) NOT NULL,
		threshold DOUBLE PRECISION NOT NULL,
		mode VARCHAR(20) NOT NULL DEFAULT 'absolute',
		duration_hours INTEGER NOT NULL,
		suppression_hours INTEGER NOT NULL DEFAULT 0,
		severity VARCHAR(20) NOT NULL DEFAULT 'info',
		name VARCHAR(255),
		custom_message TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS metrics (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		campaign_id INTEGER NOT NULL,
		ts TIMESTAMP NOT NULL,
		impressions INTEGER NOT NULL DEFAULT 0,
		clicks INTEGER NOT NULL DEFAULT 0,
		spend DOUBLE PRECISION NOT NULL DEFAULT 0,
		revenue DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_metrics_campaign_ts ON metrics(campaign_id, ts);

	CREATE TABLE IF NOT EXISTS alerts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		trigger_id INTEGER NOT NULL,
		campaign_id INTEGER NOT NULL,
		metric VARCHAR(20) NOT NULL,
		value DOUBLE PRECISION NOT NULL,
		message TEXT NOT NULL,
		severity VARCHAR(20) NOT NULL DEFAULT 'info',
		notified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (trigger_id) REFERENCES triggers(id) ON DELETE CASCADE,
		FOREIGN KEY (campaign_id) REFERENCES campaigns(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_alerts_trigger_created ON alerts(trigger_id, created_at);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return postgres.NewDB(db, "sqlite")
}
