package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    at               TEXT NOT NULL,
    total_daily_cost REAL NOT NULL,
    total_in_horizon REAL NOT NULL,
    active_servers   INTEGER NOT NULL,
    horizon_days     INTEGER NOT NULL,
    mode             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_at ON snapshots(at);
`
