package syncdb

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Push history table
-- Tracks which company snapshots have been pushed to the remote mirror
CREATE TABLE IF NOT EXISTS push_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    company_id TEXT NOT NULL,          -- Company the snapshot belongs to
    remote_key TEXT NOT NULL,          -- Key the blob was stored under
    record_count INTEGER NOT NULL,     -- Records contained in the snapshot
    payload_bytes INTEGER NOT NULL,    -- Size of the JSON blob sent
    pushed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_push_history_company
    ON push_history(company_id);

-- Sync metadata table
-- Stores key-value metadata about sync operations
CREATE TABLE IF NOT EXISTS sync_metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
