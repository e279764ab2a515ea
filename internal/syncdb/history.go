package syncdb

import (
	"database/sql"
	"fmt"
	"time"
)

// PushRecord represents one mirror push.
type PushRecord struct {
	ID           int64
	CompanyID    string
	RemoteKey    string
	RecordCount  int
	PayloadBytes int
	PushedAt     time.Time
}

// History manages push history operations.
type History struct {
	conn *Connection
}

// NewHistory creates a new History instance.
func NewHistory(conn *Connection) *History {
	return &History{conn: conn}
}

// RecordPush records one completed mirror push.
func (h *History) RecordPush(record PushRecord) error {
	query := `
		INSERT INTO push_history (company_id, remote_key, record_count, payload_bytes)
		VALUES (?, ?, ?, ?)
	`

	_, err := h.conn.Exec(query,
		record.CompanyID,
		record.RemoteKey,
		record.RecordCount,
		record.PayloadBytes,
	)

	if err != nil {
		return fmt.Errorf("failed to record push: %w", err)
	}

	return nil
}

// RecentPushes retrieves the most recent pushes for a company, newest
// first. A zero limit returns everything.
func (h *History) RecentPushes(companyID string, limit int) ([]PushRecord, error) {
	query := `
		SELECT id, company_id, remote_key, record_count, payload_bytes, pushed_at
		FROM push_history
		WHERE company_id = ?
		ORDER BY pushed_at DESC, id DESC
	`
	args := []interface{}{companyID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := h.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get push history: %w", err)
	}
	defer rows.Close()

	var records []PushRecord
	for rows.Next() {
		var record PushRecord
		if err := rows.Scan(
			&record.ID,
			&record.CompanyID,
			&record.RemoteKey,
			&record.RecordCount,
			&record.PayloadBytes,
			&record.PushedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan push record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Stats represents push statistics.
type Stats struct {
	TotalPushes int
	TotalBytes  int64
	LastPush    sql.NullString
}

// GetStats retrieves push statistics.
func (h *History) GetStats() (*Stats, error) {
	var stats Stats

	err := h.conn.QueryRow(`SELECT COUNT(*), COALESCE(SUM(payload_bytes), 0) FROM push_history`).
		Scan(&stats.TotalPushes, &stats.TotalBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to get push count: %w", err)
	}

	err = h.conn.QueryRow(`SELECT MAX(pushed_at) FROM push_history`).Scan(&stats.LastPush)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get last push time: %w", err)
	}

	return &stats, nil
}

// GetMetadata retrieves a metadata value.
func (h *History) GetMetadata(key string) (string, error) {
	query := `SELECT value FROM sync_metadata WHERE key = ?`

	var value string
	err := h.conn.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata: %w", err)
	}

	return value, nil
}

// SetMetadata sets a metadata value.
func (h *History) SetMetadata(key, value string) error {
	query := `
		INSERT INTO sync_metadata (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := h.conn.Exec(query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata: %w", err)
	}

	return nil
}
