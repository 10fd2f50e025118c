package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/user/phishguard/internal/model"
)

// LogStorage handles threat log persistence.
type LogStorage struct {
	db *DB
}

// NewLogStorage creates a new threat log storage handler.
func NewLogStorage(db *DB) *LogStorage {
	return &LogStorage{db: db}
}

// NewScanID mints a scan id with the per-type prefix, e.g. URL-3FA2B1.
// Ids are never reused; the uuid source makes collisions implausible and
// the UNIQUE constraint rejects them outright.
func NewScanID(t model.ScanType) string {
	prefix := "URL"
	switch t {
	case model.ScanTypeFile:
		prefix = "FILE"
	case model.ScanTypeExtension:
		prefix = "EXT"
	}
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", prefix, raw[:6])
}

// Insert appends a completed scan to the log.
func (s *LogStorage) Insert(r *model.ScanRecord) error {
	if r.ID == "" {
		r.ID = NewScanID(r.Type)
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now().UTC()
	}

	query := `INSERT INTO threat_logs
			  (scan_id, timestamp, scan_type, target_payload, prediction, confidence, details, hash)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		r.ID, r.Timestamp.UTC().Format(time.RFC3339Nano), string(r.Type),
		r.Target, string(r.Result), r.Confidence, r.Details, r.Hash)
	if err != nil {
		return fmt.Errorf("failed to insert log: %w", err)
	}
	return nil
}

// List returns the most recent records, newest insertion first. Display
// ordering by timestamp is the caller's concern.
func (s *LogStorage) List(limit int) ([]model.ScanRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT scan_id, timestamp, scan_type, target_payload, prediction, confidence, details, hash
			  FROM threat_logs ORDER BY id DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var records []model.ScanRecord
	for rows.Next() {
		var r model.ScanRecord
		var ts string
		var details, hash sql.NullString

		if err := rows.Scan(&r.ID, &ts, &r.Type, &r.Target, &r.Result,
			&r.Confidence, &details, &hash); err != nil {
			return nil, fmt.Errorf("failed to scan log row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.Timestamp = t
		}
		if details.Valid {
			r.Details = details.String
		}
		if hash.Valid {
			r.Hash = hash.String
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Delete removes a record by scan id. Returns false when no row matched;
// that is not an error.
func (s *LogStorage) Delete(scanID string) (bool, error) {
	result, err := s.db.Exec("DELETE FROM threat_logs WHERE scan_id = ?", scanID)
	if err != nil {
		return false, fmt.Errorf("failed to delete log: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// CountByType returns the number of records with the given scan type.
func (s *LogStorage) CountByType(t model.ScanType) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM threat_logs WHERE scan_type = ?", string(t)).Scan(&count)
	return count, err
}
