package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/abrsjh/harvest"
)

// Compile-time interface verification.
var (
	_ harvest.RecordWriter = (*RecordStore)(nil)
	_ harvest.RecordReader = (*RecordStore)(nil)
)

// RecordStore persists scraped records in the records table. Records
// with identical content are stored once; the content hash acts as the
// dedup key.
type RecordStore struct {
	db   *DB
	kind harvest.Kind

	// append keeps rows from previous runs. When false the first Write
	// clears existing rows of the same kind.
	append bool

	mu      sync.Mutex
	cleared bool
}

// NewRecordStore creates a RecordStore for the given record kind.
func NewRecordStore(db *DB, kind harvest.Kind, append bool) *RecordStore {
	return &RecordStore{db: db, kind: kind, append: append}
}

// hashRecord computes xxHash of the record's canonical JSON encoding
// and returns it as a hex string. Map keys marshal in sorted order, so
// equal records always hash the same.
func hashRecord(data []byte) string {
	h := xxhash.Sum64(data)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// Write stores records, skipping any whose content is already present.
func (s *RecordStore) Write(ctx context.Context, records []harvest.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.append && !s.cleared {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM records WHERE kind = ?", string(s.kind)); err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "clear records: %v", err)
		}
		s.cleared = true
	}

	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "encode record: %v", err)
		}

		scrapedAt := rec.String("scraped_at")
		if scrapedAt == "" {
			scrapedAt = time.Now().UTC().Format(time.RFC3339)
		}

		_, err = s.db.ExecContext(ctx, `
			INSERT OR IGNORE INTO records (id, kind, source_url, data, content_hash, scraped_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), string(s.kind), rec.String("url"), string(data), hashRecord(data), scrapedAt)
		if err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "insert record: %v", err)
		}
	}

	return nil
}

// Close is a no-op; the DB owns the connection.
func (s *RecordStore) Close() error {
	return nil
}

// Read returns all stored records of the store's kind in insertion order.
func (s *RecordStore) Read(ctx context.Context) ([]harvest.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM records WHERE kind = ? ORDER BY scraped_at ASC, id ASC", string(s.kind))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINTERNAL, "query records: %v", err)
	}
	defer rows.Close()

	var records []harvest.Record
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec harvest.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, harvest.Errorf(harvest.EINTERNAL, "decode record: %v", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// StoredRecord is a record together with its storage metadata.
type StoredRecord struct {
	ID          string
	Kind        harvest.Kind
	SourceURL   string
	ContentHash string
	ScrapedAt   time.Time
	Record      harvest.Record
}

// RecordFilter selects stored records in FindRecords.
type RecordFilter struct {
	Kind      *harvest.Kind
	SourceURL *string
	Limit     int
	Offset    int
}

// FindRecords retrieves stored records matching the filter, newest first.
func (s *RecordStore) FindRecords(ctx context.Context, filter RecordFilter) ([]*StoredRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, kind, source_url, data, content_hash, scraped_at FROM records WHERE 1=1")

	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY scraped_at DESC, id DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query.WriteString(" OFFSET ?")
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stored []*StoredRecord
	for rows.Next() {
		var sr StoredRecord
		var kind, data, scrapedAt string

		if err := rows.Scan(&sr.ID, &kind, &sr.SourceURL, &data, &sr.ContentHash, &scrapedAt); err != nil {
			return nil, err
		}
		sr.Kind = harvest.Kind(kind)
		if err := json.Unmarshal([]byte(data), &sr.Record); err != nil {
			return nil, harvest.Errorf(harvest.EINTERNAL, "decode record: %v", err)
		}
		sr.ScrapedAt, err = time.Parse(time.RFC3339, scrapedAt)
		if err != nil {
			return nil, harvest.Errorf(harvest.EINTERNAL, "parse scraped_at: %v", err)
		}

		stored = append(stored, &sr)
	}

	return stored, rows.Err()
}

// CountRecords returns the number of stored records of the given kind.
func (s *RecordStore) CountRecords(ctx context.Context, kind harvest.Kind) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM records WHERE kind = ?", string(kind)).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return count, nil
}
