// Package storage provides persistent storage for parsed booking
// drafts.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"ticketparser/internal/booking"
)

// DraftRecord is a stored booking draft with its source document text.
type DraftRecord struct {
	ID                  int64
	AirlineCode         string
	ReservationNumber   string
	JourneyType         string
	BookingDate         string
	TotalSeats          int
	IsGroupBooking      bool
	NeedsPassengerInput bool
	RawText             string
	DraftJSON           string
	CreatedAt           string
}

// Draft unmarshals the stored draft value.
func (r *DraftRecord) Draft() (*booking.Draft, error) {
	var d booking.Draft
	if err := json.Unmarshal([]byte(r.DraftJSON), &d); err != nil {
		return nil, fmt.Errorf("unmarshal draft: %w", err)
	}
	return &d, nil
}

// DB wraps a SQLite database connection for draft storage.
type DB struct {
	db *sql.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		airline_code TEXT NOT NULL,
		reservation_number TEXT,
		journey_type TEXT NOT NULL,
		booking_date TEXT,
		total_seats INTEGER NOT NULL DEFAULT 0,
		is_group_booking INTEGER NOT NULL DEFAULT 0,
		needs_passenger_input INTEGER NOT NULL DEFAULT 0,
		raw_text TEXT NOT NULL,
		draft_json TEXT NOT NULL,
		created_at TEXT DEFAULT (datetime('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_drafts_airline ON drafts(airline_code);
	CREATE INDEX IF NOT EXISTS idx_drafts_reservation ON drafts(reservation_number);
	CREATE INDEX IF NOT EXISTS idx_drafts_incomplete ON drafts(needs_passenger_input);

	-- FTS5 virtual table for full-text search on source document text.
	CREATE VIRTUAL TABLE IF NOT EXISTS drafts_fts USING fts5(
		raw_text,
		content='drafts',
		content_rowid='id'
	);

	CREATE TRIGGER IF NOT EXISTS drafts_ai AFTER INSERT ON drafts BEGIN
		INSERT INTO drafts_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS drafts_ad AFTER DELETE ON drafts BEGIN
		INSERT INTO drafts_fts(drafts_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
	END;

	CREATE TRIGGER IF NOT EXISTS drafts_au AFTER UPDATE ON drafts BEGIN
		INSERT INTO drafts_fts(drafts_fts, rowid, raw_text) VALUES('delete', old.id, old.raw_text);
		INSERT INTO drafts_fts(rowid, raw_text) VALUES (new.id, new.raw_text);
	END;
	`

	_, err := db.Exec(schema)
	return err
}

// Insert stores a parsed draft along with its source document text.
func (d *DB) Insert(draft *booking.Draft, rawText string) (int64, error) {
	draftJSON, err := json.Marshal(draft)
	if err != nil {
		return 0, fmt.Errorf("marshal draft: %w", err)
	}

	result, err := d.db.Exec(`
		INSERT INTO drafts (airline_code, reservation_number, journey_type, booking_date, total_seats, is_group_booking, needs_passenger_input, raw_text, draft_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, draft.AirlineCode, draft.ReservationNumber, draft.JourneyType, draft.BookingDate,
		draft.TotalSeats, boolInt(draft.IsGroupBooking), boolInt(draft.NeedsPassengerInput),
		rawText, string(draftJSON))
	if err != nil {
		return 0, fmt.Errorf("insert draft: %w", err)
	}

	return result.LastInsertId()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// QueryParams contains filtering options for querying drafts.
type QueryParams struct {
	ID          int64  // Filter by specific draft ID.
	AirlineCode string // Filter by airline code (exact match).
	Reservation string // Filter by reservation number (exact match).
	Incomplete  bool   // Only drafts flagged for passenger input.
	FullText    string // FTS5 full-text search on raw_text.
	Limit       int    // Max results (default 100).
	Offset      int    // Pagination offset.
}

// Query retrieves drafts matching the given parameters, newest first.
func (d *DB) Query(p QueryParams) ([]DraftRecord, error) {
	var conditions []string
	var args []interface{}

	if p.ID != 0 {
		conditions = append(conditions, "id = ?")
		args = append(args, p.ID)
	}
	if p.AirlineCode != "" {
		conditions = append(conditions, "airline_code = ?")
		args = append(args, p.AirlineCode)
	}
	if p.Reservation != "" {
		conditions = append(conditions, "reservation_number = ?")
		args = append(args, p.Reservation)
	}
	if p.Incomplete {
		conditions = append(conditions, "needs_passenger_input = 1")
	}

	var query string
	if p.FullText != "" {
		query = `SELECT d.id, d.airline_code, d.reservation_number, d.journey_type,
				d.booking_date, d.total_seats, d.is_group_booking, d.needs_passenger_input,
				d.raw_text, d.draft_json, d.created_at
				FROM drafts d
				JOIN drafts_fts fts ON d.id = fts.rowid
				WHERE drafts_fts MATCH ?`
		args = append([]interface{}{p.FullText}, args...)
		if len(conditions) > 0 {
			query += " AND " + strings.Join(conditions, " AND ")
		}
	} else {
		query = `SELECT id, airline_code, reservation_number, journey_type,
				booking_date, total_seats, is_group_booking, needs_passenger_input,
				raw_text, draft_json, created_at
				FROM drafts`
		if len(conditions) > 0 {
			query += " WHERE " + strings.Join(conditions, " AND ")
		}
	}

	limit := 100
	if p.Limit > 0 {
		limit = p.Limit
	}
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT %d OFFSET %d", limit, p.Offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query drafts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []DraftRecord
	for rows.Next() {
		var r DraftRecord
		var reservation, bookingDate, createdAt sql.NullString
		var isGroup, needsInput sql.NullInt64

		err := rows.Scan(&r.ID, &r.AirlineCode, &reservation, &r.JourneyType,
			&bookingDate, &r.TotalSeats, &isGroup, &needsInput,
			&r.RawText, &r.DraftJSON, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		r.ReservationNumber = reservation.String
		r.BookingDate = bookingDate.String
		r.CreatedAt = createdAt.String
		r.IsGroupBooking = isGroup.Int64 == 1
		r.NeedsPassengerInput = needsInput.Int64 == 1

		records = append(records, r)
	}

	return records, rows.Err()
}

// Stats returns aggregate statistics about stored drafts.
type Stats struct {
	TotalDrafts int
	ByAirline   map[string]int
	Incomplete  int
}

// GetStats computes aggregate statistics.
func (d *DB) GetStats() (*Stats, error) {
	stats := &Stats{ByAirline: make(map[string]int)}

	if err := d.db.QueryRow(`SELECT COUNT(*) FROM drafts`).Scan(&stats.TotalDrafts); err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM drafts WHERE needs_passenger_input = 1`).Scan(&stats.Incomplete); err != nil {
		return nil, fmt.Errorf("count incomplete: %w", err)
	}

	rows, err := d.db.Query(`SELECT airline_code, COUNT(*) FROM drafts GROUP BY airline_code`)
	if err != nil {
		return nil, fmt.Errorf("count by airline: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		stats.ByAirline[code] = n
	}

	return stats, rows.Err()
}
