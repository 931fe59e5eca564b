package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ticketparser/internal/booking"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB wraps a PostgreSQL connection pool for draft storage.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	// Test the connection.
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the PostgreSQL tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS bookings (
		id                    BIGSERIAL PRIMARY KEY,
		airline_code          TEXT NOT NULL,
		reservation_number    TEXT NOT NULL DEFAULT '',
		journey_type          TEXT NOT NULL,
		booking_date          TEXT,
		total_seats           INT NOT NULL DEFAULT 0,
		is_group_booking      BOOLEAN NOT NULL DEFAULT FALSE,
		needs_passenger_input BOOLEAN NOT NULL DEFAULT FALSE,
		raw_text              TEXT NOT NULL,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (airline_code, reservation_number)
	);

	CREATE TABLE IF NOT EXISTS booking_segments (
		id                 BIGSERIAL PRIMARY KEY,
		booking_id         BIGINT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		seq                INT NOT NULL,
		flight_number      TEXT NOT NULL,
		departure_code     TEXT,
		departure_name     TEXT,
		departure_date     TEXT,
		departure_time     TEXT,
		departure_terminal TEXT,
		arrival_code       TEXT,
		arrival_name       TEXT,
		arrival_date       TEXT,
		arrival_time       TEXT,
		arrival_terminal   TEXT,
		booking_class      TEXT,
		baggage_allowance  TEXT,
		not_valid_before   TEXT,
		not_valid_after    TEXT
	);

	CREATE TABLE IF NOT EXISTS booking_passengers (
		id            BIGSERIAL PRIMARY KEY,
		booking_id    BIGINT NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
		seq           INT NOT NULL,
		last_name     TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		gender        TEXT,
		pax_type      TEXT,
		ticket_number TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_airline ON bookings(airline_code);
	CREATE INDEX IF NOT EXISTS idx_bookings_incomplete ON bookings(needs_passenger_input);
	CREATE INDEX IF NOT EXISTS idx_segments_booking ON booking_segments(booking_id);
	CREATE INDEX IF NOT EXISTS idx_passengers_booking ON booking_passengers(booking_id);
	`

	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UpsertDraft stores a draft keyed by (airline code, reservation
// number), replacing segments and passengers on conflict. The operator
// may have edited the draft since the last parse, so a re-upsert always
// rewrites the child rows.
func (d *PostgresDB) UpsertDraft(ctx context.Context, draft *booking.Draft, rawText string) (int64, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO bookings (airline_code, reservation_number, journey_type, booking_date, total_seats, is_group_booking, needs_passenger_input, raw_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (airline_code, reservation_number) DO UPDATE SET
			journey_type = EXCLUDED.journey_type,
			booking_date = EXCLUDED.booking_date,
			total_seats = EXCLUDED.total_seats,
			is_group_booking = EXCLUDED.is_group_booking,
			needs_passenger_input = EXCLUDED.needs_passenger_input,
			raw_text = EXCLUDED.raw_text,
			updated_at = NOW()
		RETURNING id
	`, draft.AirlineCode, draft.ReservationNumber, draft.JourneyType, draft.BookingDate,
		draft.TotalSeats, draft.IsGroupBooking, draft.NeedsPassengerInput, rawText).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert booking: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM booking_segments WHERE booking_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clear segments: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM booking_passengers WHERE booking_id = $1`, id); err != nil {
		return 0, fmt.Errorf("clear passengers: %w", err)
	}

	for i, s := range draft.Journeys {
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_segments (booking_id, seq, flight_number,
				departure_code, departure_name, departure_date, departure_time, departure_terminal,
				arrival_code, arrival_name, arrival_date, arrival_time, arrival_terminal,
				booking_class, baggage_allowance, not_valid_before, not_valid_after)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, id, i, s.FlightNumber,
			s.DepartureCode, s.DepartureName, s.DepartureDate, s.DepartureTime, s.DepartureTerminal,
			s.ArrivalCode, s.ArrivalName, s.ArrivalDate, s.ArrivalTime, s.ArrivalTerminal,
			s.BookingClass, s.BaggageAllowance, s.NotValidBefore, s.NotValidAfter)
		if err != nil {
			return 0, fmt.Errorf("insert segment: %w", err)
		}
	}

	for i, p := range draft.Passengers {
		_, err := tx.Exec(ctx, `
			INSERT INTO booking_passengers (booking_id, seq, last_name, first_name, gender, pax_type, ticket_number)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, id, i, p.LastName, p.FirstName, p.Gender, p.Type, p.TicketNumber)
		if err != nil {
			return 0, fmt.Errorf("insert passenger: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return id, nil
}

// ErrNotFound is returned when no booking matches the lookup.
var ErrNotFound = errors.New("booking not found")

// GetDraft reassembles a stored draft by airline code and reservation
// number.
func (d *PostgresDB) GetDraft(ctx context.Context, airlineCode, reservation string) (*booking.Draft, error) {
	draft := &booking.Draft{}
	var id int64

	err := d.pool.QueryRow(ctx, `
		SELECT id, airline_code, reservation_number, journey_type, COALESCE(booking_date, ''),
			total_seats, is_group_booking, needs_passenger_input
		FROM bookings WHERE airline_code = $1 AND reservation_number = $2
	`, airlineCode, reservation).Scan(&id, &draft.AirlineCode, &draft.ReservationNumber,
		&draft.JourneyType, &draft.BookingDate, &draft.TotalSeats,
		&draft.IsGroupBooking, &draft.NeedsPassengerInput)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query booking: %w", err)
	}

	segRows, err := d.pool.Query(ctx, `
		SELECT flight_number,
			COALESCE(departure_code, ''), COALESCE(departure_name, ''), COALESCE(departure_date, ''),
			COALESCE(departure_time, ''), COALESCE(departure_terminal, ''),
			COALESCE(arrival_code, ''), COALESCE(arrival_name, ''), COALESCE(arrival_date, ''),
			COALESCE(arrival_time, ''), COALESCE(arrival_terminal, ''),
			COALESCE(booking_class, ''), COALESCE(baggage_allowance, ''),
			COALESCE(not_valid_before, ''), COALESCE(not_valid_after, '')
		FROM booking_segments WHERE booking_id = $1 ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer segRows.Close()

	for segRows.Next() {
		var s booking.Segment
		err := segRows.Scan(&s.FlightNumber,
			&s.DepartureCode, &s.DepartureName, &s.DepartureDate, &s.DepartureTime, &s.DepartureTerminal,
			&s.ArrivalCode, &s.ArrivalName, &s.ArrivalDate, &s.ArrivalTime, &s.ArrivalTerminal,
			&s.BookingClass, &s.BaggageAllowance, &s.NotValidBefore, &s.NotValidAfter)
		if err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		draft.Journeys = append(draft.Journeys, s)
	}
	if err := segRows.Err(); err != nil {
		return nil, fmt.Errorf("segments: %w", err)
	}

	paxRows, err := d.pool.Query(ctx, `
		SELECT last_name, first_name, COALESCE(gender, ''), COALESCE(pax_type, ''), COALESCE(ticket_number, '')
		FROM booking_passengers WHERE booking_id = $1 ORDER BY seq
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query passengers: %w", err)
	}
	defer paxRows.Close()

	for paxRows.Next() {
		var p booking.Passenger
		if err := paxRows.Scan(&p.LastName, &p.FirstName, &p.Gender, &p.Type, &p.TicketNumber); err != nil {
			return nil, fmt.Errorf("scan passenger: %w", err)
		}
		draft.Passengers = append(draft.Passengers, p)
	}
	if err := paxRows.Err(); err != nil {
		return nil, fmt.Errorf("passengers: %w", err)
	}

	return draft, nil
}

// BookingSummary is one row of the booking listing.
type BookingSummary struct {
	ID                  int64     `json:"id"`
	AirlineCode         string    `json:"airline_code"`
	ReservationNumber   string    `json:"reservation_number"`
	JourneyType         string    `json:"journey_type"`
	TotalSeats          int       `json:"total_seats"`
	IsGroupBooking      bool      `json:"is_group_booking"`
	NeedsPassengerInput bool      `json:"needs_passenger_input"`
	CreatedAt           time.Time `json:"created_at"`
}

// ListBookings returns recent bookings, optionally filtered by airline
// code.
func (d *PostgresDB) ListBookings(ctx context.Context, airlineCode string, limit int) ([]BookingSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, airline_code, reservation_number, journey_type, total_seats,
			is_group_booking, needs_passenger_input, created_at
		FROM bookings`
	var args []interface{}
	if airlineCode != "" {
		query += ` WHERE airline_code = $1`
		args = append(args, airlineCode)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var out []BookingSummary
	for rows.Next() {
		var b BookingSummary
		err := rows.Scan(&b.ID, &b.AirlineCode, &b.ReservationNumber, &b.JourneyType,
			&b.TotalSeats, &b.IsGroupBooking, &b.NeedsPassengerInput, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
