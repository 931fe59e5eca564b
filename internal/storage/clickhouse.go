package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for parse-event analytics.
type ClickHouseDB struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the parse-event table.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS parse_events (
		timestamp       DateTime64(3),
		airline_code    LowCardinality(String),
		reservation     String,
		journey_type    LowCardinality(String),
		segments        UInt8,
		passengers      UInt16,
		total_seats     UInt16,
		is_group        UInt8,
		needs_input     UInt8,
		missing_fields  String,
		duration_ms     Float32
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(timestamp)
	ORDER BY (airline_code, timestamp)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ParseEvent is one analytics row describing a parse invocation.
type ParseEvent struct {
	Timestamp     time.Time
	AirlineCode   string
	Reservation   string
	JourneyType   string
	Segments      int
	Passengers    int
	TotalSeats    int
	IsGroup       bool
	NeedsInput    bool
	MissingFields []string
	DurationMS    float32
}

// InsertEvent stores a single parse event.
func (d *ClickHouseDB) InsertEvent(ctx context.Context, e ParseEvent) error {
	err := d.conn.Exec(ctx, `
		INSERT INTO parse_events (timestamp, airline_code, reservation, journey_type, segments, passengers, total_seats, is_group, needs_input, missing_fields, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Timestamp, e.AirlineCode, e.Reservation, e.JourneyType,
		uint8(e.Segments), uint16(e.Passengers), uint16(e.TotalSeats),
		boolUint8(e.IsGroup), boolUint8(e.NeedsInput),
		strings.Join(e.MissingFields, ","), e.DurationMS)
	if err != nil {
		return fmt.Errorf("insert parse event: %w", err)
	}
	return nil
}

// InsertEventBatch stores multiple parse events efficiently.
func (d *ClickHouseDB) InsertEventBatch(ctx context.Context, events []ParseEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO parse_events (timestamp, airline_code, reservation, journey_type, segments, passengers, total_seats, is_group, needs_input, missing_fields, duration_ms)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, e := range events {
		err := batch.Append(e.Timestamp, e.AirlineCode, e.Reservation, e.JourneyType,
			uint8(e.Segments), uint16(e.Passengers), uint16(e.TotalSeats),
			boolUint8(e.IsGroup), boolUint8(e.NeedsInput),
			strings.Join(e.MissingFields, ","), e.DurationMS)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

func boolUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// AirlineEventStats summarizes parse outcomes for one airline.
type AirlineEventStats struct {
	AirlineCode string
	Parses      uint64
	Incomplete  uint64
}

// EventStats aggregates parse events per airline.
func (d *ClickHouseDB) EventStats(ctx context.Context) ([]AirlineEventStats, error) {
	rows, err := d.conn.Query(ctx, `
		SELECT airline_code, count() AS parses, countIf(needs_input = 1) AS incomplete
		FROM parse_events
		GROUP BY airline_code
		ORDER BY airline_code
	`)
	if err != nil {
		return nil, fmt.Errorf("query event stats: %w", err)
	}
	defer rows.Close()

	var out []AirlineEventStats
	for rows.Next() {
		var s AirlineEventStats
		if err := rows.Scan(&s.AirlineCode, &s.Parses, &s.Incomplete); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
