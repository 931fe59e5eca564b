package storage

import (
	"context"
	"fmt"
)

// Config holds database connection settings for both ClickHouse and
// PostgreSQL.
type Config struct {
	ClickHouse ClickHouseConfig
	Postgres   PostgresConfig
}

// DefaultConfig returns a configuration with default local development
// settings.
func DefaultConfig() Config {
	return Config{
		ClickHouse: ClickHouseConfig{
			Host:     "localhost",
			Port:     9000,
			Database: "tickets",
			User:     "default",
			Password: "",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "tickets",
			User:     "tickets",
			Password: "tickets",
		},
	}
}

// Store wraps both ClickHouse and PostgreSQL connections: PostgreSQL
// for booking drafts, ClickHouse for parse analytics.
type Store struct {
	CH *ClickHouseDB
	PG *PostgresDB
}

// OpenStore opens connections to both ClickHouse and PostgreSQL.
func OpenStore(ctx context.Context, cfg Config) (*Store, error) {
	ch, err := OpenClickHouse(ctx, cfg.ClickHouse)
	if err != nil {
		return nil, fmt.Errorf("clickhouse: %w", err)
	}

	pg, err := OpenPostgres(ctx, cfg.Postgres)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	return &Store{CH: ch, PG: pg}, nil
}

// Close closes both database connections.
func (s *Store) Close() error {
	var firstErr error
	if s.CH != nil {
		if err := s.CH.Close(); err != nil {
			firstErr = err
		}
	}
	if s.PG != nil {
		s.PG.Close()
	}
	return firstErr
}
