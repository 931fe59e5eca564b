// Package main provides the booking-api server for parsed booking drafts.
//
// This is a standalone REST API server that parses airline booking
// documents on demand and serves stored booking drafts from PostgreSQL.
// Parse analytics are optionally written to ClickHouse.
//
// Usage:
//
//	booking-api [options]
//
// Options:
//
//	-pg-host HOST       PostgreSQL host (default: localhost, env: POSTGRES_HOST)
//	-pg-port PORT       PostgreSQL port (default: 5432, env: POSTGRES_PORT)
//	-pg-database DB     PostgreSQL database (default: tickets, env: POSTGRES_DATABASE)
//	-pg-user USER       PostgreSQL user (default: tickets, env: POSTGRES_USER)
//	-pg-password PASS   PostgreSQL password (default: tickets, env: POSTGRES_PASSWORD)
//	-ch-host HOST       ClickHouse host (env: CLICKHOUSE_HOST); empty disables analytics
//	-port N             HTTP port (default: 8080, env: API_PORT)
//	-auth               Enable API key authentication
//	-api-keys KEYS      Comma-separated list of valid API keys (env: API_KEYS)
//
// Environment variables are loaded from a .env file when present.
//
// API Endpoints:
//
//	GET  /healthz
//	     Health check endpoint.
//
//	POST /api/v1/parse
//	     Parse a booking document. Body: {"airline":"7C","text":"...","namelist":"...","store":true}
//
//	GET  /api/v1/bookings?airline=7C&limit=50
//	     List stored booking summaries.
//
//	GET  /api/v1/bookings/{airline}/{reservation}
//	     Get one stored booking draft.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "ticketparser/internal/airlines" // register all airline adapters via init()
	"ticketparser/internal/api"
	"ticketparser/internal/parse"
	"ticketparser/internal/storage"
)

func main() {
	// .env is optional; flags and real env vars win.
	_ = godotenv.Load()

	pgHost := flag.String("pg-host", envOrDefault("POSTGRES_HOST", "localhost"), "PostgreSQL host")
	pgPort := flag.Int("pg-port", envOrDefaultInt("POSTGRES_PORT", 5432), "PostgreSQL port")
	pgUser := flag.String("pg-user", envOrDefault("POSTGRES_USER", "tickets"), "PostgreSQL user")
	pgPassword := flag.String("pg-password", envOrDefault("POSTGRES_PASSWORD", "tickets"), "PostgreSQL password")
	pgDB := flag.String("pg-database", envOrDefault("POSTGRES_DATABASE", "tickets"), "PostgreSQL database")

	chHost := flag.String("ch-host", envOrDefault("CLICKHOUSE_HOST", ""), "ClickHouse host (empty disables analytics)")
	chPort := flag.Int("ch-port", envOrDefaultInt("CLICKHOUSE_PORT", 9000), "ClickHouse port")
	chUser := flag.String("ch-user", envOrDefault("CLICKHOUSE_USER", "default"), "ClickHouse user")
	chPassword := flag.String("ch-password", envOrDefault("CLICKHOUSE_PASSWORD", ""), "ClickHouse password")
	chDB := flag.String("ch-database", envOrDefault("CLICKHOUSE_DATABASE", "tickets"), "ClickHouse database")

	port := flag.Int("port", envOrDefaultInt("API_PORT", 8080), "HTTP port for API server")
	authEnabled := flag.Bool("auth", false, "Enable API key authentication")
	apiKeys := flag.String("api-keys", envOrDefault("API_KEYS", ""), "Comma-separated list of valid API keys (when auth enabled)")

	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := storage.OpenPostgres(ctx, storage.PostgresConfig{
		Host:     *pgHost,
		Port:     *pgPort,
		Database: *pgDB,
		User:     *pgUser,
		Password: *pgPassword,
	})
	if err != nil {
		log.Fatal("open postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.CreateSchema(ctx); err != nil {
		log.Fatal("create postgres schema", zap.Error(err))
	}

	store := &storage.Store{PG: pg}

	if *chHost != "" {
		ch, err := storage.OpenClickHouse(ctx, storage.ClickHouseConfig{
			Host:     *chHost,
			Port:     *chPort,
			Database: *chDB,
			User:     *chUser,
			Password: *chPassword,
		})
		if err != nil {
			log.Fatal("open clickhouse", zap.Error(err))
		}
		defer func() { _ = ch.Close() }()

		if err := ch.CreateSchema(ctx); err != nil {
			log.Fatal("create clickhouse schema", zap.Error(err))
		}
		store.CH = ch
	}

	var keys []string
	if *apiKeys != "" {
		keys = strings.Split(*apiKeys, ",")
		for i := range keys {
			keys[i] = strings.TrimSpace(keys[i])
		}
	}

	parser := parse.New(parse.WithLogger(log))

	server := api.NewServer(parser, store, log, api.Config{
		Port:        *port,
		AuthEnabled: *authEnabled,
		APIKeys:     keys,
	})

	if err := server.ListenAndServe(ctx); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
	log.Info("server stopped")
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
