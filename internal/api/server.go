// Package api provides REST API endpoints for parsing booking
// documents and reading stored drafts.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ticketparser/internal/booking"
	"ticketparser/internal/parse"
	"ticketparser/internal/storage"
)

// Server exposes the parser and the booking store over HTTP.
type Server struct {
	parser      *parse.Parser
	store       *storage.Store
	log         *zap.Logger
	port        int
	authEnabled bool
	apiKeys     map[string]bool
}

// Config holds configuration for the API server.
type Config struct {
	Port        int
	AuthEnabled bool
	APIKeys     []string
}

// NewServer creates a new API server.
func NewServer(parser *parse.Parser, store *storage.Store, log *zap.Logger, cfg Config) *Server {
	keys := make(map[string]bool)
	for _, k := range cfg.APIKeys {
		if k != "" {
			keys[k] = true
		}
	}

	return &Server{
		parser:      parser,
		store:       store,
		log:         log,
		port:        cfg.Port,
		authEnabled: cfg.AuthEnabled,
		apiKeys:     keys,
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		if s.authEnabled {
			r.Use(s.requireAPIKey)
		}
		r.Post("/parse", s.handleParse)
		r.Get("/bookings", s.handleListBookings)
		r.Get("/bookings/{airline}/{reservation}", s.handleGetBooking)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("api server listening", zap.Int("port", s.port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-API-Key")
		if key == "" || !s.apiKeys[key] {
			writeError(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type parseRequest struct {
	Airline  string `json:"airline"`
	Text     string `json:"text"`
	Namelist string `json:"namelist,omitempty"`
	Store    bool   `json:"store,omitempty"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Airline == "" || req.Text == "" {
		writeError(w, http.StatusBadRequest, "airline and text are required")
		return
	}

	start := time.Now()
	draft, err := s.parser.Parse(booking.Document{
		Airline:  req.Airline,
		Text:     req.Text,
		Namelist: req.Namelist,
	})
	if err != nil {
		var perr *booking.ParseError
		if errors.As(err, &perr) {
			writeError(w, http.StatusUnprocessableEntity, perr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "parse failed")
		return
	}

	if s.store != nil && s.store.CH != nil {
		event := storage.ParseEvent{
			Timestamp:     start,
			AirlineCode:   draft.AirlineCode,
			Reservation:   draft.ReservationNumber,
			JourneyType:   draft.JourneyType,
			Segments:      len(draft.Journeys),
			Passengers:    len(draft.Passengers),
			TotalSeats:    draft.TotalSeats,
			IsGroup:       draft.IsGroupBooking,
			NeedsInput:    draft.NeedsPassengerInput,
			MissingFields: booking.MissingFields(draft),
			DurationMS:    float32(time.Since(start).Seconds() * 1000),
		}
		if err := s.store.CH.InsertEvent(r.Context(), event); err != nil {
			s.log.Warn("record parse event", zap.Error(err))
		}
	}

	if req.Store && s.store != nil && s.store.PG != nil {
		if _, err := s.store.PG.UpsertDraft(r.Context(), draft, req.Text); err != nil {
			s.log.Error("store draft", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to store draft")
			return
		}
	}

	writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	airline := r.URL.Query().Get("airline")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	bookings, err := s.store.PG.ListBookings(r.Context(), airline, limit)
	if err != nil {
		s.log.Error("list bookings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	airline := chi.URLParam(r, "airline")
	reservation := chi.URLParam(r, "reservation")

	draft, err := s.store.PG.GetDraft(r.Context(), airline, reservation)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	if err != nil {
		s.log.Error("get booking", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load booking")
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
