package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	_ "ticketparser/internal/airlines" // register all airline adapters via init()
	"ticketparser/internal/booking"
	"ticketparser/internal/parse"
)

const jejuTicket = `예약번호 : ABC123
Booking date : 2025. 10. 27

Originating Flight
7C2405  ICN - CEB
출발 Departure 2025. 11. 13  22:45
도착 Arrival 2025. 11. 14  02:30

MR. JUAN DELA CRUZ   Adult
`

func newTestServer(cfg Config) *Server {
	return NewServer(parse.New(), nil, zap.NewNop(), cfg)
}

func TestHandleParse(t *testing.T) {
	srv := newTestServer(Config{})
	router := srv.Router()

	body, _ := json.Marshal(parseRequest{Airline: "7C", Text: jejuTicket})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var draft booking.Draft
	if err := json.Unmarshal(rec.Body.Bytes(), &draft); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if draft.AirlineCode != "7C" {
		t.Errorf("AirlineCode = %q, want %q", draft.AirlineCode, "7C")
	}
	if draft.ReservationNumber != "ABC123" {
		t.Errorf("ReservationNumber = %q, want %q", draft.ReservationNumber, "ABC123")
	}
	if len(draft.Journeys) != 1 {
		t.Errorf("expected 1 segment, got %d", len(draft.Journeys))
	}
}

func TestHandleParse_BadRequests(t *testing.T) {
	srv := newTestServer(Config{})
	router := srv.Router()

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid JSON", "{not json", http.StatusBadRequest},
		{"missing airline", `{"text":"something"}`, http.StatusBadRequest},
		{"missing text", `{"airline":"7C"}`, http.StatusBadRequest},
		{"unknown airline", `{"airline":"XX","text":"something"}`, http.StatusUnprocessableEntity},
		{"unparseable document", `{"airline":"7C","text":"no flights here"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth(t *testing.T) {
	srv := newTestServer(Config{AuthEnabled: true, APIKeys: []string{"secret"}})
	router := srv.Router()

	body := `{"airline":"7C","text":"placeholder"}`

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/v1/parse", strings.NewReader(body))
	req.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code == http.StatusUnauthorized {
		t.Errorf("valid key rejected: status = %d", rec.Code)
	}

	// Health stays open regardless of auth.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(Config{})
	router := srv.Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}
