package parse

import (
	"errors"
	"reflect"
	"testing"

	_ "ticketparser/internal/airlines" // register all airline adapters via init()
	"ticketparser/internal/booking"
)

const jejuTicket = `제주항공 전자항공권
예약번호 : ABC123
Booking date : 2025. 10. 27

Originating Flight
7C2405  ICN - CEB
출발 Departure 2025. 11. 13  22:45
도착 Arrival 2025. 11. 14  02:30
좌석등급 : Y

MR. JUAN DELA CRUZ   Adult
MS. MARIA SANTOS   Adult
`

const busanTicket = `AIR BUSAN 단체 예약 확인서
PNR : E8TX89
Booking date : 2026. 1. 15
총 12명

ICN - CEB
BX1071
출발 Departure 2026. 2. 26  21:40
도착 Arrival 2026. 2. 27  01:20

CEB - ICN
BX1072
출발 Departure 2026. 3. 1  02:20
도착 Arrival 2026. 3. 1  07:40

탑승객
GUBAT VAN VIDAL JR
BANDOY ROEL
`

const busanNamelist = `1 CEB PUS E8TX89 2/26 3/1 GUBAT VAN VIDAL JR MR
2 CEB PUS E8TX89 2/26 3/1 BANDOY ROEL MR
3 CEB PUS E8TX89 2/26 3/1 SANTOS JOSE MSTR
`

func TestParse_IndividualBooking(t *testing.T) {
	parser := New()
	draft, err := parser.Parse(booking.Document{Airline: "7C", Text: jejuTicket})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if draft.AirlineCode != "7C" {
		t.Errorf("AirlineCode = %q, want %q", draft.AirlineCode, "7C")
	}
	if draft.JourneyType != booking.JourneyOneWay {
		t.Errorf("JourneyType = %q, want %q", draft.JourneyType, booking.JourneyOneWay)
	}
	if draft.ReservationNumber != "ABC123" {
		t.Errorf("ReservationNumber = %q, want %q", draft.ReservationNumber, "ABC123")
	}
	if len(draft.Journeys) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(draft.Journeys))
	}
	if len(draft.Passengers) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(draft.Passengers))
	}

	// No stated seat count: falls back to the deduplicated passenger
	// count.
	if draft.TotalSeats != 2 {
		t.Errorf("TotalSeats = %d, want 2", draft.TotalSeats)
	}
	if draft.IsGroupBooking {
		t.Error("IsGroupBooking should be false")
	}
	if draft.NeedsPassengerInput {
		t.Error("NeedsPassengerInput should be false with all passengers present")
	}
}

func TestParse_Idempotent(t *testing.T) {
	parser := New()
	doc := booking.Document{Airline: "7C", Text: jejuTicket}

	first, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("first Parse returned error: %v", err)
	}
	second, err := parser.Parse(doc)
	if err != nil {
		t.Fatalf("second Parse returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated parse differs:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParse_GroupWithNamelist(t *testing.T) {
	parser := New()
	draft, err := parser.Parse(booking.Document{
		Airline:  "BX",
		Text:     busanTicket,
		Namelist: busanNamelist,
	})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if !draft.IsGroupBooking {
		t.Error("IsGroupBooking should be true")
	}
	if draft.TotalSeats != 12 {
		t.Errorf("TotalSeats = %d, want 12", draft.TotalSeats)
	}
	if draft.JourneyType != booking.JourneyRoundTrip {
		t.Errorf("JourneyType = %q, want %q", draft.JourneyType, booking.JourneyRoundTrip)
	}

	// Two names from the ticket, one more from the namelist.
	if len(draft.Passengers) != 3 {
		t.Fatalf("expected 3 passengers, got %d", len(draft.Passengers))
	}
	if draft.Passengers[0].LastName != "GUBAT" || draft.Passengers[0].Gender != "Mr" {
		t.Errorf("namelist gender not reconciled: %+v", draft.Passengers[0])
	}
	if draft.Passengers[2].LastName != "SANTOS" || draft.Passengers[2].Type != booking.TypeChild {
		t.Errorf("namelist-only passenger not appended: %+v", draft.Passengers[2])
	}

	// 3 known passengers on 12 seats: the rest must be entered manually.
	if !draft.NeedsPassengerInput {
		t.Error("NeedsPassengerInput should be true for a partially named group")
	}
}

func TestParse_NormalizesInput(t *testing.T) {
	parser := New()

	// Hangul labels broken apart by PDF extraction still resolve.
	text := "예 약 번 호 : ABC123\nOriginating Flight\n7C2405  ICN - CEB\n출발 2025. 11. 13  22:45\n"
	draft, err := parser.Parse(booking.Document{Airline: "7C", Text: text})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if draft.ReservationNumber != "ABC123" {
		t.Errorf("ReservationNumber = %q, want %q", draft.ReservationNumber, "ABC123")
	}
}

func TestParse_UnknownAirline(t *testing.T) {
	parser := New()
	_, err := parser.Parse(booking.Document{Airline: "XX", Text: "anything"})
	if err == nil {
		t.Fatal("expected error for unknown airline")
	}

	var perr *booking.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *booking.ParseError, got %T", err)
	}
	if perr.Airline != "XX" {
		t.Errorf("Airline = %q, want %q", perr.Airline, "XX")
	}
}

func TestParse_UnclassifiableJourney(t *testing.T) {
	parser := New()
	_, err := parser.Parse(booking.Document{Airline: "7C", Text: "예약번호 : ABC123 but no flights"})
	if err == nil {
		t.Fatal("expected error for document without journey markers")
	}
	var perr *booking.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *booking.ParseError, got %T", err)
	}
}

func TestParse_EmptyPassengersFlagged(t *testing.T) {
	parser := New()
	text := "Originating Flight\n7C2405  ICN - CEB\n출발 2025. 11. 13  22:45\n"
	draft, err := parser.Parse(booking.Document{Airline: "7C", Text: text})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(draft.Passengers) != 0 {
		t.Fatalf("expected no passengers, got %d", len(draft.Passengers))
	}
	if !draft.NeedsPassengerInput {
		t.Error("NeedsPassengerInput should be true with no passengers")
	}
}
