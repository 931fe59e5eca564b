package jinair

import (
	"testing"

	"ticketparser/internal/booking"
)

const roundTripTicket = `JIN AIR E-TICKET ITINERARY
Booking Reference No. : JA1234
Issue Date : November 1, 2025
Total 3 Passengers

Departure Flight
LJ063  ICN - BKK
Departure: November 20, 2025 10:35 PM
Arrival: November 21, 2025 2:20 AM
Booking Class : Y
Baggage 15 KG
Not Valid Before : November 20, 2025
Not Valid After : December 20, 2025

Return Flight
LJ064  BKK - ICN
Departure: November 27, 2025 3:40 AM
Arrival: November 27, 2025 11:05 AM
Booking Class : Y
Baggage 15 KG

KIM/MINSOO MR AGE 34
KIM/YUNA MISS AGE 8
KIM/SEOJUN MSTR AGE 1
`

func TestParser_Metadata(t *testing.T) {
	parser := &Parser{}
	meta := parser.Metadata(roundTripTicket)

	if meta.ReservationNumber != "JA1234" {
		t.Errorf("ReservationNumber = %q, want %q", meta.ReservationNumber, "JA1234")
	}
	if meta.BookingDate != "01 NOV 2025" {
		t.Errorf("BookingDate = %q, want %q", meta.BookingDate, "01 NOV 2025")
	}
	if meta.TotalSeats != 3 {
		t.Errorf("TotalSeats = %d, want 3", meta.TotalSeats)
	}
	if meta.IsGroupBooking {
		t.Error("3 seats should not be a group booking")
	}
}

func TestParser_Journeys(t *testing.T) {
	parser := &Parser{}
	journeyType, segments, err := parser.Journeys(roundTripTicket)
	if err != nil {
		t.Fatalf("Journeys returned error: %v", err)
	}
	if journeyType != booking.JourneyRoundTrip {
		t.Errorf("journeyType = %q, want %q", journeyType, booking.JourneyRoundTrip)
	}
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}

	out := segments[0]
	if out.FlightNumber != "LJ063" {
		t.Errorf("FlightNumber = %q, want %q", out.FlightNumber, "LJ063")
	}
	if out.DepartureCode != "ICN" || out.ArrivalCode != "BKK" {
		t.Errorf("route = %s-%s, want ICN-BKK", out.DepartureCode, out.ArrivalCode)
	}
	if out.DepartureTerminal != "T1" {
		t.Errorf("DepartureTerminal = %q, want %q", out.DepartureTerminal, "T1")
	}
	if out.DepartureDate != "20 NOV 2025" {
		t.Errorf("DepartureDate = %q, want %q", out.DepartureDate, "20 NOV 2025")
	}
	if out.DepartureTime != "22:35" {
		t.Errorf("DepartureTime = %q, want %q", out.DepartureTime, "22:35")
	}
	// The document prints the real overnight arrival date.
	if out.ArrivalDate != "21 NOV 2025" {
		t.Errorf("ArrivalDate = %q, want %q", out.ArrivalDate, "21 NOV 2025")
	}
	if out.ArrivalTime != "02:20" {
		t.Errorf("ArrivalTime = %q, want %q", out.ArrivalTime, "02:20")
	}
	if out.BookingClass != "Y" {
		t.Errorf("BookingClass = %q, want %q", out.BookingClass, "Y")
	}
	if out.BaggageAllowance != "15KG" {
		t.Errorf("BaggageAllowance = %q, want %q", out.BaggageAllowance, "15KG")
	}
	// Explicit validity fields override the departure-date default.
	if out.NotValidBefore != "20 NOV 2025" {
		t.Errorf("NotValidBefore = %q, want %q", out.NotValidBefore, "20 NOV 2025")
	}
	if out.NotValidAfter != "20 DEC 2025" {
		t.Errorf("NotValidAfter = %q, want %q", out.NotValidAfter, "20 DEC 2025")
	}

	ret := segments[1]
	if ret.FlightNumber != "LJ064" {
		t.Errorf("FlightNumber = %q, want %q", ret.FlightNumber, "LJ064")
	}
	if ret.DepartureTime != "03:40" || ret.ArrivalTime != "11:05" {
		t.Errorf("times = %s/%s, want 03:40/11:05", ret.DepartureTime, ret.ArrivalTime)
	}
	if ret.ArrivalDate != "27 NOV 2025" {
		t.Errorf("ArrivalDate = %q, want %q", ret.ArrivalDate, "27 NOV 2025")
	}
	// No explicit validity fields on the return leg.
	if ret.NotValidBefore != "27 NOV 2025" || ret.NotValidAfter != "27 NOV 2025" {
		t.Errorf("validity = %q/%q, want departure date", ret.NotValidBefore, ret.NotValidAfter)
	}
}

func TestParser_Journeys_OneWay(t *testing.T) {
	parser := &Parser{}
	text := `Departure Flight
LJ201  GMP - CJU
Departure: December 5, 2025 9:15 AM
Arrival: December 5, 2025 10:25 AM
`
	journeyType, segments, err := parser.Journeys(text)
	if err != nil {
		t.Fatalf("Journeys returned error: %v", err)
	}
	if journeyType != booking.JourneyOneWay {
		t.Errorf("journeyType = %q, want %q", journeyType, booking.JourneyOneWay)
	}
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
}

func TestParser_Journeys_NoMarkers(t *testing.T) {
	parser := &Parser{}
	if _, _, err := parser.Journeys("nothing to see here"); err == nil {
		t.Fatal("expected error for markerless document")
	}
}

func TestParser_Passengers_AgeBands(t *testing.T) {
	parser := &Parser{}
	pax := parser.Passengers(roundTripTicket, false)
	if len(pax) != 3 {
		t.Fatalf("expected 3 passengers, got %d", len(pax))
	}

	want := []booking.Passenger{
		{LastName: "KIM", FirstName: "MINSOO", Gender: "Mr", Type: booking.TypeAdult},
		{LastName: "KIM", FirstName: "YUNA", Gender: "Miss", Type: booking.TypeChild},
		{LastName: "KIM", FirstName: "SEOJUN", Gender: "Mr", Type: booking.TypeInfant},
	}
	for i, w := range want {
		if pax[i] != w {
			t.Errorf("passenger %d = %+v, want %+v", i, pax[i], w)
		}
	}
}

func TestParser_Passengers_MultiWordGivenName(t *testing.T) {
	parser := &Parser{}
	pax := parser.Passengers("GUBAT/VAN VIDAL JR MR AGE 41\n", false)
	if len(pax) != 1 {
		t.Fatalf("expected 1 passenger, got %d", len(pax))
	}
	if pax[0].LastName != "GUBAT" || pax[0].FirstName != "VAN VIDAL JR" {
		t.Errorf("passenger = %+v", pax[0])
	}
}
