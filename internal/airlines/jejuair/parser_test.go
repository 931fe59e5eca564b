package jejuair

import (
	"testing"

	"ticketparser/internal/booking"
)

const roundTripTicket = `제주항공 전자항공권
예약번호 : ABC123
Booking date : 2025. 10. 27
단체명 : 한국중학교
예약석 15 석

Originating Flight
7C2405  ICN - CEB
출발 Departure 2025. 11. 13  22:45
도착 Arrival 2025. 11. 13  01:30
좌석등급 : Y
수하물 15 KG

Return Flight
7C2406  CEB - ICN
출발 Departure 2025. 11. 17  03:30
도착 Arrival 2025. 11. 17  08:45
좌석등급 : Y
수하물 15 KG

MR. JUAN DELA CRUZ   Adult
MRS. MARIA DELA CRUZ   Adult
MSTR. JOSE CRUZ   Child
`

func TestParser_Metadata(t *testing.T) {
	parser := &Parser{}
	meta := parser.Metadata(roundTripTicket)

	if meta.ReservationNumber != "ABC123" {
		t.Errorf("ReservationNumber = %q, want %q", meta.ReservationNumber, "ABC123")
	}
	if meta.BookingDate != "27 OCT 2025" {
		t.Errorf("BookingDate = %q, want %q", meta.BookingDate, "27 OCT 2025")
	}
	if meta.TotalSeats != 15 {
		t.Errorf("TotalSeats = %d, want 15", meta.TotalSeats)
	}
	if !meta.IsGroupBooking {
		t.Error("IsGroupBooking should be true")
	}
}

func TestParser_Metadata_GroupNameAuthoritative(t *testing.T) {
	parser := &Parser{}

	// A named group with fewer seats than the threshold is still a
	// group booking.
	text := "예약번호 : DEF456\n단체명 : 소모임\n예약석 4 석\n"
	meta := parser.Metadata(text)
	if !meta.IsGroupBooking {
		t.Error("explicit group name should force IsGroupBooking")
	}
	if meta.TotalSeats != 4 {
		t.Errorf("TotalSeats = %d, want 4", meta.TotalSeats)
	}

	// Without a group name, a small booking is individual.
	meta = parser.Metadata("예약번호 : DEF456\n예약석 4 석\n")
	if meta.IsGroupBooking {
		t.Error("small booking without group name should not be a group")
	}
}

func TestParser_Journeys_RoundTrip(t *testing.T) {
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
	if out.FlightNumber != "7C2405" {
		t.Errorf("FlightNumber = %q, want %q", out.FlightNumber, "7C2405")
	}
	if out.DepartureCode != "ICN" || out.ArrivalCode != "CEB" {
		t.Errorf("route = %s-%s, want ICN-CEB", out.DepartureCode, out.ArrivalCode)
	}
	if out.DepartureName != "Seoul (Incheon)" {
		t.Errorf("DepartureName = %q, want %q", out.DepartureName, "Seoul (Incheon)")
	}
	if out.ArrivalName != "Cebu" {
		t.Errorf("ArrivalName = %q, want %q", out.ArrivalName, "Cebu")
	}
	if out.DepartureTerminal != "T1" {
		t.Errorf("DepartureTerminal = %q, want %q", out.DepartureTerminal, "T1")
	}
	if out.ArrivalTerminal != "" {
		t.Errorf("ArrivalTerminal = %q, want empty", out.ArrivalTerminal)
	}
	if out.DepartureDate != "13 NOV 2025" {
		t.Errorf("DepartureDate = %q, want %q", out.DepartureDate, "13 NOV 2025")
	}
	if out.DepartureTime != "22:45" {
		t.Errorf("DepartureTime = %q, want %q", out.DepartureTime, "22:45")
	}
	// The printed arrival date repeats the departure date; the leg lands
	// past midnight so the inferred date rolls forward.
	if out.ArrivalDate != "14 NOV 2025" {
		t.Errorf("ArrivalDate = %q, want %q", out.ArrivalDate, "14 NOV 2025")
	}
	if out.ArrivalTime != "01:30" {
		t.Errorf("ArrivalTime = %q, want %q", out.ArrivalTime, "01:30")
	}
	if out.BookingClass != "Y" {
		t.Errorf("BookingClass = %q, want %q", out.BookingClass, "Y")
	}
	if out.BaggageAllowance != "15KG" {
		t.Errorf("BaggageAllowance = %q, want %q", out.BaggageAllowance, "15KG")
	}
	if out.NotValidBefore != "13 NOV 2025" || out.NotValidAfter != "13 NOV 2025" {
		t.Errorf("validity = %q/%q, want departure date", out.NotValidBefore, out.NotValidAfter)
	}

	ret := segments[1]
	if ret.FlightNumber != "7C2406" {
		t.Errorf("FlightNumber = %q, want %q", ret.FlightNumber, "7C2406")
	}
	if ret.DepartureCode != "CEB" || ret.ArrivalCode != "ICN" {
		t.Errorf("route = %s-%s, want CEB-ICN", ret.DepartureCode, ret.ArrivalCode)
	}
	if ret.ArrivalTerminal != "T1" {
		t.Errorf("ArrivalTerminal = %q, want %q", ret.ArrivalTerminal, "T1")
	}
	// Same-day arrival stays on the printed date.
	if ret.ArrivalDate != "17 NOV 2025" {
		t.Errorf("ArrivalDate = %q, want %q", ret.ArrivalDate, "17 NOV 2025")
	}
}

func TestParser_Journeys_OneWay(t *testing.T) {
	parser := &Parser{}
	text := `가는편
7C1402  GMP - CJU
출발 2025. 12. 1  07:10
도착 2025. 12. 1  08:20
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
	if segments[0].FlightNumber != "7C1402" {
		t.Errorf("FlightNumber = %q, want %q", segments[0].FlightNumber, "7C1402")
	}
	if segments[0].DepartureDate != "01 DEC 2025" {
		t.Errorf("DepartureDate = %q, want %q", segments[0].DepartureDate, "01 DEC 2025")
	}
}

func TestParser_Journeys_NoMarkers(t *testing.T) {
	parser := &Parser{}
	_, _, err := parser.Journeys("no flight information in this document")
	if err == nil {
		t.Fatal("expected error for markerless document")
	}
}

func TestParser_Passengers(t *testing.T) {
	parser := &Parser{}
	pax := parser.Passengers(roundTripTicket, true)
	if len(pax) != 3 {
		t.Fatalf("expected 3 passengers, got %d", len(pax))
	}

	want := []booking.Passenger{
		{LastName: "CRUZ", FirstName: "JUAN DELA", Gender: "Mr", Type: booking.TypeAdult},
		{LastName: "CRUZ", FirstName: "MARIA DELA", Gender: "Mrs", Type: booking.TypeAdult},
		{LastName: "CRUZ", FirstName: "JOSE", Gender: "Mr", Type: booking.TypeChild},
	}
	for i, w := range want {
		if pax[i] != w {
			t.Errorf("passenger %d = %+v, want %+v", i, pax[i], w)
		}
	}
}

func TestParser_Passengers_LooseFallback(t *testing.T) {
	parser := &Parser{}
	text := `탑승객
MR KIM MINSOO
MS LEE YUNA
`
	pax := parser.Passengers(text, false)
	if len(pax) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(pax))
	}
	if pax[0].LastName != "MINSOO" || pax[0].FirstName != "KIM" {
		t.Errorf("passenger 0 = %+v", pax[0])
	}
	if pax[0].Type != booking.TypeAdult {
		t.Errorf("Type = %q, want %q", pax[0].Type, booking.TypeAdult)
	}
	if pax[1].Gender != "Ms" {
		t.Errorf("Gender = %q, want %q", pax[1].Gender, "Ms")
	}
}

func TestParser_Passengers_Deduplicates(t *testing.T) {
	parser := &Parser{}
	text := `MR. JUAN DELA CRUZ   Adult
MR. JUAN DELA CRUZ   Adult
`
	pax := parser.Passengers(text, false)
	if len(pax) != 1 {
		t.Errorf("expected 1 passenger after dedup, got %d", len(pax))
	}
}
