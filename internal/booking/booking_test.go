package booking

import "testing"

func TestAppendUnique(t *testing.T) {
	var list []Passenger

	list = AppendUnique(list, Passenger{LastName: "GUBAT", FirstName: "VAN VIDAL JR"})
	list = AppendUnique(list, Passenger{LastName: "BANDOY", FirstName: "ROEL"})
	if len(list) != 2 {
		t.Fatalf("expected 2 passengers, got %d", len(list))
	}

	// Same name pair is dropped even when other fields differ.
	list = AppendUnique(list, Passenger{LastName: "GUBAT", FirstName: "VAN VIDAL JR", Gender: "Mr"})
	if len(list) != 2 {
		t.Errorf("duplicate name pair appended, got %d passengers", len(list))
	}

	// Same surname with a different given name is a new passenger.
	list = AppendUnique(list, Passenger{LastName: "GUBAT", FirstName: "MARIA"})
	if len(list) != 3 {
		t.Errorf("expected 3 passengers, got %d", len(list))
	}
}

func TestMissingFields(t *testing.T) {
	draft := &Draft{
		AirlineCode:       "7C",
		ReservationNumber: "ABC123",
		BookingDate:       "27 OCT 2025",
		Journeys: []Segment{
			{
				FlightNumber:  "7C2405",
				DepartureCode: "ICN",
				ArrivalCode:   "CEB",
				DepartureDate: "13 NOV 2025",
				DepartureTime: "22:45",
				ArrivalTime:   "02:30",
				BookingClass:  "Y",
			},
		},
		Passengers: []Passenger{{LastName: "GUBAT", FirstName: "VAN VIDAL JR"}},
	}

	if missing := MissingFields(draft); len(missing) != 0 {
		t.Errorf("complete draft reported missing fields: %v", missing)
	}

	draft.ReservationNumber = ""
	draft.Journeys[0].DepartureTime = ""
	draft.Passengers = nil

	missing := MissingFields(draft)
	want := map[string]bool{
		"reservation_number":        true,
		"segment[0].departure_time": true,
		"passengers":                true,
	}
	if len(missing) != len(want) {
		t.Fatalf("MissingFields = %v, want %d entries", missing, len(want))
	}
	for _, m := range missing {
		if !want[m] {
			t.Errorf("unexpected missing field %q", m)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := &ParseError{Airline: "7C", Reason: "no journey markers found"}
	want := "parse 7C: no journey markers found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
