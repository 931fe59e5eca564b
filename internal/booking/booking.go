// Package booking provides the booking draft record types produced by the
// airline document parsers.
package booking

import "fmt"

// Journey type classifications.
const (
	JourneyOneWay    = "one-way"
	JourneyRoundTrip = "round-trip"
	JourneyMultiCity = "multi-city"
)

// Passenger type classifications.
const (
	TypeAdult  = "Adult"
	TypeChild  = "Child"
	TypeInfant = "Infant"
)

// GroupSeatThreshold is the seat count at or above which a booking is
// classified as a group booking when the document carries no explicit
// group marker.
const GroupSeatThreshold = 10

// Document is the input to a parse invocation: text already extracted
// from the source PDF (or raw HTML for HTML-based airlines), plus an
// optional secondary namelist document for group bookings.
type Document struct {
	Airline  string `json:"airline"`
	Text     string `json:"text"`
	Namelist string `json:"namelist,omitempty"`
}

// Draft is the fully-assembled, not-yet-persisted output record of one
// parse invocation. The caller owns the draft after the parser returns.
type Draft struct {
	AirlineCode         string      `json:"airline_code"`
	JourneyType         string      `json:"journey_type"`
	IsGroupBooking      bool        `json:"is_group_booking"`
	TotalSeats          int         `json:"total_seats"`
	ReservationNumber   string      `json:"reservation_number,omitempty"`
	BookingDate         string      `json:"booking_date,omitempty"`
	Journeys            []Segment   `json:"journeys"`
	Passengers          []Passenger `json:"passengers"`
	NeedsPassengerInput bool        `json:"needs_passenger_input"`
}

// Segment is one flight leg. Dates are canonical "DD MON YYYY" strings,
// times are 24-hour "HH:MM". Empty terminal fields are valid: they mean
// no reference-data entry exists for the route.
type Segment struct {
	FlightNumber      string `json:"flight_number"`
	DepartureCode     string `json:"departure_code"`
	DepartureName     string `json:"departure_name,omitempty"`
	DepartureDate     string `json:"departure_date,omitempty"`
	DepartureTime     string `json:"departure_time,omitempty"`
	DepartureTerminal string `json:"departure_terminal,omitempty"`
	ArrivalCode       string `json:"arrival_code"`
	ArrivalName       string `json:"arrival_name,omitempty"`
	ArrivalDate       string `json:"arrival_date,omitempty"`
	ArrivalTime       string `json:"arrival_time,omitempty"`
	ArrivalTerminal   string `json:"arrival_terminal,omitempty"`
	BookingClass      string `json:"booking_class,omitempty"`
	BaggageAllowance  string `json:"baggage_allowance,omitempty"`
	NotValidBefore    string `json:"not_valid_before,omitempty"`
	NotValidAfter     string `json:"not_valid_after,omitempty"`
}

// Passenger is one traveler. Gender is the stored title form
// (Mr/Ms/Mrs/Miss) and may be empty when the document omits it.
type Passenger struct {
	LastName     string `json:"last_name"`
	FirstName    string `json:"first_name"`
	Gender       string `json:"gender,omitempty"`
	Type         string `json:"type,omitempty"`
	TicketNumber string `json:"ticket_number,omitempty"`
}

// Metadata holds the reservation-level fields recovered by an airline
// adapter. Empty fields mean "not found", never a failed parse.
type Metadata struct {
	ReservationNumber string
	BookingDate       string
	TotalSeats        int
	IsGroupBooking    bool
}

// ParseError is the single fatal parse condition: no journey type could
// be classified from the document (or no adapter exists for the code).
type ParseError struct {
	Airline string
	Reason  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Airline, e.Reason)
}

// AppendUnique appends p to list unless a passenger with the same
// (last name, first name) pair is already present.
func AppendUnique(list []Passenger, p Passenger) []Passenger {
	for _, q := range list {
		if q.LastName == p.LastName && q.FirstName == p.FirstName {
			return list
		}
	}
	return append(list, p)
}
