package booking

import "fmt"

// FieldCheck records whether one draft field was extracted.
type FieldCheck struct {
	Name    string // Field name (e.g. "reservation_number", "segment[0].departure_time").
	Present bool   // Whether the field holds a value.
}

// Report describes how complete a parsed draft is. It is used for
// analytics and for flagging drafts that need manual review.
type Report struct {
	Checks  []FieldCheck
	Missing []string
}

// MissingFields lists draft fields an operator would have to fill in
// by hand. Passenger gender and type are not reported; some documents
// never carry them.
func MissingFields(d *Draft) []string {
	return Inspect(d).Missing
}

// Inspect runs all field checks against a draft.
func Inspect(d *Draft) *Report {
	r := &Report{}

	r.check("reservation_number", d.ReservationNumber != "")
	r.check("booking_date", d.BookingDate != "")

	for i, seg := range d.Journeys {
		prefix := fmt.Sprintf("segment[%d].", i)
		r.check(prefix+"flight_number", seg.FlightNumber != "")
		r.check(prefix+"departure_code", seg.DepartureCode != "")
		r.check(prefix+"arrival_code", seg.ArrivalCode != "")
		r.check(prefix+"departure_date", seg.DepartureDate != "")
		r.check(prefix+"departure_time", seg.DepartureTime != "")
		r.check(prefix+"arrival_time", seg.ArrivalTime != "")
		r.check(prefix+"booking_class", seg.BookingClass != "")
	}

	r.check("passengers", len(d.Passengers) > 0)

	return r
}

func (r *Report) check(name string, present bool) {
	r.Checks = append(r.Checks, FieldCheck{Name: name, Present: present})
	if !present {
		r.Missing = append(r.Missing, name)
	}
}
