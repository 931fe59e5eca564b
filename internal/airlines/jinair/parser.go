// Package jinair parses Jin Air (LJ) e-ticket documents: English PDF
// text with long-form dates and 12-hour AM/PM times.
package jinair

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"ticketparser/internal/booking"
	"ticketparser/internal/dates"
	"ticketparser/internal/patterns"
	"ticketparser/internal/refdata"
	"ticketparser/internal/registry"
)

var (
	reservationCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking Reference No\.\s*[:：]?\s*([A-Z0-9]{5,8})`)},
		{Pattern: regexp.MustCompile(`예약번호\s*[:：]?\s*([A-Z0-9]{5,8})`)},
	}

	bookingDateCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Issue Date\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)},
		{Pattern: regexp.MustCompile(`Booking date\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)},
	}

	// Total 3 Passengers
	seatRe = regexp.MustCompile(`Total\s+(\d{1,3})\s+Passengers?`)

	originMarkerRe = regexp.MustCompile(`Departure Flight`)
	returnMarkerRe = regexp.MustCompile(`Return Flight`)

	flightRe = regexp.MustCompile(`\b(LJ\d{3,4})\b`)

	// Departure: November 20, 2025 10:35 PM
	depLineRe = regexp.MustCompile(`Departure\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})\s+(\d{1,2}:\d{2}\s*[AP]M)`)
	arrLineRe = regexp.MustCompile(`Arrival\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})\s+(\d{1,2}:\d{2}\s*[AP]M)`)

	nvbRe = regexp.MustCompile(`Not Valid Before\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)
	nvaRe = regexp.MustCompile(`Not Valid After\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)

	classCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
		{Pattern: regexp.MustCompile(`Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
	}

	// KIM/MINSOO MR AGE 34
	paxRowRe = regexp.MustCompile(`(?m)^\s*([A-Z]{2,})/([A-Z]{2,}(?: [A-Z]{2,})*)\s+(MR|MRS|MS|MISS|MSTR)\s+AGE\s+(\d{1,2})\s*$`)
)

// Parser extracts Jin Air bookings.
type Parser struct{}

func init() {
	registry.Register(&Parser{})
}

func (p *Parser) Code() string    { return "LJ" }
func (p *Parser) Airline() string { return "Jin Air" }

func (p *Parser) Metadata(text string) booking.Metadata {
	meta := booking.Metadata{
		ReservationNumber: patterns.FindFirst(text, reservationCascade),
	}

	if raw := patterns.FindFirst(text, bookingDateCascade); raw != "" {
		meta.BookingDate = dates.FromLongEnglish(raw)
	}

	if m := seatRe.FindStringSubmatch(text); m != nil {
		meta.TotalSeats, _ = strconv.Atoi(m[1])
	}
	meta.IsGroupBooking = meta.TotalSeats >= booking.GroupSeatThreshold

	return meta
}

func (p *Parser) Journeys(text string) (string, []booking.Segment, error) {
	outIdx := originMarkerRe.FindStringIndex(text)
	retIdx := returnMarkerRe.FindStringIndex(text)
	if outIdx == nil && retIdx == nil {
		return "", nil, errors.New("no journey markers found")
	}

	var (
		journeyType string
		sections    []string
	)
	switch {
	case outIdx != nil && retIdx != nil:
		journeyType = booking.JourneyRoundTrip
		sections = []string{text[outIdx[0]:retIdx[0]], text[retIdx[0]:]}
	case outIdx != nil:
		journeyType = booking.JourneyOneWay
		sections = []string{text[outIdx[0]:]}
	default:
		journeyType = booking.JourneyOneWay
		sections = []string{text[retIdx[0]:]}
	}

	var segments []booking.Segment
	for _, section := range sections {
		if seg, ok := parseSegment(section); ok {
			segments = append(segments, seg)
		}
	}
	return journeyType, segments, nil
}

func parseSegment(section string) (booking.Segment, bool) {
	fm := flightRe.FindStringSubmatch(section)
	if fm == nil {
		return booking.Segment{}, false
	}

	seg := booking.Segment{FlightNumber: fm[1]}

	if rm := patterns.RoutePairRe.FindStringSubmatch(section); rm != nil {
		seg.DepartureCode = rm[1]
		seg.ArrivalCode = rm[2]
		seg.DepartureName = refdata.AirportName(rm[1])
		seg.ArrivalName = refdata.AirportName(rm[2])
		terms := refdata.RouteTerminals(rm[1], rm[2])
		seg.DepartureTerminal = terms.Departure
		seg.ArrivalTerminal = terms.Arrival
	}

	if m := depLineRe.FindStringSubmatch(section); m != nil {
		seg.DepartureDate = dates.FromLongEnglish(m[1])
		seg.DepartureTime = dates.From12Hour(m[2])
	}
	if m := arrLineRe.FindStringSubmatch(section); m != nil {
		seg.ArrivalDate = dates.FromLongEnglish(m[1])
		seg.ArrivalTime = dates.From12Hour(m[2])
	}
	if seg.ArrivalDate == "" || seg.ArrivalDate == seg.DepartureDate {
		seg.ArrivalDate = dates.ArrivalDate(seg.DepartureDate, seg.DepartureTime, seg.ArrivalTime)
	}

	seg.BookingClass = patterns.FindFirst(section, classCascade)
	if m := patterns.BaggageRe.FindStringSubmatch(section); m != nil {
		seg.BaggageAllowance = m[1] + strings.ToUpper(m[2])
	}

	seg.NotValidBefore = seg.DepartureDate
	seg.NotValidAfter = seg.DepartureDate
	if m := nvbRe.FindStringSubmatch(section); m != nil {
		if d := dates.FromLongEnglish(m[1]); d != "" {
			seg.NotValidBefore = d
		}
	}
	if m := nvaRe.FindStringSubmatch(section); m != nil {
		if d := dates.FromLongEnglish(m[1]); d != "" {
			seg.NotValidAfter = d
		}
	}

	return seg, true
}

// Passengers extracts LAST/FIRST rows. The document exposes an age
// value instead of a fare-type label, so passenger type comes from the
// fixed age bands.
func (p *Parser) Passengers(text string, group bool) []booking.Passenger {
	var pax []booking.Passenger
	for _, m := range paxRowRe.FindAllStringSubmatch(text, -1) {
		last, first, title := m[1], m[2], m[3]
		age, _ := strconv.Atoi(m[4])

		pass := booking.Passenger{
			LastName:  last,
			FirstName: first,
			Gender:    patterns.Gender(title),
			Type:      patterns.TypeForAge(age),
		}
		if patterns.IsChildTitle(title) && pass.Type == booking.TypeAdult {
			pass.Type = booking.TypeChild
		}
		if !patterns.IsAlphaName(pass.LastName) || !patterns.IsAlphaName(pass.FirstName) {
			continue
		}
		pax = booking.AppendUnique(pax, pass)
	}
	return pax
}
