// Package airbusan parses Air Busan (BX) group booking confirmations.
// The e-ticket lists bare passenger names without gender or type; a
// separate namelist document supplies those fields and is merged in by
// reconciliation.
package airbusan

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
		{Pattern: regexp.MustCompile(`예약번호\s*[:：]?\s*([A-Z0-9]{5,8})`)},
		{Pattern: regexp.MustCompile(`\bPNR\s*[:：]?\s*([A-Z0-9]{5,8})`)},
	}

	bookingDateCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking date\s*[:：]?\s*(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})`)},
		{Pattern: regexp.MustCompile(`예약일\s*[:：]?\s*(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})`)},
	}

	// 총 12명
	seatRe  = regexp.MustCompile(`총\s*(\d{1,3})\s*명`)
	groupRe = regexp.MustCompile(`GROUP|단체`)

	flightRe = regexp.MustCompile(`\b(BX\d{3,4})\b`)

	// Departure 2026. 2. 26 21:40
	depLineRe = regexp.MustCompile(`(?:출발|Departure)\D*?(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})\s+(\d{1,2}:\d{2})`)
	arrLineRe = regexp.MustCompile(`(?:도착|Arrival)\D*?(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})\s+(\d{1,2}:\d{2})`)

	classCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`좌석등급\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
		{Pattern: regexp.MustCompile(`Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
	}

	paxMarkerRe = regexp.MustCompile(`탑승객|Passenger Names?`)

	// Bare name rows, surname first: GUBAT VAN VIDAL JR
	bareNameRe = regexp.MustCompile(`(?m)^\s*([A-Z]{2,})\s+([A-Z]{2,}(?: [A-Z]{2,})*)\s*$`)

	// Namelist rows, fixed column order:
	// 1 CEB PUS E8TX89 2/26 3/1 GUBAT VAN VIDAL JR MR
	namelistRowRe = regexp.MustCompile(`(?m)^\s*(\d{1,3})\s+([A-Z]{3})\s+([A-Z]{3})\s+([A-Z0-9]{6})\s+(\d{1,2}/\d{1,2})\s+(\d{1,2}/\d{1,2})\s+([A-Z]{2,})\s+([A-Z]{2,}(?: [A-Z]{2,})*)\s+(MR|MRS|MS|MISS|MSTR)\s*$`)
)

// Parser extracts Air Busan bookings.
type Parser struct{}

func init() {
	registry.Register(&Parser{})
}

func (p *Parser) Code() string    { return "BX" }
func (p *Parser) Airline() string { return "Air Busan" }

func (p *Parser) Metadata(text string) booking.Metadata {
	meta := booking.Metadata{
		ReservationNumber: patterns.FindFirst(text, reservationCascade),
	}

	if raw := patterns.FindFirst(text, bookingDateCascade); raw != "" {
		meta.BookingDate = dates.FromDotted(raw)
	}

	if m := seatRe.FindStringSubmatch(text); m != nil {
		meta.TotalSeats, _ = strconv.Atoi(m[1])
	}
	meta.IsGroupBooking = groupRe.MatchString(text) ||
		meta.TotalSeats >= booking.GroupSeatThreshold

	return meta
}

// Journeys classifies the journey type from directional airport-code
// pairs: an outbound pair A-B with a later reversed pair B-A is a round
// trip.
func (p *Parser) Journeys(text string) (string, []booking.Segment, error) {
	idxs := patterns.RoutePairRe.FindAllStringSubmatchIndex(text, -1)

	type leg struct {
		pos      int
		dep, arr string
	}
	var legs []leg
	for _, idx := range idxs {
		dep := text[idx[2]:idx[3]]
		arr := text[idx[4]:idx[5]]
		// Only code pairs that resolve against reference data count as
		// legs; anything else is incidental text.
		if !refdata.IsAirport(dep) || !refdata.IsAirport(arr) {
			continue
		}
		legs = append(legs, leg{pos: idx[0], dep: dep, arr: arr})
	}
	if len(legs) == 0 {
		return "", nil, errors.New("no directional airport pairs found")
	}

	journeyType := booking.JourneyOneWay
	if len(legs) > 1 {
		last := legs[len(legs)-1]
		if last.dep == legs[0].arr && last.arr == legs[0].dep {
			journeyType = booking.JourneyRoundTrip
		} else {
			journeyType = booking.JourneyMultiCity
		}
	}

	var segments []booking.Segment
	for i, l := range legs {
		end := len(text)
		if i+1 < len(legs) {
			end = legs[i+1].pos
		}
		if seg, ok := parseSegment(text[l.pos:end], l.dep, l.arr); ok {
			segments = append(segments, seg)
		}
	}
	return journeyType, segments, nil
}

func parseSegment(section, dep, arr string) (booking.Segment, bool) {
	fm := flightRe.FindStringSubmatch(section)
	if fm == nil {
		return booking.Segment{}, false
	}

	terms := refdata.RouteTerminals(dep, arr)
	seg := booking.Segment{
		FlightNumber:      fm[1],
		DepartureCode:     dep,
		DepartureName:     refdata.AirportName(dep),
		DepartureTerminal: terms.Departure,
		ArrivalCode:       arr,
		ArrivalName:       refdata.AirportName(arr),
		ArrivalTerminal:   terms.Arrival,
	}

	if m := depLineRe.FindStringSubmatch(section); m != nil {
		seg.DepartureDate = dates.FromDotted(m[1])
		seg.DepartureTime = dates.FromClock(m[2])
	}
	if m := arrLineRe.FindStringSubmatch(section); m != nil {
		seg.ArrivalDate = dates.FromDotted(m[1])
		seg.ArrivalTime = dates.FromClock(m[2])
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

	return seg, true
}

// Passengers extracts the bare surname-first name rows below the
// passenger marker. Gender and type are left empty; the namelist
// document supplies them through reconciliation.
func (p *Parser) Passengers(text string, group bool) []booking.Passenger {
	mIdx := paxMarkerRe.FindStringIndex(text)
	if mIdx == nil {
		return nil
	}
	section := text[mIdx[1]:]

	var pax []booking.Passenger
	for _, m := range bareNameRe.FindAllStringSubmatch(section, -1) {
		last, first := m[1], strings.TrimSpace(m[2])
		if patterns.IsSuspectSurname(last) {
			continue
		}
		if !patterns.IsAlphaName(last) || !patterns.IsAlphaName(first) {
			continue
		}
		pax = booking.AppendUnique(pax, booking.Passenger{
			LastName:  last,
			FirstName: first,
		})
	}
	return pax
}

// NamelistPassengers parses the tabular namelist document: one row per
// traveler with route codes, reservation code, two dates, surname,
// given name, and title.
func (p *Parser) NamelistPassengers(text string) []booking.Passenger {
	var pax []booking.Passenger
	for _, m := range namelistRowRe.FindAllStringSubmatch(text, -1) {
		last := m[7]
		first := strings.TrimSpace(m[8])
		title := m[9]

		// A row whose surname column holds an airport or header code is
		// a false positive from the route columns.
		if patterns.IsSuspectSurname(last) {
			continue
		}
		if !patterns.IsAlphaName(last) || !patterns.IsAlphaName(first) {
			continue
		}

		pass := booking.Passenger{
			LastName:  last,
			FirstName: first,
			Gender:    patterns.Gender(title),
			Type:      booking.TypeAdult,
		}
		if patterns.IsChildTitle(title) {
			pass.Type = booking.TypeChild
		}
		pax = booking.AppendUnique(pax, pass)
	}
	return pax
}
