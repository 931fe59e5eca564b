// Package jejuair parses Jeju Air (7C) e-ticket documents: bilingual
// Korean/English PDF text with dotted dates and 24-hour times.
package jejuair

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
		{Pattern: regexp.MustCompile(`Booking Reference No\.\s*[:：]?\s*([A-Z0-9]{5,8})`)},
		{Pattern: regexp.MustCompile(`Booking Reference\s*[:：]?\s*([A-Z0-9]{5,8})`)},
	}

	bookingDateCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking date\s*[:：]?\s*(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})`)},
		{Pattern: regexp.MustCompile(`예약일\s*[:：]?\s*(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})`)},
	}

	// 예약석 15 석
	seatRe      = regexp.MustCompile(`예약석\s*(\d{1,3})\s*석`)
	groupNameRe = regexp.MustCompile(`단체명\s*[:：]?\s*(\S+)`)

	originMarkerRe = regexp.MustCompile(`가는편|Originating Flight`)
	returnMarkerRe = regexp.MustCompile(`오는편|Return Flight`)

	flightRe = regexp.MustCompile(`\b(7C\d{3,4})\b`)

	// 출발 Departure 2025. 11. 13  22:45
	depLineRe = regexp.MustCompile(`(?:출발|Departure)\D*?(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})\s+(\d{1,2}:\d{2})`)
	arrLineRe = regexp.MustCompile(`(?:도착|Arrival)\D*?(\d{4}\s*\.\s*\d{1,2}\s*\.\s*\d{1,2})\s+(\d{1,2}:\d{2})`)

	classCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`좌석등급\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
		{Pattern: regexp.MustCompile(`Booking Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
		{Pattern: regexp.MustCompile(`Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
	}

	// MR. JUAN DELA CRUZ   Adult
	titleNameRe      = regexp.MustCompile(`(MR|MRS|MS|MISS|MSTR)\.\s+([A-Z]{2,}(?: [A-Z]{2,})*)`)
	titleNameLooseRe = regexp.MustCompile(`(MR|MRS|MS|MISS|MSTR)\.?\s+([A-Z]{2,}(?: [A-Z]{2,})*)`)
)

// fareLookahead is how far past a matched name the fare-type keyword
// may appear.
const fareLookahead = 48

// Parser extracts Jeju Air bookings.
type Parser struct{}

func init() {
	registry.Register(&Parser{})
}

func (p *Parser) Code() string    { return "7C" }
func (p *Parser) Airline() string { return "Jeju Air" }

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

	// An explicit group-name field is authoritative; otherwise fall
	// back to the seat-count threshold.
	if groupNameRe.MatchString(text) {
		meta.IsGroupBooking = true
	} else if meta.TotalSeats >= booking.GroupSeatThreshold {
		meta.IsGroupBooking = true
	}

	return meta
}

func (p *Parser) Journeys(text string) (string, []booking.Segment, error) {
	sections, journeyType := splitSections(text)
	if journeyType == "" {
		return "", nil, errors.New("no journey markers found")
	}

	var segments []booking.Segment
	for _, section := range sections {
		if seg, ok := parseSegment(section); ok {
			segments = append(segments, seg)
		}
	}
	return journeyType, segments, nil
}

// splitSections locates the outbound and return markers and returns one
// text section per leg, document order preserved.
func splitSections(text string) ([]string, string) {
	type marker struct {
		pos   int
		isRet bool
	}
	var marks []marker
	for _, m := range originMarkerRe.FindAllStringIndex(text, -1) {
		marks = append(marks, marker{pos: m[0]})
	}
	for _, m := range returnMarkerRe.FindAllStringIndex(text, -1) {
		marks = append(marks, marker{pos: m[0], isRet: true})
	}
	if len(marks) == 0 {
		return nil, ""
	}

	// Insertion sort by position; marker counts are tiny.
	for i := 1; i < len(marks); i++ {
		for j := i; j > 0 && marks[j].pos < marks[j-1].pos; j-- {
			marks[j], marks[j-1] = marks[j-1], marks[j]
		}
	}

	sections := make([]string, 0, len(marks))
	hasReturn := false
	for i, mk := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1].pos
		}
		sections = append(sections, text[mk.pos:end])
		if mk.isRet {
			hasReturn = true
		}
	}

	switch {
	case len(sections) == 1:
		return sections, booking.JourneyOneWay
	case len(sections) == 2 && hasReturn:
		return sections, booking.JourneyRoundTrip
	default:
		return sections, booking.JourneyMultiCity
	}
}

// parseSegment extracts one flight segment from a leg section. A
// section without a flight number is discarded rather than emitted with
// empty required fields.
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
		seg.DepartureDate = dates.FromDotted(m[1])
		seg.DepartureTime = dates.FromClock(m[2])
	}
	if m := arrLineRe.FindStringSubmatch(section); m != nil {
		seg.ArrivalDate = dates.FromDotted(m[1])
		seg.ArrivalTime = dates.FromClock(m[2])
	}

	// The printed arrival date can repeat the departure date even when
	// the leg lands past midnight.
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

func (p *Parser) Passengers(text string, group bool) []booking.Passenger {
	pax := matchTitleNames(text, titleNameRe, true)
	if len(pax) == 0 {
		// Relaxed retry: optional dot after the title, no fare-type
		// keyword required.
		pax = matchTitleNames(text, titleNameLooseRe, false)
	}
	return pax
}

func matchTitleNames(text string, re *regexp.Regexp, requireFare bool) []booking.Passenger {
	var pax []booking.Passenger
	for _, idx := range re.FindAllStringSubmatchIndex(text, -1) {
		title := text[idx[2]:idx[3]]
		name := strings.TrimSpace(text[idx[4]:idx[5]])

		window := text[idx[1]:min(idx[1]+fareLookahead, len(text))]
		fare := ""
		if fm := patterns.FareTypeRe.FindString(window); fm != "" {
			fare = patterns.FareType(fm)
		}
		if requireFare && fare == "" {
			continue
		}

		// Name order is fixed for this airline: given names first, the
		// final token is the surname.
		tokens := strings.Fields(name)
		if len(tokens) < 2 {
			continue
		}
		pass := booking.Passenger{
			LastName:  tokens[len(tokens)-1],
			FirstName: strings.Join(tokens[:len(tokens)-1], " "),
			Gender:    patterns.Gender(title),
			Type:      fare,
		}
		if pass.Type == "" {
			pass.Type = booking.TypeAdult
		}
		if patterns.IsChildTitle(title) {
			pass.Type = booking.TypeChild
		}
		if !patterns.IsAlphaName(pass.LastName) || !patterns.IsAlphaName(pass.FirstName) {
			continue
		}
		pax = booking.AppendUnique(pax, pass)
	}
	return pax
}
