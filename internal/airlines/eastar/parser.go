// Package eastar parses Eastar Jet (ZE) booking confirmations exported
// as raw HTML: numbered passenger entries with trailing ticket numbers.
package eastar

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
	tagRe = regexp.MustCompile(`<[^>]*>`)

	reservationCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking Reference\s*[:：]?\s*([A-Z0-9]{5,8})`)},
		{Pattern: regexp.MustCompile(`예약번호\s*[:：]?\s*([A-Z0-9]{5,8})`)},
	}

	bookingDateCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking date\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)},
		{Pattern: regexp.MustCompile(`Issue Date\s*[:：]?\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})`)},
	}

	seatRe = regexp.MustCompile(`Seats\s*[:：]?\s*(\d{1,3})`)

	outboundMarkerRe = regexp.MustCompile(`Outbound`)
	inboundMarkerRe  = regexp.MustCompile(`Inbound`)

	flightRe = regexp.MustCompile(`\b(ZE\d{3,4})\b`)

	// Departure: November 21, 2025 20:55
	depLineRe = regexp.MustCompile(`Departure\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})\s+(\d{1,2}:\d{2})`)
	arrLineRe = regexp.MustCompile(`Arrival\s*[:：]\s*([A-Za-z]{3,9}\s+\d{1,2}\s*,\s*\d{4})\s+(\d{1,2}:\d{2})`)

	classCascade = []patterns.Candidate{
		{Pattern: regexp.MustCompile(`Booking Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
		{Pattern: regexp.MustCompile(`Class\s*[:：]?\s*([A-Z0-9]{1,2})`), Validate: patterns.IsBookingClass},
	}

	// 1. BANDOY, ROEL JR MR Adult [Ticket Number: 7182382992079]
	paxEntryRe = regexp.MustCompile(`(\d{1,3})\.\s*([A-Z]{2,}(?: [A-Z]{2,})*)\s*,\s*([A-Z]{2,}(?: [A-Z]{2,})*)\s+(MR|MRS|MS|MISS|MSTR)\b`)
	ticketRe   = regexp.MustCompile(`\[Ticket Number\s*[:：]?\s*(\d{10,14})\]`)
)

// Parser extracts Eastar Jet bookings.
type Parser struct{}

func init() {
	registry.Register(&Parser{})
}

func (p *Parser) Code() string    { return "ZE" }
func (p *Parser) Airline() string { return "Eastar Jet" }

// plainText strips markup so the field patterns see the same shape the
// PDF-based adapters do.
func plainText(text string) string {
	return tagRe.ReplaceAllString(text, " ")
}

func (p *Parser) Metadata(text string) booking.Metadata {
	plain := plainText(text)

	meta := booking.Metadata{
		ReservationNumber: patterns.FindFirst(plain, reservationCascade),
	}

	if raw := patterns.FindFirst(plain, bookingDateCascade); raw != "" {
		meta.BookingDate = dates.FromLongEnglish(raw)
	}

	if m := seatRe.FindStringSubmatch(plain); m != nil {
		meta.TotalSeats, _ = strconv.Atoi(m[1])
	}
	meta.IsGroupBooking = meta.TotalSeats >= booking.GroupSeatThreshold

	return meta
}

func (p *Parser) Journeys(text string) (string, []booking.Segment, error) {
	plain := plainText(text)

	outIdx := outboundMarkerRe.FindStringIndex(plain)
	inIdx := inboundMarkerRe.FindStringIndex(plain)
	if outIdx == nil && inIdx == nil {
		return "", nil, errors.New("no journey markers found")
	}

	var (
		journeyType string
		sections    []string
	)
	switch {
	case outIdx != nil && inIdx != nil:
		journeyType = booking.JourneyRoundTrip
		sections = []string{plain[outIdx[0]:inIdx[0]], plain[inIdx[0]:]}
	case outIdx != nil:
		journeyType = booking.JourneyOneWay
		sections = []string{plain[outIdx[0]:]}
	default:
		journeyType = booking.JourneyOneWay
		sections = []string{plain[inIdx[0]:]}
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
		seg.DepartureTime = dates.FromClock(m[2])
	}
	if m := arrLineRe.FindStringSubmatch(section); m != nil {
		seg.ArrivalDate = dates.FromLongEnglish(m[1])
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

// Passengers extracts the numbered "SURNAME, Given TITLE ... [Ticket
// Number: ...]" entries. Surname comes first for this airline.
func (p *Parser) Passengers(text string, group bool) []booking.Passenger {
	plain := plainText(text)

	var pax []booking.Passenger
	for _, idx := range paxEntryRe.FindAllStringSubmatchIndex(plain, -1) {
		last := strings.TrimSpace(plain[idx[4]:idx[5]])
		first := strings.TrimSpace(plain[idx[6]:idx[7]])
		title := plain[idx[8]:idx[9]]

		if patterns.IsSuspectSurname(last) {
			continue
		}
		if !patterns.IsAlphaName(last) || !patterns.IsAlphaName(first) {
			continue
		}

		// Fare type and ticket number live in the rest of the entry
		// line, after the matched title.
		window := plain[idx[1]:]
		if nl := strings.IndexByte(window, '\n'); nl >= 0 {
			window = window[:nl]
		}

		fare := booking.TypeAdult
		if fm := patterns.FareTypeRe.FindString(window); fm != "" {
			fare = patterns.FareType(fm)
		}
		ticket := ""
		if tm := ticketRe.FindStringSubmatch(window); tm != nil {
			ticket = tm[1]
		}

		pass := booking.Passenger{
			LastName:     last,
			FirstName:    first,
			Gender:       patterns.Gender(title),
			Type:         fare,
			TicketNumber: ticket,
		}
		if patterns.IsChildTitle(title) {
			pass.Type = booking.TypeChild
		}
		pax = booking.AppendUnique(pax, pass)
	}
	return pax
}
