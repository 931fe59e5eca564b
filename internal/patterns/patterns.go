// Package patterns provides shared matcher infrastructure and
// validators for the airline document parsers.
package patterns

import (
	"regexp"
	"strings"

	"ticketparser/internal/booking"
	"ticketparser/internal/refdata"
)

// Candidate is one matcher+validator pair in an ordered cascade.
type Candidate struct {
	Pattern  *regexp.Regexp
	Group    int               // submatch index to return; 0 means 1
	Validate func(string) bool // optional structural sanity check
}

// FindFirst evaluates a cascade in order and returns the first
// structurally valid match, or empty when nothing matched. A candidate
// whose validator rejects the capture falls through to the next
// candidate rather than being accepted silently.
func FindFirst(text string, cascade []Candidate) string {
	for _, c := range cascade {
		group := c.Group
		if group == 0 {
			group = 1
		}
		m := c.Pattern.FindStringSubmatch(text)
		if m == nil || group >= len(m) {
			continue
		}
		v := strings.TrimSpace(m[group])
		if v == "" {
			continue
		}
		if c.Validate != nil && !c.Validate(v) {
			continue
		}
		return v
	}
	return ""
}

// titleGender maps name-list titles to the stored gender field.
var titleGender = map[string]string{
	"MR":   "Mr",
	"MS":   "Ms",
	"MRS":  "Mrs",
	"MSTR": "Mr",
	"MISS": "Miss",
}

// Gender converts a document title token (MR, MS, MRS, MSTR, MISS) to
// the stored gender form. Unknown titles map to empty.
func Gender(title string) string {
	return titleGender[strings.ToUpper(strings.TrimRight(title, "."))]
}

// IsChildTitle reports whether the title implies a child passenger
// regardless of any fare-type label (MSTR).
func IsChildTitle(title string) bool {
	return strings.ToUpper(strings.TrimRight(title, ".")) == "MSTR"
}

// fareTypes maps fare-type keywords, English and Korean, to passenger
// types.
var fareTypes = map[string]string{
	"ADULT":  booking.TypeAdult,
	"CHILD":  booking.TypeChild,
	"INFANT": booking.TypeInfant,
	"성인":     booking.TypeAdult,
	"소아":     booking.TypeChild,
	"유아":     booking.TypeInfant,
}

// FareTypeRe matches any fare-type keyword.
var FareTypeRe = regexp.MustCompile(`(?i)(Adult|Child|Infant|성인|소아|유아)`)

// FareType converts a fare-type keyword to a passenger type, or empty
// for unknown keywords.
func FareType(keyword string) string {
	return fareTypes[strings.ToUpper(strings.TrimSpace(keyword))]
}

// TypeForAge classifies a passenger by age band: under 2 is an infant,
// under 12 a child.
func TypeForAge(age int) string {
	switch {
	case age < 2:
		return booking.TypeInfant
	case age < 12:
		return booking.TypeChild
	default:
		return booking.TypeAdult
	}
}

// IsAlphaName reports whether s consists only of ASCII letters
// separated by single spaces. Extraction candidates failing this are
// discarded, not stored as malformed records.
func IsAlphaName(s string) bool {
	if s == "" {
		return false
	}
	prevSpace := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
			prevSpace = false
		case c == ' ':
			if prevSpace {
				return false
			}
			prevSpace = true
		default:
			return false
		}
	}
	return !prevSpace
}

// headerTokens are column headers and structural words that show up in
// namelist tables and can be mistaken for surnames.
var headerTokens = map[string]bool{
	"SEQ": true, "NO": true, "NAME": true, "SURNAME": true,
	"GIVEN": true, "TITLE": true, "FROM": true, "TO": true,
	"DATE": true, "PNR": true, "ROUTE": true, "TOTAL": true,
	"FLIGHT": true, "CLASS": true, "REMARK": true,
}

// IsSuspectSurname reports whether a surname candidate is actually an
// airport code or table header token picked up from adjacent columns.
func IsSuspectSurname(s string) bool {
	up := strings.ToUpper(strings.TrimSpace(s))
	return headerTokens[up] || refdata.IsAirport(up)
}

// terminalLabelRe matches captures that are terminal designators rather
// than fare classes ("T1", "TERMINAL 1", "1").
var terminalLabelRe = regexp.MustCompile(`^(?:T?\d+|TERMINAL.*)$`)

// IsBookingClass reports whether a booking-class capture looks like an
// actual fare class letter group and not a terminal-number label that a
// loose pattern picked up.
func IsBookingClass(s string) bool {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "" || len(up) > 2 {
		return false
	}
	if terminalLabelRe.MatchString(up) {
		return false
	}
	for i := 0; i < len(up); i++ {
		if up[i] < 'A' || up[i] > 'Z' {
			return false
		}
	}
	return true
}

// RoutePairRe matches directional airport code pairs like "ICN - CEB".
var RoutePairRe = regexp.MustCompile(`\b([A-Z]{3})\s*[-–~]\s*([A-Z]{3})\b`)

// BaggageRe matches a numeric baggage allowance with unit.
var BaggageRe = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(KG|LB)\b`)
