// Package dates converts between the canonical internal date form
// ("DD MON YYYY") and the source representations printed by each
// airline. Unparseable input yields an empty string, never an error:
// callers treat empty date and time fields as unknown.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ticketparser/internal/refdata"
)

var (
	// 2025.10.27 / 2025. 10. 27
	dottedRe = regexp.MustCompile(`(\d{4})\s*\.\s*(\d{1,2})\s*\.\s*(\d{1,2})`)

	// November 13, 2025
	longRe = regexp.MustCompile(`([A-Za-z]{3,9})\s+(\d{1,2})\s*,\s*(\d{4})`)

	// 13 NOV 2025 / 3 Nov 2025
	nearCanonicalRe = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3,9})\s+(\d{4})`)

	// 11:35 PM
	clock12Re = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?`)

	// 23:30
	clockRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)

	// 2330
	compactRe = regexp.MustCompile(`^(\d{2})(\d{2})$`)
)

// Canonical renders a date in the canonical "DD MON YYYY" form. Returns
// empty when the components are out of range.
func Canonical(year, month, day int) string {
	if year < 1 || day < 1 || day > 31 {
		return ""
	}
	mon := refdata.MonthAbbrev(month)
	if mon == "" {
		return ""
	}
	return fmt.Sprintf("%02d %s %04d", day, mon, year)
}

// Split breaks a canonical date back into its components. ok is false
// when s is not a canonical date.
func Split(s string) (year, month, day int, ok bool) {
	m := nearCanonicalRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, 0, 0, false
	}
	day, _ = strconv.Atoi(m[1])
	month = refdata.MonthNumber(m[2])
	year, _ = strconv.Atoi(m[3])
	if month == 0 || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// FromDotted converts "2025.10.27" (optional internal spaces) to
// canonical form.
func FromDotted(s string) string {
	m := dottedRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	return Canonical(year, month, day)
}

// FromLongEnglish converts "November 13, 2025" to canonical form.
func FromLongEnglish(s string) string {
	m := longRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	month := refdata.MonthNumber(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	return Canonical(year, month, day)
}

// FromNearCanonical re-normalizes a date already close to canonical
// form ("3 Nov 2025"), fixing case and zero padding.
func FromNearCanonical(s string) string {
	m := nearCanonicalRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	day, _ := strconv.Atoi(m[1])
	month := refdata.MonthNumber(m[2])
	year, _ := strconv.Atoi(m[3])
	return Canonical(year, month, day)
}

// ToCanonical tries every supported source date format in order.
func ToCanonical(s string) string {
	if d := FromDotted(s); d != "" {
		return d
	}
	if d := FromNearCanonical(s); d != "" {
		return d
	}
	return FromLongEnglish(s)
}

// ToDotted renders a canonical date in the dotted "YYYY.MM.DD" form.
func ToDotted(canonical string) string {
	year, month, day, ok := Split(canonical)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%04d.%02d.%02d", year, month, day)
}

// ToLongEnglish renders a canonical date as "November 13, 2025".
func ToLongEnglish(canonical string) string {
	year, month, day, ok := Split(canonical)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d, %d", refdata.MonthName(month), day, year)
}

// From12Hour converts "11:35 PM" to 24-hour "23:35".
func From12Hour(s string) string {
	m := clock12Re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour < 1 || hour > 12 || minute > 59 {
		return ""
	}
	if hour == 12 {
		hour = 0
	}
	if m[3] == "P" || m[3] == "p" {
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FromClock normalizes "7:35" or "07:35" to zero-padded "07:35".
func FromClock(s string) string {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// FromCompact converts a bare 24-hour "2330" to "23:30".
func FromCompact(s string) string {
	m := compactRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ""
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ToTime converts any supported time representation to "HH:MM".
func ToTime(s string) string {
	if t := From12Hour(s); t != "" {
		return t
	}
	if t := FromClock(s); t != "" {
		return t
	}
	return FromCompact(s)
}

// MinutesOfDay converts "HH:MM" to minutes since midnight, or -1 when
// the time is not parseable.
func MinutesOfDay(t string) int {
	m := clockRe.FindStringSubmatch(t)
	if m == nil {
		return -1
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return -1
	}
	return hour*60 + minute
}

// ArrivalDate infers the arrival date for a leg whose document states
// only the departure date. An arrival time numerically earlier than the
// departure time means the flight crossed midnight, so the date rolls
// forward one day. The increment is not carried across a month
// boundary.
func ArrivalDate(depDate, depTime, arrTime string) string {
	dep := MinutesOfDay(depTime)
	arr := MinutesOfDay(arrTime)
	if dep < 0 || arr < 0 || arr >= dep {
		return depDate
	}
	year, month, day, ok := Split(depDate)
	if !ok {
		return depDate
	}
	return Canonical(year, month, day+1)
}
