// Package normalize cleans up text-extraction artifacts before any
// pattern matching runs.
package normalize

import (
	"regexp"
	"strings"
)

// PDF text extraction tends to inject spaces between adjacent Hangul
// syllables ("예 약 번 호" instead of "예약번호").
var hangulGapRe = regexp.MustCompile(`([\x{AC00}-\x{D7A3}])[ \t]+([\x{AC00}-\x{D7A3}])`)

// Recurring field labels whose internal spacing varies between
// documents. Collapsed to one canonical spelling so downstream patterns
// need not special-case spacing.
var labelRes = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`Booking\s+Reference\s+No\.?`), "Booking Reference No."},
	{regexp.MustCompile(`Booking\s+Reference`), "Booking Reference"},
	{regexp.MustCompile(`Booking\s+[Dd]ate`), "Booking date"},
	{regexp.MustCompile(`Ticket\s+Number`), "Ticket Number"},
	{regexp.MustCompile(`Not\s+Valid\s+Before`), "Not Valid Before"},
	{regexp.MustCompile(`Not\s+Valid\s+After`), "Not Valid After"},
}

// Normalize collapses whitespace injected mid-word by PDF text
// extraction and canonicalizes recurring bilingual field labels. It is
// pure and returns the input unchanged when no artifacts are present.
func Normalize(raw string) string {
	if raw == "" {
		return raw
	}

	s := strings.ReplaceAll(raw, "\u00a0", " ")
	s = strings.ReplaceAll(s, "&nbsp;", " ")

	// Matches do not overlap, so a single pass leaves every second gap
	// in place. Repeat until stable.
	for {
		collapsed := hangulGapRe.ReplaceAllString(s, "$1$2")
		if collapsed == s {
			break
		}
		s = collapsed
	}

	for _, l := range labelRes {
		s = l.re.ReplaceAllString(s, l.repl)
	}

	return s
}
