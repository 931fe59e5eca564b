// Package reconcile merges a secondary namelist document's passenger
// data into an already-parsed primary document.
package reconcile

import (
	"strings"

	"ticketparser/internal/booking"
)

func key(p booking.Passenger) string {
	return strings.ToUpper(p.LastName) + "/" + strings.ToUpper(p.FirstName)
}

// Merge fills gender, passenger type, and ticket number gaps in the
// primary list from matching secondary entries, keyed by
// case-normalized (last name, first name). Non-empty primary values are
// never overwritten. Secondary entries with no primary match are
// appended as new passengers; primary ordering is preserved.
func Merge(primary, secondary []booking.Passenger) []booking.Passenger {
	merged := make([]booking.Passenger, len(primary))
	copy(merged, primary)

	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[key(p)] = i
	}

	for _, s := range secondary {
		i, ok := index[key(s)]
		if !ok {
			merged = append(merged, s)
			index[key(s)] = len(merged) - 1
			continue
		}
		if merged[i].Gender == "" {
			merged[i].Gender = s.Gender
		}
		if merged[i].Type == "" {
			merged[i].Type = s.Type
		}
		if merged[i].TicketNumber == "" {
			merged[i].TicketNumber = s.TicketNumber
		}
	}

	return merged
}
