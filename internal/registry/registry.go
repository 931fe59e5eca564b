// Package registry provides the airline adapter registry for
// dispatching booking documents to the matching extractor triple.
package registry

import (
	"sort"
	"sync"

	"ticketparser/internal/booking"
)

// Adapter is implemented by each airline's extractor triple. Adapters
// are stateless: every method is a pure function over the normalized
// document text.
type Adapter interface {
	// Code returns the IATA airline code, e.g. "7C".
	Code() string

	// Airline returns the carrier's display name.
	Airline() string

	// Metadata recovers reservation-level fields. Fields no candidate
	// pattern matched are returned empty.
	Metadata(text string) booking.Metadata

	// Journeys classifies the journey type and recovers one ordered
	// segment per detected leg. It returns an error only when no
	// journey type is classifiable at all.
	Journeys(text string) (journeyType string, segments []booking.Segment, err error)

	// Passengers recovers one record per traveler, deduplicated by
	// (last name, first name).
	Passengers(text string, group bool) []booking.Passenger
}

// NamelistParser is implemented by adapters whose airline issues a
// separate passenger namelist document for group bookings.
type NamelistParser interface {
	NamelistPassengers(text string) []booking.Passenger
}

// Registry holds registered adapters keyed by airline code.
type Registry struct {
	mu     sync.RWMutex
	byCode map[string]Adapter
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{byCode: make(map[string]Adapter)}
}

// Global default registry.
var defaultRegistry = New()

// Default returns the global registry instance.
func Default() *Registry {
	return defaultRegistry
}

// Register adds an adapter to the default registry. Called during
// init() in each airline package.
func Register(a Adapter) {
	defaultRegistry.Register(a)
}

// Register adds an adapter to the registry. A later registration for
// the same code replaces the earlier one.
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byCode[a.Code()] = a
}

// Lookup returns the adapter for an airline code.
func (r *Registry) Lookup(code string) (Adapter, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byCode[code]
	return a, ok
}

// Codes returns all registered airline codes, sorted.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	codes := make([]string, 0, len(r.byCode))
	for code := range r.byCode {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AdapterCount returns the number of registered adapters.
func (r *Registry) AdapterCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byCode)
}
