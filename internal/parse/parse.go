// Package parse assembles booking drafts by dispatching documents to
// the registered airline adapters.
package parse

import (
	"go.uber.org/zap"

	"ticketparser/internal/booking"
	"ticketparser/internal/normalize"
	"ticketparser/internal/reconcile"
	"ticketparser/internal/registry"
)

// Parser runs the extraction pipeline. It holds no per-parse state:
// parsing identical input twice yields identical drafts, and independent
// callers may share one Parser concurrently.
type Parser struct {
	log *zap.Logger
	reg *registry.Registry
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger injects a structured logger for pipeline tracing. The
// extractors themselves stay pure; only the assembly steps log.
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) { p.log = log }
}

// WithRegistry overrides the default adapter registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(p *Parser) { p.reg = reg }
}

// New creates a Parser. Without options it uses the default registry
// and a no-op logger.
func New(opts ...Option) *Parser {
	p := &Parser{
		log: zap.NewNop(),
		reg: registry.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse converts one document (plus optional namelist) into a booking
// draft. It returns a *booking.ParseError only when no adapter exists
// for the airline code or the adapter cannot classify a journey type;
// every other gap degrades to empty fields and the completeness flag.
func (p *Parser) Parse(doc booking.Document) (*booking.Draft, error) {
	adapter, ok := p.reg.Lookup(doc.Airline)
	if !ok {
		return nil, &booking.ParseError{Airline: doc.Airline, Reason: "no adapter registered"}
	}

	text := normalize.Normalize(doc.Text)

	meta := adapter.Metadata(text)

	journeyType, segments, err := adapter.Journeys(text)
	if err != nil {
		p.log.Warn("journey classification failed",
			zap.String("airline", doc.Airline),
			zap.Error(err))
		return nil, &booking.ParseError{Airline: doc.Airline, Reason: err.Error()}
	}

	passengers := adapter.Passengers(text, meta.IsGroupBooking)

	if doc.Namelist != "" {
		if nl, ok := adapter.(registry.NamelistParser); ok {
			secondary := nl.NamelistPassengers(normalize.Normalize(doc.Namelist))
			passengers = reconcile.Merge(passengers, secondary)
			p.log.Debug("namelist reconciled",
				zap.String("airline", doc.Airline),
				zap.Int("secondary", len(secondary)),
				zap.Int("merged", len(passengers)))
		}
	}

	// Seat count falls back to the deduplicated passenger count when
	// the document does not state it.
	if meta.TotalSeats == 0 {
		meta.TotalSeats = len(passengers)
	}
	if meta.TotalSeats >= booking.GroupSeatThreshold {
		meta.IsGroupBooking = true
	}

	draft := &booking.Draft{
		AirlineCode:       adapter.Code(),
		JourneyType:       journeyType,
		IsGroupBooking:    meta.IsGroupBooking,
		TotalSeats:        meta.TotalSeats,
		ReservationNumber: meta.ReservationNumber,
		BookingDate:       meta.BookingDate,
		Journeys:          segments,
		Passengers:        passengers,
	}
	draft.NeedsPassengerInput = len(passengers) == 0 ||
		(draft.IsGroupBooking && len(passengers) < draft.TotalSeats)

	p.log.Info("document parsed",
		zap.String("airline", doc.Airline),
		zap.String("journey_type", journeyType),
		zap.Int("segments", len(segments)),
		zap.Int("passengers", len(passengers)),
		zap.Int("total_seats", draft.TotalSeats),
		zap.Bool("needs_passenger_input", draft.NeedsPassengerInput))

	if missing := booking.MissingFields(draft); len(missing) > 0 {
		p.log.Debug("incomplete fields",
			zap.String("airline", doc.Airline),
			zap.Strings("missing", missing))
	}

	return draft, nil
}
