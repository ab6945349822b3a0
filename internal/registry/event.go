package registry

import (
	"unicode/utf8"

	"github.com/iliyamo/ticket-registry/internal/model"
)

// CreateEventParams are the organizer-supplied attributes of a new event.
// EventID is chosen by the caller and must be unused; everything except the
// issuance counter is immutable once stored.
type CreateEventParams struct {
	EventID            uint64
	Name               string
	Venue              string
	EventDate          uint64
	TicketPrice        uint64
	MaxTickets         uint64
	ResaleAllowed      bool
	TransferFeePercent uint64
}

// CreateEvent stores a new event with tickets-sold at zero and the caller
// recorded as organizer.  The caller must hold organizer authorization.
// All parameter checks run before any state is touched.
func (r *Registry) CreateEvent(call Call, p CreateEventParams) error {
	if !r.organizers[call.Caller] {
		return ErrUnauthorized
	}
	if _, exists := r.events[p.EventID]; exists {
		return ErrEventAlreadyExists
	}
	if p.MaxTickets == 0 || p.TransferFeePercent > 100 {
		return ErrInvalidParameters
	}
	if utf8.RuneCountInString(p.Name) > MaxNameLen || utf8.RuneCountInString(p.Venue) > MaxVenueLen {
		return ErrInvalidParameters
	}
	r.events[p.EventID] = &model.Event{
		ID:                 p.EventID,
		Name:               p.Name,
		Venue:              p.Venue,
		EventDate:          p.EventDate,
		TicketPrice:        p.TicketPrice,
		MaxTickets:         p.MaxTickets,
		TicketsSold:        0,
		ResaleAllowed:      p.ResaleAllowed,
		TransferFeePercent: p.TransferFeePercent,
		Organizer:          call.Caller,
	}
	return nil
}

// EventDetails returns a copy of the stored event, or false when the id is
// unknown.  Copies keep callers from reaching into registry-owned state.
func (r *Registry) EventDetails(eventID uint64) (model.Event, bool) {
	ev, ok := r.events[eventID]
	if !ok {
		return model.Event{}, false
	}
	return *ev, true
}
