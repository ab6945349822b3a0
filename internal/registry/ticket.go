package registry

import (
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/ticket-registry/internal/model"
)

// MintParams describe a single ticket issuance.  SeatNumber may be empty
// for unassigned seating.
type MintParams struct {
	EventID        uint64
	To             model.Principal
	SeatNumber     string
	Tier           string
	ExpirationDate uint64
}

// MintTicket issues the next token id to the given recipient and bumps the
// event's tickets-sold counter.  Only the event organizer may mint, the
// event must have capacity left, and the expiration height must lie in the
// future.  A failed mint leaves the counter untouched.
func (r *Registry) MintTicket(call Call, p MintParams) (uint64, error) {
	ev, ok := r.events[p.EventID]
	if !ok {
		return 0, ErrEventNotFound
	}
	if call.Caller != ev.Organizer {
		return 0, ErrUnauthorized
	}
	if ev.TicketsSold >= ev.MaxTickets {
		return 0, ErrSoldOut
	}
	if p.ExpirationDate <= call.Height {
		return 0, ErrInvalidParameters
	}
	if utf8.RuneCountInString(p.SeatNumber) > MaxSeatLen || utf8.RuneCountInString(p.Tier) > MaxTierLen {
		return 0, ErrInvalidParameters
	}
	tokenID := r.nextToken
	r.nextToken++
	r.tickets[tokenID] = &model.Ticket{
		TokenID:        tokenID,
		EventID:        p.EventID,
		Owner:          p.To,
		SeatNumber:     p.SeatNumber,
		Tier:           p.Tier,
		ExpirationDate: p.ExpirationDate,
		IsUsed:         false,
	}
	ev.TicketsSold++
	return tokenID, nil
}

// Transfer reassigns ownership of a ticket from sender to recipient.  The
// caller must be the sender and the sender must hold the token.  Resale
// being disallowed and the ticket being past expiration both surface as the
// same restriction code; callers cannot tell the two apart.  The returned fee
// is the organizer's cut of a resale at the event's ticket price; recording
// it is the extent of fee handling here, settlement happens off-registry.
func (r *Registry) Transfer(call Call, tokenID uint64, sender, recipient model.Principal) (uint64, error) {
	t, ok := r.tickets[tokenID]
	if !ok {
		return 0, ErrTokenNotFound
	}
	if t.Owner != sender || call.Caller != sender {
		return 0, ErrNotOwner
	}
	ev, ok := r.events[t.EventID]
	if !ok {
		return 0, ErrEventNotFound
	}
	if !ev.ResaleAllowed || call.Height > t.ExpirationDate {
		return 0, ErrTransferRestricted
	}
	t.Owner = recipient
	return transferFee(ev.TicketPrice, ev.TransferFeePercent), nil
}

// transferFee computes price * percent / 100 in the smallest currency unit,
// rounded down.
func transferFee(price, percent uint64) uint64 {
	fee := decimal.NewFromUint64(price).
		Mul(decimal.NewFromUint64(percent)).
		Div(decimal.NewFromInt(100)).
		Floor()
	return uint64(fee.IntPart())
}

// UseTicket redeems a ticket at the gate.  Only the organizer of the
// ticket's event may redeem, the event must have started, and a ticket can
// be used exactly once.  The flip to used is irreversible.
func (r *Registry) UseTicket(call Call, tokenID uint64) error {
	t, ok := r.tickets[tokenID]
	if !ok {
		return ErrTokenNotFound
	}
	ev, ok := r.events[t.EventID]
	if !ok {
		return ErrEventNotFound
	}
	if call.Caller != ev.Organizer {
		return ErrUnauthorized
	}
	if call.Height < ev.EventDate {
		return ErrEventNotStarted
	}
	if t.IsUsed {
		return ErrAlreadyUsed
	}
	t.IsUsed = true
	return nil
}

// Burn removes a ticket record entirely.  Only the registry owner may
// burn; the authorization check runs before the existence check so an
// outsider cannot probe which token ids exist.  The token id is never
// reissued.
func (r *Registry) Burn(call Call, tokenID uint64) error {
	if call.Caller != r.owner {
		return ErrUnauthorized
	}
	if _, ok := r.tickets[tokenID]; !ok {
		return ErrTokenNotFound
	}
	delete(r.tickets, tokenID)
	return nil
}

// TicketOwner returns the current holder of a token.  Burned or never
// minted tokens report no owner rather than an error.
func (r *Registry) TicketOwner(tokenID uint64) (model.Principal, bool) {
	t, ok := r.tickets[tokenID]
	if !ok {
		return model.None, false
	}
	return t.Owner, true
}

// TicketDetails returns a copy of the full ticket record, including the
// used flag, or false when the token does not exist.
func (r *Registry) TicketDetails(tokenID uint64) (model.Ticket, bool) {
	t, ok := r.tickets[tokenID]
	if !ok {
		return model.Ticket{}, false
	}
	return *t, true
}

// VerifyTicket checks authenticity at the given height: the ticket must
// exist, be unused and not be past its expiration.
func (r *Registry) VerifyTicket(tokenID, height uint64) model.Verification {
	t, ok := r.tickets[tokenID]
	if !ok {
		return model.Verification{}
	}
	return model.Verification{
		Owner:   t.Owner,
		IsValid: !t.IsUsed && height <= t.ExpirationDate,
	}
}
