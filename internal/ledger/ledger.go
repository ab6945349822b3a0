// Package ledger hosts the registry state machine with chain-style call
// semantics: one call at a time, each call executing at a fresh block
// height, with commit-or-rollback semantics per call.  Committed calls are appended to a
// journal and replayed at boot to rebuild state.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/monitoring"
	"github.com/iliyamo/ticket-registry/internal/registry"
)

// genesisHeight is the height of the empty ledger before any call commits.
const genesisHeight = 1

// Ledger serializes calls against a registry and journals every commit.
// Mutating calls run against a clone of the state; the clone replaces the
// live state only after the operation and the journal append both succeed,
// so a failure at any point leaves no partial writes.
type Ledger struct {
	mu      sync.RWMutex
	reg     *registry.Registry
	journal Journal
	height  uint64
}

// Open builds a ledger for the given registry owner and replays the journal
// to rebuild state.  A record that fails to replay is corrupt and aborts
// startup rather than continuing from a wrong state.
func Open(ctx context.Context, owner model.Principal, j Journal) (*Ledger, error) {
	l := &Ledger{
		reg:     registry.New(owner),
		journal: j,
		height:  genesisHeight,
	}
	recs, err := j.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	for _, rec := range recs {
		if err := l.apply(rec); err != nil {
			return nil, fmt.Errorf("replay %s at height %d: %w", rec.Op, rec.Height, err)
		}
	}
	monitoring.SetLedgerHeight(l.height)
	return l, nil
}

// commit runs one mutating call.  fn mutates the cloned registry; payload
// becomes the journal record's arguments.
func (l *Ledger) commit(ctx context.Context, op string, caller model.Principal, payload any, fn func(*registry.Registry, registry.Call) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	h := l.height + 1
	clone := l.reg.Clone()
	if err := fn(clone, registry.Call{Caller: caller, Height: h}); err != nil {
		monitoring.ObserveCall(op, err, time.Since(start))
		return err
	}
	body, err := json.Marshal(payload)
	if err != nil {
		monitoring.ObserveCall(op, err, time.Since(start))
		return fmt.Errorf("marshal %s payload: %w", op, err)
	}
	rec := Record{Height: h, Op: op, Caller: caller, Payload: body}
	if err := l.journal.Append(ctx, rec); err != nil {
		monitoring.ObserveCall(op, err, time.Since(start))
		return fmt.Errorf("journal append: %w", err)
	}
	l.reg = clone
	l.height = h
	monitoring.ObserveCall(op, nil, time.Since(start))
	monitoring.SetLedgerHeight(h)
	return nil
}

// apply replays a single journal record against the live state.  Replay
// reuses the same transition functions as commit, at the recorded height.
func (l *Ledger) apply(rec Record) error {
	call := registry.Call{Caller: rec.Caller, Height: rec.Height}
	switch rec.Op {
	case OpAuthorizeOrganizer:
		var a authorizeArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if err := l.reg.AuthorizeOrganizer(call, a.Principal); err != nil {
			return err
		}
	case OpCreateEvent:
		var a createEventArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if err := l.reg.CreateEvent(call, registry.CreateEventParams{
			EventID:            a.EventID,
			Name:               a.Name,
			Venue:              a.Venue,
			EventDate:          a.EventDate,
			TicketPrice:        a.TicketPrice,
			MaxTickets:         a.MaxTickets,
			ResaleAllowed:      a.ResaleAllowed,
			TransferFeePercent: a.TransferFeePercent,
		}); err != nil {
			return err
		}
	case OpMintTicket:
		var a mintArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if _, err := l.reg.MintTicket(call, registry.MintParams{
			EventID:        a.EventID,
			To:             a.To,
			SeatNumber:     a.SeatNumber,
			Tier:           a.Tier,
			ExpirationDate: a.ExpirationDate,
		}); err != nil {
			return err
		}
	case OpTransfer:
		var a transferArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if _, err := l.reg.Transfer(call, a.TokenID, a.Sender, a.Recipient); err != nil {
			return err
		}
	case OpUseTicket:
		var a tokenArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if err := l.reg.UseTicket(call, a.TokenID); err != nil {
			return err
		}
	case OpBurn:
		var a tokenArgs
		if err := json.Unmarshal(rec.Payload, &a); err != nil {
			return err
		}
		if err := l.reg.Burn(call, a.TokenID); err != nil {
			return err
		}
	case OpAdvanceHeight:
		// Height is taken from the record itself below.
	default:
		return fmt.Errorf("unknown op %q", rec.Op)
	}
	l.height = rec.Height
	return nil
}

// AuthorizeOrganizer grants event-creation rights to a principal.  Owner
// only.
func (l *Ledger) AuthorizeOrganizer(ctx context.Context, caller, p model.Principal) error {
	return l.commit(ctx, OpAuthorizeOrganizer, caller, authorizeArgs{Principal: p},
		func(r *registry.Registry, call registry.Call) error {
			return r.AuthorizeOrganizer(call, p)
		})
}

// CreateEvent stores a new event under the caller as organizer.
func (l *Ledger) CreateEvent(ctx context.Context, caller model.Principal, p registry.CreateEventParams) error {
	return l.commit(ctx, OpCreateEvent, caller, createEventArgs{
		EventID:            p.EventID,
		Name:               p.Name,
		Venue:              p.Venue,
		EventDate:          p.EventDate,
		TicketPrice:        p.TicketPrice,
		MaxTickets:         p.MaxTickets,
		ResaleAllowed:      p.ResaleAllowed,
		TransferFeePercent: p.TransferFeePercent,
	}, func(r *registry.Registry, call registry.Call) error {
		return r.CreateEvent(call, p)
	})
}

// MintTicket issues a ticket and returns the allocated token id.
func (l *Ledger) MintTicket(ctx context.Context, caller model.Principal, p registry.MintParams) (uint64, error) {
	var tokenID uint64
	err := l.commit(ctx, OpMintTicket, caller, mintArgs{
		EventID:        p.EventID,
		To:             p.To,
		SeatNumber:     p.SeatNumber,
		Tier:           p.Tier,
		ExpirationDate: p.ExpirationDate,
	}, func(r *registry.Registry, call registry.Call) error {
		var err error
		tokenID, err = r.MintTicket(call, p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return tokenID, nil
}

// Transfer reassigns a ticket and returns the recorded resale fee.
func (l *Ledger) Transfer(ctx context.Context, caller model.Principal, tokenID uint64, sender, recipient model.Principal) (uint64, error) {
	var fee uint64
	err := l.commit(ctx, OpTransfer, caller, transferArgs{TokenID: tokenID, Sender: sender, Recipient: recipient},
		func(r *registry.Registry, call registry.Call) error {
			var err error
			fee, err = r.Transfer(call, tokenID, sender, recipient)
			return err
		})
	if err != nil {
		return 0, err
	}
	return fee, nil
}

// UseTicket redeems a ticket at the gate.
func (l *Ledger) UseTicket(ctx context.Context, caller model.Principal, tokenID uint64) error {
	return l.commit(ctx, OpUseTicket, caller, tokenArgs{TokenID: tokenID},
		func(r *registry.Registry, call registry.Call) error {
			return r.UseTicket(call, tokenID)
		})
}

// Burn deletes a ticket record.  Owner only.
func (l *Ledger) Burn(ctx context.Context, caller model.Principal, tokenID uint64) error {
	return l.commit(ctx, OpBurn, caller, tokenArgs{TokenID: tokenID},
		func(r *registry.Registry, call registry.Call) error {
			return r.Burn(call, tokenID)
		})
}

// AdvanceHeight moves the ledger clock forward to a strictly greater
// height, standing in for empty-block mining.  Owner only; height never
// moves backwards.
func (l *Ledger) AdvanceHeight(ctx context.Context, caller model.Principal, to uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if caller != l.reg.Owner() {
		return registry.ErrUnauthorized
	}
	if to <= l.height {
		return registry.ErrInvalidParameters
	}
	body, err := json.Marshal(advanceArgs{To: to})
	if err != nil {
		return fmt.Errorf("marshal advance payload: %w", err)
	}
	rec := Record{Height: to, Op: OpAdvanceHeight, Caller: caller, Payload: body}
	if err := l.journal.Append(ctx, rec); err != nil {
		return fmt.Errorf("journal append: %w", err)
	}
	l.height = to
	monitoring.SetLedgerHeight(to)
	return nil
}

// Height returns the current block height.
func (l *Ledger) Height() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.height
}

// RegistryOwner returns the deploying principal.
func (l *Ledger) RegistryOwner() model.Principal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.Owner()
}

// IsAuthorizedOrganizer reports whether a principal may create events.
func (l *Ledger) IsAuthorizedOrganizer(p model.Principal) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.IsAuthorizedOrganizer(p)
}

// EventDetails returns the event record for an id, if any.
func (l *Ledger) EventDetails(eventID uint64) (model.Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.EventDetails(eventID)
}

// TicketDetails returns the ticket record for a token id, if any.
func (l *Ledger) TicketDetails(tokenID uint64) (model.Ticket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.TicketDetails(tokenID)
}

// TicketOwner returns the holder of a token; ok is false for burned or
// never-minted tokens.
func (l *Ledger) TicketOwner(tokenID uint64) (model.Principal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.TicketOwner(tokenID)
}

// VerifyTicket checks ticket authenticity at the current height.
func (l *Ledger) VerifyTicket(tokenID uint64) model.Verification {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg.VerifyTicket(tokenID, l.height)
}
