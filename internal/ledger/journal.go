package ledger

import (
	"context"
	"encoding/json"

	"github.com/iliyamo/ticket-registry/internal/model"
)

// Operation names as they appear in the journal.  They match the callable
// surface of the registry one to one.
const (
	OpAuthorizeOrganizer = "authorize-organizer"
	OpCreateEvent        = "create-event"
	OpMintTicket         = "mint-ticket"
	OpTransfer           = "transfer"
	OpUseTicket          = "use-ticket"
	OpBurn               = "burn"
	OpAdvanceHeight      = "advance-height"
)

// Record is one committed call.  Height is the block height the call
// committed at; Payload is the operation's arguments in the wire format
// below.  Replaying records in order through the registry reproduces the
// exact state the ledger held at shutdown.
type Record struct {
	Height  uint64          `json:"height"`
	Op      string          `json:"op"`
	Caller  model.Principal `json:"caller"`
	Payload json.RawMessage `json:"payload"`
}

// Journal is the durable append-only store behind the ledger.  The MySQL
// implementation lives in the repository package; tests substitute an
// in-memory one.
type Journal interface {
	// Append persists a committed record.  An error here aborts the call
	// before the in-memory state is swapped, so nothing commits.
	Append(ctx context.Context, rec Record) error
	// Load returns all records in commit order.
	Load(ctx context.Context) ([]Record, error)
}

// Argument payloads.  Field names match the HTTP request bodies so journal
// rows stay readable next to access logs.

type authorizeArgs struct {
	Principal model.Principal `json:"principal"`
}

type createEventArgs struct {
	EventID            uint64 `json:"event_id"`
	Name               string `json:"name"`
	Venue              string `json:"venue"`
	EventDate          uint64 `json:"event_date"`
	TicketPrice        uint64 `json:"ticket_price"`
	MaxTickets         uint64 `json:"max_tickets"`
	ResaleAllowed      bool   `json:"resale_allowed"`
	TransferFeePercent uint64 `json:"transfer_fee_percent"`
}

type mintArgs struct {
	EventID        uint64          `json:"event_id"`
	To             model.Principal `json:"to"`
	SeatNumber     string          `json:"seat_number,omitempty"`
	Tier           string          `json:"tier"`
	ExpirationDate uint64          `json:"expiration_date"`
}

type transferArgs struct {
	TokenID   uint64          `json:"token_id"`
	Sender    model.Principal `json:"sender"`
	Recipient model.Principal `json:"recipient"`
}

type tokenArgs struct {
	TokenID uint64 `json:"token_id"`
}

type advanceArgs struct {
	To uint64 `json:"to"`
}
