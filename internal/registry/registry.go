package registry

import "github.com/iliyamo/ticket-registry/internal/model"

// Text bounds for organizer-supplied strings, in runes.
const (
	MaxNameLen  = 100
	MaxVenueLen = 100
	MaxSeatLen  = 10
	MaxTierLen  = 20
)

// Call carries the ledger-supplied ambient context into an operation: the
// authenticated caller and the block height the call executes at.  Passing
// it explicitly instead of reading globals is what makes the state machine
// replayable from the journal.
type Call struct {
	Caller model.Principal
	Height uint64
}

// Registry is the whole of the on-ledger state: the authorization set, the
// event catalog, the ticket table and the token-id counter.  It is owned
// exclusively by the ledger host, which serializes calls; the registry
// itself performs no locking.
type Registry struct {
	owner      model.Principal
	organizers map[model.Principal]bool
	events     map[uint64]*model.Event
	tickets    map[uint64]*model.Ticket
	nextToken  uint64
}

// New returns an empty registry owned by the deploying principal.  Token
// ids start at 1 and are never reused, even across burns.
func New(owner model.Principal) *Registry {
	return &Registry{
		owner:      owner,
		organizers: make(map[model.Principal]bool),
		events:     make(map[uint64]*model.Event),
		tickets:    make(map[uint64]*model.Ticket),
		nextToken:  1,
	}
}

// Owner returns the registry owner (the deploying identity).
func (r *Registry) Owner() model.Principal { return r.owner }

// Clone deep-copies the registry.  The ledger host mutates a clone and
// swaps it in only after the operation and its journal write both succeed,
// which gives every call commit-or-rollback semantics without partial
// writes.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		owner:      r.owner,
		organizers: make(map[model.Principal]bool, len(r.organizers)),
		events:     make(map[uint64]*model.Event, len(r.events)),
		tickets:    make(map[uint64]*model.Ticket, len(r.tickets)),
		nextToken:  r.nextToken,
	}
	for p := range r.organizers {
		c.organizers[p] = true
	}
	for id, ev := range r.events {
		cp := *ev
		c.events[id] = &cp
	}
	for id, t := range r.tickets {
		cp := *t
		c.tickets[id] = &cp
	}
	return c
}
