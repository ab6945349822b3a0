// Package queue defines message payloads exchanged over the message broker.
package queue

// Lifecycle actions published to the ticket.lifecycle queue.
const (
	ActionMinted      = "minted"
	ActionTransferred = "transferred"
	ActionUsed        = "used"
	ActionBurned      = "burned"
)

// TicketLifecycleEvent is published after a ticket mutation commits.  It
// carries enough context for downstream consumers to log or notify without
// reading ledger state.  FeeAmount is only set on transfers.
type TicketLifecycleEvent struct {
	Action    string `json:"action"`
	TokenID   uint64 `json:"token_id"`
	EventID   uint64 `json:"event_id,omitempty"`
	Height    uint64 `json:"height"`
	Caller    string `json:"caller"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	FeeAmount uint64 `json:"fee_amount,omitempty"`
}
