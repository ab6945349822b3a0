package model

// Ticket is a minted, non-fungible admission token.  Owner is the only
// field a transfer touches; IsUsed flips to true exactly once and never
// reverts.  A burned ticket is removed from state entirely rather than
// being flagged.
//
// Fields:
//  TokenID        – registry-assigned monotonic identifier, starting at 1.
//  EventID        – event this ticket admits to.
//  Owner          – current holder.
//  SeatNumber     – optional seat label, empty when unassigned.
//  Tier           – ticket class (e.g. "VIP", "GA").
//  ExpirationDate – ledger height past which the ticket cannot transfer.
//  IsUsed         – whether the ticket has been redeemed at the gate.
type Ticket struct {
	TokenID        uint64    `json:"token_id"`
	EventID        uint64    `json:"event_id"`
	Owner          Principal `json:"owner"`
	SeatNumber     string    `json:"seat_number,omitempty"`
	Tier           string    `json:"tier"`
	ExpirationDate uint64    `json:"expiration_date"`
	IsUsed         bool      `json:"is_used"`
}

// Verification is the result of a ticket authenticity check.  IsValid is
// true only while the ticket exists, has not been used and has not passed
// its expiration height.
type Verification struct {
	Owner   Principal `json:"owner"`
	IsValid bool      `json:"is_valid"`
}
