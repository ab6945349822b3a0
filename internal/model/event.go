package model

// Event holds the organizer-supplied metadata for a ticketed event.  All
// fields except TicketsSold are fixed at creation time; TicketsSold is
// incremented exactly once per successful mint and may never exceed
// MaxTickets.
//
// Fields:
//  ID                 – caller-supplied unique event identifier.
//  Name               – event name (bounded UTF-8 text).
//  Venue              – venue name (bounded UTF-8 text).
//  EventDate          – ledger height at which the event starts.
//  TicketPrice        – price per ticket in the smallest currency unit.
//  MaxTickets         – issuance capacity.
//  TicketsSold        – number of tickets minted so far.
//  ResaleAllowed      – whether ownership transfer is permitted at all.
//  TransferFeePercent – fee taken on resale, 0-100.
//  Organizer          – principal that created the event.
type Event struct {
	ID                 uint64    `json:"event_id"`
	Name               string    `json:"name"`
	Venue              string    `json:"venue"`
	EventDate          uint64    `json:"event_date"`
	TicketPrice        uint64    `json:"ticket_price"`
	MaxTickets         uint64    `json:"max_tickets"`
	TicketsSold        uint64    `json:"tickets_sold"`
	ResaleAllowed      bool      `json:"resale_allowed"`
	TransferFeePercent uint64    `json:"transfer_fee_percent"`
	Organizer          Principal `json:"organizer"`
}
