package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/ledger"
	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/queue"
	"github.com/iliyamo/ticket-registry/internal/registry"
	queue_publisher "github.com/iliyamo/ticket-registry/internal/service"
)

// OrganizerHandler exposes the organizer-scoped registry operations:
// creating events, minting tickets and redeeming them at the gate.  The
// registry enforces organizer authorization on-ledger for every call, so
// these handlers only authenticate and translate.
type OrganizerHandler struct {
	Ledger *ledger.Ledger
}

func NewOrganizerHandler(l *ledger.Ledger) *OrganizerHandler {
	return &OrganizerHandler{Ledger: l}
}

type createEventReq struct {
	EventID            uint64 `json:"event_id"`
	Name               string `json:"name"`
	Venue              string `json:"venue"`
	EventDate          uint64 `json:"event_date"`
	TicketPrice        uint64 `json:"ticket_price"`
	MaxTickets         uint64 `json:"max_tickets"`
	ResaleAllowed      bool   `json:"resale_allowed"`
	TransferFeePercent uint64 `json:"transfer_fee_percent"`
}

type mintTicketReq struct {
	To             model.Principal `json:"to"`
	SeatNumber     string          `json:"seat_number"`
	Tier           string          `json:"tier"`
	ExpirationDate uint64          `json:"expiration_date"`
}

// CreateEvent handles POST /v1/events.
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Name == "" || req.Venue == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/venue required"})
	}

	err := h.Ledger.CreateEvent(c.Request().Context(), caller, registry.CreateEventParams{
		EventID:            req.EventID,
		Name:               req.Name,
		Venue:              req.Venue,
		EventDate:          req.EventDate,
		TicketPrice:        req.TicketPrice,
		MaxTickets:         req.MaxTickets,
		ResaleAllowed:      req.ResaleAllowed,
		TransferFeePercent: req.TransferFeePercent,
	})
	if err != nil {
		return registryFailure(c, err)
	}
	ev, _ := h.Ledger.EventDetails(req.EventID)
	return c.JSON(http.StatusCreated, ev)
}

// MintTicket handles POST /v1/events/:id/tickets.
func (h *OrganizerHandler) MintTicket(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	var req mintTicketReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.To == model.None || req.Tier == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to/tier required"})
	}

	ctx := c.Request().Context()
	tokenID, err := h.Ledger.MintTicket(ctx, caller, registry.MintParams{
		EventID:        eventID,
		To:             req.To,
		SeatNumber:     req.SeatNumber,
		Tier:           req.Tier,
		ExpirationDate: req.ExpirationDate,
	})
	if err != nil {
		return registryFailure(c, err)
	}

	_ = queue_publisher.PublishTicketLifecycle(ctx, queue.TicketLifecycleEvent{
		Action:  queue.ActionMinted,
		TokenID: tokenID,
		EventID: eventID,
		Height:  h.Ledger.Height(),
		Caller:  string(caller),
		To:      string(req.To),
	})
	return c.JSON(http.StatusCreated, echo.Map{"token_id": tokenID})
}

// UseTicket handles POST /v1/tickets/:id/use.
func (h *OrganizerHandler) UseTicket(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}

	ctx := c.Request().Context()
	tk, _ := h.Ledger.TicketDetails(tokenID)
	if err := h.Ledger.UseTicket(ctx, caller, tokenID); err != nil {
		return registryFailure(c, err)
	}

	_ = queue_publisher.PublishTicketLifecycle(ctx, queue.TicketLifecycleEvent{
		Action:  queue.ActionUsed,
		TokenID: tokenID,
		EventID: tk.EventID,
		Height:  h.Ledger.Height(),
		Caller:  string(caller),
	})
	return c.JSON(http.StatusOK, echo.Map{"used": true})
}
