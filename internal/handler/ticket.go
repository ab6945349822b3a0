package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/ledger"
	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/queue"
	queue_publisher "github.com/iliyamo/ticket-registry/internal/service"
)

// TicketHandler exposes the holder-scoped operation: transferring a ticket
// to another principal.  The sender in the body must be the caller; the
// registry rejects anything else as not-owner.
type TicketHandler struct {
	Ledger *ledger.Ledger
}

func NewTicketHandler(l *ledger.Ledger) *TicketHandler {
	return &TicketHandler{Ledger: l}
}

type transferReq struct {
	Sender    model.Principal `json:"sender"`
	Recipient model.Principal `json:"recipient"`
}

// Transfer handles POST /v1/tickets/:id/transfer.  The response carries the
// recorded resale fee; settling it is out of scope for the registry.
func (h *TicketHandler) Transfer(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	var req transferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Sender == model.None || req.Recipient == model.None {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "sender/recipient required"})
	}

	ctx := c.Request().Context()
	tk, _ := h.Ledger.TicketDetails(tokenID)
	fee, err := h.Ledger.Transfer(ctx, caller, tokenID, req.Sender, req.Recipient)
	if err != nil {
		return registryFailure(c, err)
	}

	_ = queue_publisher.PublishTicketLifecycle(ctx, queue.TicketLifecycleEvent{
		Action:    queue.ActionTransferred,
		TokenID:   tokenID,
		EventID:   tk.EventID,
		Height:    h.Ledger.Height(),
		Caller:    string(caller),
		From:      string(req.Sender),
		To:        string(req.Recipient),
		FeeAmount: fee,
	})
	return c.JSON(http.StatusOK, echo.Map{"transferred": true, "fee_amount": fee})
}
