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

// AdminHandler exposes the registry-owner operations: granting organizer
// authorization, burning tickets, and advancing the ledger height.  Routes
// are additionally gated by the OWNER role, but the ledger re-checks the
// owner principal for each call; the role is a convenience, not the
// authority.
type AdminHandler struct {
	Ledger *ledger.Ledger
}

func NewAdminHandler(l *ledger.Ledger) *AdminHandler {
	return &AdminHandler{Ledger: l}
}

type authorizeReq struct {
	Principal model.Principal `json:"principal"`
}

type advanceHeightReq struct {
	To uint64 `json:"to"`
}

// AuthorizeOrganizer handles POST /v1/admin/organizers.
func (h *AdminHandler) AuthorizeOrganizer(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req authorizeReq
	if err := c.Bind(&req); err != nil || req.Principal == model.None {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "principal required"})
	}

	if err := h.Ledger.AuthorizeOrganizer(c.Request().Context(), caller, req.Principal); err != nil {
		return registryFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"authorized": true, "principal": req.Principal})
}

// Burn handles DELETE /v1/admin/tickets/:id.
func (h *AdminHandler) Burn(c echo.Context) error {
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
	if err := h.Ledger.Burn(ctx, caller, tokenID); err != nil {
		return registryFailure(c, err)
	}

	_ = queue_publisher.PublishTicketLifecycle(ctx, queue.TicketLifecycleEvent{
		Action:  queue.ActionBurned,
		TokenID: tokenID,
		EventID: tk.EventID,
		Height:  h.Ledger.Height(),
		Caller:  string(caller),
	})
	return c.JSON(http.StatusOK, echo.Map{"burned": true})
}

// AdvanceHeight handles POST /v1/admin/height, the stand-in for mining
// empty blocks: it moves the clock that event dates and expirations are
// measured against.
func (h *AdminHandler) AdvanceHeight(c echo.Context) error {
	caller, ok := callerPrincipal(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req advanceHeightReq
	if err := c.Bind(&req); err != nil || req.To == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "target height required"})
	}

	if err := h.Ledger.AdvanceHeight(c.Request().Context(), caller, req.To); err != nil {
		return registryFailure(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"height": h.Ledger.Height()})
}
