package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/ledger"
	"github.com/iliyamo/ticket-registry/internal/model"
)

// PublicHandler is the read-only query surface.  No authentication, no
// mutation: every method is a pure lookup against current ledger state.
type PublicHandler struct {
	Ledger *ledger.Ledger
}

func NewPublicHandler(l *ledger.Ledger) *PublicHandler {
	return &PublicHandler{Ledger: l}
}

// GetEvent handles GET /v1/events/:id.
func (h *PublicHandler) GetEvent(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, ok := h.Ledger.EventDetails(eventID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	return c.JSON(http.StatusOK, ev)
}

// GetTicket handles GET /v1/tickets/:id.  The full record is exposed,
// including the used flag.
func (h *PublicHandler) GetTicket(c echo.Context) error {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	tk, ok := h.Ledger.TicketDetails(tokenID)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	}
	return c.JSON(http.StatusOK, tk)
}

// GetOwner handles GET /v1/tickets/:id/owner.  A burned or never-minted
// token reports a null owner rather than 404: absence of an owner is a
// normal answer, not a lookup failure.
func (h *PublicHandler) GetOwner(c echo.Context) error {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	owner, ok := h.Ledger.TicketOwner(tokenID)
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"owner": nil})
	}
	return c.JSON(http.StatusOK, echo.Map{"owner": owner})
}

// VerifyTicket handles GET /v1/tickets/:id/verify.
func (h *PublicHandler) VerifyTicket(c echo.Context) error {
	tokenID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid token id"})
	}
	return c.JSON(http.StatusOK, h.Ledger.VerifyTicket(tokenID))
}

// IsAuthorizedOrganizer handles GET /v1/organizers/:principal.
func (h *PublicHandler) IsAuthorizedOrganizer(c echo.Context) error {
	p := model.Principal(c.Param("principal"))
	if p == model.None {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "principal required"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"principal":  p,
		"authorized": h.Ledger.IsAuthorizedOrganizer(p),
	})
}

// GetHeight handles GET /v1/height.
func (h *PublicHandler) GetHeight(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"height": h.Ledger.Height()})
}
