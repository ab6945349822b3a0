package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/registry"
)

// callerPrincipal reads the authenticated ledger principal stored by the
// JWT middleware.  An empty result means the middleware did not run.
func callerPrincipal(c echo.Context) (model.Principal, bool) {
	s, ok := c.Get("principal").(string)
	if !ok || s == "" {
		return model.None, false
	}
	return model.Principal(s), true
}

// registryFailure translates a registry error into the HTTP response the
// caller sees: the registry's numeric code plus a message, under a status
// chosen per failure kind.  Non-registry errors surface as 500.
func registryFailure(c echo.Context, err error) error {
	var rerr *registry.Error
	if !errors.As(err, &rerr) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(statusFor(rerr), echo.Map{"error": rerr.Msg, "code": rerr.Code})
}

func statusFor(rerr *registry.Error) int {
	switch rerr {
	case registry.ErrTokenNotFound, registry.ErrEventNotFound:
		return http.StatusNotFound
	case registry.ErrUnauthorized, registry.ErrNotOwner:
		return http.StatusForbidden
	case registry.ErrInvalidParameters:
		return http.StatusBadRequest
	default:
		// EventAlreadyExists, SoldOut, TransferRestricted,
		// EventNotStarted, AlreadyUsed: all conflicts with ledger state.
		return http.StatusConflict
	}
}
