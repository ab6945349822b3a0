package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/ticket-registry/internal/handler"
	"github.com/iliyamo/ticket-registry/internal/middleware"
)

// RegisterAuth registers the session endpoints.  Register, login, refresh
// and logout live under /v1/auth and need no access token; /v1/me requires
// one.  Accounts are off-ledger: a session only proves control of a
// principal, every registry authorization decision happens on-ledger.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; the old one is revoked in the same
	// call.
	g.POST("/refresh", a.Refresh)
	// Logout takes the refresh token in the body, so it does not require a
	// (possibly already expired) access token.
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
