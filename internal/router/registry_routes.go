package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/ticket-registry/internal/config"
	"github.com/iliyamo/ticket-registry/internal/handler"
	"github.com/iliyamo/ticket-registry/internal/middleware"
)

// RegisterPublic registers the unauthenticated query surface.  Responses are
// short-lived cached in Redis when a client is available; ledger state only
// changes on committed calls, so a small TTL is safe.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rdb *redis.Client) {
	g := e.Group("/v1")
	if rdb != nil {
		g.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}
	g.GET("/events/:id", p.GetEvent)
	g.GET("/tickets/:id", p.GetTicket)
	g.GET("/tickets/:id/owner", p.GetOwner)
	g.GET("/tickets/:id/verify", p.VerifyTicket)
	g.GET("/organizers/:principal", p.IsAuthorizedOrganizer)
	g.GET("/height", p.GetHeight)
}

// RegisterRegistry registers the mutating registry calls.  Everything here
// requires a valid access token; rate limiting is applied per principal so a
// single caller cannot flood the ledger with calls.  Organizer and owner
// checks are not route middleware: the registry enforces them on-ledger and
// the handlers translate its errors.  The exception is the /v1/admin group,
// which additionally requires the OWNER role so non-owner sessions are cut
// off before reaching the ledger.
func RegisterRegistry(e *echo.Echo, o *handler.OrganizerHandler, t *handler.TicketHandler, a *handler.AdminHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	if rdb != nil {
		g.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	}

	g.POST("/events", o.CreateEvent)
	g.POST("/events/:id/tickets", o.MintTicket)
	g.POST("/tickets/:id/use", o.UseTicket)
	g.POST("/tickets/:id/transfer", t.Transfer)

	admin := g.Group("/admin")
	admin.Use(middleware.RequireRole("OWNER"))
	admin.POST("/organizers", a.AuthorizeOrganizer)
	admin.DELETE("/tickets/:id", a.Burn)
	admin.POST("/height", a.AdvanceHeight)
}
