package middleware

// identity.go holds helpers shared across middleware files for reading the
// authenticated caller out of the Echo context.

import "github.com/labstack/echo/v4"

// currentPrincipal returns the caller's ledger principal from context, or
// "guest" when the request is unauthenticated (public query surface).
func currentPrincipal(c echo.Context) string {
	if v, ok := c.Get("principal").(string); ok && v != "" {
		return v
	}
	return "guest"
}
