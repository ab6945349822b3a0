package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-registry/internal/config"
)

func ticketCtx(e *echo.Echo, target string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	// Simulate routing onto the parameterized public lookup.
	c.SetPath("/v1/tickets/:id")
	return c
}

func TestCacheKeyDistinctPerTicket(t *testing.T) {
	e := echo.New()

	for _, strategy := range []string{"route", "method_route", "route_query"} {
		cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: strategy}
		k1 := cacheKeyFrom(cfg, ticketCtx(e, "/v1/tickets/1"))
		k2 := cacheKeyFrom(cfg, ticketCtx(e, "/v1/tickets/2"))
		assert.NotEqual(t, k1, k2, "strategy %s must not share a key across ids", strategy)
	}
}

func TestCacheKeyStableForSameRequest(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	k1 := cacheKeyFrom(cfg, ticketCtx(e, "/v1/tickets/7"))
	k2 := cacheKeyFrom(cfg, ticketCtx(e, "/v1/tickets/7"))
	assert.Equal(t, k1, k2)

	// Query strings participate under route_query.
	k3 := cacheKeyFrom(cfg, ticketCtx(e, "/v1/tickets/7?full=true"))
	assert.NotEqual(t, k1, k3)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	body := []byte(`{"owner":"PRbuyer","is_valid":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, echo.MIMEApplicationJSON, gotHdr.Get(echo.HeaderContentType))
	assert.Equal(t, body, gotBody)

	_, _, _, ok = decodePayload([]byte("short"))
	assert.False(t, ok)
}
