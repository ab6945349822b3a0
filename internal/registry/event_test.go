package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// concertParams returns valid create-event parameters used across tests.
func concertParams() CreateEventParams {
	return CreateEventParams{
		EventID:            1,
		Name:               "Concert 2024",
		Venue:              "Madison Square Garden",
		EventDate:          1000,
		TicketPrice:        100,
		MaxTickets:         1000,
		ResaleAllowed:      true,
		TransferFeePercent: 5,
	}
}

// newWithOrganizer builds a registry with one authorized organizer.
func newWithOrganizer(t *testing.T) *Registry {
	t.Helper()
	r := New(deployer)
	require.NoError(t, r.AuthorizeOrganizer(Call{Caller: deployer, Height: 1}, organizer))
	return r
}

func TestCreateEvent(t *testing.T) {
	r := newWithOrganizer(t)

	err := r.CreateEvent(Call{Caller: organizer, Height: 2}, concertParams())
	require.NoError(t, err)

	ev, ok := r.EventDetails(1)
	require.True(t, ok)
	assert.Equal(t, "Concert 2024", ev.Name)
	assert.Equal(t, "Madison Square Garden", ev.Venue)
	assert.Equal(t, uint64(0), ev.TicketsSold)
	assert.Equal(t, organizer, ev.Organizer)
}

func TestCreateEvent_Unauthorized(t *testing.T) {
	r := New(deployer)

	err := r.CreateEvent(Call{Caller: organizer, Height: 1}, concertParams())
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, ok := r.EventDetails(1)
	assert.False(t, ok)
}

func TestCreateEvent_DuplicateID(t *testing.T) {
	r := newWithOrganizer(t)

	require.NoError(t, r.CreateEvent(Call{Caller: organizer, Height: 2}, concertParams()))
	err := r.CreateEvent(Call{Caller: organizer, Height: 3}, concertParams())
	assert.ErrorIs(t, err, ErrEventAlreadyExists)
}

func TestCreateEvent_InvalidParameters(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateEventParams)
	}{
		{"zero capacity", func(p *CreateEventParams) { p.MaxTickets = 0 }},
		{"fee over 100", func(p *CreateEventParams) { p.TransferFeePercent = 101 }},
		{"name too long", func(p *CreateEventParams) { p.Name = strings.Repeat("x", MaxNameLen+1) }},
		{"venue too long", func(p *CreateEventParams) { p.Venue = strings.Repeat("x", MaxVenueLen+1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newWithOrganizer(t)
			p := concertParams()
			tc.mutate(&p)

			err := r.CreateEvent(Call{Caller: organizer, Height: 2}, p)
			assert.ErrorIs(t, err, ErrInvalidParameters)
		})
	}
}

func TestCreateEvent_FeeAtBound(t *testing.T) {
	r := newWithOrganizer(t)
	p := concertParams()
	p.TransferFeePercent = 100

	assert.NoError(t, r.CreateEvent(Call{Caller: organizer, Height: 2}, p))
}

func TestEventDetails_Unknown(t *testing.T) {
	r := New(deployer)
	_, ok := r.EventDetails(42)
	assert.False(t, ok)
}

func TestEventDetails_ReturnsCopy(t *testing.T) {
	r := newWithOrganizer(t)
	require.NoError(t, r.CreateEvent(Call{Caller: organizer, Height: 2}, concertParams()))

	ev, ok := r.EventDetails(1)
	require.True(t, ok)
	ev.TicketsSold = 999

	again, _ := r.EventDetails(1)
	assert.Equal(t, uint64(0), again.TicketsSold)
}
