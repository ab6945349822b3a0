package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-registry/internal/model"
	"github.com/iliyamo/ticket-registry/internal/registry"
)

const (
	deployer  = model.Principal("PRdeployer")
	organizer = model.Principal("PRorganizer")
	buyer     = model.Principal("PRbuyer")
	newBuyer  = model.Principal("PRnewbuyer")
)

// memJournal is an in-memory Journal used in place of the MySQL one.
type memJournal struct {
	recs    []Record
	failing bool
}

func (m *memJournal) Append(_ context.Context, rec Record) error {
	if m.failing {
		return errors.New("journal unavailable")
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memJournal) Load(_ context.Context) ([]Record, error) {
	return m.recs, nil
}

func concert(resale bool) registry.CreateEventParams {
	return registry.CreateEventParams{
		EventID:            1,
		Name:               "Concert 2024",
		Venue:              "Madison Square Garden",
		EventDate:          1000,
		TicketPrice:        100,
		MaxTickets:         1000,
		ResaleAllowed:      resale,
		TransferFeePercent: 5,
	}
}

func vip(to model.Principal, expiry uint64) registry.MintParams {
	return registry.MintParams{EventID: 1, To: to, SeatNumber: "A12", Tier: "VIP", ExpirationDate: expiry}
}

func openLedger(t *testing.T, j Journal) *Ledger {
	t.Helper()
	l, err := Open(context.Background(), deployer, j)
	require.NoError(t, err)
	return l
}

func TestCommit_AdvancesHeight(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})
	require.Equal(t, uint64(1), l.Height())

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	assert.Equal(t, uint64(2), l.Height())

	// Failed calls do not mine a block.
	err := l.AuthorizeOrganizer(ctx, organizer, buyer)
	assert.ErrorIs(t, err, registry.ErrUnauthorized)
	assert.Equal(t, uint64(2), l.Height())
}

func TestCommit_JournalFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	j := &memJournal{}
	l := openLedger(t, j)
	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))

	j.failing = true
	err := l.CreateEvent(ctx, organizer, concert(true))
	require.Error(t, err)

	// Nothing committed: no event, height unchanged.
	j.failing = false
	_, ok := l.EventDetails(1)
	assert.False(t, ok)
	assert.Equal(t, uint64(2), l.Height())
}

func TestReplay_RebuildsState(t *testing.T) {
	ctx := context.Background()
	j := &memJournal{}
	l := openLedger(t, j)

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(true)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 2000))
	require.NoError(t, err)
	_, err = l.Transfer(ctx, buyer, tokenID, buyer, newBuyer)
	require.NoError(t, err)
	require.NoError(t, l.AdvanceHeight(ctx, deployer, 1200))
	require.NoError(t, l.UseTicket(ctx, organizer, tokenID))

	// Reopen from the same journal.
	reopened := openLedger(t, j)
	assert.Equal(t, l.Height(), reopened.Height())
	assert.True(t, reopened.IsAuthorizedOrganizer(organizer))

	ev, ok := reopened.EventDetails(1)
	require.True(t, ok)
	assert.Equal(t, uint64(1), ev.TicketsSold)

	tk, ok := reopened.TicketDetails(tokenID)
	require.True(t, ok)
	assert.Equal(t, newBuyer, tk.Owner)
	assert.True(t, tk.IsUsed)
}

func TestReplay_CorruptRecordFailsOpen(t *testing.T) {
	j := &memJournal{recs: []Record{{Height: 2, Op: "no-such-op", Caller: deployer}}}
	_, err := Open(context.Background(), deployer, j)
	assert.Error(t, err)
}

func TestAdvanceHeight(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	assert.ErrorIs(t, l.AdvanceHeight(ctx, organizer, 50), registry.ErrUnauthorized)
	assert.ErrorIs(t, l.AdvanceHeight(ctx, deployer, 1), registry.ErrInvalidParameters)

	require.NoError(t, l.AdvanceHeight(ctx, deployer, 50))
	assert.Equal(t, uint64(50), l.Height())
}

// Lifecycle of a ticket across heights: mint, gate check before the event
// date, redeem once after it.
func TestScenario_UseTicketAcrossHeights(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(true)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 2000))
	require.NoError(t, err)

	err = l.UseTicket(ctx, organizer, tokenID)
	assert.ErrorIs(t, err, registry.ErrEventNotStarted)

	require.NoError(t, l.AdvanceHeight(ctx, deployer, 1500))
	require.NoError(t, l.UseTicket(ctx, organizer, tokenID))

	err = l.UseTicket(ctx, organizer, tokenID)
	assert.ErrorIs(t, err, registry.ErrAlreadyUsed)
}

func TestScenario_ResaleDisallowed(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(false)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 2000))
	require.NoError(t, err)

	_, err = l.Transfer(ctx, buyer, tokenID, buyer, newBuyer)
	assert.ErrorIs(t, err, registry.ErrTransferRestricted)
}

func TestScenario_ExpiredTransfer(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(true)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 10))
	require.NoError(t, err)

	require.NoError(t, l.AdvanceHeight(ctx, deployer, 15))

	// Resale is allowed, but the ticket has expired.
	_, err = l.Transfer(ctx, buyer, tokenID, buyer, newBuyer)
	assert.ErrorIs(t, err, registry.ErrTransferRestricted)
}

func TestScenario_Burn(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(true)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 2000))
	require.NoError(t, err)

	require.NoError(t, l.Burn(ctx, deployer, tokenID))

	owner, ok := l.TicketOwner(tokenID)
	assert.False(t, ok)
	assert.Equal(t, model.None, owner)

	v := l.VerifyTicket(tokenID)
	assert.False(t, v.IsValid)
}

func TestVerifyTicket_UsesCurrentHeight(t *testing.T) {
	ctx := context.Background()
	l := openLedger(t, &memJournal{})

	require.NoError(t, l.AuthorizeOrganizer(ctx, deployer, organizer))
	require.NoError(t, l.CreateEvent(ctx, organizer, concert(true)))
	tokenID, err := l.MintTicket(ctx, organizer, vip(buyer, 100))
	require.NoError(t, err)

	assert.True(t, l.VerifyTicket(tokenID).IsValid)

	require.NoError(t, l.AdvanceHeight(ctx, deployer, 101))
	assert.False(t, l.VerifyTicket(tokenID).IsValid)
}
