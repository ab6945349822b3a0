package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/ticket-registry/internal/model"
)

const (
	deployer  = model.Principal("PRdeployer")
	organizer = model.Principal("PRorganizer")
	buyer     = model.Principal("PRbuyer")
	newBuyer  = model.Principal("PRnewbuyer")
)

func TestAuthorizeOrganizer(t *testing.T) {
	r := New(deployer)

	assert.False(t, r.IsAuthorizedOrganizer(organizer))

	err := r.AuthorizeOrganizer(Call{Caller: deployer, Height: 1}, organizer)
	require.NoError(t, err)
	assert.True(t, r.IsAuthorizedOrganizer(organizer))
}

func TestAuthorizeOrganizer_Idempotent(t *testing.T) {
	r := New(deployer)

	require.NoError(t, r.AuthorizeOrganizer(Call{Caller: deployer, Height: 1}, organizer))
	require.NoError(t, r.AuthorizeOrganizer(Call{Caller: deployer, Height: 2}, organizer))
	assert.True(t, r.IsAuthorizedOrganizer(organizer))
}

func TestAuthorizeOrganizer_OnlyOwner(t *testing.T) {
	r := New(deployer)

	err := r.AuthorizeOrganizer(Call{Caller: organizer, Height: 1}, organizer)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, r.IsAuthorizedOrganizer(organizer))
}

func TestOwner(t *testing.T) {
	r := New(deployer)
	assert.Equal(t, deployer, r.Owner())
}
