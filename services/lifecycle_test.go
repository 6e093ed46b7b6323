package services

import (
	"testing"

	"github.com/mkessler/squares-backend/models"

	"github.com/stretchr/testify/require"
)

func TestLifecycleTransitions(t *testing.T) {
	s := newTestService(t)
	admin, alice, _, game := seedGame(t, s)

	require.Equal(t, models.StatusSetup, game.Status)

	// setup cannot be locked
	_, err := s.LockGame(admin, game.ID)
	require.NotNil(t, err)
	require.Equal(t, CodeValidationFailed, err.Code)

	// non-admin cannot transition
	_, err = s.OpenGame(alice, game.ID)
	require.NotNil(t, err)
	require.Equal(t, CodeNotAuthorized, err.Code)

	opened, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	require.Equal(t, models.StatusOpen, opened.Status)

	// reapplying the current state is a no-op success
	opened, err = s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	require.Equal(t, models.StatusOpen, opened.Status)

	locked, err := s.LockGame(admin, game.ID)
	require.Nil(t, err)
	require.Equal(t, models.StatusLocked, locked.Status)

	// admin override: locked games can be reopened
	reopened, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	require.Equal(t, models.StatusOpen, reopened.Status)
}

func TestTransitionsDoNotTouchNumbers(t *testing.T) {
	s := newTestService(t)
	admin, _, _, game := seedGame(t, s)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	_, err = s.RandomizeGameNumbers(admin, game.ID)
	require.Nil(t, err)

	_, err = s.LockGame(admin, game.ID)
	require.Nil(t, err)

	fresh, gerr := s.getGame(game.ID)
	require.Nil(t, gerr)
	home, away := fresh.Axes()
	require.Len(t, home, 10)
	require.Len(t, away, 10)
	require.NotNil(t, fresh.NumbersAssignedAt)
}
