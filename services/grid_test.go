package services

import (
	"testing"

	"github.com/mkessler/squares-backend/models"

	"github.com/stretchr/testify/require"
)

// Walks the full claim lifecycle: closed board, open, claim, stale claim,
// foreign unclaim, own unclaim, reclaim.
func TestClaimLifecycle(t *testing.T) {
	s := newTestService(t)
	admin, alice, bob, game := seedGame(t, s)
	square := squareAt(t, s, game.ID, 3, 7)

	// game is still in setup
	_, err := s.ClaimSquare(alice, game.ID, square.ID, 0)
	require.NotNil(t, err)
	require.Equal(t, CodeNotOpen, err.Code)

	_, err = s.OpenGame(admin, game.ID)
	require.Nil(t, err)

	v, err := s.ClaimSquare(alice, game.ID, square.ID, 0)
	require.Nil(t, err)
	require.Equal(t, 1, v)

	claimed := squareAt(t, s, game.ID, 3, 7)
	require.Equal(t, 1, claimed.Version)
	require.True(t, claimed.Owner().Equal(models.RegisteredOwner(alice.ID)))
	require.NotNil(t, claimed.ClaimedAt)

	// stale version loses and must not mutate anything
	_, err = s.ClaimSquare(bob, game.ID, square.ID, 0)
	require.NotNil(t, err)
	require.Equal(t, CodeConflict, err.Code)

	after := squareAt(t, s, game.ID, 3, 7)
	require.Equal(t, claimed.Version, after.Version)
	require.True(t, after.Owner().Equal(models.RegisteredOwner(alice.ID)))

	// only the owner can release
	_, err = s.UnclaimSquare(bob, game.ID, square.ID)
	require.NotNil(t, err)
	require.Equal(t, CodeNotOwner, err.Code)
	require.Equal(t, 1, squareAt(t, s, game.ID, 3, 7).Version)

	v, err = s.UnclaimSquare(alice, game.ID, square.ID)
	require.Nil(t, err)
	require.Equal(t, 2, v)

	released := squareAt(t, s, game.ID, 3, 7)
	require.False(t, released.Owner().IsSet())
	require.Nil(t, released.ClaimedAt)

	v, err = s.ClaimSquare(bob, game.ID, square.ID, 2)
	require.Nil(t, err)
	require.Equal(t, 3, v)
	require.True(t, squareAt(t, s, game.ID, 3, 7).Owner().Equal(models.RegisteredOwner(bob.ID)))
}

// Two attempts against the same starting version: the conditional update
// lets exactly one through.
func TestClaimSameVersionOnlyOneWins(t *testing.T) {
	s := newTestService(t)
	admin, alice, bob, game := seedGame(t, s)
	square := squareAt(t, s, game.ID, 0, 0)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)

	_, err1 := s.ClaimSquare(alice, game.ID, square.ID, 0)
	_, err2 := s.ClaimSquare(bob, game.ID, square.ID, 0)

	require.Nil(t, err1)
	require.NotNil(t, err2)
	require.Equal(t, CodeConflict, err2.Code)
	require.True(t, squareAt(t, s, game.ID, 0, 0).Owner().Equal(models.RegisteredOwner(alice.ID)))
}

func TestClaimRespectsSquareLimit(t *testing.T) {
	s := newTestService(t)
	admin := createUser(t, s, "admin")
	group, err := s.CreateGroup(admin, CreateGroupInput{Name: "capped"})
	require.Nil(t, err)
	game, err := s.CreateGame(admin, group.ID, CreateGameInput{
		Name: "g", HomeTeam: "H", AwayTeam: "A", MaxSquaresPerUser: 2,
	})
	require.Nil(t, err)
	_, err = s.OpenGame(admin, game.ID)
	require.Nil(t, err)

	for i, cell := range [][2]int{{0, 0}, {0, 1}} {
		sq := squareAt(t, s, game.ID, cell[0], cell[1])
		_, err := s.ClaimSquare(admin, game.ID, sq.ID, 0)
		require.Nil(t, err, "claim %d", i)
	}

	third := squareAt(t, s, game.ID, 0, 2)
	_, err = s.ClaimSquare(admin, game.ID, third.ID, 0)
	require.NotNil(t, err)
	require.Equal(t, CodeValidationFailed, err.Code)

	// the over-limit write is rolled back: the square stays unclaimed at
	// its original version, and the owned count stays at the cap
	after := squareAt(t, s, game.ID, 0, 2)
	require.False(t, after.Owner().IsSet())
	require.Equal(t, 0, after.Version)
	require.Nil(t, after.ClaimedAt)

	var owned int64
	require.NoError(t, s.DB.Model(&models.Square{}).
		Where("game_id = ? AND user_id = ?", game.ID, admin.ID).
		Count(&owned).Error)
	require.EqualValues(t, 2, owned)
}

// Claims against squares that do not exist report not-found, not a
// version conflict.
func TestClaimMissingSquare(t *testing.T) {
	s := newTestService(t)
	admin, alice, _, game := seedGame(t, s)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)

	_, err = s.ClaimSquare(alice, game.ID, 999999, 0)
	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code)

	// a real square id paired with the wrong game is also not-found
	otherGame, cerr := s.CreateGame(admin, game.GroupID, CreateGameInput{
		Name: "other", HomeTeam: "H", AwayTeam: "A",
	})
	require.Nil(t, cerr)
	foreign := squareAt(t, s, otherGame.ID, 0, 0)
	_, err = s.ClaimSquare(alice, game.ID, foreign.ID, 0)
	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code)

	_, err = s.AdminAssignSquare(admin, game.ID, 999999, models.PlaceholderOwner("Rex"), 0)
	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code)
}

func TestAdminAssignOverridesAndClears(t *testing.T) {
	s := newTestService(t)
	admin, alice, bob, game := seedGame(t, s)
	square := squareAt(t, s, game.ID, 5, 5)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)

	v, err := s.ClaimSquare(alice, game.ID, square.ID, 0)
	require.Nil(t, err)

	// non-admin cannot force-assign
	_, err = s.AdminAssignSquare(bob, game.ID, square.ID, models.RegisteredOwner(bob.ID), v)
	require.NotNil(t, err)
	require.Equal(t, CodeNotAuthorized, err.Code)

	// admin overwrites an owned square with a placeholder name
	v, err = s.AdminAssignSquare(admin, game.ID, square.ID, models.PlaceholderOwner("Uncle Rico"), v)
	require.Nil(t, err)
	require.Equal(t, 2, v)

	assigned := squareAt(t, s, game.ID, 5, 5)
	name, ok := assigned.Owner().Name()
	require.True(t, ok)
	require.Equal(t, "Uncle Rico", name)

	// admin assign is still version checked
	_, err = s.AdminAssignSquare(admin, game.ID, square.ID, models.NoOwner(), 1)
	require.NotNil(t, err)
	require.Equal(t, CodeConflict, err.Code)

	// clearing works even on a locked game
	_, err = s.LockGame(admin, game.ID)
	require.Nil(t, err)
	v, err = s.AdminAssignSquare(admin, game.ID, square.ID, models.NoOwner(), v)
	require.Nil(t, err)
	require.Equal(t, 3, v)
	require.False(t, squareAt(t, s, game.ID, 5, 5).Owner().IsSet())
}

func TestUnclaimRequiresOpenGame(t *testing.T) {
	s := newTestService(t)
	admin, alice, _, game := seedGame(t, s)
	square := squareAt(t, s, game.ID, 1, 1)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	_, err = s.ClaimSquare(alice, game.ID, square.ID, 0)
	require.Nil(t, err)

	_, err = s.LockGame(admin, game.ID)
	require.Nil(t, err)

	_, err = s.UnclaimSquare(alice, game.ID, square.ID)
	require.NotNil(t, err)
	require.Equal(t, CodeNotOpen, err.Code)
	require.Equal(t, 1, squareAt(t, s, game.ID, 1, 1).Version)
}
