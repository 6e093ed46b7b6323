package services

import (
	"testing"

	"github.com/mkessler/squares-backend/models"

	"github.com/stretchr/testify/require"
)

func TestJoinGroup(t *testing.T) {
	s := newTestService(t)
	admin := createUser(t, s, "admin")
	alice := createUser(t, s, "alice")

	group, err := s.CreateGroup(admin, CreateGroupInput{Name: "pool"})
	require.Nil(t, err)
	require.Len(t, group.InviteCode, 10)

	_, err = s.JoinGroup(alice, "nope")
	require.NotNil(t, err)
	require.Equal(t, CodeNotFound, err.Code)

	joined, err := s.JoinGroup(alice, group.InviteCode)
	require.Nil(t, err)
	require.Equal(t, group.ID, joined.ID)

	// joining again is a no-op, not a duplicate membership
	_, err = s.JoinGroup(alice, group.InviteCode)
	require.Nil(t, err)

	var memberCount int64
	require.NoError(t, s.DB.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", group.ID, alice.ID).
		Count(&memberCount).Error)
	require.EqualValues(t, 1, memberCount)

	// creator holds the admin capability, joiners do not
	require.True(t, s.isGroupAdmin(admin.ID, group.ID))
	require.False(t, s.isGroupAdmin(alice.ID, group.ID))
}

func TestClaimPlaceholderMergesSquares(t *testing.T) {
	s := newTestService(t)
	admin, _, _, game := seedGame(t, s)

	var group models.Group
	require.NoError(t, s.DB.First(&group, game.GroupID).Error)

	member, err := s.AddPlaceholderMember(admin, group.ID, "Uncle Rico")
	require.Nil(t, err)
	require.Nil(t, member.UserID)

	// admin places a square for the placeholder
	square := squareAt(t, s, game.ID, 2, 2)
	_, err = s.AdminAssignSquare(admin, game.ID, square.ID, models.PlaceholderOwner("Uncle Rico"), 0)
	require.Nil(t, err)

	// Rico signs up and claims his identity
	rico := createUser(t, s, "rico")
	_, err = s.JoinGroup(rico, group.InviteCode)
	require.Nil(t, err)

	claimed, err := s.ClaimPlaceholder(rico, group.ID, member.ID)
	require.Nil(t, err)
	require.NotNil(t, claimed.UserID)
	require.Equal(t, rico.ID, *claimed.UserID)

	merged := squareAt(t, s, game.ID, 2, 2)
	require.True(t, merged.Owner().Equal(models.RegisteredOwner(rico.ID)))
	require.Equal(t, 2, merged.Version) // merge counts as a mutation

	// a claimed identity cannot be claimed twice
	other := createUser(t, s, "other")
	_, err = s.ClaimPlaceholder(other, group.ID, member.ID)
	require.NotNil(t, err)
	require.Equal(t, CodeConflict, err.Code)
}

func TestDeleteGroupCascades(t *testing.T) {
	s := newTestService(t)
	admin, alice, _, game := seedGame(t, s)

	_, err := s.OpenGame(admin, game.ID)
	require.Nil(t, err)
	square := squareAt(t, s, game.ID, 4, 4)
	_, err = s.ClaimSquare(alice, game.ID, square.ID, 0)
	require.Nil(t, err)

	require.Nil(t, s.DeleteGroup(admin, game.GroupID))

	var squares int64
	require.NoError(t, s.DB.Model(&models.Square{}).Where("game_id = ?", game.ID).Count(&squares).Error)
	require.EqualValues(t, 0, squares)

	var games int64
	require.NoError(t, s.DB.Model(&models.Game{}).Where("group_id = ?", game.GroupID).Count(&games).Error)
	require.EqualValues(t, 0, games)
}

func TestOwnerVariant(t *testing.T) {
	require.False(t, models.NoOwner().IsSet())
	require.True(t, models.RegisteredOwner(3).IsSet())
	require.True(t, models.PlaceholderOwner("Rico").IsSet())

	require.True(t, models.RegisteredOwner(3).Equal(models.RegisteredOwner(3)))
	require.False(t, models.RegisteredOwner(3).Equal(models.RegisteredOwner(4)))
	require.False(t, models.RegisteredOwner(3).Equal(models.PlaceholderOwner("Rico")))
	require.True(t, models.PlaceholderOwner("Rico").Equal(models.PlaceholderOwner("Rico")))
	require.True(t, models.NoOwner().Equal(models.NoOwner()))

	// user reference wins when both columns are somehow set
	id := uint(7)
	name := "ghost"
	owner := models.OwnerFromColumns(&id, &name)
	gotID, ok := owner.UserID()
	require.True(t, ok)
	require.Equal(t, uint(7), gotID)
	_, hasName := owner.Name()
	require.False(t, hasName)
}
