package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mkessler/squares-backend/models"

	"github.com/stretchr/testify/require"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
		DSN:        dsn,
		DriverName: "sqlite",
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.GroupMember{},
		&models.Game{},
		&models.Square{},
		&models.QuarterWinner{},
		&models.Presence{},
	))

	return &Service{DB: db, Bus: NewEventBus(NewHub(), nil)}
}

func createUser(t *testing.T, s *Service, name string) *models.User {
	t.Helper()
	user := models.User{
		AuthSubject: name + "-subject",
		Email:       name + "@example.com",
		FullName:    name,
	}
	require.NoError(t, s.DB.Create(&user).Error)
	return &user
}

// seedGame creates a group with an admin, two regular members and a fresh
// game (status setup, 100 squares).
func seedGame(t *testing.T, s *Service) (admin, alice, bob *models.User, game *models.Game) {
	t.Helper()

	admin = createUser(t, s, "admin")
	alice = createUser(t, s, "alice")
	bob = createUser(t, s, "bob")

	group, err := s.CreateGroup(admin, CreateGroupInput{Name: "office pool"})
	require.Nil(t, err)

	_, err = s.JoinGroup(alice, group.InviteCode)
	require.Nil(t, err)
	_, err = s.JoinGroup(bob, group.InviteCode)
	require.Nil(t, err)

	game, err = s.CreateGame(admin, group.ID, CreateGameInput{
		Name:     "the big game",
		HomeTeam: "Chiefs",
		AwayTeam: "Eagles",
	})
	require.Nil(t, err)
	return admin, alice, bob, game
}

func squareAt(t *testing.T, s *Service, gameID uint, row, col int) *models.Square {
	t.Helper()
	var square models.Square
	err := s.DB.Where(`game_id = ? AND "row" = ? AND "col" = ?`, gameID, row, col).First(&square).Error
	require.NoError(t, err)
	return &square
}

func TestCreateGameBuildsFullBoard(t *testing.T) {
	s := newTestService(t)
	_, _, _, game := seedGame(t, s)

	var count int64
	require.NoError(t, s.DB.Model(&models.Square{}).Where("game_id = ?", game.ID).Count(&count).Error)
	require.EqualValues(t, 100, count)

	var fresh models.Square
	require.NoError(t, s.DB.Where("game_id = ?", game.ID).First(&fresh).Error)
	require.Equal(t, 0, fresh.Version)
	require.False(t, fresh.Owner().IsSet())

	// cells cover the full 10x10 space exactly once
	var squares []models.Square
	require.NoError(t, s.DB.Where("game_id = ?", game.ID).Find(&squares).Error)
	seen := make(map[[2]int]bool, 100)
	for _, sq := range squares {
		require.GreaterOrEqual(t, sq.Row, 0)
		require.LessOrEqual(t, sq.Row, 9)
		require.GreaterOrEqual(t, sq.Col, 0)
		require.LessOrEqual(t, sq.Col, 9)
		require.False(t, seen[[2]int{sq.Row, sq.Col}], "duplicate cell (%d,%d)", sq.Row, sq.Col)
		seen[[2]int{sq.Row, sq.Col}] = true
	}
	require.Len(t, seen, 100)
}
