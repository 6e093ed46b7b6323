package services

import (
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const presenceWindow = 30 * time.Second

// CreateGameInput mirrors the admin's new-game form.
type CreateGameInput struct {
	Name              string `json:"name" binding:"required"`
	HomeTeam          string `json:"home_team" binding:"required"`
	AwayTeam          string `json:"away_team" binding:"required"`
	ExternalGameKey   string `json:"external_game_key"`
	AutoUpdateEnabled bool   `json:"auto_update_enabled"`
	MaxSquaresPerUser int    `json:"max_squares_per_user"`
}

// CreateGame creates a game in setup status and its full 10x10 board in
// one transaction, so a game either has all 100 squares or does not exist.
func (s *Service) CreateGame(actor *models.User, groupID uint, in CreateGameInput) (*models.Game, *Error) {
	if err := s.RequireGroupAdmin(actor.ID, groupID); err != nil {
		return nil, err
	}

	game := models.Game{
		GroupID:           groupID,
		Name:              in.Name,
		HomeTeam:          in.HomeTeam,
		AwayTeam:          in.AwayTeam,
		Status:            models.StatusSetup,
		CurrentQuarter:    models.QuarterPregame,
		ExternalGameKey:   in.ExternalGameKey,
		AutoUpdateEnabled: in.AutoUpdateEnabled,
		MaxSquaresPerUser: in.MaxSquaresPerUser,
		CreatedBy:         actor.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		squares := make([]models.Square, 0, 100)
		for row := 0; row < 10; row++ {
			for col := 0; col < 10; col++ {
				squares = append(squares, models.Square{GameID: game.ID, Row: row, Col: col})
			}
		}
		return tx.CreateInBatches(squares, 100).Error
	})
	if err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Games] game %d (%s vs %s) created in group %d", game.ID, game.HomeTeam, game.AwayTeam, groupID)
	return &game, nil
}

// Board is the full read model for one game view: the authoritative state
// a client re-fetches whenever it reconnects or loses a claim race.
type Board struct {
	Game     models.Game            `json:"game"`
	Squares  []models.Square        `json:"squares"`
	Winners  []models.QuarterWinner `json:"winners"`
	Viewers  int64                  `json:"viewers"`
	IsAdmin  bool                   `json:"is_admin"`
	CanClaim bool                   `json:"can_claim"`
}

func (s *Service) GetBoard(actor *models.User, gameID uint) (*Board, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return nil, gerr
	}

	var squares []models.Square
	if err := s.DB.Where("game_id = ?", gameID).Order(`"row", "col"`).Find(&squares).Error; err != nil {
		return nil, AsError(err)
	}

	winners, werr := s.ListQuarterWinners(gameID)
	if werr != nil {
		return nil, werr
	}

	var viewers int64
	cutoff := time.Now().Add(-presenceWindow)
	if err := s.DB.Model(&models.Presence{}).
		Where("game_id = ? AND last_seen > ?", gameID, cutoff).
		Count(&viewers).Error; err != nil {
		return nil, AsError(err)
	}

	return &Board{
		Game:     *game,
		Squares:  squares,
		Winners:  winners,
		Viewers:  viewers,
		IsAdmin:  s.isGroupAdmin(actor.ID, game.GroupID),
		CanClaim: game.Status == models.StatusOpen,
	}, nil
}

func (s *Service) ListGroupGames(groupID uint) ([]models.Game, *Error) {
	var games []models.Game
	if err := s.DB.Where("group_id = ?", groupID).Order("created_at DESC").Find(&games).Error; err != nil {
		return nil, AsError(err)
	}
	return games, nil
}

// Heartbeat records that a user is currently viewing a game's board.
func (s *Service) Heartbeat(actor *models.User, gameID uint) *Error {
	if _, gerr := s.getGame(gameID); gerr != nil {
		return gerr
	}

	presence := models.Presence{GameID: gameID, UserID: actor.ID, LastSeen: time.Now()}
	err := s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "game_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_seen"}),
	}).Create(&presence).Error
	return AsError(err)
}
