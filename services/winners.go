package services

import (
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"

	"gorm.io/gorm/clause"
)

// WinningCell maps a score pair onto the board: each team's trailing digit
// is looked up in its axis, and that index is the row (home) or column
// (away). Pure and idempotent; returns ok=false when either axis is unset
// or a digit is somehow absent.
func WinningCell(homeScore, awayScore int, homeAxis, awayAxis []int) (row, col int, ok bool) {
	if len(homeAxis) == 0 || len(awayAxis) == 0 {
		return 0, 0, false
	}

	homeDigit := homeScore % 10
	awayDigit := awayScore % 10

	row = indexOf(homeAxis, homeDigit)
	col = indexOf(awayAxis, awayDigit)
	if row < 0 || col < 0 {
		return 0, 0, false
	}
	return row, col, true
}

func indexOf(axis []int, digit int) int {
	for i, d := range axis {
		if d == digit {
			return i
		}
	}
	return -1
}

// completedQuarters derives which quarter boundaries lie behind the
// current quarter. Level triggered: the resolver re-derives this full set
// on every score update instead of reacting to a single transition, so a
// missed feed update cannot permanently lose a boundary.
func completedQuarters(currentQuarter string) []string {
	switch currentQuarter {
	case models.QuarterQ2:
		return []string{models.QuarterQ1}
	case models.QuarterQ3:
		return []string{models.QuarterQ1, models.QuarterQ2}
	case models.QuarterQ4:
		return []string{models.QuarterQ1, models.QuarterQ2, models.QuarterQ3}
	case models.QuarterFinal:
		return []string{models.QuarterQ1, models.QuarterQ2, models.QuarterQ3, models.QuarterFinal}
	default:
		return nil
	}
}

// RecordQuarterWinners inserts a QuarterWinner row for every completed
// boundary that does not have one yet. Safe to call any number of times:
// the unique (game_id, quarter) index plus ON CONFLICT DO NOTHING makes
// duplicates impossible.
func (s *Service) RecordQuarterWinners(gameID uint) *Error {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return gerr
	}

	quarters := completedQuarters(game.CurrentQuarter)
	if len(quarters) == 0 {
		return nil
	}

	homeAxis, awayAxis := game.Axes()

	for _, quarter := range quarters {
		var existing int64
		if err := s.DB.Model(&models.QuarterWinner{}).
			Where("game_id = ? AND quarter = ?", gameID, quarter).
			Count(&existing).Error; err != nil {
			return AsError(err)
		}
		if existing > 0 {
			continue
		}

		winner := models.QuarterWinner{
			GameID:     gameID,
			Quarter:    quarter,
			HomeScore:  game.HomeScore,
			AwayScore:  game.AwayScore,
			RecordedAt: time.Now(),
		}

		if row, col, ok := WinningCell(game.HomeScore, game.AwayScore, homeAxis, awayAxis); ok {
			var square models.Square
			err := s.DB.Where(`game_id = ? AND "row" = ? AND "col" = ?`, gameID, row, col).First(&square).Error
			if err == nil {
				winner.SquareID = &square.ID
				winner.UserID = square.UserID
				winner.OwnerName = square.DisplayName
			}
		}

		res := s.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "quarter"}},
			DoNothing: true,
		}).Create(&winner)
		if res.Error != nil {
			return AsError(res.Error)
		}
		if res.RowsAffected == 0 {
			// another instance got there first
			continue
		}

		logger.Infof("[Winners] game %d %s winner recorded (%d-%d)", gameID, quarter, game.HomeScore, game.AwayScore)
		s.publish(Event{Type: EventWinnerRecorded, GameID: gameID, Payload: winner})
	}

	return nil
}

// ListQuarterWinners returns every recorded winner for a game in boundary
// order.
func (s *Service) ListQuarterWinners(gameID uint) ([]models.QuarterWinner, *Error) {
	var winners []models.QuarterWinner
	if err := s.DB.Where("game_id = ?", gameID).Order("recorded_at ASC").Find(&winners).Error; err != nil {
		return nil, AsError(err)
	}
	return winners, nil
}
