package services

import (
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"

	"gorm.io/gorm"
)

// The grid service owns every square mutation. There is no in-process
// locking: exclusivity comes from a single conditional UPDATE keyed on the
// square's current version, so of any two racing writers at most one can
// match the stored row. Losers get CodeConflict and must re-fetch.

// ClaimSquare claims an unowned square for the acting user. The game must
// be open and expectedVersion must match the stored version. The CAS
// update and the per-user cap check run in one transaction: an over-cap
// claim rolls back, so the cap holds even when the same user races
// themselves on different squares.
func (s *Service) ClaimSquare(actor *models.User, gameID, squareID uint, expectedVersion int) (int, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return 0, gerr
	}
	if game.Status != models.StatusOpen {
		return 0, Errf(CodeNotOpen, "game is not open for square selection")
	}

	var square models.Square
	if err := s.DB.Where("id = ? AND game_id = ?", squareID, gameID).First(&square).Error; err != nil {
		return 0, Errf(CodeNotFound, "square not found")
	}

	now := time.Now()
	var claimErr *Error
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Square{}).
			Where("id = ? AND game_id = ? AND version = ? AND user_id IS NULL AND display_name IS NULL",
				squareID, gameID, expectedVersion).
			Updates(map[string]interface{}{
				"user_id":    actor.ID,
				"version":    expectedVersion + 1,
				"claimed_at": now,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			claimErr = Errf(CodeConflict, "square was already claimed, refresh and try again")
			return claimErr
		}

		// recount after the write so the cap covers this claim too
		if game.MaxSquaresPerUser > 0 {
			var owned int64
			if err := tx.Model(&models.Square{}).
				Where("game_id = ? AND user_id = ?", gameID, actor.ID).
				Count(&owned).Error; err != nil {
				return err
			}
			if owned > int64(game.MaxSquaresPerUser) {
				claimErr = Errf(CodeValidationFailed, "square limit reached (%d per player)", game.MaxSquaresPerUser)
				return claimErr
			}
		}
		return nil
	})
	if err != nil {
		if claimErr != nil {
			return 0, claimErr
		}
		return 0, AsError(err)
	}

	logger.Infof("[Grid] user %d claimed square %d in game %d (v%d)", actor.ID, squareID, gameID, expectedVersion+1)
	s.publishSquare(gameID, squareID)
	return expectedVersion + 1, nil
}

// UnclaimSquare releases a square the acting user owns. The version guard
// in the UPDATE keeps a stale read from clobbering a concurrent change.
func (s *Service) UnclaimSquare(actor *models.User, gameID, squareID uint) (int, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return 0, gerr
	}
	if game.Status != models.StatusOpen {
		return 0, Errf(CodeNotOpen, "game is not open, squares cannot be released")
	}

	var square models.Square
	if err := s.DB.Where("id = ? AND game_id = ?", squareID, gameID).First(&square).Error; err != nil {
		return 0, Errf(CodeNotFound, "square not found")
	}
	if !square.Owner().Equal(models.RegisteredOwner(actor.ID)) {
		return 0, Errf(CodeNotOwner, "you can only release your own square")
	}

	now := time.Now()
	res := s.DB.Model(&models.Square{}).
		Where("id = ? AND version = ? AND user_id = ?", squareID, square.Version, actor.ID).
		Updates(map[string]interface{}{
			"user_id":      nil,
			"display_name": nil,
			"version":      square.Version + 1,
			"claimed_at":   nil,
			"updated_at":   now,
		})
	if res.Error != nil {
		return 0, AsError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, Errf(CodeConflict, "square changed underneath you, refresh and try again")
	}

	logger.Infof("[Grid] user %d released square %d in game %d (v%d)", actor.ID, squareID, gameID, square.Version+1)
	s.publishSquare(gameID, squareID)
	return square.Version + 1, nil
}

// AdminAssignSquare overwrites a square's owner regardless of its current
// state. Group admins use it to fix the board or place squares for
// placeholder members; an unset target clears the square. Still version
// checked, so two admins editing at once cannot silently overwrite each
// other.
func (s *Service) AdminAssignSquare(actor *models.User, gameID, squareID uint, target models.Owner, expectedVersion int) (int, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return 0, gerr
	}
	if err := s.RequireGroupAdmin(actor.ID, game.GroupID); err != nil {
		return 0, err
	}

	var square models.Square
	if err := s.DB.Where("id = ? AND game_id = ?", squareID, gameID).First(&square).Error; err != nil {
		return 0, Errf(CodeNotFound, "square not found")
	}

	userID, name := target.Columns()
	now := time.Now()
	updates := map[string]interface{}{
		"user_id":      userID,
		"display_name": name,
		"version":      expectedVersion + 1,
		"updated_at":   now,
	}
	if target.IsSet() {
		updates["claimed_at"] = now
	} else {
		updates["claimed_at"] = nil
	}

	res := s.DB.Model(&models.Square{}).
		Where("id = ? AND game_id = ? AND version = ?", squareID, gameID, expectedVersion).
		Updates(updates)
	if res.Error != nil {
		return 0, AsError(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, Errf(CodeConflict, "square changed underneath you, refresh and try again")
	}

	logger.Infof("[Grid] admin %d reassigned square %d in game %d (v%d)", actor.ID, squareID, gameID, expectedVersion+1)
	s.publishSquare(gameID, squareID)
	return expectedVersion + 1, nil
}

func (s *Service) publishSquare(gameID, squareID uint) {
	var square models.Square
	if err := s.DB.First(&square, squareID).Error; err != nil {
		logger.Errorf("[Grid] reload square %d for broadcast: %v", squareID, err)
		return
	}
	s.publish(Event{Type: EventSquareChanged, GameID: gameID, Payload: square})
}
