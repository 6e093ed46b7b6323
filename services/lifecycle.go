package services

import (
	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"
)

// Lifecycle transitions: setup -> open <-> locked. There is no way back to
// setup. Reapplying the current state is a no-op success so admin buttons
// can be mashed safely. Neither transition touches the axis numbers.

// OpenGame enables square selection. Also used to unlock a locked game.
func (s *Service) OpenGame(actor *models.User, gameID uint) (*models.Game, *Error) {
	return s.transition(actor, gameID, models.StatusOpen)
}

// LockGame freezes the board. Only an open game can be locked.
func (s *Service) LockGame(actor *models.User, gameID uint) (*models.Game, *Error) {
	return s.transition(actor, gameID, models.StatusLocked)
}

func (s *Service) transition(actor *models.User, gameID uint, to models.GameStatus) (*models.Game, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return nil, gerr
	}
	if err := s.RequireGroupAdmin(actor.ID, game.GroupID); err != nil {
		return nil, err
	}

	if game.Status == to {
		return game, nil
	}
	if to == models.StatusLocked && game.Status != models.StatusOpen {
		return nil, Errf(CodeValidationFailed, "only an open game can be locked")
	}

	from := game.Status
	game.Status = to
	if err := s.DB.Model(game).Update("status", to).Error; err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Lifecycle] game %d: %s -> %s (by user %d)", gameID, from, to, actor.ID)
	s.publish(Event{Type: EventGameChanged, GameID: gameID, Payload: game})
	return game, nil
}
