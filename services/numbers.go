package services

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"

	"gorm.io/datatypes"
)

// Axis numbers map a score's trailing digit to a board row or column. Each
// axis is a permutation of 0-9; home drives rows, away drives columns. The
// two axes are drawn independently.

// RandomizeAxes returns two independent random permutations of the digits
// 0-9.
func RandomizeAxes() (home, away []int) {
	return shuffledDigits(), shuffledDigits()
}

func shuffledDigits() []int {
	digits := make([]int, 10)
	for i := range digits {
		digits[i] = i
	}
	rand.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	return digits
}

// AxisValidation reports exactly which digits break the permutation
// constraint, so a manual-entry UI can highlight them.
type AxisValidation struct {
	Valid      bool  `json:"valid"`
	Duplicates []int `json:"duplicates"`
	Missing    []int `json:"missing"`
	OutOfRange []int `json:"out_of_range"`
}

func (v AxisValidation) detail() string {
	msg := ""
	if len(v.Duplicates) > 0 {
		msg += fmt.Sprintf("duplicate digits %v", v.Duplicates)
	}
	if len(v.Missing) > 0 {
		if msg != "" {
			msg += ", "
		}
		msg += fmt.Sprintf("missing digits %v", v.Missing)
	}
	if len(v.OutOfRange) > 0 {
		if msg != "" {
			msg += ", "
		}
		msg += fmt.Sprintf("out-of-range entries %v", v.OutOfRange)
	}
	return msg
}

// ValidateAxis checks that axis is a full permutation of 0-9.
func ValidateAxis(axis []int) AxisValidation {
	seen := make(map[int]bool, 10)
	dupSeen := make(map[int]bool, 10)
	var duplicates, outOfRange []int
	for _, d := range axis {
		if d < 0 || d > 9 {
			outOfRange = append(outOfRange, d)
			continue
		}
		if seen[d] && !dupSeen[d] {
			duplicates = append(duplicates, d)
			dupSeen[d] = true
		}
		seen[d] = true
	}

	var missing []int
	for d := 0; d <= 9; d++ {
		if !seen[d] {
			missing = append(missing, d)
		}
	}

	return AxisValidation{
		Valid:      len(axis) == 10 && len(duplicates) == 0 && len(missing) == 0 && len(outOfRange) == 0,
		Duplicates: duplicates,
		Missing:    missing,
		OutOfRange: outOfRange,
	}
}

// RandomizeGameNumbers draws fresh axes for the game. Allowed in any
// status so an admin can redraw or correct the board even after locking.
func (s *Service) RandomizeGameNumbers(actor *models.User, gameID uint) (*models.Game, *Error) {
	home, away := RandomizeAxes()
	return s.setNumbers(actor, gameID, home, away)
}

// SetGameNumbers persists hand-entered axes after validating both sides.
func (s *Service) SetGameNumbers(actor *models.User, gameID uint, home, away []int) (*models.Game, *Error) {
	if v := ValidateAxis(home); !v.Valid {
		return nil, Errf(CodeValidationFailed, "home numbers invalid: %s", v.detail())
	}
	if v := ValidateAxis(away); !v.Valid {
		return nil, Errf(CodeValidationFailed, "away numbers invalid: %s", v.detail())
	}
	return s.setNumbers(actor, gameID, home, away)
}

func (s *Service) setNumbers(actor *models.User, gameID uint, home, away []int) (*models.Game, *Error) {
	game, gerr := s.getGame(gameID)
	if gerr != nil {
		return nil, gerr
	}
	if err := s.RequireGroupAdmin(actor.ID, game.GroupID); err != nil {
		return nil, err
	}

	homeJSON, _ := json.Marshal(home)
	awayJSON, _ := json.Marshal(away)
	now := time.Now()

	game.HomeNumbers = datatypes.JSON(homeJSON)
	game.AwayNumbers = datatypes.JSON(awayJSON)
	game.NumbersAssignedAt = &now

	err := s.DB.Model(game).Updates(map[string]interface{}{
		"home_numbers":        game.HomeNumbers,
		"away_numbers":        game.AwayNumbers,
		"numbers_assigned_at": now,
	}).Error
	if err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Numbers] game %d axes assigned by user %d", gameID, actor.ID)
	s.publish(Event{Type: EventGameChanged, GameID: gameID, Payload: game})
	return game, nil
}
