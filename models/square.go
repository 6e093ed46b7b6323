package models

import "time"

// Square is one cell of a game's 10x10 board. All 100 rows are created
// when the game is created and only ever mutated through the grid service's
// version-checked updates.
type Square struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	GameID      uint       `gorm:"uniqueIndex:idx_game_cell" json:"game_id"`
	Row         int        `gorm:"uniqueIndex:idx_game_cell" json:"row"`
	Col         int        `gorm:"uniqueIndex:idx_game_cell" json:"col"`
	UserID      *uint      `json:"user_id"`
	DisplayName *string    `json:"display_name"`
	Version     int        `json:"version"`
	ClaimedAt   *time.Time `json:"claimed_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *Square) Owner() Owner {
	return OwnerFromColumns(s.UserID, s.DisplayName)
}
