package models

import "time"

// QuarterWinner records which square held the winning position when a
// quarter ended. At most one row exists per (game, quarter); the unique
// index backs the resolver's insert-if-absent semantics.
type QuarterWinner struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GameID     uint      `gorm:"uniqueIndex:idx_game_quarter" json:"game_id"`
	Quarter    string    `gorm:"uniqueIndex:idx_game_quarter" json:"quarter"`
	SquareID   *uint     `json:"square_id"` // nil when axes were unset at the boundary
	UserID     *uint     `json:"user_id"`
	OwnerName  *string   `json:"owner_name"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	RecordedAt time.Time `json:"recorded_at"`
}
