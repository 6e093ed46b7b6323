package models

import "time"

type Presence struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	GameID   uint      `gorm:"uniqueIndex:idx_game_viewer" json:"game_id"`
	UserID   uint      `gorm:"uniqueIndex:idx_game_viewer" json:"user_id"`
	LastSeen time.Time `json:"last_seen"`
}
