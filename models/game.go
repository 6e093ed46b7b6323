package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type GameStatus string

const (
	StatusSetup  GameStatus = "setup"
	StatusOpen   GameStatus = "open"
	StatusLocked GameStatus = "locked"
)

const (
	QuarterPregame = "pregame"
	QuarterQ1      = "Q1"
	QuarterQ2      = "Q2"
	QuarterQ3      = "Q3"
	QuarterQ4      = "Q4"
	QuarterFinal   = "final"
)

type Game struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	GroupID           uint           `gorm:"index" json:"group_id"`
	Name              string         `json:"name"`
	HomeTeam          string         `json:"home_team"`
	AwayTeam          string         `json:"away_team"`
	Status            GameStatus     `json:"status"`
	HomeNumbers       datatypes.JSON `json:"home_numbers"` // permutation of 0-9, null until assigned
	AwayNumbers       datatypes.JSON `json:"away_numbers"`
	NumbersAssignedAt *time.Time     `json:"numbers_assigned_at"`
	HomeScore         int            `json:"home_score"`
	AwayScore         int            `json:"away_score"`
	CurrentQuarter    string         `json:"current_quarter"`
	ExternalGameKey   string         `json:"external_game_key"`
	AutoUpdateEnabled bool           `json:"auto_update_enabled"`
	MaxSquaresPerUser int            `json:"max_squares_per_user"` // 0 = unlimited
	LastScoreUpdate   *time.Time     `json:"last_score_update"`
	CreatedBy         uint           `json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Axes decodes the stored axis assignments. Either both slices are nil
// (numbers not yet assigned) or both hold a full permutation of 0-9.
func (g *Game) Axes() (home, away []int) {
	if len(g.HomeNumbers) == 0 || len(g.AwayNumbers) == 0 {
		return nil, nil
	}
	if json.Unmarshal(g.HomeNumbers, &home) != nil {
		return nil, nil
	}
	if json.Unmarshal(g.AwayNumbers, &away) != nil {
		return nil, nil
	}
	return home, away
}
