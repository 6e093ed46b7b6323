package services

import (
	"errors"

	"github.com/mkessler/squares-backend/models"

	"gorm.io/gorm"
)

// Service bundles the database handle and event bus behind every
// operation. Controllers talk to the package-level Default instance;
// tests build their own against sqlite.
type Service struct {
	DB  *gorm.DB
	Bus *EventBus
}

var Default *Service

func Init(db *gorm.DB, bus *EventBus) *Service {
	Default = &Service{DB: db, Bus: bus}
	return Default
}

func (s *Service) publish(ev Event) {
	if s.Bus != nil {
		s.Bus.Publish(ev)
	}
}

func (s *Service) getGame(gameID uint) (*models.Game, *Error) {
	var game models.Game
	if err := s.DB.First(&game, gameID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errf(CodeNotFound, "game %d not found", gameID)
		}
		return nil, AsError(err)
	}
	return &game, nil
}

// RequireGroupAdmin is the capability check gating lifecycle transitions,
// axis assignment and forced square reassignment.
func (s *Service) RequireGroupAdmin(userID, groupID uint) *Error {
	var count int64
	err := s.DB.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND role = ?", groupID, userID, models.RoleAdmin).
		Count(&count).Error
	if err != nil {
		return AsError(err)
	}
	if count == 0 {
		return Errf(CodeNotAuthorized, "admin access to this group is required")
	}
	return nil
}

func (s *Service) isGroupAdmin(userID, groupID uint) bool {
	return s.RequireGroupAdmin(userID, groupID) == nil
}
