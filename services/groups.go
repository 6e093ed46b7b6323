package services

import (
	"errors"
	"strings"
	"time"

	"github.com/mkessler/squares-backend/models"
	"github.com/mkessler/squares-backend/utils/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateGroupInput mirrors the create-group form. Payout fields split the
// pot across quarter boundaries; they are bookkeeping only, no ledger is
// kept here.
type CreateGroupInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	BuyInAmount float64 `json:"buy_in_amount"`
	PayoutQ1    float64 `json:"payout_q1"`
	PayoutQ2    float64 `json:"payout_q2"`
	PayoutQ3    float64 `json:"payout_q3"`
	PayoutFinal float64 `json:"payout_final"`
}

// CreateGroup creates a group and enrolls the creator as its admin.
func (s *Service) CreateGroup(actor *models.User, in CreateGroupInput) (*models.Group, *Error) {
	group := models.Group{
		Name:        in.Name,
		Description: in.Description,
		InviteCode:  newInviteCode(),
		BuyInAmount: in.BuyInAmount,
		PayoutQ1:    in.PayoutQ1,
		PayoutQ2:    in.PayoutQ2,
		PayoutQ3:    in.PayoutQ3,
		PayoutFinal: in.PayoutFinal,
		CreatedBy:   actor.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&group).Error; err != nil {
			return err
		}
		member := models.GroupMember{
			GroupID:  group.ID,
			UserID:   &actor.ID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Groups] group %d (%s) created by user %d", group.ID, group.Name, actor.ID)
	return &group, nil
}

// newInviteCode derives a short shareable code. Collisions are caught by
// the unique index on invite_code.
func newInviteCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

// JoinGroup adds the acting user as a member via invite code. Joining a
// group you already belong to is a no-op success.
func (s *Service) JoinGroup(actor *models.User, inviteCode string) (*models.Group, *Error) {
	var group models.Group
	if err := s.DB.Where("invite_code = ?", inviteCode).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Errf(CodeNotFound, "invalid invite code")
		}
		return nil, AsError(err)
	}

	var existing int64
	if err := s.DB.Model(&models.GroupMember{}).
		Where("group_id = ? AND user_id = ?", group.ID, actor.ID).
		Count(&existing).Error; err != nil {
		return nil, AsError(err)
	}
	if existing > 0 {
		return &group, nil
	}

	member := models.GroupMember{
		GroupID:  group.ID,
		UserID:   &actor.ID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}
	if err := s.DB.Create(&member).Error; err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Groups] user %d joined group %d", actor.ID, group.ID)
	return &group, nil
}

func (s *Service) ListGroupsForUser(userID uint) ([]models.Group, *Error) {
	var groups []models.Group
	err := s.DB.
		Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, AsError(err)
	}
	return groups, nil
}

func (s *Service) GetGroup(groupID uint) (*models.Group, []models.GroupMember, *Error) {
	var group models.Group
	if err := s.DB.First(&group, groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, Errf(CodeNotFound, "group %d not found", groupID)
		}
		return nil, nil, AsError(err)
	}

	var members []models.GroupMember
	if err := s.DB.Where("group_id = ?", groupID).Order("joined_at ASC").Find(&members).Error; err != nil {
		return nil, nil, AsError(err)
	}
	return &group, members, nil
}

// AddPlaceholderMember registers a display-name-only member, so an admin
// can assign squares to people who have not signed up yet.
func (s *Service) AddPlaceholderMember(actor *models.User, groupID uint, displayName string) (*models.GroupMember, *Error) {
	if err := s.RequireGroupAdmin(actor.ID, groupID); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, Errf(CodeValidationFailed, "display name is required")
	}

	member := models.GroupMember{
		GroupID:     groupID,
		DisplayName: &displayName,
		Role:        models.RoleMember,
		JoinedAt:    time.Now(),
	}
	if err := s.DB.Create(&member).Error; err != nil {
		return nil, AsError(err)
	}
	return &member, nil
}

// ClaimPlaceholder merges a placeholder identity into the acting user:
// the member row gets their user id and every square held under the
// placeholder name in the group's games is rewritten to them.
func (s *Service) ClaimPlaceholder(actor *models.User, groupID, memberID uint) (*models.GroupMember, *Error) {
	var member models.GroupMember
	if err := s.DB.Where("id = ? AND group_id = ?", memberID, groupID).First(&member).Error; err != nil {
		return nil, Errf(CodeNotFound, "member not found")
	}
	if member.UserID != nil {
		return nil, Errf(CodeConflict, "this identity has already been claimed")
	}
	if member.DisplayName == nil {
		return nil, Errf(CodeValidationFailed, "member has no placeholder name")
	}

	name := *member.DisplayName
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&member).Update("user_id", actor.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.Square{}).
			Where("display_name = ? AND game_id IN (?)",
				name, tx.Model(&models.Game{}).Select("id").Where("group_id = ?", groupID)).
			Updates(map[string]interface{}{
				"display_name": nil,
				"user_id":      actor.ID,
				"version":      gorm.Expr("version + 1"),
			}).Error
	})
	if err != nil {
		return nil, AsError(err)
	}

	logger.Infof("[Groups] user %d claimed placeholder %q in group %d", actor.ID, name, groupID)
	member.UserID = &actor.ID
	return &member, nil
}

// DeleteGroup removes a group and everything under it.
func (s *Service) DeleteGroup(actor *models.User, groupID uint) *Error {
	if err := s.RequireGroupAdmin(actor.ID, groupID); err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		gameIDs := tx.Model(&models.Game{}).Select("id").Where("group_id = ?", groupID)
		if err := tx.Where("game_id IN (?)", gameIDs).Delete(&models.QuarterWinner{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN (?)", gameIDs).Delete(&models.Square{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id IN (?)", gameIDs).Delete(&models.Presence{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.Game{}).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", groupID).Delete(&models.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, groupID).Error
	})
	return AsError(err)
}
