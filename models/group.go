package models

import "time"

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InviteCode  string    `gorm:"uniqueIndex" json:"invite_code"`
	BuyInAmount float64   `json:"buy_in_amount"`
	PayoutQ1    float64   `json:"payout_q1"`
	PayoutQ2    float64   `json:"payout_q2"`
	PayoutQ3    float64   `json:"payout_q3"`
	PayoutFinal float64   `json:"payout_final"`
	CreatedBy   uint      `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GroupMember is either a registered user (UserID set) or a placeholder
// identity added by name before the person signs up (DisplayName set).
type GroupMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	GroupID     uint      `gorm:"index" json:"group_id"`
	UserID      *uint     `json:"user_id"`
	DisplayName *string   `json:"display_name"`
	Role        Role      `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}
