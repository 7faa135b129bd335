package model

import "time"

const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// Member 用户与看板之间的成员关系
type Member struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_member_user_board" json:"user_id"`
	BoardID   uint      `gorm:"not null;uniqueIndex:idx_member_user_board;index" json:"board_id"`
	Role      string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
