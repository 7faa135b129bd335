package model

import "time"

// User 账户. 软删除通过 DeletedAt 标记, 查询时必须显式过滤
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	Password    string     `gorm:"type:varchar(255);not null" json:"-"` // bcrypt哈希, 永不输出
	Name        string     `gorm:"type:varchar(50);not null" json:"name"`
	Nickname    string     `gorm:"type:varchar(50);not null" json:"nickname"`
	PhoneNumber string     `gorm:"type:varchar(20);not null" json:"phone_number"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Members []Member `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}
