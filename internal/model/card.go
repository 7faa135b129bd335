package model

import "time"

type CardColor string

const (
	ColorGreen  CardColor = "green"
	ColorYellow CardColor = "yellow"
	ColorOrange CardColor = "orange"
	ColorRed    CardColor = "red"
	ColorPurple CardColor = "purple"
	ColorBlue   CardColor = "blue"
	ColorSky    CardColor = "sky"
	ColorLime   CardColor = "lime"
	ColorPink   CardColor = "pink"
	ColorBlack  CardColor = "black"

	DefaultCardColor = ColorGreen
)

var cardColors = map[CardColor]struct{}{
	ColorGreen:  {},
	ColorYellow: {},
	ColorOrange: {},
	ColorRed:    {},
	ColorPurple: {},
	ColorBlue:   {},
	ColorSky:    {},
	ColorLime:   {},
	ColorPink:   {},
	ColorBlack:  {},
}

func (c CardColor) Valid() bool {
	_, ok := cardColors[c]
	return ok
}

type Card struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ListID      uint       `gorm:"not null;index" json:"list_id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Color       CardColor  `gorm:"type:varchar(20);not null;default:'green'" json:"color"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Comments []Comment `gorm:"foreignKey:CardID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"comments,omitempty"`
}
