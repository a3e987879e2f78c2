package models

import "time"

type Recipient struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	EventID    uint64    `gorm:"not null;index" json:"event_id"`
	FirstName  string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName   string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Age        *int      `json:"age"`
	Occupation string    `gorm:"type:varchar(100)" json:"occupation"`
	Hobbies    string    `gorm:"type:text" json:"hobbies"`
	Likes      string    `gorm:"type:text" json:"likes"`
	Dislikes   string    `gorm:"type:text" json:"dislikes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Event     Event              `gorm:"foreignKey:EventID" json:"event,omitempty"`
	GiftIdeas []GiftIdea         `gorm:"foreignKey:RecipientID" json:"gift_ideas,omitempty"`
	Gifts     []GiftForRecipient `gorm:"foreignKey:RecipientID" json:"gifts,omitempty"`
}
