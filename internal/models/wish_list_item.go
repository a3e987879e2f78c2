package models

import "time"

type WishListItem struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_wish_list_user_name" json:"user_id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_wish_list_user_name" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"type:varchar(255)" json:"url"`
	Price       *float64  `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
