package models

import (
	"time"
)

// Category groups products on the menu. Code is the user-assigned business
// key, not an auto-generated id.
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      int       `json:"code" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Active    bool      `json:"active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
