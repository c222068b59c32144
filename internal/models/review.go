package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is a rating plus write-up left on a place.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PlaceID   uint           `gorm:"not null;index" json:"placeId"`
	UserID    uint           `gorm:"not null;index" json:"userId"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Rating    int            `gorm:"not null" json:"rating"`
	Content   string         `gorm:"type:text" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
