package models

import "time"

// Favorite marks a place as saved by a user. One row per user and place.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_place" json:"userId"`
	PlaceID   uint      `gorm:"not null;uniqueIndex:idx_user_place" json:"placeId"`
	CreatedAt time.Time `json:"createdAt"`
}
