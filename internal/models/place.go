package models

import (
	"time"

	"gorm.io/gorm"
)

// PlaceType categorizes places (cafe, restaurant, beach, ...).
type PlaceType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
}

// Place represents a recommended spot in the city.
type Place struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null" json:"name"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	Price          string    `gorm:"not null" json:"price"`
	Location       string    `gorm:"not null" json:"location"`
	GoogleMapsLink string    `json:"googleMapsLink"`
	Photos         []string  `gorm:"serializer:json" json:"photos"`
	PlaceTypeID    uint      `gorm:"not null;index" json:"placeTypeId"`
	PlaceType      PlaceType `gorm:"foreignKey:PlaceTypeID" json:"placeType"`
	UserID         uint      `gorm:"not null;index" json:"userId"`
	User           User      `gorm:"foreignKey:UserID" json:"user"`
	// Rating is the review mean rounded to one decimal, maintained on review writes
	Rating       float64 `gorm:"default:0" json:"rating"`
	ReviewsCount int     `gorm:"default:0" json:"reviewsCount"`
	// Favorited indicates whether the requesting user saved this place (computed)
	Favorited bool           `gorm:"->;-:migration" json:"favorited"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
