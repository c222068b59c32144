package models

import (
	"time"

	"gorm.io/gorm"
)

// BlogPost is a long-form article written in markdown.
type BlogPost struct {
	ID       uint     `gorm:"primaryKey" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Content  string   `gorm:"type:text;not null" json:"content"`
	Excerpt  string   `gorm:"type:text" json:"excerpt"`
	CoverURL string   `json:"coverUrl"`
	Images   []string `gorm:"serializer:json" json:"images"`
	UserID   uint     `gorm:"not null;index" json:"userId"`
	User     User     `gorm:"foreignKey:UserID" json:"user"`
	// Published controls reader visibility and can be flipped back off.
	Published bool `gorm:"default:false;index" json:"published"`
	// PublishedAt records the first publish time and survives unpublishing.
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->;-:migration" json:"commentsCount"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
