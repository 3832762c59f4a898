package models

import (
	"time"

	"gorm.io/gorm"
)

// Testimonial is a visitor-submitted recommendation. It is created unapproved
// and becomes publicly visible only after the profile owner approves it;
// rejection deletes the row. There is no edit-after-submit.
type Testimonial struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProfileID   uint           `gorm:"index;not null" json:"profile_id"`
	AuthorName  string         `gorm:"not null" json:"authorName"`
	AuthorTitle string         `json:"authorTitle"`
	AuthorEmail string         `json:"authorEmail"`
	Content     string         `gorm:"not null" json:"content"`
	Rating      int            `gorm:"not null" json:"rating"`
	Approved    bool           `gorm:"default:false;index" json:"approved"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
