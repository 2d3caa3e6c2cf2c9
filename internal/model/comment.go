package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment is a flat (non-threaded) comment attached to a post.
type Comment struct {
	ID        uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	PostID    uuid.UUID `json:"post" gorm:"type:char(36);not null;index"`
	Post      *Post     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorID  uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Author    *User     `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
