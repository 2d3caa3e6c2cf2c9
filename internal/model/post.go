package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Post is an authored article. Slug and reading time are derived fields:
// the slug is computed once at creation and never regenerated, the reading
// time is recomputed whenever content changes.
type Post struct {
	ID          uuid.UUID `json:"_id" gorm:"type:char(36);primaryKey"`
	AuthorID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index:idx_author_created"`
	Author      *User     `json:"author,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CoverImage  string    `json:"coverImage" gorm:"size:512"`
	Tags        []string  `json:"tags" gorm:"serializer:json;type:json"`
	IsPublished bool      `json:"isPublished" gorm:"default:true"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;size:255"`
	ReadingTime int       `json:"readingTime" gorm:"default:1"` // minutes
	Views       int64     `json:"views" gorm:"default:0"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_author_created"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated by the service layer, not stored on the posts table.
	Likes       []uuid.UUID `json:"likes" gorm:"-"`
	LikesCount  int         `json:"likesCount" gorm:"-"`
	Excerpt     string      `json:"excerpt" gorm:"-"`
	ContentHTML string      `json:"contentHtml,omitempty" gorm:"-"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PostLike records one user liking one post. The composite primary key is
// what makes the like set a set: a duplicate like is a key violation, not
// a second row.
type PostLike struct {
	PostID    uuid.UUID `json:"postId" gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);primaryKey"`
	Post      *Post     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User      *User     `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt time.Time `json:"createdAt"`
}
