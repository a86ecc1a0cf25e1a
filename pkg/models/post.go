package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostStatus string

const (
	StatusActive   PostStatus = "Active"
	StatusDraft    PostStatus = "Draft"
	StatusDisabled PostStatus = "Disabled"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusDisabled:
		return true
	}
	return false
}

type Post struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;index" json:"user_id"`
	ProfileID   *string    `gorm:"type:uuid;index" json:"profile_id"`
	Title       string     `gorm:"type:varchar(100);not null" json:"title"`
	Image       string     `gorm:"type:varchar(255)" json:"image"`
	Description string     `gorm:"type:text" json:"description"`
	Tags        string     `gorm:"type:varchar(100)" json:"tags"`
	CategoryID  *string    `gorm:"type:uuid;index" json:"category_id"`
	Status      PostStatus `gorm:"type:varchar(20);default:'Active';not null" json:"status"`
	View        int        `gorm:"default:0" json:"view"`
	Slug        string     `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`
	CreatedAt   time.Time  `json:"date"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Profile  *Profile  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
}

// BeforeCreate assigns the ID, the default status and, when missing, a slug
// made from the title plus the first block of the ID.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title) + "-" + p.ID[:8]
	}
	return nil
}

// PostLike is the join row of the post "likes" many-to-many relation.
type PostLike struct {
	PostID    string    `gorm:"type:uuid;primaryKey" json:"post_id"`
	UserID    string    `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
