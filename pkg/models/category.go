package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Category struct {
	ID    string `gorm:"type:uuid;primary_key" json:"id"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
	Image string `gorm:"type:varchar(255)" json:"image"`
	Slug  string `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// BeforeSave derives the slug from the title when none was given.
func (c *Category) BeforeSave(tx *gorm.DB) error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}
	return nil
}

// MaxSlugLength bounds Slugify output. Post slugs append a nine character
// suffix and still have to fit varchar(160).
const MaxSlugLength = 100

// Slugify turns a title into a URL-safe identifier. Titles with no
// sluggable characters get a random one so the unique index still holds.
func Slugify(title string) string {
	s := slug.Make(title)
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	if s != "" {
		return s
	}
	return uuid.New().String()[:8]
}
