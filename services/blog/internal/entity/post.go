package entity

import "time"

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
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ProfileID   *string    `json:"profile_id"`
	CategoryID  *string    `json:"category_id"`
	Title       string     `json:"title"`
	Image       string     `json:"image"`
	Description string     `json:"description"`
	Tags        string     `json:"tags"`
	Status      PostStatus `json:"status"`
	View        int        `json:"view"`
	Slug        string     `json:"slug"`
	Likes       int64      `json:"likes"`
	CreatedAt   time.Time  `json:"date"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Set only when the author relations were loaded.
	Author        *User    `json:"-"`
	AuthorProfile *Profile `json:"-"`
}

type PostFilter struct {
	CategorySlug string
	Status       PostStatus
	UserID       string
	Limit        int
	Offset       int
}
