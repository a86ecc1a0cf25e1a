package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	ParentID  *string   `gorm:"type:uuid;index" json:"parent_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Email     string    `gorm:"type:varchar(100);not null" json:"email"`
	Body      string    `gorm:"column:comment;type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"date"`

	Post    Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Replies []Comment `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

type Bookmark struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	CreatedAt time.Time `json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b *Bookmark) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	return nil
}

type NotificationType string

const (
	NotificationLike     NotificationType = "Like"
	NotificationComment  NotificationType = "Comment"
	NotificationBookmark NotificationType = "Bookmark"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationLike, NotificationComment, NotificationBookmark:
		return true
	}
	return false
}

type Notification struct {
	ID        string           `gorm:"type:uuid;primary_key" json:"id"`
	UserID    string           `gorm:"type:uuid;not null;index" json:"user_id"`
	PostID    string           `gorm:"type:uuid;not null;index" json:"post_id"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Seen      bool             `gorm:"default:false;index" json:"seen"`
	CreatedAt time.Time        `json:"date"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Post Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}

// All lists every table model in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&Category{},
		&Post{},
		&PostLike{},
		&Comment{},
		&Bookmark{},
		&Notification{},
	}
}
