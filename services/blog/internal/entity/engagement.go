package entity

import "time"

type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	ParentID  *string    `json:"parent_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Body      string     `json:"comment"`
	CreatedAt time.Time  `json:"date"`
	Replies   []*Comment `json:"replies"`
}

type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"date"`
	Post      *Post     `json:"post,omitempty"`
}

type NotificationType string

const (
	NotificationLike     NotificationType = "Like"
	NotificationComment  NotificationType = "Comment"
	NotificationBookmark NotificationType = "Bookmark"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user"`
	PostID    string           `json:"post"`
	Type      NotificationType `json:"type"`
	Seen      bool             `json:"seen"`
	CreatedAt time.Time        `json:"date"`
}
