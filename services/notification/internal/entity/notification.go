package entity

import "time"

type NotificationType string

const (
	NotificationLike     NotificationType = "Like"
	NotificationComment  NotificationType = "Comment"
	NotificationBookmark NotificationType = "Bookmark"
)

// Notification tells a post author that someone engaged with the post.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user"`
	PostID    string           `json:"post"`
	Type      NotificationType `json:"type"`
	Seen      bool             `json:"seen"`
	CreatedAt time.Time        `json:"date"`
}

type NotificationFilter struct {
	UserID string
	Seen   *bool
	Limit  int
	Offset int
}
