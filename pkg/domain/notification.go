package domain

import "time"

// Notification is a ticker entry shown in the terminal panel
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityType is a kind of activity notification
type ActivityType string

// enum of activity types
const (
	ActivityLike    ActivityType = "like"
	ActivityComment ActivityType = "comment"
	ActivityFollow  ActivityType = "follow"
	ActivityMention ActivityType = "mention"
	ActivitySystem  ActivityType = "system"
)

// Activity is an entry on the notifications page
type Activity struct {
	ID           string
	Type         ActivityType
	Handle       string
	AvatarURL    string
	Content      string
	PostImageURL string
	CreatedAt    time.Time
	Read         bool
}
