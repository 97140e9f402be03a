package domain

import "time"

// Post represents a single feed entry
type Post struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	AvatarURL string    `json:"avatar_url"`
	ImageURL  string    `json:"image_url"`
	Caption   string    `json:"caption"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	Page      int       `json:"page"`
	Accent    string    `json:"accent,omitempty"` // avatar border style
}

// FeedState is a point-in-time view of a paginated feed
type FeedState struct {
	Posts     []Post `json:"posts"`
	Page      int    `json:"page"` // next page to load, starts at 1
	Loading   bool   `json:"loading"`
	HasMore   bool   `json:"has_more"`
	LastError string `json:"last_error,omitempty"`
}

// Tile is a grid entry on explore and profile pages
type Tile struct {
	ID       string
	Author   string
	ImageURL string
	Caption  string
	Tags     []string
	Featured bool
}

// Comment is a mock comment shown in the expanded post view
type Comment struct {
	Author string
	Text   string
}

// Reaction is an emoji reaction a viewer can put on a post
type Reaction string

// enum of supported reactions
const (
	ReactionNone  Reaction = ""
	ReactionHeart Reaction = "heart"
	ReactionFire  Reaction = "fire"
	ReactionZap   Reaction = "zap"
	ReactionSkull Reaction = "skull"
	ReactionAlien Reaction = "alien"
)

// Reactions lists selectable reactions in display order
var Reactions = []Reaction{ReactionHeart, ReactionFire, ReactionZap, ReactionSkull, ReactionAlien}

var reactionEmoji = map[Reaction]string{
	ReactionHeart: "❤️",
	ReactionFire:  "🔥",
	ReactionZap:   "⚡",
	ReactionSkull: "💀",
	ReactionAlien: "👾",
}

// Emoji returns the glyph for the reaction, empty for none or unknown
func (r Reaction) Emoji() string {
	return reactionEmoji[r]
}

// ParseReaction validates a reaction name
func ParseReaction(s string) (Reaction, bool) {
	r := Reaction(s)
	if _, ok := reactionEmoji[r]; !ok {
		return ReactionNone, false
	}
	return r, true
}
