package domain

// Profile represents a user profile page
type Profile struct {
	Handle      string
	DisplayName string
	Bio         string
	Followers   int
	Following   int
	Posts       int
	AvatarURL   string
}
