package feed

import "github.com/umputun/pixelsocial/pkg/domain"

// PostState is a viewer's local interaction state for one post. The stored post likes value
// is never changed, the displayed count is derived from it.
type PostState struct {
	base     int
	liked    bool
	reaction domain.Reaction
	expanded bool
}

// PostView is a post combined with the viewer's interaction state, ready for rendering
type PostView struct {
	domain.Post
	LikeCount int
	Liked     bool
	Reaction  domain.Reaction
	Expanded  bool
}

// NewPostState makes a state for the post, not liked and collapsed
func NewPostState(p domain.Post) *PostState {
	return &PostState{base: p.Likes}
}

// ToggleLike flips the like and returns the displayed count. Unliking also clears the reaction.
func (s *PostState) ToggleLike() int {
	s.liked = !s.liked
	if !s.liked {
		s.reaction = domain.ReactionNone
	}
	return s.Count()
}

// React selects a reaction. A reaction joins the like, so the post becomes liked if it wasn't.
// Selecting a different reaction replaces the current one, selecting the same clears it and keeps the like.
func (s *PostState) React(r domain.Reaction) int {
	switch {
	case r == domain.ReactionNone || r == s.reaction:
		s.reaction = domain.ReactionNone
	default:
		s.reaction = r
		s.liked = true
	}
	return s.Count()
}

// SetExpanded opens or closes the expanded view
func (s *PostState) SetExpanded(open bool) {
	s.expanded = open
}

// ToggleExpanded flips the expanded view and returns the new value
func (s *PostState) ToggleExpanded() bool {
	s.expanded = !s.expanded
	return s.expanded
}

// Count returns the displayed like count
func (s *PostState) Count() int {
	if s.liked {
		return s.base + 1
	}
	return s.base
}

// Liked reports whether the viewer liked the post
func (s *PostState) Liked() bool { return s.liked }

// Reaction returns selected reaction
func (s *PostState) Reaction() domain.Reaction { return s.reaction }

// Expanded reports whether the expanded view is open
func (s *PostState) Expanded() bool { return s.expanded }

// View combines the post with the state
func (s *PostState) View(p domain.Post) PostView {
	return PostView{Post: p, LikeCount: s.Count(), Liked: s.liked, Reaction: s.reaction, Expanded: s.expanded}
}
