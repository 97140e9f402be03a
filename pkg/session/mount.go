package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
)

// ErrPostNotFound is returned for interactions with a post not loaded in the mount
var ErrPostNotFound = errors.New("post not found")

// Mount is one render of the feed page: its controller, trigger and per-post states
type Mount struct {
	id      string
	ctrl    *feed.Controller
	trigger *feed.Trigger
	metrics Metrics

	mu     sync.Mutex
	states map[string]*feed.PostState
}

func newMount(id string, ctrl *feed.Controller, threshold float64, m Metrics) *Mount {
	return &Mount{
		id:      id,
		ctrl:    ctrl,
		trigger: feed.NewTrigger(ctrl, threshold),
		metrics: m,
		states:  make(map[string]*feed.PostState),
	}
}

// ID returns mount id, rendered into the page so stale fragments can be detected
func (m *Mount) ID() string { return m.id }

// Feed returns the mount's feed controller
func (m *Mount) Feed() *feed.Controller { return m.ctrl }

// Trigger returns the mount's visibility trigger
func (m *Mount) Trigger() *feed.Trigger { return m.trigger }

// Init performs the initial load and points the trigger at the sentinel rendered after it
func (m *Mount) Init(ctx context.Context) error {
	err := m.ctrl.InitializeFeed(ctx)
	m.rearm()
	if err != nil {
		return fmt.Errorf("initialize feed: %w", err)
	}
	return nil
}

// More handles a sentinel visibility report
func (m *Mount) More(ctx context.Context, sentinelID string, ratio float64) (feed.Result, error) {
	return m.trigger.Observe(ctx, sentinelID, ratio)
}

// rearm attaches trigger to the sentinel of the next page, or detaches at the end of the feed
func (m *Mount) rearm() {
	if m.ctrl.Closed() || !m.ctrl.HasMore() {
		m.trigger.Detach()
		return
	}
	m.trigger.Attach(feed.SentinelID(m.ctrl.Page()))
}

// ToggleLike flips like of the post
func (m *Mount) ToggleLike(id string) (feed.PostView, error) {
	return m.update(id, func(s *feed.PostState) {
		s.ToggleLike()
		m.metrics.Like(s.Liked())
	})
}

// React selects a reaction on the post
func (m *Mount) React(id string, r domain.Reaction) (feed.PostView, error) {
	return m.update(id, func(s *feed.PostState) {
		s.React(r)
		if s.Reaction() != domain.ReactionNone {
			m.metrics.Reaction(string(s.Reaction()))
		}
	})
}

// SetExpanded opens or closes the expanded view of the post
func (m *Mount) SetExpanded(id string, open bool) (feed.PostView, error) {
	return m.update(id, func(s *feed.PostState) { s.SetExpanded(open) })
}

// View returns the post with the viewer's state
func (m *Mount) View(id string) (feed.PostView, error) {
	return m.update(id, func(*feed.PostState) {})
}

// Views combines posts with their states, posts never touched get a fresh state view
func (m *Mount) Views(posts []domain.Post) []feed.PostView {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]feed.PostView, 0, len(posts))
	for _, p := range posts {
		if st, ok := m.states[p.ID]; ok {
			res = append(res, st.View(p))
			continue
		}
		res = append(res, feed.NewPostState(p).View(p))
	}
	return res
}

func (m *Mount) update(id string, fn func(s *feed.PostState)) (feed.PostView, error) {
	p, ok := m.ctrl.Post(id)
	if !ok {
		return feed.PostView{}, fmt.Errorf("post %s: %w", id, ErrPostNotFound)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.states[id]
	if !ok {
		st = feed.NewPostState(p)
		m.states[id] = st
	}
	fn(st)
	return st.View(p), nil
}

// Close tears the mount down, a load in flight is canceled and dropped
func (m *Mount) Close() {
	m.ctrl.Close()
	m.trigger.Detach()
}
