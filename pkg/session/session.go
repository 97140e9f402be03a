package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/notify"
	"github.com/umputun/pixelsocial/pkg/repository"
)

// Session is the server-side state of one viewer
type Session struct {
	id       string
	prefs    PreferenceStore
	newMount func() *Mount
	activity *notify.Activity
	ticker   *notify.Store

	mu      sync.Mutex
	mount   *Mount
	theme   domain.Theme
	follows map[string]bool
	closed  bool
}

// ID returns viewer id
func (s *Session) ID() string { return s.id }

// Mount starts a new feed mount, the previous one is torn down
func (s *Session) Mount() *Mount {
	m := s.newMount()
	s.mu.Lock()
	prev := s.mount
	if s.closed {
		s.mu.Unlock()
		m.Close()
		return m
	}
	s.mount = m
	s.mu.Unlock()
	if prev != nil {
		lgr.Printf("[DEBUG] viewer %s remount, closing mount %s", s.id, prev.ID())
		prev.Close()
	}
	return m
}

// Current returns the active mount, nil if the feed was never mounted
func (s *Session) Current() *Mount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mount
}

// MountByID returns the active mount if its id matches, fragments of older mounts get nil
func (s *Session) MountByID(id string) *Mount {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mount == nil || (id != "" && s.mount.ID() != id) {
		return nil
	}
	return s.mount
}

// Theme returns current theme
func (s *Session) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme changes theme and persists it
func (s *Session) SetTheme(ctx context.Context, t domain.Theme) error {
	if _, ok := domain.ParseTheme(string(t)); !ok {
		return fmt.Errorf("invalid theme %q", t)
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	if s.prefs == nil {
		return nil
	}
	if err := s.prefs.SetPreference(ctx, s.id, repository.PreferenceKeyTheme, string(t)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleTheme flips dark and light themes, the new theme is persisted
func (s *Session) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	t := s.Theme().Toggle()
	return t, s.SetTheme(ctx, t)
}

// ToggleFollow flips follow state of the handle and returns the new state
func (s *Session) ToggleFollow(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.follows[handle] = !s.follows[handle]
	return s.follows[handle]
}

// Following reports whether the viewer follows the handle
func (s *Session) Following(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.follows[handle]
}

// Activity returns viewer's activity notifications
func (s *Session) Activity() *notify.Activity { return s.activity }

// Ticker returns viewer's ticker entries, dismissals affect only this viewer
func (s *Session) Ticker() *notify.Store { return s.ticker }

// Close tears down the active mount, called on eviction
func (s *Session) Close() {
	s.mu.Lock()
	m := s.mount
	s.mount, s.closed = nil, true
	s.mu.Unlock()
	if m != nil {
		m.Close()
	}
}

func newMountFunc(src feed.Source, p Params) func() *Mount {
	return func() *Mount {
		ctrl := feed.NewController(src,
			feed.WithBatchSize(p.BatchSize),
			feed.WithMaxPages(p.MaxPages),
			feed.WithObserver(p.Metrics.ObserveLoad),
		)
		return newMount(uuid.NewString(), ctrl, p.Threshold, p.Metrics)
	}
}
