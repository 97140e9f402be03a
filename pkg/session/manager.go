// Package session keeps per-viewer state: feed mounts, interaction states, follows, activity
// notifications and the theme preference. Sessions live in a bounded LRU, eviction tears
// the session's feed mount down.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	lru "github.com/hashicorp/golang-lru"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/notify"
	"github.com/umputun/pixelsocial/pkg/repository"
)

//go:generate moq -out mocks/preference_store.go -pkg mocks -skip-ensure -fmt goimports . PreferenceStore
//go:generate moq -out mocks/metrics.go -pkg mocks -skip-ensure -fmt goimports . Metrics

// PreferenceStore persists viewer preferences
type PreferenceStore interface {
	GetPreference(ctx context.Context, viewer, key string) (string, error)
	SetPreference(ctx context.Context, viewer, key, value string) error
}

// Metrics receives interaction and load events
type Metrics interface {
	ObserveLoad(page int, d time.Duration, err error)
	Like(liked bool)
	Reaction(name string)
	Sessions(n int)
}

// Params defines parameters for NewManager
type Params struct {
	Source       feed.Source
	Prefs        PreferenceStore
	Metrics      Metrics
	Activities   func() []domain.Activity     // seed of activity notifications for new sessions
	Ticker       func() []domain.Notification // current ticker entries copied into new sessions
	MaxTicker    int                          // ticker entries kept per session
	DefaultTheme domain.Theme
	MaxSessions  int
	BatchSize    int
	MaxPages     int
	Threshold    float64
}

// Manager creates and keeps viewer sessions
type Manager struct {
	params   Params
	newMount func() *Mount

	mu    sync.Mutex // serializes get-or-create
	cache *lru.Cache
}

// NewManager makes session manager
func NewManager(params Params) (*Manager, error) {
	if params.MaxSessions <= 0 {
		params.MaxSessions = 1000
	}
	if _, ok := domain.ParseTheme(string(params.DefaultTheme)); !ok {
		params.DefaultTheme = domain.ThemeDark
	}
	if params.Activities == nil {
		params.Activities = func() []domain.Activity { return nil }
	}
	if params.Ticker == nil {
		params.Ticker = func() []domain.Notification { return nil }
	}
	if params.Metrics == nil {
		params.Metrics = nopMetrics{}
	}

	m := &Manager{params: params, newMount: newMountFunc(params.Source, params)}
	cache, err := lru.NewWithEvict(params.MaxSessions, func(key, value interface{}) {
		if s, ok := value.(*Session); ok {
			lgr.Printf("[DEBUG] session %v evicted", key)
			s.Close()
		}
	})
	if err != nil {
		return nil, fmt.Errorf("make session cache: %w", err)
	}
	m.cache = cache
	return m, nil
}

// Get returns the viewer's session, creating it with the stored theme preference if missing
func (m *Manager) Get(ctx context.Context, viewer string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.cache.Get(viewer); ok {
		return v.(*Session)
	}

	s := &Session{
		id:       viewer,
		prefs:    m.params.Prefs,
		newMount: m.newMount,
		activity: notify.NewActivity(m.params.Activities()),
		theme:    m.loadTheme(ctx, viewer),
		follows:  make(map[string]bool),
		ticker:   notify.NewStore(m.params.MaxTicker),
	}
	for _, n := range m.params.Ticker() {
		s.ticker.Add(n)
	}
	m.cache.Add(viewer, s)
	m.params.Metrics.Sessions(m.cache.Len())
	return s
}

// Broadcast adds a ticker notification to every live session
func (m *Manager) Broadcast(n domain.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range m.cache.Keys() {
		if v, ok := m.cache.Peek(key); ok {
			v.(*Session).ticker.Add(n)
		}
	}
}

// Remove drops the viewer's session and tears down its mount
func (m *Manager) Remove(viewer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Remove(viewer)
	m.params.Metrics.Sessions(m.cache.Len())
}

// Len returns number of live sessions
func (m *Manager) Len() int {
	return m.cache.Len()
}

// Close tears down all sessions
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache.Purge()
	m.params.Metrics.Sessions(0)
}

// loadTheme reads stored theme, falls back to default on missing or invalid value
func (m *Manager) loadTheme(ctx context.Context, viewer string) domain.Theme {
	if m.params.Prefs == nil {
		return m.params.DefaultTheme
	}
	val, err := m.params.Prefs.GetPreference(ctx, viewer, repository.PreferenceKeyTheme)
	if err != nil {
		lgr.Printf("[WARN] failed to load theme for %s: %v", viewer, err)
		return m.params.DefaultTheme
	}
	if val == "" {
		return m.params.DefaultTheme
	}
	t, ok := domain.ParseTheme(val)
	if !ok {
		lgr.Printf("[WARN] invalid stored theme %q for %s", val, viewer)
		return m.params.DefaultTheme
	}
	return t
}

type nopMetrics struct{}

func (nopMetrics) ObserveLoad(int, time.Duration, error) {}
func (nopMetrics) Like(bool)                             {}
func (nopMetrics) Reaction(string)                       {}
func (nopMetrics) Sessions(int)                          {}
