package notify

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/pixelsocial/pkg/domain"
)

//go:generate moq -out mocks/message_source.go -pkg mocks -skip-ensure -fmt goimports . MessageSource

// DefaultInterval is the default period between generated ticker entries
const DefaultInterval = 30 * time.Second

// MessageSource produces ticker message text
type MessageSource interface {
	TickerMessage() string
}

// Ticker periodically adds generated notifications to the store
type Ticker struct {
	store    *Store
	src      MessageSource
	interval time.Duration
	now      func() time.Time
	newID    func() string
	onAdd    func(n domain.Notification)
}

// TickerParams defines parameters for NewTicker
type TickerParams struct {
	Store    *Store
	Source   MessageSource
	Interval time.Duration
	Now      func() time.Time            // optional, time.Now by default
	NewID    func() string               // optional, random uuid by default
	OnAdd    func(n domain.Notification) // optional, called after each generated entry
}

// NewTicker makes a ticker for the store
func NewTicker(params TickerParams) *Ticker {
	t := &Ticker{
		store:    params.Store,
		src:      params.Source,
		interval: params.Interval,
		now:      params.Now,
		newID:    params.NewID,
		onAdd:    params.OnAdd,
	}
	if t.interval <= 0 {
		t.interval = DefaultInterval
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	return t
}

// Seed adds the initial demo entries, oldest first so the newest shows on top
func (t *Ticker) Seed() {
	now := t.now()
	t.store.Add(domain.Notification{ID: "3", Message: "User @glitchqueen started following you", CreatedAt: now.Add(-5 * time.Minute)})
	t.store.Add(domain.Notification{ID: "2", Message: "System: New version v0.1.3 deployed", CreatedAt: now.Add(-2 * time.Minute)})
	t.store.Add(domain.Notification{ID: "1", Message: "User @hackerman liked your post", CreatedAt: now})
}

// Tick generates one notification and adds it to the store
func (t *Ticker) Tick() domain.Notification {
	n := domain.Notification{ID: t.newID(), Message: t.src.TickerMessage(), CreatedAt: t.now()}
	t.store.Add(n)
	if t.onAdd != nil {
		t.onAdd(n)
	}
	lgr.Printf("[DEBUG] ticker notification %s: %s", n.ID, n.Message)
	return n
}

// Run generates notifications every interval until context canceled
func (t *Ticker) Run(ctx context.Context) error {
	lgr.Printf("[INFO] notification ticker started with interval %v", t.interval)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			lgr.Printf("[INFO] notification ticker stopped")
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
		}
	}
}
