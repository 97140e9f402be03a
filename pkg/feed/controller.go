// Package feed drives incremental population of a post feed. Controller owns paging state
// and guarantees at most one load in flight, Trigger converts sentinel visibility reports
// into load requests and PostState keeps per-post interaction state of a viewer.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pixelsocial/pkg/domain"
)

//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source

// ErrClosed is returned when a controller was torn down before or during a load
var ErrClosed = errors.New("feed controller closed")

// ErrNoSource is returned by loads of a controller made without a source
var ErrNoSource = errors.New("no feed source")

const (
	defaultBatchSize = 5
	defaultMaxPages  = 5
)

// Source provides pages of posts, mock generator or a real backend
type Source interface {
	FetchPage(ctx context.Context, page, size int) ([]domain.Post, error)
}

// Pinner is a Source able to give each feed its own view, so pages of one feed come from
// the same snapshot even if the backing data changes between loads
type Pinner interface {
	Pin() Source
}

// Result describes the outcome of a single load request
type Result struct {
	Page    int           // page number requested
	Next    int           // next page to load after this call
	Posts   []domain.Post // batch appended by this call
	HasMore bool
	Skipped bool // no-op, load in flight, feed exhausted or stale sentinel
}

// Controller owns paging state of a single feed mount
type Controller struct {
	src       Source
	batchSize int
	maxPages  int
	observer  func(page int, d time.Duration, err error)

	mu      sync.Mutex
	posts   []domain.Post
	index   map[string]int
	page    int
	loading bool
	hasMore bool
	started bool
	closed  bool
	lastErr error

	ctx    context.Context
	cancel context.CancelFunc
}

// Option configures Controller
type Option func(c *Controller)

// WithBatchSize sets number of posts requested per page
func WithBatchSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithMaxPages sets page limit, zero or negative means unlimited
func WithMaxPages(n int) Option {
	return func(c *Controller) { c.maxPages = n }
}

// WithObserver sets a callback invoked after every completed fetch
func WithObserver(fn func(page int, d time.Duration, err error)) Option {
	return func(c *Controller) { c.observer = fn }
}

// NewController makes a controller with has-more set and page counter at 1.
// A source implementing Pinner is pinned for the controller's lifetime.
func NewController(src Source, opts ...Option) *Controller {
	if p, ok := src.(Pinner); ok {
		src = p.Pin()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		src:       src,
		batchSize: defaultBatchSize,
		maxPages:  defaultMaxPages,
		index:     make(map[string]int),
		page:      1,
		hasMore:   true,
		ctx:       ctx,
		cancel:    cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InitializeFeed triggers the first page load, subsequent calls are no-op
func (c *Controller) InitializeFeed(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.mu.Unlock()

	_, err := c.LoadNextPage(ctx)
	return err
}

// LoadNextPage fetches the next batch and appends it to the feed. It is a no-op returning
// a skipped result if a load is already in flight or no pages remain. On fetch failure the
// page counter and has-more stay unchanged so the caller can retry. Results arriving after
// Close are discarded.
func (c *Controller) LoadNextPage(ctx context.Context) (Result, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Result{Skipped: true}, ErrClosed
	}
	if c.loading || !c.hasMore {
		res := Result{Page: c.page, Next: c.page, HasMore: c.hasMore, Skipped: true}
		c.mu.Unlock()
		return res, nil
	}
	if c.src == nil {
		c.mu.Unlock()
		return Result{Page: c.page, Next: c.page, HasMore: c.hasMore}, ErrNoSource
	}
	c.started = true
	c.loading = true
	page := c.page
	c.mu.Unlock()

	// abort the fetch on either request cancellation or teardown
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	st := time.Now()
	posts, err := c.src.FetchPage(fetchCtx, page, c.batchSize)
	if c.observer != nil {
		c.observer(page, time.Since(st), err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if c.closed {
		lgr.Printf("[DEBUG] discard page %d, feed closed", page)
		return Result{Page: page, Skipped: true}, ErrClosed
	}

	if err != nil {
		c.lastErr = err
		return Result{Page: page, Next: page, HasMore: c.hasMore}, fmt.Errorf("load page %d: %w", page, err)
	}

	batch := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if _, dup := c.index[p.ID]; dup {
			lgr.Printf("[WARN] duplicate post id %s on page %d", p.ID, page)
			continue
		}
		c.index[p.ID] = len(c.posts)
		c.posts = append(c.posts, p)
		batch = append(batch, p)
	}
	c.page++
	c.lastErr = nil
	if (c.maxPages > 0 && c.page > c.maxPages) || len(posts) < c.batchSize {
		c.hasMore = false
	}

	return Result{Page: page, Next: c.page, Posts: batch, HasMore: c.hasMore}, nil
}

// Close tears the controller down, in-flight fetch is canceled and its result dropped
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancel()
}

// Closed reports whether Close was called
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Posts returns a copy of all loaded posts in display order
func (c *Controller) Posts() []domain.Post {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := make([]domain.Post, len(c.posts))
	copy(res, c.posts)
	return res
}

// Post returns a loaded post by id
func (c *Controller) Post(id string) (domain.Post, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i, ok := c.index[id]
	if !ok {
		return domain.Post{}, false
	}
	return c.posts[i], true
}

// Page returns the next page to load
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Loading reports whether a load is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// HasMore reports whether more pages remain
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() domain.FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := domain.FeedState{
		Posts:   make([]domain.Post, len(c.posts)),
		Page:    c.page,
		Loading: c.loading,
		HasMore: c.hasMore,
	}
	copy(res.Posts, c.posts)
	if c.lastErr != nil {
		res.LastError = c.lastErr.Error()
	}
	return res
}
