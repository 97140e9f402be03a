// Package source implements feed sources backed by real remote content
package source

import (
	"context"
	"fmt"
	"hash/fnv"
	"html"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
)

var accents = []string{"green", "cyan", "magenta", "amber", "red"}

// RSS serves feed pages sliced from a remote RSS/Atom feed. Parsed items are cached for ttl,
// concurrent refreshes share a single download.
type RSS struct {
	url       string
	client    *http.Client
	userAgent string
	ttl       time.Duration
	now       func() time.Time
	sanitizer *bluemonday.Policy
	group     singleflight.Group

	mu        sync.Mutex
	items     []domain.Post
	fetchedAt time.Time
}

// RSSParams defines parameters for NewRSS
type RSSParams struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
	TTL       time.Duration // cache lifetime of parsed items, 0 means refetch on every first page
}

// NewRSS makes RSS source for the url
func NewRSS(params RSSParams) *RSS {
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	if params.UserAgent == "" {
		params.UserAgent = "PixelSocial/1.0"
	}
	return &RSS{
		url: params.URL,
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: params.UserAgent,
		ttl:       params.TTL,
		now:       time.Now,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// FetchPage returns a slice of the feed items for the page. Page 1 refreshes the cache if it
// expired, later pages read from the cache. Feeds should use Pin to keep their pages stable
// across refreshes made by others.
func (r *RSS) FetchPage(ctx context.Context, page, size int) ([]domain.Post, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("invalid page %d or size %d", page, size)
	}
	items, err := r.load(ctx, page == 1)
	if err != nil {
		return nil, err
	}
	return pageOf(items, page, size), nil
}

// Pin returns a view for a single feed. The item list is taken on page 1 and kept for the
// following pages, so a refresh triggered by another feed doesn't shift them.
func (r *RSS) Pin() feed.Source {
	return &pinnedRSS{rss: r}
}

// load returns cached items, refreshing them if refresh is set and the cache expired or is empty.
// The download is shared by concurrent callers and is not aborted when one of them goes away,
// the client timeout bounds it.
func (r *RSS) load(ctx context.Context, refresh bool) ([]domain.Post, error) {
	r.mu.Lock()
	fresh := r.items != nil && (!refresh || r.now().Sub(r.fetchedAt) < r.ttl)
	items := r.items
	r.mu.Unlock()
	if fresh {
		return items, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load rss %s: %w", r.url, err)
	}

	dlCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(r.url, func() (any, error) {
		posts, err := r.parse(dlCtx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.items, r.fetchedAt = posts, r.now()
		r.mu.Unlock()
		lgr.Printf("[DEBUG] loaded %d items from %s", len(posts), r.url)
		return posts, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load rss %s: %w", r.url, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("load rss %s: %w", r.url, res.Err)
		}
		if res.Shared {
			lgr.Printf("[DEBUG] shared rss download for %s", r.url)
		}
		return res.Val.([]domain.Post), nil
	}
}

// pinnedRSS keeps the item list a feed started with
type pinnedRSS struct {
	rss *RSS

	mu    sync.Mutex
	items []domain.Post
}

func (p *pinnedRSS) FetchPage(ctx context.Context, page, size int) ([]domain.Post, error) {
	if page < 1 || size < 1 {
		return nil, fmt.Errorf("invalid page %d or size %d", page, size)
	}
	p.mu.Lock()
	items := p.items
	p.mu.Unlock()

	if page == 1 || items == nil {
		loaded, err := p.rss.load(ctx, page == 1)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.items = loaded
		p.mu.Unlock()
		items = loaded
	}
	return pageOf(items, page, size), nil
}

// pageOf slices items for the page, ids are "<page>-<index>"
func pageOf(items []domain.Post, page, size int) []domain.Post {
	start := (page - 1) * size
	if start >= len(items) {
		return []domain.Post{}
	}
	end := min(start+size, len(items))

	res := make([]domain.Post, 0, end-start)
	for i, it := range items[start:end] {
		it.ID = fmt.Sprintf("%d-%d", page, i)
		it.Page = page
		res = append(res, it)
	}
	return res
}

// parse fetches and parses the feed, converting items to posts
func (r *RSS) parse(ctx context.Context) ([]domain.Post, error) {
	body, err := r.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	res := make([]domain.Post, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		res = append(res, r.toPost(parsed, item))
	}
	return res, nil
}

func (r *RSS) toPost(src *gofeed.Feed, item *gofeed.Item) domain.Post {
	key := item.GUID
	if key == "" {
		key = item.Link
	}
	if key == "" {
		key = src.Title + "-" + item.Title
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	sum := h.Sum32()

	post := domain.Post{
		Author:    src.Title,
		Caption:   r.plain(item.Title),
		AvatarURL: fmt.Sprintf("https://source.unsplash.com/random/150x150?tech&sig=%d", sum%1000),
		ImageURL:  fmt.Sprintf("https://source.unsplash.com/random/600x600?cyberpunk&sig=%d", sum%1000),
		Likes:     int(sum % 300),
		Comments:  int((sum / 300) % 50),
		Accent:    accents[sum%uint32(len(accents))],
	}
	if item.Author != nil && item.Author.Name != "" {
		post.Author = item.Author.Name
	}
	if item.Image != nil && item.Image.URL != "" {
		post.ImageURL = item.Image.URL
	}
	if src.Image != nil && src.Image.URL != "" {
		post.AvatarURL = src.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			post.ImageURL = enc.URL
			break
		}
	}
	if post.Caption == "" {
		post.Caption = r.plain(item.Description)
	}
	switch {
	case item.PublishedParsed != nil:
		post.CreatedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		post.CreatedAt = *item.UpdatedParsed
	default:
		post.CreatedAt = r.now()
	}
	return post
}

// plain strips markup, templates do their own escaping
func (r *RSS) plain(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.sanitizer.Sanitize(s)))
}

// fetch retrieves feed body
func (r *RSS) fetch(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	addFeedHeaders(req)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
