// Package mock produces synthetic content for the feed, explore, profile and notification
// views. All randomness comes from an injected seeded source, so output is reproducible.
package mock

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"sync"
	"time"
	"unicode"

	"github.com/umputun/pixelsocial/pkg/domain"
)

var (
	handles = []string{"cyberghost", "neonrider", "pixelwarrior", "glitch404", "hackermonk"}

	captions = []string{
		"Just finished this digital art. What do you think? #digitalart #cyberpunk",
		"Evening vibes in the neon district. #nightlife #neon",
		"New pixel portrait. 8-bit nostalgia. #pixel #retro",
		"Abstract glitch experiment. #glitchart #digital",
		"Terminal aesthetics and code poetry. #code #ascii",
	}

	tickerHandles = []string{"pixelwarrior", "cybermonk", "neonsamurai", "glitch404", "hackermind"}

	tickerActions = []string{
		"liked your post", "commented on your photo", "started following you",
		"shared your post", "mentioned you",
	}

	// TrendingTags shown on the explore page
	TrendingTags = []string{"#cyberpunk", "#glitchart", "#digitalart", "#pixelart", "#vaporwave", "#retrocomputing"}

	accents = []string{"green", "cyan", "magenta", "amber", "red"}
)

// Generator makes synthetic content. It is safe for concurrent use.
type Generator struct {
	now func() time.Time

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures Generator
type Option func(g *Generator)

// WithClock sets time source used for post and notification timestamps
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// NewGenerator makes a generator with a deterministic random source for the seed
func NewGenerator(seed uint64, opts ...Option) *Generator {
	g := &Generator{
		now: time.Now,
		rnd: rand.New(rand.NewPCG(seed, seed^0x5eed)), //nolint:gosec // mock content, not security sensitive
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Posts generates a batch for the page. Ids are "<page>-<index>", timestamps go back
// an hour per page and 15 minutes per item.
func (g *Generator) Posts(page, size int) []domain.Post {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.now()
	res := make([]domain.Post, 0, size)
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("%d-%d", page, i)
		res = append(res, domain.Post{
			ID:        id,
			Author:    handles[g.rnd.IntN(len(handles))],
			AvatarURL: fmt.Sprintf("https://source.unsplash.com/random/150x150?tech&sig=%s", id),
			ImageURL:  fmt.Sprintf("https://source.unsplash.com/random/600x600?cyberpunk&sig=%s", id),
			Caption:   captions[g.rnd.IntN(len(captions))],
			Likes:     g.rnd.IntN(300),
			Comments:  g.rnd.IntN(50),
			CreatedAt: base.Add(-time.Duration(page*60+i*15) * time.Minute),
			Page:      page,
			Accent:    accents[g.rnd.IntN(len(accents))],
		})
	}
	return res
}

// TickerMessage makes a random activity line for the notification ticker
func (g *Generator) TickerMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("User @%s %s", tickerHandles[g.rnd.IntN(len(tickerHandles))],
		tickerActions[g.rnd.IntN(len(tickerActions))])
}

// Comments returns mock comments for the expanded post view
func (g *Generator) Comments(domain.Post) []domain.Comment {
	return []domain.Comment{
		{Author: "cyberghost", Text: "This is amazing! Great work!"},
		{Author: "neonrider", Text: "I love the aesthetic. Very cyberpunk!"},
	}
}

// Activities returns the seed list for the notifications page, newest first
func (g *Generator) Activities() []domain.Activity {
	now := g.now()
	return []domain.Activity{
		{ID: "1", Type: domain.ActivityLike, Handle: "cyberghost", Content: "liked your post",
			AvatarURL:    "https://source.unsplash.com/random/200x200?face&sig=10",
			PostImageURL: "https://source.unsplash.com/random/300x300?cyberpunk&sig=101",
			CreatedAt:    now.Add(-15 * time.Minute)},
		{ID: "2", Type: domain.ActivityComment, Handle: "neonrider", Read: true,
			Content:      `commented: "This is amazing! Love the aesthetic."`,
			AvatarURL:    "https://source.unsplash.com/random/200x200?face&sig=20",
			PostImageURL: "https://source.unsplash.com/random/300x300?cyberpunk&sig=102",
			CreatedAt:    now.Add(-45 * time.Minute)},
		{ID: "3", Type: domain.ActivityFollow, Handle: "glitch404", Content: "started following you",
			AvatarURL: "https://source.unsplash.com/random/200x200?face&sig=30",
			CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "4", Type: domain.ActivitySystem, Handle: "system", Read: true,
			Content:   "Welcome to PixelSocial! Complete your profile to get started.",
			CreatedAt: now.Add(-24 * time.Hour)},
		{ID: "5", Type: domain.ActivityMention, Handle: "pixelwarrior", Read: true,
			Content:      `mentioned you in a comment: "@user check this out!"`,
			AvatarURL:    "https://source.unsplash.com/random/200x200?face&sig=40",
			PostImageURL: "https://source.unsplash.com/random/300x300?cyberpunk&sig=103",
			CreatedAt:    now.Add(-3 * 24 * time.Hour)},
	}
}

// Profile returns a mock profile. Empty handle means the viewer's own profile.
func Profile(handle, self string) domain.Profile {
	if handle == "" {
		return domain.Profile{
			Handle: self, DisplayName: "Cyber Ghost",
			Bio:       "Digital artist and cyberpunk enthusiast. Creating glitch art and pixel animations since 2077.",
			Followers: 1024, Following: 512, Posts: 42,
			AvatarURL: "https://source.unsplash.com/random/200x200?face&sig=1",
		}
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(handle))
	sum := int(h.Sum32() % 1000)
	return domain.Profile{
		Handle:      handle,
		DisplayName: capitalize(handle),
		Bio:         "Digital artist and cyberpunk enthusiast. Creating glitch art and pixel animations since 2077.",
		Followers:   512 + sum,
		Following:   128 + sum/2,
		Posts:       9 + sum%40,
		AvatarURL:   fmt.Sprintf("https://source.unsplash.com/random/200x200?face&sig=%d", sum),
	}
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
