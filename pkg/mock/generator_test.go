package mock

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/domain"
)

func TestGenerator_Posts(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	gen := NewGenerator(42, WithClock(func() time.Time { return now }))

	posts := gen.Posts(3, 5)
	require.Len(t, posts, 5)
	for i, p := range posts {
		assert.Equal(t, []string{"3-0", "3-1", "3-2", "3-3", "3-4"}[i], p.ID)
		assert.Equal(t, 3, p.Page)
		assert.Contains(t, handles, p.Author)
		assert.Contains(t, captions, p.Caption)
		assert.GreaterOrEqual(t, p.Likes, 0)
		assert.Less(t, p.Likes, 300)
		assert.GreaterOrEqual(t, p.Comments, 0)
		assert.Less(t, p.Comments, 50)
		assert.Contains(t, accents, p.Accent)
		assert.True(t, strings.HasSuffix(p.ImageURL, "sig="+p.ID))
		assert.Equal(t, now.Add(-time.Duration(180+i*15)*time.Minute), p.CreatedAt)
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	g1 := NewGenerator(7, WithClock(clock))
	g2 := NewGenerator(7, WithClock(clock))
	assert.Equal(t, g1.Posts(1, 5), g2.Posts(1, 5))
	assert.Equal(t, g1.TickerMessage(), g2.TickerMessage())

	g3 := NewGenerator(8, WithClock(clock))
	assert.NotEqual(t, g1.Posts(2, 20), g3.Posts(2, 20))
}

func TestGenerator_TickerMessage(t *testing.T) {
	gen := NewGenerator(1)
	for i := 0; i < 20; i++ {
		msg := gen.TickerMessage()
		assert.True(t, strings.HasPrefix(msg, "User @"), msg)
	}
}

func TestGenerator_Activities(t *testing.T) {
	gen := NewGenerator(1)
	acts := gen.Activities()
	require.Len(t, acts, 5)
	unread := 0
	for _, a := range acts {
		if !a.Read {
			unread++
		}
	}
	assert.Equal(t, 2, unread)
	assert.Equal(t, domain.ActivitySystem, acts[3].Type)
	for i := 1; i < len(acts); i++ {
		assert.True(t, acts[i].CreatedAt.Before(acts[i-1].CreatedAt), "newest first")
	}
}

func TestProfile(t *testing.T) {
	own := Profile("", "cyberghost")
	assert.Equal(t, "cyberghost", own.Handle)
	assert.Equal(t, "Cyber Ghost", own.DisplayName)
	assert.Equal(t, 1024, own.Followers)

	other := Profile("neonrider", "cyberghost")
	assert.Equal(t, "Neonrider", other.DisplayName)
	assert.Equal(t, other, Profile("neonrider", "cyberghost"), "stable per handle")

	uni := Profile("ёжик", "cyberghost")
	assert.Equal(t, "Ёжик", uni.DisplayName)
}

func TestCatalog_Explore(t *testing.T) {
	c := NewCatalog(NewGenerator(3), "cyberghost")

	all := c.Explore("")
	require.Len(t, all, 24)
	assert.True(t, all[0].Featured)
	assert.True(t, all[7].Featured)
	assert.False(t, all[1].Featured)

	neon := c.Explore("#neon")
	for _, tile := range neon {
		assert.Contains(t, tile.Tags, "#neon")
	}

	byAuthor := c.Explore("GLITCH")
	for _, tile := range byAuthor {
		ok := strings.Contains(strings.ToLower(tile.Caption), "glitch") || strings.Contains(tile.Author, "glitch")
		assert.True(t, ok, tile)
	}

	assert.Empty(t, c.Explore("no-such-thing"))
	assert.False(t, c.Explore("")[1].Featured, "featured flag does not leak into catalog")
}

func TestCatalog_ProfileTiles(t *testing.T) {
	c := NewCatalog(NewGenerator(3), "cyberghost")
	tiles := c.ProfileTiles("", "posts")
	require.Len(t, tiles, 9)
	assert.Equal(t, "cyberghost", tiles[0].Author)
	assert.Len(t, c.ProfileTiles("neonrider", ""), 9)
	assert.Empty(t, c.ProfileTiles("neonrider", "saved"))
	assert.Empty(t, c.ProfileTiles("neonrider", "tagged"))
	assert.Len(t, c.Comments(domain.Post{}), 2)
	assert.Len(t, c.TrendingTags(), 6)
}

func TestHashtags(t *testing.T) {
	assert.Equal(t, []string{"#a", "#b"}, hashtags("x #A #b #a # y"))
	assert.Empty(t, hashtags("no tags"))
}

func TestSource_FetchPage(t *testing.T) {
	src := NewSource(NewGenerator(1), 20*time.Millisecond)

	st := time.Now()
	posts, err := src.FetchPage(context.Background(), 2, 5)
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.GreaterOrEqual(t, time.Since(st), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.FetchPage(ctx, 3, 5)
	require.ErrorIs(t, err, context.Canceled)

	noDelay := NewSource(NewGenerator(1), 0)
	posts, err = noDelay.FetchPage(ctx, 1, 3)
	require.NoError(t, err, "no delay, no suspension point")
	assert.Len(t, posts, 3)
}
