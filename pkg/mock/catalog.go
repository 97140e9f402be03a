package mock

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/umputun/pixelsocial/pkg/domain"
)

const (
	exploreSize     = 24
	profileSize     = 9
	zineFeatureStep = 7
)

// Catalog is a fixed set of explore and profile tiles generated once at startup
type Catalog struct {
	self    string
	explore []domain.Tile
	gen     *Generator
}

// NewCatalog generates explore tiles with the generator, self is the viewer's own handle
func NewCatalog(gen *Generator, self string) *Catalog {
	c := &Catalog{self: self, gen: gen}
	gen.mu.Lock()
	defer gen.mu.Unlock()
	for i := 0; i < exploreSize; i++ {
		caption := captions[gen.rnd.IntN(len(captions))]
		c.explore = append(c.explore, domain.Tile{
			ID:       fmt.Sprintf("explore-%d", i),
			Author:   handles[gen.rnd.IntN(len(handles))],
			ImageURL: fmt.Sprintf("https://source.unsplash.com/random/600x600?cyberpunk&sig=%d", i+100),
			Caption:  caption,
			Tags:     hashtags(caption),
		})
	}
	return c
}

// Explore returns tiles matching the query, all tiles for an empty query. A query starting
// with # matches tags exactly, otherwise it is a case-insensitive substring of caption or author.
// Every seventh tile of the result is featured in zine view.
func (c *Catalog) Explore(query string) []domain.Tile {
	q := strings.ToLower(strings.TrimSpace(query))
	res := lo.Filter(c.explore, func(t domain.Tile, _ int) bool {
		switch {
		case q == "":
			return true
		case strings.HasPrefix(q, "#"):
			return lo.Contains(t.Tags, q)
		default:
			return strings.Contains(strings.ToLower(t.Caption), q) || strings.Contains(t.Author, q)
		}
	})
	for i := range res {
		res[i].Featured = i%zineFeatureStep == 0
	}
	return res
}

// TrendingTags returns trending hashtags
func (c *Catalog) TrendingTags() []string {
	return TrendingTags
}

// Profile returns profile for the handle, empty handle means the viewer's own profile
func (c *Catalog) Profile(handle string) domain.Profile {
	return Profile(handle, c.self)
}

// ProfileTiles returns grid for a profile tab, only posts tab has content
func (c *Catalog) ProfileTiles(handle, tab string) []domain.Tile {
	if tab != "" && tab != "posts" {
		return nil
	}
	if handle == "" {
		handle = c.self
	}
	res := make([]domain.Tile, 0, profileSize)
	for i := 0; i < profileSize; i++ {
		res = append(res, domain.Tile{
			ID:       fmt.Sprintf("profile-%d", i),
			Author:   handle,
			ImageURL: fmt.Sprintf("https://source.unsplash.com/random/600x600?cyberpunk&sig=%d", i+200),
		})
	}
	return res
}

// Comments returns mock comments for the expanded post view
func (c *Catalog) Comments(p domain.Post) []domain.Comment {
	return c.gen.Comments(p)
}

// hashtags extracts lower-cased #tags from text
func hashtags(text string) []string {
	words := strings.Fields(strings.ToLower(text))
	return lo.Uniq(lo.Filter(words, func(w string, _ int) bool { return strings.HasPrefix(w, "#") && len(w) > 1 }))
}
