package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/umputun/pixelsocial/pkg/domain"
)

// Source serves generated pages after a fixed simulated delay. It never fails on its own,
// only context cancellation interrupts it.
type Source struct {
	gen   *Generator
	delay time.Duration
}

// NewSource makes a delayed source over the generator
func NewSource(gen *Generator, delay time.Duration) *Source {
	return &Source{gen: gen, delay: delay}
}

// FetchPage waits for the delay and returns a generated batch for the page
func (s *Source) FetchPage(ctx context.Context, page, size int) ([]domain.Post, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("fetch page %d: %w", page, ctx.Err())
		case <-timer.C:
		}
	}
	return s.gen.Posts(page, size), nil
}
