package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// DefaultThreshold is the visible fraction of a sentinel required to fire a load
const DefaultThreshold = 1.0

// SentinelID returns the id of the sentinel placed after the last item, watching for the page
func SentinelID(page int) string {
	return fmt.Sprintf("sentinel-%d", page)
}

// Trigger watches a single sentinel and turns its visibility into load requests
type Trigger struct {
	ctrl      *Controller
	threshold float64

	mu       sync.Mutex
	attached string
}

// ValidThreshold reports whether the visible fraction is usable as a trigger threshold, (0, 1]
func ValidThreshold(threshold float64) bool {
	return threshold > 0 && threshold <= 1
}

// NewTrigger makes a trigger attached to the sentinel of the controller's next page.
// Threshold outside of (0, 1] means DefaultThreshold.
func NewTrigger(ctrl *Controller, threshold float64) *Trigger {
	if !ValidThreshold(threshold) {
		threshold = DefaultThreshold
	}
	t := &Trigger{ctrl: ctrl, threshold: threshold}
	if ctrl.HasMore() {
		t.attached = SentinelID(ctrl.Page())
	}
	return t
}

// Threshold returns the visible fraction required to fire a load
func (t *Trigger) Threshold() float64 { return t.threshold }

// Attach starts watching the sentinel, replacing any previous one
func (t *Trigger) Attach(sentinelID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attached = sentinelID
}

// Detach releases the watch
func (t *Trigger) Detach() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attached = ""
}

// Attached returns the id of the watched sentinel, empty if detached
func (t *Trigger) Attached() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attached
}

// Observe handles a visibility report for the sentinel. The load fires only for the attached
// sentinel with visible ratio at or above the threshold, while nothing is loading and pages remain.
// After a successful load the watch moves to the next sentinel, or detaches once the feed is exhausted.
func (t *Trigger) Observe(ctx context.Context, sentinelID string, ratio float64) (Result, error) {
	t.mu.Lock()
	attached := t.attached
	t.mu.Unlock()

	if attached == "" || sentinelID != attached || ratio < t.threshold {
		return Result{Skipped: true, HasMore: t.ctrl.HasMore(), Next: t.ctrl.Page()}, nil
	}

	res, err := t.ctrl.LoadNextPage(ctx)
	if err != nil {
		if errors.Is(err, ErrClosed) {
			t.Detach()
		}
		return res, err
	}
	if res.Skipped {
		return res, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.attached == sentinelID { // keep a watch replaced concurrently by Attach
		t.attached = ""
		if res.HasMore {
			t.attached = SentinelID(res.Next)
		}
	}
	return res, nil
}
