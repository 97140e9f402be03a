package notify

import (
	"sync"

	"github.com/samber/lo"

	"github.com/umputun/pixelsocial/pkg/domain"
)

// Tab is a filter of the notifications page
type Tab string

// enum of notification tabs
const (
	TabAll      Tab = "all"
	TabLikes    Tab = "likes"
	TabComments Tab = "comments"
	TabFollows  Tab = "follows"
)

// Tabs lists tabs in display order
var Tabs = []Tab{TabAll, TabLikes, TabComments, TabFollows}

// ParseTab converts query value to a tab, unknown values map to TabAll
func ParseTab(s string) Tab {
	t := Tab(s)
	if lo.Contains(Tabs, t) {
		return t
	}
	return TabAll
}

// match reports whether activity type belongs to the tab, comments include mentions
func (t Tab) match(at domain.ActivityType) bool {
	switch t {
	case TabLikes:
		return at == domain.ActivityLike
	case TabComments:
		return at == domain.ActivityComment || at == domain.ActivityMention
	case TabFollows:
		return at == domain.ActivityFollow
	default:
		return true
	}
}

// Activity is a viewer's list of activity notifications with read flags
type Activity struct {
	mu    sync.Mutex
	items []domain.Activity
}

// NewActivity makes activity list from seed entries, newest first
func NewActivity(items []domain.Activity) *Activity {
	res := &Activity{items: make([]domain.Activity, len(items))}
	copy(res.items, items)
	return res
}

// List returns entries for the tab
func (a *Activity) List(tab Tab) []domain.Activity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo.Filter(a.items, func(item domain.Activity, _ int) bool { return tab.match(item.Type) })
}

// MarkRead sets read flag of the entry
func (a *Activity) MarkRead(id string) (domain.Activity, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.items {
		if a.items[i].ID == id {
			a.items[i].Read = true
			return a.items[i], nil
		}
	}
	return domain.Activity{}, ErrNotFound
}

// MarkAllRead sets read flag on every entry
func (a *Activity) MarkAllRead() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.items {
		a.items[i].Read = true
	}
}

// Unread returns number of unread entries
func (a *Activity) Unread() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return lo.CountBy(a.items, func(item domain.Activity) bool { return !item.Read })
}
