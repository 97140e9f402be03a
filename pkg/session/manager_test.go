package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	feedmocks "github.com/umputun/pixelsocial/pkg/feed/mocks"
	"github.com/umputun/pixelsocial/pkg/session/mocks"
)

func makePosts(page, size int) []domain.Post {
	res := make([]domain.Post, 0, size)
	for i := 0; i < size; i++ {
		res = append(res, domain.Post{ID: fmt.Sprintf("%d-%d", page, i), Likes: 10 * (i + 1), Author: "neonrider"})
	}
	return res
}

func instantSource() *feedmocks.SourceMock {
	return &feedmocks.SourceMock{
		FetchPageFunc: func(ctx context.Context, page, size int) ([]domain.Post, error) {
			return makePosts(page, size), nil
		},
	}
}

type memPrefs struct {
	mu   sync.Mutex
	data map[string]string
}

func (m *memPrefs) GetPreference(_ context.Context, viewer, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[viewer+"/"+key], nil
}

func (m *memPrefs) SetPreference(_ context.Context, viewer, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[viewer+"/"+key] = value
	return nil
}

func TestManager_GetCreatesOnce(t *testing.T) {
	mgr, err := NewManager(Params{Source: instantSource()})
	require.NoError(t, err)

	s1 := mgr.Get(context.Background(), "v1")
	s2 := mgr.Get(context.Background(), "v1")
	assert.Same(t, s1, s2)
	assert.Equal(t, "v1", s1.ID())
	assert.Equal(t, domain.ThemeDark, s1.Theme(), "default theme")
	assert.Equal(t, 1, mgr.Len())

	s3 := mgr.Get(context.Background(), "v2")
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, mgr.Len())
}

func TestManager_ThemeFromPreferences(t *testing.T) {
	prefs := &mocks.PreferenceStoreMock{
		GetPreferenceFunc: func(ctx context.Context, viewer, key string) (string, error) {
			switch viewer {
			case "light-viewer":
				return "light", nil
			case "broken-viewer":
				return "neon", nil
			case "failing-viewer":
				return "", errors.New("db down")
			}
			return "", nil
		},
	}
	mgr, err := NewManager(Params{Source: instantSource(), Prefs: prefs, DefaultTheme: domain.ThemeDark})
	require.NoError(t, err)
	ctx := context.Background()

	assert.Equal(t, domain.ThemeLight, mgr.Get(ctx, "light-viewer").Theme())
	assert.Equal(t, domain.ThemeDark, mgr.Get(ctx, "broken-viewer").Theme(), "invalid value falls back")
	assert.Equal(t, domain.ThemeDark, mgr.Get(ctx, "failing-viewer").Theme(), "error falls back")
	assert.Equal(t, domain.ThemeDark, mgr.Get(ctx, "new-viewer").Theme())

	mgr.Get(ctx, "light-viewer")
	assert.Len(t, prefs.GetPreferenceCalls(), 4, "preference read once per session")
}

func TestManager_InvalidDefaultTheme(t *testing.T) {
	mgr, err := NewManager(Params{Source: instantSource(), DefaultTheme: "neon"})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, mgr.Get(context.Background(), "v").Theme())
}

func TestManager_EvictionClosesMount(t *testing.T) {
	metrics := &mocks.MetricsMock{
		SessionsFunc:    func(n int) {},
		ObserveLoadFunc: func(page int, d time.Duration, err error) {},
	}
	mgr, err := NewManager(Params{Source: instantSource(), MaxSessions: 2, Metrics: metrics})
	require.NoError(t, err)
	ctx := context.Background()

	s1 := mgr.Get(ctx, "v1")
	m1 := s1.Mount()
	require.NoError(t, m1.Init(ctx))

	mgr.Get(ctx, "v2")
	mgr.Get(ctx, "v3") // evicts v1

	assert.Equal(t, 2, mgr.Len())
	assert.True(t, m1.Feed().Closed(), "evicted session's mount is torn down")
	assert.Nil(t, s1.Current())

	calls := metrics.SessionsCalls()
	require.Len(t, calls, 3)
	assert.Equal(t, 2, calls[2].N)
	assert.Len(t, metrics.ObserveLoadCalls(), 1)

	mgr.Remove("v2")
	assert.Equal(t, 1, mgr.Len())
	mgr.Close()
	assert.Equal(t, 0, mgr.Len())
}

func TestSession_Remount(t *testing.T) {
	mgr, err := NewManager(Params{Source: instantSource()})
	require.NoError(t, err)
	ctx := context.Background()
	s := mgr.Get(ctx, "v1")
	assert.Nil(t, s.Current())
	assert.Nil(t, s.MountByID(""))

	m1 := s.Mount()
	require.NoError(t, m1.Init(ctx))
	m2 := s.Mount()
	assert.True(t, m1.Feed().Closed(), "previous mount closed")
	assert.False(t, m2.Feed().Closed())
	assert.Same(t, m2, s.Current())
	assert.NotEqual(t, m1.ID(), m2.ID())

	assert.Same(t, m2, s.MountByID(m2.ID()))
	assert.Same(t, m2, s.MountByID(""))
	assert.Nil(t, s.MountByID(m1.ID()), "stale mount id")

	s.Close()
	assert.True(t, m2.Feed().Closed())
	m3 := s.Mount()
	assert.True(t, m3.Feed().Closed(), "closed session makes closed mounts")
}

func TestSession_Theme(t *testing.T) {
	prefs := &memPrefs{data: map[string]string{}}
	mgr, err := NewManager(Params{Source: instantSource(), Prefs: prefs})
	require.NoError(t, err)
	ctx := context.Background()

	s := mgr.Get(ctx, "v1")
	th, err := s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, th)
	assert.Equal(t, "light", prefs.data["v1/theme"])

	th, err = s.ToggleTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, th)
	assert.Equal(t, "dark", prefs.data["v1/theme"])

	require.Error(t, s.SetTheme(ctx, "neon"))
	assert.Equal(t, domain.ThemeDark, s.Theme())

	// new manager reads the stored preference
	require.NoError(t, s.SetTheme(ctx, domain.ThemeLight))
	mgr2, err := NewManager(Params{Source: instantSource(), Prefs: prefs})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, mgr2.Get(ctx, "v1").Theme())
}

func TestSession_ThemeSaveError(t *testing.T) {
	prefs := &mocks.PreferenceStoreMock{
		GetPreferenceFunc: func(ctx context.Context, viewer, key string) (string, error) { return "", nil },
		SetPreferenceFunc: func(ctx context.Context, viewer, key, value string) error { return errors.New("locked") },
	}
	mgr, err := NewManager(Params{Source: instantSource(), Prefs: prefs})
	require.NoError(t, err)
	s := mgr.Get(context.Background(), "v1")
	th, err := s.ToggleTheme(context.Background())
	require.Error(t, err)
	assert.Equal(t, domain.ThemeLight, th)
	assert.Equal(t, domain.ThemeLight, s.Theme(), "in-memory theme applied even if not persisted")
}

func TestSession_FollowAndActivity(t *testing.T) {
	mgr, err := NewManager(Params{
		Source:     instantSource(),
		Activities: func() []domain.Activity { return []domain.Activity{{ID: "1", Type: domain.ActivityLike}} },
	})
	require.NoError(t, err)
	s := mgr.Get(context.Background(), "v1")

	assert.False(t, s.Following("neonrider"))
	assert.True(t, s.ToggleFollow("neonrider"))
	assert.True(t, s.Following("neonrider"))
	assert.False(t, s.ToggleFollow("neonrider"))

	assert.Equal(t, 1, s.Activity().Unread())
	_, err = s.Activity().MarkRead("1")
	require.NoError(t, err)
	assert.Equal(t, 0, mgr.Get(context.Background(), "v1").Activity().Unread())
	assert.Equal(t, 1, mgr.Get(context.Background(), "v2").Activity().Unread(), "activity per session")
}

func TestSession_TickerPerViewer(t *testing.T) {
	shared := []domain.Notification{{ID: "2", Message: "older"}, {ID: "1", Message: "newer"}}
	mgr, err := NewManager(Params{
		Source:    instantSource(),
		Ticker:    func() []domain.Notification { return shared },
		MaxTicker: 3,
	})
	require.NoError(t, err)

	a := mgr.Get(context.Background(), "a")
	b := mgr.Get(context.Background(), "b")
	assert.Equal(t, 2, a.Ticker().Len(), "new session starts with current entries")

	require.NoError(t, a.Ticker().Remove("1"))
	assert.Equal(t, 1, a.Ticker().Len())
	assert.Equal(t, 2, b.Ticker().Len(), "dismissal is local to the viewer")
	assert.Equal(t, "1", b.Ticker().Newest()[0].ID)

	mgr.Broadcast(domain.Notification{ID: "3", Message: "fresh"})
	mgr.Broadcast(domain.Notification{ID: "3", Message: "fresh"})
	assert.Equal(t, "3", a.Ticker().Newest()[0].ID)
	assert.Equal(t, 2, a.Ticker().Len())
	assert.Equal(t, 3, b.Ticker().Len(), "repeated broadcast kept once")

	mgr.Broadcast(domain.Notification{ID: "4"})
	assert.Equal(t, []string{"4", "3", "1"}, []string{b.Ticker().Newest()[0].ID, b.Ticker().Newest()[1].ID,
		b.Ticker().Newest()[2].ID}, "per session cap evicts the oldest")
}

func TestManager_ConcurrentGet(t *testing.T) {
	mgr, err := NewManager(Params{Source: instantSource()})
	require.NoError(t, err)
	var wg sync.WaitGroup
	res := make([]*Session, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res[i] = mgr.Get(context.Background(), "same")
		}(i)
	}
	wg.Wait()
	for _, s := range res {
		assert.Same(t, res[0], s)
	}
}

var _ feed.Source = instantSource()
