package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/notify/mocks"
)

func TestTicker_Seed(t *testing.T) {
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store := NewStore(10)
	tk := NewTicker(TickerParams{Store: store, Source: &mocks.MessageSourceMock{}, Now: func() time.Time { return now }})
	tk.Seed()

	newest := store.Newest()
	require.Len(t, newest, 3)
	assert.Equal(t, "User @hackerman liked your post", newest[0].Message)
	assert.Equal(t, now, newest[0].CreatedAt)
	assert.Equal(t, "System: New version v0.1.3 deployed", newest[1].Message)
	assert.Equal(t, now.Add(-2*time.Minute), newest[1].CreatedAt)
	assert.Equal(t, "User @glitchqueen started following you", newest[2].Message)
}

func TestTicker_Tick(t *testing.T) {
	store := NewStore(10)
	src := &mocks.MessageSourceMock{TickerMessageFunc: func() string { return "User @cybermonk mentioned you" }}
	n := 0
	var added []domain.Notification
	tk := NewTicker(TickerParams{
		Store:  store,
		Source: src,
		NewID:  func() string { n++; return fmt.Sprintf("id-%d", n) },
		OnAdd:  func(n domain.Notification) { added = append(added, n) },
	})

	for i := 0; i < 12; i++ {
		tk.Tick()
	}
	assert.Equal(t, 10, store.Len())
	assert.Len(t, src.TickerMessageCalls(), 12)
	assert.Len(t, added, 12)
	assert.Equal(t, "id-12", store.Newest()[0].ID)
	assert.Equal(t, "id-3", store.List()[0].ID)
	assert.Equal(t, "User @cybermonk mentioned you", store.Newest()[0].Message)
}

func TestTicker_DefaultID(t *testing.T) {
	store := NewStore(10)
	tk := NewTicker(TickerParams{Store: store, Source: &mocks.MessageSourceMock{TickerMessageFunc: func() string { return "m" }}})
	a, b := tk.Tick(), tk.Tick()
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultInterval, NewTicker(TickerParams{Store: store}).interval)
}

func TestTicker_Run(t *testing.T) {
	store := NewStore(10)
	src := &mocks.MessageSourceMock{TickerMessageFunc: func() string { return "tick" }}
	tk := NewTicker(TickerParams{Store: store, Source: src, Interval: 10 * time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 75*time.Millisecond)
	defer cancel()
	err := tk.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.GreaterOrEqual(t, store.Len(), 3)
	assert.LessOrEqual(t, store.Len(), 10)
}
