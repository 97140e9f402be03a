package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/domain"
)

func TestStore_CapKeepsNewest(t *testing.T) {
	s := NewStore(10)
	for i := 1; i <= 12; i++ {
		s.Add(domain.Notification{ID: fmt.Sprintf("n%d", i), Message: "msg"})
	}
	require.Equal(t, 10, s.Len())

	list := s.List()
	assert.Equal(t, "n3", list[0].ID, "two oldest evicted")
	assert.Equal(t, "n12", list[9].ID)

	newest := s.Newest()
	assert.Equal(t, "n12", newest[0].ID)
	assert.Equal(t, "n3", newest[9].ID)
	assert.Equal(t, "n3", s.List()[0].ID, "newest does not reorder store")
}

func TestStore_DefaultCap(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < 15; i++ {
		s.Add(domain.Notification{ID: fmt.Sprintf("%d", i)})
	}
	assert.Equal(t, DefaultMaxRetained, s.Len())
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(5)
	s.Add(domain.Notification{ID: "a"})
	s.Add(domain.Notification{ID: "b"})
	s.Add(domain.Notification{ID: "c"})

	require.NoError(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c"}, ids(s.List()))

	require.ErrorIs(t, s.Remove("b"), ErrNotFound)
	require.ErrorIs(t, s.Remove("zzz"), ErrNotFound)
	assert.Equal(t, 2, s.Len())

	require.NoError(t, s.Remove("a"))
	require.NoError(t, s.Remove("c"))
	assert.Empty(t, s.Newest())
}

func TestStore_AddKnownID(t *testing.T) {
	s := NewStore(3)
	s.Add(domain.Notification{ID: "a", Message: "first"})
	s.Add(domain.Notification{ID: "b"})
	s.Add(domain.Notification{ID: "a", Message: "again"})
	assert.Equal(t, []string{"a", "b"}, ids(s.List()))
	assert.Equal(t, "first", s.List()[0].Message)
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore(10)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Add(domain.Notification{ID: fmt.Sprintf("%d", i), CreatedAt: time.Now()})
			_ = s.Newest()
			_ = s.Remove(fmt.Sprintf("%d", i-1))
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Len(), 10)
}

func ids(list []domain.Notification) []string {
	res := make([]string, 0, len(list))
	for _, n := range list {
		res = append(res, n.ID)
	}
	return res
}
