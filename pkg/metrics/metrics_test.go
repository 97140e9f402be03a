package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveLoad(1, 100*time.Millisecond, nil)
	m.ObserveLoad(1, 200*time.Millisecond, nil)
	m.ObserveLoad(2, time.Second, errors.New("boom"))
	assert.InDelta(t, 2, testutil.ToFloat64(m.pageLoads.WithLabelValues("1", "ok")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.pageLoads.WithLabelValues("2", "error")), 0.001)

	m.Like(true)
	m.Like(true)
	m.Like(false)
	assert.InDelta(t, 2, testutil.ToFloat64(m.likes.WithLabelValues("like")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(m.likes.WithLabelValues("unlike")), 0.001)

	m.Reaction("fire")
	assert.InDelta(t, 1, testutil.ToFloat64(m.reactions.WithLabelValues("fire")), 0.001)

	m.Sessions(3)
	assert.InDelta(t, 3, testutil.ToFloat64(m.sessions), 0.001)
	m.Notifications(7)
	assert.InDelta(t, 7, testutil.ToFloat64(m.notifications), 0.001)

	m.Form("login", nil)
	m.Form("login", errors.New("bad"))
	assert.InDelta(t, 1, testutil.ToFloat64(m.forms.WithLabelValues("login", "error")), 0.001)
}

func TestMetrics_Handler(t *testing.T) {
	m := New(nil)
	m.ObserveLoad(3, time.Millisecond, nil)

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()
	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `pixelsocial_feed_page_loads_total{page="3",status="ok"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveLoad(1, time.Second, nil)
		m.Like(true)
		m.Reaction("zap")
		m.Sessions(1)
		m.Notifications(1)
		m.Form("x", nil)
		_ = m.Handler()
	})
}
