package server

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/mock"
)

func TestServer_Ticker(t *testing.T) {
	env := newTestEnv(t, testConfig(), mock.NewSource(mock.NewGenerator(1), 0))

	t.Run("panel in layout", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/explore", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec.Body.String())
		panel := doc.Find("details#ticker")
		require.Equal(t, 1, panel.Length())
		assert.Equal(t, "2", panel.Find("#ticker-count").Text())
		_, oob := panel.Find("#ticker-count").Attr("hx-swap-oob")
		assert.False(t, oob)
		assert.Contains(t, panel.Find("#tick-n1").Text(), "User @hackerman liked your post")
	})

	t.Run("poll", func(t *testing.T) {
		rec := env.htmx(t, http.MethodGet, "/ticker")
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec.Body.String())
		list := doc.Find("ul#ticker-items")
		require.Equal(t, 1, list.Length())
		assert.Equal(t, "every 5s", list.AttrOr("hx-trigger", ""))
		require.Equal(t, 2, list.Find("li").Length())
		assert.Equal(t, "tick-n1", list.Find("li").First().AttrOr("id", ""), "newest first")
		assert.Contains(t, list.Find(".time").Text(), "[")
		count := doc.Find("#ticker-count")
		assert.Equal(t, "true", count.AttrOr("hx-swap-oob", ""))
		assert.Equal(t, "2", count.Text())
	})

	t.Run("broadcast reaches viewer", func(t *testing.T) {
		env.mgr.Broadcast(domain.Notification{ID: "n3", Message: "User @neonrider mentioned you"})
		rec := env.htmx(t, http.MethodGet, "/ticker")
		doc := parseHTML(t, rec.Body.String())
		assert.Equal(t, "tick-n3", doc.Find("ul#ticker-items li").First().AttrOr("id", ""))
		assert.Equal(t, "3", doc.Find("#ticker-count").Text())
	})

	t.Run("dismiss", func(t *testing.T) {
		rec := env.htmx(t, http.MethodDelete, "/ticker/n1")
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec.Body.String())
		assert.Equal(t, "2", doc.Find("#ticker-count").Text())
		assert.Equal(t, 0, doc.Find("li").Length())

		rec = env.htmx(t, http.MethodGet, "/ticker")
		doc = parseHTML(t, rec.Body.String())
		assert.Equal(t, 0, doc.Find("#tick-n1").Length())
	})

	t.Run("dismiss missing is fine", func(t *testing.T) {
		rec := env.htmx(t, http.MethodDelete, "/ticker/gone")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2", parseHTML(t, rec.Body.String()).Find("#ticker-count").Text())
	})

	t.Run("empty ticker", func(t *testing.T) {
		env.htmx(t, http.MethodDelete, "/ticker/n2")
		env.htmx(t, http.MethodDelete, "/ticker/n3")
		rec := env.htmx(t, http.MethodGet, "/ticker")
		require.Equal(t, http.StatusOK, rec.Code)
		doc := parseHTML(t, rec.Body.String())
		assert.Equal(t, "no new notifications", strings.TrimSpace(doc.Find("li.empty").Text()))
	})
}

func TestServer_TickerDismissPerViewer(t *testing.T) {
	env := newTestEnv(t, testConfig(), mock.NewSource(mock.NewGenerator(1), 0))
	other := *env
	other.viewer = "0b7d3c8e-2f41-4a6b-8c9d-5e1f2a3b4c5d"

	rec := env.htmx(t, http.MethodDelete, "/ticker/n1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", parseHTML(t, rec.Body.String()).Find("#ticker-count").Text())

	rec = other.htmx(t, http.MethodGet, "/ticker")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec.Body.String())
	assert.Equal(t, 1, doc.Find("#tick-n1").Length(), "other viewer keeps the entry")
	assert.Equal(t, "2", doc.Find("#ticker-count").Text())

	rec = env.htmx(t, http.MethodGet, "/ticker")
	assert.Equal(t, 0, parseHTML(t, rec.Body.String()).Find("#tick-n1").Length())
}
