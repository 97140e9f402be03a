package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/pixelsocial/pkg/mock"
	"github.com/umputun/pixelsocial/pkg/source"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: tmpFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_RSSWithoutURL(t *testing.T) {
	err := run(context.Background(), Opts{Source: "rss"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rss source requires rss url")
}

func TestRun_ServerStartStop(t *testing.T) {
	t.Setenv("DB_PATH", t.TempDir())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wd, err := os.Getwd()
	require.NoError(t, err)
	opts := Opts{Config: filepath.Join(wd, "testdata", "test_config.yml")}

	done := make(chan error, 1)
	go func() { done <- run(ctx, opts) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18766/ping")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode == http.StatusOK && string(body) == "pong"
	}, 5*time.Second, 50*time.Millisecond)

	// feed page is served with the configured theme
	resp, err := http.Get("http://127.0.0.1:18766/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "/static/css/theme-light.css")

	// json preview uses the configured batch size
	resp, err = http.Get("http://127.0.0.1:18766/api/v1/feed?page=2")
	require.NoError(t, err)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, 3, strings.Count(string(body), `"author"`))
	assert.Contains(t, string(body), `"has_more":false`)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server shutdown timeout")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without file", func(t *testing.T) {
		cfg, err := loadConfig(Opts{})
		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, "mock", cfg.Feed.Source)
	})

	t.Run("cli overrides", func(t *testing.T) {
		cfg, err := loadConfig(Opts{Listen: ":9090", Source: "rss", RSSURL: "https://example.com/feed.xml"})
		require.NoError(t, err)
		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, "rss", cfg.Feed.Source)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Feed.RSSURL)
	})
}

func TestMakeSource(t *testing.T) {
	cfg, err := loadConfig(Opts{})
	require.NoError(t, err)
	gen := mock.NewGenerator(1)

	_, ok := makeSource(cfg, gen).(*mock.Source)
	assert.True(t, ok)

	cfg.Feed.Source, cfg.Feed.RSSURL = "rss", "https://example.com/feed.xml"
	_, ok = makeSource(cfg, gen).(*source.RSS)
	assert.True(t, ok)
}

func TestSetupLog(t *testing.T) {
	t.Run("debug mode enabled", func(t *testing.T) {
		SetupLog(true)
	})

	t.Run("debug mode disabled", func(t *testing.T) {
		SetupLog(false)
	})

	t.Run("with secrets", func(t *testing.T) {
		SetupLog(true, "secret1", "secret2")
	})
}
