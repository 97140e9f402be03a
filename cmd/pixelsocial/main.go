package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/pixelsocial/pkg/config"
	"github.com/umputun/pixelsocial/pkg/domain"
	"github.com/umputun/pixelsocial/pkg/feed"
	"github.com/umputun/pixelsocial/pkg/metrics"
	"github.com/umputun/pixelsocial/pkg/mock"
	"github.com/umputun/pixelsocial/pkg/notify"
	"github.com/umputun/pixelsocial/pkg/repository"
	"github.com/umputun/pixelsocial/pkg/session"
	"github.com/umputun/pixelsocial/pkg/source"
	"github.com/umputun/pixelsocial/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults used if not set"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Source string `long:"source" env:"SOURCE" choice:"mock" choice:"rss" description:"feed source, overrides config"`
	RSSURL string `long:"rss-url" env:"RSS_URL" description:"rss or atom feed url for rss source"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)

	log.Printf("[INFO] starting pixelsocial version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until context canceled or the server fails
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	seed := cfg.Feed.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec // non-negative
	}
	gen := mock.NewGenerator(seed)
	met := metrics.New(nil)

	src := makeSource(cfg, gen)
	store := notify.NewStore(cfg.Notifications.MaxRetained)
	sessions, err := session.NewManager(session.Params{
		Source:       src,
		Prefs:        repos.Preference,
		Metrics:      met,
		Activities:   gen.Activities,
		Ticker:       store.List,
		MaxTicker:    cfg.Notifications.MaxRetained,
		DefaultTheme: domain.Theme(cfg.Theme.Default),
		MaxSessions:  cfg.Sessions.Max,
		BatchSize:    cfg.Feed.BatchSize,
		MaxPages:     cfg.Feed.MaxPages,
		Threshold:    cfg.Feed.Threshold,
	})
	if err != nil {
		return fmt.Errorf("failed to make session manager: %w", err)
	}
	defer sessions.Close()

	ticker := notify.NewTicker(notify.TickerParams{
		Store:    store,
		Source:   gen,
		Interval: cfg.Notifications.Interval,
		OnAdd: func(n domain.Notification) {
			sessions.Broadcast(n)
			met.Notifications(store.Len())
		},
	})
	ticker.Seed()
	met.Notifications(store.Len())

	srv := server.New(cfg, server.Deps{
		Sessions: sessions,
		Content:  mock.NewCatalog(gen, cfg.Auth.Handle),
		Ticker:   store,
		Preview:  src,
		Metrics:  met,
	}, revision, opts.Debug)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		if err := ticker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("notification ticker: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads config file or takes defaults, cli options override loaded values
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Source != "" {
		cfg.Feed.Source = opts.Source
	}
	if opts.RSSURL != "" {
		cfg.Feed.RSSURL = opts.RSSURL
	}
	if cfg.Feed.Source == "rss" && cfg.Feed.RSSURL == "" {
		return nil, fmt.Errorf("rss source requires rss url")
	}
	return cfg, nil
}

// makeSource picks feed source, the mock generator or a remote rss feed
func makeSource(cfg *config.Config, gen *mock.Generator) feed.Source {
	if cfg.Feed.Source == "rss" {
		log.Printf("[INFO] feed source rss %s", cfg.Feed.RSSURL)
		return source.NewRSS(source.RSSParams{URL: cfg.Feed.RSSURL, Timeout: cfg.Server.Timeout, TTL: cfg.Feed.RSSTTL})
	}
	log.Printf("[INFO] feed source mock, delay %v", cfg.Feed.LoadDelay)
	return mock.NewSource(gen, cfg.Feed.LoadDelay)
}

// SetupLog configures lgr and redirects std logger to it
func SetupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
