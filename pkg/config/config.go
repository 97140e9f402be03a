package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/pixelsocial/pkg/feed"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for external links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:pixelsocial.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Feed pagination configuration"`

	Notifications struct {
		Interval    time.Duration `yaml:"interval" json:"interval" jsonschema:"default=30s,description=Period between generated ticker notifications"`
		MaxRetained int           `yaml:"max_retained" json:"max_retained" jsonschema:"default=10,minimum=1,description=Maximum number of ticker notifications kept"`
	} `yaml:"notifications" json:"notifications" jsonschema:"description=Notification ticker configuration"`

	Theme struct {
		Default string `yaml:"default" json:"default" jsonschema:"default=dark,enum=dark,enum=light,description=Theme for viewers without a stored preference"`
	} `yaml:"theme" json:"theme" jsonschema:"description=Theme configuration"`

	Auth AuthConfig `yaml:"auth" json:"auth" jsonschema:"description=Simulated authentication state"`

	Sessions struct {
		Max int `yaml:"max" json:"max" jsonschema:"default=1000,minimum=1,description=Maximum number of viewer sessions kept in memory"`
	} `yaml:"sessions" json:"sessions" jsonschema:"description=Viewer session configuration"`

	Create CreateConfig `yaml:"create" json:"create" jsonschema:"description=Post creation forms configuration"`
}

// FeedConfig holds feed source and pagination settings
type FeedConfig struct {
	BatchSize int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=5,minimum=1,description=Posts per page"`
	MaxPages  int           `yaml:"max_pages" json:"max_pages" jsonschema:"default=5,minimum=1,description=Number of pages before the feed ends"`
	LoadDelay time.Duration `yaml:"load_delay" json:"load_delay" jsonschema:"default=1s,description=Simulated delay of the mock source"`
	Seed      uint64        `yaml:"seed" json:"seed" jsonschema:"default=0,description=Random seed of the mock generator, 0 means time based"`
	Source    string        `yaml:"source" json:"source" jsonschema:"default=mock,enum=mock,enum=rss,description=Feed source"`
	RSSURL    string        `yaml:"rss_url" json:"rss_url" jsonschema:"description=RSS or Atom feed URL for the rss source"`
	RSSTTL    time.Duration `yaml:"rss_ttl" json:"rss_ttl" jsonschema:"default=5m,description=Cache lifetime of the parsed rss feed"`
	Threshold float64       `yaml:"threshold" json:"threshold" jsonschema:"default=1.0,exclusiveMinimum=0,maximum=1,description=Sentinel visibility ratio that triggers the next load"`
}

// AuthConfig holds simulated login state, nothing is verified
type AuthConfig struct {
	Guest  bool          `yaml:"guest" json:"guest" jsonschema:"default=false,description=Render as logged out viewer, protected pages redirect to auth"`
	Handle string        `yaml:"handle" json:"handle" jsonschema:"default=cyberghost,description=Handle of the logged in viewer"`
	Delay  time.Duration `yaml:"delay" json:"delay" jsonschema:"default=1.5s,description=Simulated delay of login and register submissions"`
}

// CreateConfig holds post creation settings
type CreateConfig struct {
	SubmitDelay  time.Duration `yaml:"submit_delay" json:"submit_delay" jsonschema:"default=2s,description=Simulated upload delay"`
	MaxImageSize int64         `yaml:"max_image_size" json:"max_image_size" jsonschema:"default=5242880,description=Maximum size of an uploaded image in bytes"`
	MaxImages    int           `yaml:"max_images" json:"max_images" jsonschema:"default=10,minimum=1,description=Maximum number of images in an album"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults set, used when no config file given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}

	// database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:pixelsocial.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// feed
	if c.Feed.BatchSize == 0 {
		c.Feed.BatchSize = 5
	}
	if c.Feed.MaxPages == 0 {
		c.Feed.MaxPages = 5
	}
	if c.Feed.LoadDelay == 0 {
		c.Feed.LoadDelay = time.Second
	}
	if c.Feed.Source == "" {
		c.Feed.Source = "mock"
	}
	if c.Feed.RSSTTL == 0 {
		c.Feed.RSSTTL = 5 * time.Minute
	}
	if c.Feed.Threshold == 0 {
		c.Feed.Threshold = 1.0
	}

	// notifications
	if c.Notifications.Interval == 0 {
		c.Notifications.Interval = 30 * time.Second
	}
	if c.Notifications.MaxRetained == 0 {
		c.Notifications.MaxRetained = 10
	}

	if c.Theme.Default == "" {
		c.Theme.Default = "dark"
	}

	// auth
	if c.Auth.Handle == "" {
		c.Auth.Handle = "cyberghost"
	}
	if c.Auth.Delay == 0 {
		c.Auth.Delay = 1500 * time.Millisecond
	}

	if c.Sessions.Max == 0 {
		c.Sessions.Max = 1000
	}

	// create
	if c.Create.SubmitDelay == 0 {
		c.Create.SubmitDelay = 2 * time.Second
	}
	if c.Create.MaxImageSize == 0 {
		c.Create.MaxImageSize = 5 << 20
	}
	if c.Create.MaxImages == 0 {
		c.Create.MaxImages = 10
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate feed config
	if cfg.Feed.BatchSize < 1 {
		return fmt.Errorf("feed.batch_size must be at least 1")
	}
	if cfg.Feed.MaxPages < 1 {
		return fmt.Errorf("feed.max_pages must be at least 1")
	}
	if cfg.Feed.LoadDelay < 0 {
		return fmt.Errorf("feed.load_delay must be non-negative")
	}
	if !feed.ValidThreshold(cfg.Feed.Threshold) {
		return fmt.Errorf("feed.threshold must be above 0 and at most 1")
	}
	switch cfg.Feed.Source {
	case "mock":
	case "rss":
		if cfg.Feed.RSSURL == "" {
			return fmt.Errorf("feed.rss_url is required for rss source")
		}
	default:
		return fmt.Errorf("unknown feed.source %q", cfg.Feed.Source)
	}

	if cfg.Notifications.Interval < 10*time.Millisecond {
		return fmt.Errorf("notifications.interval must be at least 10ms")
	}
	if cfg.Notifications.MaxRetained < 1 {
		return fmt.Errorf("notifications.max_retained must be at least 1")
	}

	if cfg.Theme.Default != "dark" && cfg.Theme.Default != "light" {
		return fmt.Errorf("theme.default must be dark or light, got %q", cfg.Theme.Default)
	}

	if cfg.Sessions.Max < 1 {
		return fmt.Errorf("sessions.max must be at least 1")
	}

	if cfg.Create.MaxImageSize < 1 {
		return fmt.Errorf("create.max_image_size must be positive")
	}
	if cfg.Create.MaxImages < 1 {
		return fmt.Errorf("create.max_images must be at least 1")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetFeedConfig returns feed configuration
func (c *Config) GetFeedConfig() FeedConfig {
	return c.Feed
}

// GetAuthConfig returns simulated authentication configuration
func (c *Config) GetAuthConfig() AuthConfig {
	return c.Auth
}

// GetCreateConfig returns post creation configuration
func (c *Config) GetCreateConfig() CreateConfig {
	return c.Create
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
