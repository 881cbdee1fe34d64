package inkpress

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Author is shown in the bio card and JSON-LD.
type Author struct {
	Name    string `toml:"name"`
	Summary string `toml:"summary"`
}

// Social holds profile links rendered in the bio card.
type Social struct {
	GitHub    string `toml:"github"`
	Instagram string `toml:"instagram"`
	Twitter   string `toml:"twitter"`
}

// Embeds holds the static identifiers handed to third-party widgets.
// Nothing flows back from them.
type Embeds struct {
	CommentsRepo  string `toml:"comments_repo"`  // utterances "owner/repo"
	CommentsTheme string `toml:"comments_theme"` // default "github-light"
	AdUnit        string `toml:"ad_unit"`
	AdWidth       int    `toml:"ad_width"`
	AdHeight      int    `toml:"ad_height"`
}

// SiteConfig holds all configuration for an inkpress site.
type SiteConfig struct {
	Title       string   `toml:"title"`       // Site title (default "Blog")
	Description string   `toml:"description"` // Site description for RSS and meta tags
	URL         string   `toml:"site_url"`    // Canonical URL (default "http://localhost:3000")
	Categories  []string `toml:"categories"`  // Category buttons, in display order
	Author      Author   `toml:"author"`
	Social      Social   `toml:"social"`
	Embeds      Embeds   `toml:"embeds"`

	ContentDir   string `toml:"content_dir"` // Post sources (default "content/blog")
	StaticDir    string `toml:"static_dir"`  // Copied verbatim into the output (default "static")
	OutputDir    string `toml:"output_dir"`  // Build output (default "public")
	DatabasePath string `toml:"database"`    // Build catalog (default "data/inkpress.db")

	Addr          string        `toml:"addr"` // Preview server listen address (default ":3000")
	SessionSecret string        `toml:"-"`    // Required by serve: session encryption secret
	CookieSecure  bool          `toml:"cookie_secure"`
	PostCacheTTL  time.Duration `toml:"-"` // Post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Title == "" {
		c.Title = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/inkpress.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.Embeds.CommentsTheme == "" {
		c.Embeds.CommentsTheme = "github-light"
	}
	c.Categories = FilterEmpty(c.Categories)
}

// applyEnv overlays INKPRESS_* environment variables onto c.
func (c *SiteConfig) applyEnv() error {
	c.URL = EnvOr("INKPRESS_SITE_URL", c.URL)
	c.Addr = EnvOr("INKPRESS_ADDR", c.Addr)
	c.ContentDir = EnvOr("INKPRESS_CONTENT_DIR", c.ContentDir)
	c.OutputDir = EnvOr("INKPRESS_OUTPUT_DIR", c.OutputDir)
	c.DatabasePath = EnvOr("INKPRESS_DATABASE", c.DatabasePath)
	c.SessionSecret = EnvOr("INKPRESS_SESSION_SECRET", c.SessionSecret)
	if v := os.Getenv("INKPRESS_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INKPRESS_CACHE_TTL: %w", err)
		}
		c.PostCacheTTL = d
	}
	return nil
}

// LoadConfig reads a TOML site file, applies environment overrides and fills
// in defaults. A missing file is not an error when optional is true.
func LoadConfig(path string, optional bool) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !(optional && errors.Is(err, fs.ErrNotExist)) {
				return SiteConfig{}, fmt.Errorf("inkpress: load config %s: %w", path, err)
			}
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return SiteConfig{}, fmt.Errorf("inkpress: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithLogger sets the logger used by the server, the reload path and the watcher.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithWatch reloads content whenever a file under ContentDir changes.
func WithWatch(enabled bool) Option {
	return func(a *App) {
		a.watch = enabled
	}
}
