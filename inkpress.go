// Package inkpress is a static-site generator and preview server for a
// Markdown blog. It loads posts from a content directory, links them into a
// publish-date chain, groups related posts, filters listings by category, and
// renders pages, an RSS feed and a sitemap.
//
// Users provide templ components via the ViewFuncs struct (the views package
// ships defaults); inkpress handles loading, indexing, routing and output.
package inkpress

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ViewFuncs holds the templ components the framework calls when rendering
// pages. Both the static build and the preview server use them.
type ViewFuncs struct {
	Home        func(page ListPage) templ.Component
	Post        func(page PostPage) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func (v ViewFuncs) validate() error {
	switch {
	case v.Home == nil:
		return errors.New("inkpress: ViewFuncs.Home is required")
	case v.Post == nil:
		return errors.New("inkpress: ViewFuncs.Post is required")
	case v.NotFound == nil:
		return errors.New("inkpress: ViewFuncs.NotFound is required")
	}
	return nil
}

// App is the preview server. It loads content into the Store, serves pages
// from the PostCache, and optionally reloads when content changes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Logger *zap.Logger

	customRoutes []func(*App)
	watch        bool
}

// New creates a new inkpress App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		Logger: zap.NewNop(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Setup opens the store, loads content, and registers middleware and routes
// without listening. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if err := a.Views.validate(); err != nil {
		return err
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpress: SessionSecret is required")
	}

	if a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("inkpress: init store: %w", err)
		}
		a.Store = store
	}
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)

	if err := a.Reload(); err != nil {
		return err
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	if a.watch {
		w, err := NewWatcher(WatcherConfig{
			Root:     a.Config.ContentDir,
			OnChange: a.Reload,
			Logger:   a.Logger,
		})
		if err != nil {
			return err
		}
		go func() {
			if err := w.Start(ctx); err != nil {
				a.Logger.Error("watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warn("shutdown", zap.Error(err))
		}
	}()

	a.Logger.Info("serving", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Reload reads the content directory into the store and drops the cache.
// On failure the previous catalog keeps serving.
func (a *App) Reload() error {
	items, err := LoadContent(a.Config.ContentDir)
	if err != nil {
		return fmt.Errorf("inkpress: load content: %w", err)
	}
	if err := CheckCategorySlugs(BuildIndex(items).categories(a.Config)); err != nil {
		return err
	}
	if err := a.Store.ReplaceItems(items); err != nil {
		return fmt.Errorf("inkpress: store content: %w", err)
	}
	a.Cache.Invalidate()
	a.Logger.Debug("catalog replaced", zap.Int("items", len(items)))
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
