package inkpress

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/style.css", a.handleEmbedded("style.css", "text/css; charset=utf-8"))
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/category/:slug/", a.handleCategory)
	e.GET("/*", a.handlePost)
}

func (a *App) handleHome(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(ix.Listing(a.Config, a.selectedCategory(c))))
}

func (a *App) handleCategory(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	slug := c.Param("slug")
	for _, label := range ix.categories(a.Config) {
		if CategorySlug(label) == slug {
			return Render(c, a.Views.Home(ix.Listing(a.Config, label)))
		}
	}
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
}

func (a *App) handlePost(c echo.Context) error {
	item, err := a.Cache.GetPost(c.Request().URL.Path)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if err != nil {
		return err
	}
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	page, ok := ix.Page(a.Config, item.Slug)
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	return Render(c, a.Views.Post(page))
}

func (a *App) handleSitemap(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteSitemap(&buf, SitemapEntries(a.Config.URL, ix.Chain())); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

func (a *App) handleFeed(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteRSS(&buf, a.Config, FeedEntries(a.Config.URL, ix.Chain())); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", buf.Bytes())
}

func (a *App) handleRobots(c echo.Context) error {
	custom := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(custom); err == nil {
		return c.File(custom)
	}
	return c.String(http.StatusOK, RobotsTxt(a.Config))
}

func (a *App) handleEmbedded(name, contentType string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if custom := filepath.Join(a.Config.StaticDir, name); fileExists(custom) {
			return c.File(custom)
		}
		data, err := fs.ReadFile(EmbeddedAssets, "embedded/"+name)
		if err != nil {
			return echo.ErrNotFound
		}
		return c.Blob(http.StatusOK, contentType, data)
	}
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", zap.Error(err), zap.String("uri", c.Request().RequestURI))
		if a.Views.ServerError != nil {
			_ = RenderStatus(c, code, a.Views.ServerError())
			return
		}
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
