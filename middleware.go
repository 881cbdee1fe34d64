package inkpress

import (
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			a.Logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		// utteranc.es hosts the comment widget; daumcdn.net serves the ad unit.
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline' https://utteranc.es https://t1.daumcdn.net; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; frame-src https://utteranc.es https://*.daum.net https://*.daumcdn.net; connect-src 'self'",
		HSTSMaxAge:            31536000,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	// Files in the static directory win; misses fall through to the routes.
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root: a.Config.StaticDir,
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			return path.Ext(c.Request().URL.Path) != ""
		},
	}))

	e.Use(cacheControlMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p := c.Request().URL.Path
		switch {
		case p == "/style.css":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case p == "/sitemap.xml" || p == "/rss.xml" || p == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=3600")
		case p == "/" || strings.HasPrefix(p, "/category/"):
			// The home listing depends on the session's selected category.
			c.Response().Header().Set("Cache-Control", "private, no-cache")
		default:
			c.Response().Header().Set("Cache-Control", "public, max-age=300")
		}
		return next(c)
	}
}
