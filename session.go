package inkpress

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	sessionName = "inkpress_session"
	categoryKey = "category"
)

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// selectedCategory returns the category label the listing should filter by.
// A ?category= query selects a label (an empty value selects "All") and is
// remembered in the session; without the query the remembered label applies.
// The label is the only state kept between clicks.
func (a *App) selectedCategory(c echo.Context) string {
	sess, sessErr := session.Get(sessionName, c)
	if vals, ok := c.QueryParams()[categoryKey]; ok {
		label := ""
		if len(vals) > 0 {
			label = strings.TrimSpace(vals[0])
		}
		if sessErr == nil {
			sess.Values[categoryKey] = label
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				a.Logger.Warn("save category session", zap.Error(err))
			}
		}
		return label
	}
	if sessErr != nil {
		return ""
	}
	label, _ := sess.Values[categoryKey].(string)
	return label
}
