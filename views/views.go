// Package views provides the default templ components for an inkpress site.
package views

import (
	"context"
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/flowergeoji/inkpress"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"home":  mustPage("home.html"),
	"post":  mustPage("post.html"),
	"error": mustPage("error.html"),
}

// mustPage parses the shared layout, then the page file on top so that the
// page's definitions replace the layout's defaults.
func mustPage(file string) *template.Template {
	t := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html"))
	return template.Must(t.ParseFS(templateFS, "templates/"+file))
}

// errorPage is the view model for the 404 and 500 pages.
type errorPage struct {
	Site    inkpress.SiteConfig
	Meta    inkpress.PageMeta
	Heading string
	Message string
}

// New returns the default views for site.
func New(site inkpress.SiteConfig) inkpress.ViewFuncs {
	return inkpress.ViewFuncs{
		Home:        Home,
		Post:        Post,
		NotFound:    func() templ.Component { return NotFound(site) },
		ServerError: func() templ.Component { return ServerError(site) },
	}
}

// Home renders the post listing, optionally narrowed to one category.
func Home(page inkpress.ListPage) templ.Component {
	return component("home", page)
}

// Post renders a single post with its navigation and related posts.
func Post(page inkpress.PostPage) templ.Component {
	return component("post", page)
}

// NotFound renders the 404 page.
func NotFound(site inkpress.SiteConfig) templ.Component {
	return component("error", errorPage{
		Site:    site,
		Meta:    inkpress.PageMeta{Title: "Not found | " + site.Title, URL: inkpress.BuildURL(site.URL), OGType: "website"},
		Heading: http.StatusText(http.StatusNotFound),
		Message: "The page you were looking for does not exist.",
	})
}

// ServerError renders the 500 page.
func ServerError(site inkpress.SiteConfig) templ.Component {
	return component("error", errorPage{
		Site:    site,
		Meta:    inkpress.PageMeta{Title: "Error | " + site.Title, URL: inkpress.BuildURL(site.URL), OGType: "website"},
		Heading: http.StatusText(http.StatusInternalServerError),
		Message: "Something went wrong. Please try again later.",
	})
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return pages[name].ExecuteTemplate(w, "layout", data)
	})
}
