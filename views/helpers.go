package views

import (
	"html/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/flowergeoji/inkpress"
)

var funcs = template.FuncMap{
	"shortDate":     ShortDate,
	"longDate":      LongDate,
	"w3c":           inkpress.FormatW3CDate,
	"lastModified":  inkpress.LastModified,
	"categoryLabel": CategoryLabel,
	"categoryPath":  inkpress.CategoryPath,
	"year":          func() int { return time.Now().Year() },
	"safeHTML":      func(s string) template.HTML { return template.HTML(s) },
	"jsonld":        func(s string) template.JS { return template.JS(s) },
	"websiteJSONLD": func(site inkpress.SiteConfig) template.JS { return template.JS(inkpress.WebsiteJsonLD(site)) },
}

// ShortDate formats a date for post lists, e.g. 2024/03/01.
func ShortDate(t time.Time) string {
	return t.Format("2006/01/02")
}

// LongDate formats a date for post headers, e.g. March 01, 2024.
func LongDate(t time.Time) string {
	return t.Format("January 02, 2006")
}

// CategoryLabel title-cases a category for display; the label itself stays
// the filter key. A Caser is stateful, so each call gets its own.
func CategoryLabel(label string) string {
	return cases.Title(language.Und).String(label)
}
