// Package markdown renders post bodies to HTML and derives plain-text excerpts.
package markdown

import (
	"bytes"
	"strings"
	"unicode"

	stripmd "github.com/writeas/go-strip-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// ExcerptLength is the number of runes kept in a generated excerpt.
const ExcerptLength = 160

// Renderer converts Markdown (and the Markdown subset of MDX) to HTML.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured extensions, heading anchors and
// typographic quotes enabled. Raw HTML in the source is passed through so MDX
// files that embed markup render as written.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithUnsafe(),
			),
		),
	}
}

// Render returns the HTML for src.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt strips Markdown syntax from src, collapses whitespace and truncates
// the result to n runes, appending an ellipsis when anything was cut.
func Excerpt(src string, n int) string {
	text := collapseSpace(stripmd.Strip(src))
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	cut := strings.TrimRightFunc(string(runes[:n]), unicode.IsSpace)
	return cut + "…"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
