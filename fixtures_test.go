package inkpress

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

// writeFiles creates each path (slash separated, relative to root) with its contents.
func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, body := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	}
}

func post(title, date string, extra ...string) string {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", title)
	fmt.Fprintf(&b, "date: %s\n", date)
	for _, line := range extra {
		b.WriteString(line + "\n")
	}
	b.WriteString("---\n\nBody of " + title + ".\n")
	return b.String()
}

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func item(id, slug, date string) ContentItem {
	return ContentItem{ID: id, Slug: slug, Title: id, Date: day(date), SourcePath: id + ".md"}
}

func ids(items []ContentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

// testViews renders plain-text pages that the tests can assert on.
func testViews() ViewFuncs {
	return ViewFuncs{
		Home: func(p ListPage) templ.Component {
			var titles []string
			for _, it := range p.Posts {
				titles = append(titles, it.DisplayTitle())
			}
			if len(titles) == 0 {
				titles = []string{"No blog posts found."}
			}
			return text(fmt.Sprintf("home active=%q posts=%s", p.ActiveCategory, strings.Join(titles, ",")))
		},
		Post: func(p PostPage) templ.Component {
			s := "post " + p.Item.DisplayTitle()
			if p.Previous != nil {
				s += " prev=" + p.Previous.DisplayTitle()
			}
			if p.Next != nil {
				s += " next=" + p.Next.DisplayTitle()
			}
			return text(s)
		},
		NotFound:    func() templ.Component { return text("not found") },
		ServerError: func() templ.Component { return text("server error") },
	}
}
