package inkpress

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBuilder(t *testing.T) (*Builder, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := SiteConfig{
		Title:      "Blog",
		URL:        "https://example.com",
		ContentDir: filepath.Join(dir, "content"),
		StaticDir:  filepath.Join(dir, "static"),
		OutputDir:  filepath.Join(dir, "public"),
	}
	return NewBuilder(cfg, testViews(), nil), dir
}

func readOutput(t *testing.T, b *Builder, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(b.Config.OutputDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func TestBuild(t *testing.T) {
	b, dir := newTestBuilder(t)
	writeFiles(t, b.Config.ContentDir, map[string]string{
		"first/index.md": post("First", "2024-01-01", "category: go"),
		"second.md":      post("Second", "2024-02-01", "category: rust"),
		"third.md":       post("Third", "2024-03-01", "category: go", "modified: 2024-03-05"),
		"draft.md":       post("Draft", "2024-04-01", "draft: true", "category: zig"),
	})
	writeFiles(t, b.Config.StaticDir, map[string]string{"img/logo.svg": "<svg/>"})
	b.Store = setupTestStore(t)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Posts)
	assert.Equal(t, 1, res.Drafts)
	assert.Equal(t, 2, res.Categories)
	// home + 2 categories + 3 posts + 404
	assert.Equal(t, 7, res.Pages)

	assert.Equal(t, `home active="" posts=Third,Second,First`, readOutput(t, b, "index.html"))
	assert.Equal(t, `home active="go" posts=Third,First`, readOutput(t, b, "category/go/index.html"))
	assert.Equal(t, "post Second prev=First next=Third", readOutput(t, b, "second/index.html"))
	assert.Equal(t, "post First next=Second", readOutput(t, b, "first/index.html"))
	assert.Equal(t, "not found", readOutput(t, b, "404.html"))
	assert.Equal(t, "<svg/>", readOutput(t, b, "img/logo.svg"))
	assert.NotEmpty(t, readOutput(t, b, "style.css"))

	_, err = os.Stat(filepath.Join(b.Config.OutputDir, "draft", "index.html"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(b.Config.OutputDir, "category", "zig"))
	assert.True(t, os.IsNotExist(err))

	rss := readOutput(t, b, "rss.xml")
	assert.Contains(t, rss, "https://example.com/third/")
	assert.NotContains(t, rss, "/draft/")

	sitemap := readOutput(t, b, "sitemap.xml")
	assert.Equal(t, 3, strings.Count(sitemap, "<url>"))
	assert.Contains(t, sitemap, "<lastmod>2024-03-05</lastmod>")

	assert.Contains(t, readOutput(t, b, "robots.txt"), "Sitemap: https://example.com/sitemap.xml")

	catalog, err := b.Store.ListItems()
	require.NoError(t, err)
	assert.Len(t, catalog, 4)

	leftovers, err := filepath.Glob(filepath.Join(dir, ".inkpress-build-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestBuildEmptyContent(t *testing.T) {
	b, _ := newTestBuilder(t)

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Posts)
	assert.Equal(t, `home active="" posts=No blog posts found.`, readOutput(t, b, "index.html"))
	assert.Contains(t, readOutput(t, b, "rss.xml"), "<channel>")
	assert.Contains(t, readOutput(t, b, "sitemap.xml"), "<urlset")
}

func TestBuildFailsFastAndKeepsPreviousOutput(t *testing.T) {
	b, _ := newTestBuilder(t)
	writeFiles(t, b.Config.ContentDir, map[string]string{"ok.md": post("OK", "2024-01-01")})
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	writeFiles(t, b.Config.ContentDir, map[string]string{"broken.md": "---\ntitle: Broken\n---\nno date\n"})
	_, err = b.Build(context.Background())
	var missing *MissingRequiredFieldError
	require.True(t, errors.As(err, &missing), "got %v", err)

	assert.Equal(t, "post OK", readOutput(t, b, "ok/index.html"))
}

func TestBuildKeepsCustomRobots(t *testing.T) {
	b, _ := newTestBuilder(t)
	writeFiles(t, b.Config.StaticDir, map[string]string{"robots.txt": "User-agent: *\nDisallow: /\n"})

	_, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nDisallow: /\n", readOutput(t, b, "robots.txt"))
}

func TestBuildRequiresViews(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.Views.Home = nil
	_, err := b.Build(context.Background())
	assert.Error(t, err)
}

func TestBuildRefusesOutputDirHoldingInputs(t *testing.T) {
	dir := t.TempDir()
	site := filepath.Join(dir, "site")
	content := filepath.Join(site, "content")
	writeFiles(t, content, map[string]string{"a.md": post("A", "2024-01-01")})

	for _, out := range []string{site, content} {
		b := NewBuilder(SiteConfig{
			ContentDir: content,
			StaticDir:  filepath.Join(dir, "static"),
			OutputDir:  out,
		}, testViews(), nil)

		_, err := b.Build(context.Background())
		var unsafe *UnsafeOutputDirError
		require.True(t, errors.As(err, &unsafe), "output %s: got %v", out, err)
		assert.Equal(t, content, unsafe.Path)

		_, err = os.Stat(filepath.Join(content, "a.md"))
		require.NoError(t, err, "content must survive")
	}
}

func TestBuildWritesPagesForUnconfiguredCategories(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.Config.Categories = []string{"go"}
	writeFiles(t, b.Config.ContentDir, map[string]string{
		"a.md": post("A", "2024-01-01", "category: go"),
		"b.md": post("B", "2024-02-01", "category: rust"),
	})

	res, err := b.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Categories)
	assert.Equal(t, `home active="rust" posts=B`, readOutput(t, b, "category/rust/index.html"))
	assert.Equal(t, `home active="go" posts=A`, readOutput(t, b, "category/go/index.html"))
}

func TestBuildRejectsCategorySlugCollision(t *testing.T) {
	b, _ := newTestBuilder(t)
	writeFiles(t, b.Config.ContentDir, map[string]string{
		"plain.md": post("PlainC", "2024-01-01", "category: C"),
		"cpp.md":   post("CppPost", "2024-02-01", `category: "C++"`),
	})

	_, err := b.Build(context.Background())
	var dup *DuplicateSlugError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "/category/c/", dup.Slug)
	assert.Equal(t, []string{"C", "C++"}, dup.Paths)

	_, err = os.Stat(b.Config.OutputDir)
	assert.True(t, os.IsNotExist(err))
}

func TestBuildCatalogFailureKeepsPreviousOutput(t *testing.T) {
	b, _ := newTestBuilder(t)
	writeFiles(t, b.Config.ContentDir, map[string]string{"ok.md": post("OK", "2024-01-01")})
	store := setupTestStore(t)
	b.Store = store
	_, err := b.Build(context.Background())
	require.NoError(t, err)

	writeFiles(t, b.Config.ContentDir, map[string]string{"new.md": post("New", "2024-02-01")})
	require.NoError(t, store.Close())
	_, err = b.Build(context.Background())
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(b.Config.OutputDir, "new", "index.html"))
	assert.True(t, os.IsNotExist(err), "a failed build must not publish")
	assert.Equal(t, "post OK", readOutput(t, b, "ok/index.html"))
}

func TestRouteFile(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "index.html"), routeFile("out", "/"))
	assert.Equal(t, filepath.Join("out", "blog", "a", "index.html"), routeFile("out", "/blog/a/"))
	assert.Equal(t, filepath.Join("out", "404.html"), routeFile("out", "/404.html"))
	assert.Equal(t, filepath.Join("out", "v1.2", "index.html"), routeFile("out", "/v1.2/"))
}
