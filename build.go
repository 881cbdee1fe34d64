package inkpress

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/a-h/templ"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildResult summarises one static build.
type BuildResult struct {
	OutputDir  string
	Posts      int
	Drafts     int
	Categories int
	Pages      int
	Duration   time.Duration
}

// Builder runs the batch pipeline: load content, build the index, render
// every route into a staging directory, then swap it into OutputDir. Nothing
// in OutputDir changes unless every step succeeds.
type Builder struct {
	Config  SiteConfig
	Views   ViewFuncs
	Store   *Store // optional; records the loaded catalog after a successful build
	Logger  *zap.Logger
	Workers int // concurrent page writers (default GOMAXPROCS)
}

// NewBuilder creates a Builder for cfg. A nil logger discards output.
func NewBuilder(cfg SiteConfig, views ViewFuncs, logger *zap.Logger) *Builder {
	cfg.setDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		Config:  cfg,
		Views:   views,
		Logger:  logger,
		Workers: runtime.GOMAXPROCS(0),
	}
}

type pageJob struct {
	route string
	cmp   templ.Component
}

// Build produces the site.
func (b *Builder) Build(ctx context.Context) (BuildResult, error) {
	start := time.Now()
	cfg := b.Config
	log := b.Logger.With(zap.String("content_dir", cfg.ContentDir), zap.String("output_dir", cfg.OutputDir))

	if err := b.Views.validate(); err != nil {
		return BuildResult{}, err
	}

	items, err := LoadContent(cfg.ContentDir)
	if err != nil {
		return BuildResult{}, fmt.Errorf("load content: %w", err)
	}
	ix := BuildIndex(items)
	if ix.Len() == 0 {
		log.Warn("no published posts found")
	}
	if err := CheckCategorySlugs(ix.categories(cfg)); err != nil {
		return BuildResult{}, err
	}
	log.Debug("content loaded", zap.Int("items", len(items)), zap.Int("published", ix.Len()))

	out, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return BuildResult{}, err
	}
	if err := checkOutputDir(out, cfg); err != nil {
		return BuildResult{}, err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return BuildResult{}, err
	}
	stage, err := os.MkdirTemp(filepath.Dir(out), ".inkpress-build-*")
	if err != nil {
		return BuildResult{}, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	if err := writeEmbeddedAssets(stage); err != nil {
		return BuildResult{}, fmt.Errorf("write assets: %w", err)
	}
	if err := copyDir(cfg.StaticDir, stage); err != nil {
		return BuildResult{}, fmt.Errorf("copy static dir: %w", err)
	}

	jobs := b.pageJobs(ix)
	if err := b.renderPages(ctx, stage, jobs); err != nil {
		return BuildResult{}, err
	}
	if err := writeFeeds(stage, cfg, items); err != nil {
		return BuildResult{}, err
	}

	if b.Store != nil {
		if err := b.Store.ReplaceItems(items); err != nil {
			return BuildResult{}, fmt.Errorf("record catalog: %w", err)
		}
	}

	if err := os.RemoveAll(out); err != nil {
		return BuildResult{}, fmt.Errorf("clear output dir: %w", err)
	}
	if err := os.Rename(stage, out); err != nil {
		return BuildResult{}, fmt.Errorf("publish output dir: %w", err)
	}

	res := BuildResult{
		OutputDir:  out,
		Posts:      ix.Len(),
		Drafts:     len(items) - ix.Len(),
		Categories: len(ix.categories(cfg)),
		Pages:      len(jobs),
		Duration:   time.Since(start),
	}
	log.Info("build complete",
		zap.Int("posts", res.Posts),
		zap.Int("drafts", res.Drafts),
		zap.Int("pages", res.Pages),
		zap.Duration("duration", res.Duration),
	)
	return res, nil
}

// pageJobs lists every HTML route of the site: home, one page per category,
// one page per published post, and the 404 page.
func (b *Builder) pageJobs(ix *Index) []pageJob {
	cfg := b.Config
	home := ix.Listing(cfg, "")
	home.Static = true
	jobs := []pageJob{{route: "/", cmp: b.Views.Home(home)}}

	for _, c := range home.Categories {
		page := ix.Listing(cfg, c)
		page.Static = true
		jobs = append(jobs, pageJob{route: CategoryPath(c), cmp: b.Views.Home(page)})
	}
	for _, it := range ix.Chain() {
		page, _ := ix.Page(cfg, it.Slug)
		jobs = append(jobs, pageJob{route: it.Slug, cmp: b.Views.Post(page)})
	}
	jobs = append(jobs, pageJob{route: "/404.html", cmp: b.Views.NotFound()})
	return jobs
}

func (b *Builder) renderPages(ctx context.Context, stage string, jobs []pageJob) error {
	g, ctx := errgroup.WithContext(ctx)
	if b.Workers > 0 {
		g.SetLimit(b.Workers)
	}
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := RenderFile(ctx, routeFile(stage, job.route), job.cmp); err != nil {
				return fmt.Errorf("render %s: %w", job.route, err)
			}
			b.Logger.Debug("page written", zap.String("route", job.route))
			return nil
		})
	}
	return g.Wait()
}

// checkOutputDir refuses an output directory that is, or contains, one of
// the site's inputs or the working directory. Build replaces out wholesale.
func checkOutputDir(out string, cfg SiteConfig) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	for _, p := range []string{cfg.ContentDir, cfg.StaticDir, cfg.DatabasePath, wd} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if within(out, abs) {
			return &UnsafeOutputDirError{OutputDir: out, Path: abs}
		}
	}
	return nil
}

// within reports whether p is dir or lies below it.
func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// routeFile maps a URL path to the file that serves it: directories get an
// index.html, paths with an extension are written as-is.
func routeFile(root, route string) string {
	rel := strings.Trim(route, "/")
	if rel == "" {
		return filepath.Join(root, "index.html")
	}
	if filepath.Ext(rel) != "" && !strings.HasSuffix(route, "/") {
		return filepath.Join(root, filepath.FromSlash(rel))
	}
	return filepath.Join(root, filepath.FromSlash(rel), "index.html")
}

func writeFeeds(stage string, cfg SiteConfig, items []ContentItem) error {
	var rss bytes.Buffer
	if err := WriteRSS(&rss, cfg, FeedEntries(cfg.URL, items)); err != nil {
		return fmt.Errorf("encode rss: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stage, "rss.xml"), rss.Bytes(), 0o644); err != nil {
		return err
	}
	var sm bytes.Buffer
	if err := WriteSitemap(&sm, SitemapEntries(cfg.URL, items)); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stage, "sitemap.xml"), sm.Bytes(), 0o644); err != nil {
		return err
	}
	robots := filepath.Join(stage, "robots.txt")
	if _, err := os.Stat(robots); err == nil {
		return nil
	}
	return os.WriteFile(robots, []byte(RobotsTxt(cfg)), 0o644)
}

// RobotsTxt returns the default robots.txt, pointing crawlers at the sitemap.
func RobotsTxt(cfg SiteConfig) string {
	return "User-agent: *\nAllow: /\n\nSitemap: " + PostURL(cfg.URL, "/sitemap.xml") + "\n"
}

func writeEmbeddedAssets(dst string) error {
	sub, err := fs.Sub(EmbeddedAssets, "embedded")
	if err != nil {
		return err
	}
	return fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		data, err := fs.ReadFile(sub, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}

// copyDir copies the contents of src into dst. A missing src is skipped.
func copyDir(src, dst string) error {
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(p, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
