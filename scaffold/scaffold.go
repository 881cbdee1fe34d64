// Package scaffold holds the starter files written by "inkpress new".
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Templates contains the scaffold files. Files ending in .tmpl are executed
// with text/template; everything else is copied as-is.
//
//go:embed all:templates
var Templates embed.FS

// Data holds the template variables passed to every scaffold template.
type Data struct {
	ProjectName string
	SiteName    string
	Date        string
}

// NewData derives template data from the target directory.
func NewData(dir string, now time.Time) Data {
	name := filepath.Base(filepath.Clean(dir))
	return Data{
		ProjectName: name,
		SiteName:    TitleCase(name),
		Date:        now.UTC().Format("2006-01-02"),
	}
}

// TitleCase turns "my-blog" into "My Blog".
func TitleCase(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(strings.Join(strings.Fields(s), " "))
}

// Write creates dir and fills it with the scaffold. It refuses to touch an
// existing directory. The created paths are returned relative to dir.
func Write(dir string, data Data) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	var created []string
	err := fs.WalkDir(Templates, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, "templates"), "/")
		out := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		content, err := Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if strings.HasSuffix(p, ".tmpl") {
			tmpl, err := template.New(path.Base(p)).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parse template %s: %w", p, err)
			}
			var b strings.Builder
			if err := tmpl.Execute(&b, data); err != nil {
				return fmt.Errorf("execute template %s: %w", p, err)
			}
			content = []byte(b.String())
		}
		if err := os.WriteFile(out, content, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		created = append(created, strings.TrimSuffix(rel, ".tmpl"))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
