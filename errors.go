package inkpress

import (
	"database/sql"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested post does not exist or is a draft.
var ErrNotFound = sql.ErrNoRows

// InvalidPathError reports a content path that resolves outside the content root.
type InvalidPathError struct {
	Path string
	Root string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("inkpress: path %q is outside content root %q", e.Path, e.Root)
}

// MissingRequiredFieldError reports a content file whose frontmatter lacks a
// field the build cannot do without.
type MissingRequiredFieldError struct {
	Path  string
	Field string
	Err   error // parse failure, nil when the field is simply absent
}

func (e *MissingRequiredFieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("inkpress: %s: invalid %s: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("inkpress: %s: missing required field %q", e.Path, e.Field)
}

func (e *MissingRequiredFieldError) Unwrap() error { return e.Err }

// DuplicateSlugError reports two or more published items mapped to one URL path.
type DuplicateSlugError struct {
	Slug  string
	Paths []string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("inkpress: slug %q is claimed by %s", e.Slug, strings.Join(e.Paths, ", "))
}

// FrontmatterError wraps a YAML decoding failure for one content file.
type FrontmatterError struct {
	Path string
	Err  error
}

func (e *FrontmatterError) Error() string {
	return fmt.Sprintf("inkpress: %s: frontmatter: %v", e.Path, e.Err)
}

func (e *FrontmatterError) Unwrap() error { return e.Err }

// UnsafeOutputDirError reports an output directory that would delete a site
// input (or the working directory) when the build replaces it.
type UnsafeOutputDirError struct {
	OutputDir string
	Path      string
}

func (e *UnsafeOutputDirError) Error() string {
	return fmt.Sprintf("inkpress: output dir %q contains %q; refusing to replace it", e.OutputDir, e.Path)
}
