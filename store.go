package inkpress

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the catalog of the last content load.
// The content directory stays the source of truth; the store is what the
// preview server and `inkpress list` read between loads.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the preview server read while a reload writes; busy_timeout
	// makes writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    modified TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    related TEXT NOT NULL DEFAULT '',
    draft INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    source_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS items_slug ON items(slug);
CREATE TABLE IF NOT EXISTS loads (
    loaded_at TEXT NOT NULL,
    item_count INTEGER NOT NULL
);
`)
	return err
}

const itemColumns = `id, slug, title, date, modified, category, related, draft, description, excerpt, body, source_path`

// ReplaceItems swaps the whole catalog for items in one transaction and
// records the load.
func (s *Store) ReplaceItems(items []ContentItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM items`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO items (` + itemColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, it := range items {
		draft := 0
		if it.Draft {
			draft = 1
		}
		if _, err := stmt.Exec(it.ID, it.Slug, it.Title, formatStoredTime(it.Date), formatStoredTime(it.Modified),
			it.Category, it.Related, draft, it.Description, it.Excerpt, it.Body, it.SourcePath); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO loads (loaded_at, item_count) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339), len(items)); err != nil {
		return err
	}
	return tx.Commit()
}

// ListItems returns every item, drafts included, ordered by date descending.
func (s *Store) ListItems() ([]ContentItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemColumns + ` FROM items ORDER BY date DESC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ContentItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// LastLoad returns when the catalog was last replaced and how many items it
// held. The zero time means the catalog was never loaded.
func (s *Store) LastLoad() (time.Time, int, error) {
	var at string
	var n int
	err := s.db.QueryRow(`SELECT loaded_at, item_count FROM loads ORDER BY rowid DESC LIMIT 1`).Scan(&at, &n)
	if err == sql.ErrNoRows {
		return time.Time{}, 0, nil
	}
	if err != nil {
		return time.Time{}, 0, err
	}
	t, err := time.Parse(time.RFC3339, at)
	return t, n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(r scanner) (ContentItem, error) {
	var it ContentItem
	var date, modified string
	var draft int
	if err := r.Scan(&it.ID, &it.Slug, &it.Title, &date, &modified, &it.Category, &it.Related,
		&draft, &it.Description, &it.Excerpt, &it.Body, &it.SourcePath); err != nil {
		return ContentItem{}, err
	}
	var err error
	if it.Date, err = parseStoredTime(date); err != nil {
		return ContentItem{}, err
	}
	if it.Modified, err = parseStoredTime(modified); err != nil {
		return ContentItem{}, err
	}
	it.Draft = draft == 1
	return it, nil
}

// storedTimeLayout is RFC 3339 with a fixed-width fraction. Stored in UTC,
// text ordering matches chronological ordering and nothing is truncated.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatStoredTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(storedTimeLayout)
}

func parseStoredTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, s)
}
