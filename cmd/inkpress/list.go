package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flowergeoji/inkpress"
)

var (
	listCategory string
	listDrafts   bool
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E11D48"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#78716C"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts in publish order",
	Long: `list loads the content directory and prints posts newest first with
their slug, date, category and related group. Drafts are hidden unless
--drafts is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		items, err := inkpress.LoadContent(cfg.ContentDir)
		if err != nil {
			return err
		}
		rows := listRows(items, listCategory, listDrafts)
		styled := isatty.IsTerminal(os.Stdout.Fd())
		if err := renderList(cmd.OutOrStdout(), rows, styled); err != nil {
			return err
		}
		status, err := catalogStatus(cfg.DatabasePath)
		if err != nil {
			logger.Warn("read catalog", zap.String("database", cfg.DatabasePath), zap.Error(err))
			return nil
		}
		if status != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(status))
		}
		return nil
	},
}

// catalogStatus describes the last load recorded in the catalog at path.
// It returns "" when no catalog exists yet.
func catalogStatus(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	store, err := inkpress.NewStore(path)
	if err != nil {
		return "", err
	}
	defer store.Close()

	at, n, err := store.LastLoad()
	if err != nil {
		return "", err
	}
	if at.IsZero() {
		return "catalog: never loaded", nil
	}
	return fmt.Sprintf("catalog: %d items, last loaded %s", n, at.Local().Format("2006-01-02 15:04")), nil
}

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "only posts in this category")
	listCmd.Flags().BoolVar(&listDrafts, "drafts", false, "include drafts")
}

// listRows orders items newest first and applies the same category filter
// the site listing uses. Drafts follow the published posts when included.
func listRows(items []inkpress.ContentItem, category string, drafts bool) []inkpress.ContentItem {
	rows := inkpress.FilterByCategory(inkpress.BuildIndex(items).Newest(), category)
	if !drafts {
		return rows
	}
	for _, it := range items {
		if it.Draft && (category == "" || it.Category == category) {
			rows = append(rows, it)
		}
	}
	return rows
}

func renderList(w io.Writer, rows []inkpress.ContentItem, styled bool) error {
	headers := []string{"DATE", "SLUG", "TITLE", "CATEGORY", "RELATED", "STATUS"}
	cells := make([][]string, 0, len(rows))
	for _, it := range rows {
		status := "published"
		if it.Draft {
			status = "draft"
		} else if it.WasUpdated() {
			status = "updated " + inkpress.LastModified(it).Format(inkpress.DateLayout)
		}
		cells = append(cells, []string{
			it.Date.Format(inkpress.DateLayout), it.Slug, it.DisplayTitle(), it.Category, it.Related, status,
		})
	}

	if len(cells) == 0 {
		_, err := fmt.Fprintln(w, "No blog posts found.")
		return err
	}

	if !styled {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for _, row := range cells {
			fmt.Fprintln(tw, strings.Join(row, "\t"))
		}
		return tw.Flush()
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return headerStyle.PaddingRight(2)
			}
			if col == 0 || col == 5 {
				return style.Inherit(mutedStyle)
			}
			return style
		}).
		Headers(headers...).
		Rows(cells...)
	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}
