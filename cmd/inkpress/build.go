package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowergeoji/inkpress"
	"github.com/flowergeoji/inkpress/views"
)

var noCatalog bool

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `build loads every post under the content directory, links the
published ones into a date-ordered chain, and writes post pages, category
listings, rss.xml and sitemap.xml into the output directory. Any content
error aborts the build and leaves the previous output untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		b := inkpress.NewBuilder(cfg, views.New(cfg), logger)
		if !noCatalog {
			store, err := inkpress.NewStore(cfg.DatabasePath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()
			b.Store = store
		}
		res, err := b.Build(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts (%d drafts skipped), %d pages in %s -> %s\n",
			res.Posts, res.Drafts, res.Pages, res.Duration.Round(time.Millisecond), res.OutputDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "do not record the build in the SQLite catalog")
}
