package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/flowergeoji/inkpress"
	"github.com/flowergeoji/inkpress/views"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the preview server",
	Long: `serve loads the content directory into the catalog and serves the
site over HTTP. With --watch, edits under the content directory are picked
up without a restart. INKPRESS_SESSION_SECRET must be set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		app := inkpress.New(cfg, views.New(cfg),
			inkpress.WithLogger(logger),
			inkpress.WithWatch(serveWatch),
		)
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return app.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides site.toml and INKPRESS_ADDR)")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload when content changes")
}
