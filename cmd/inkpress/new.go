package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowergeoji/inkpress/scaffold"
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new site from the starter template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		data := scaffold.NewData(dir, time.Now())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Creating new inkpress site: %s\n\n", dir)
		created, err := scaffold.Write(dir, data)
		if err != nil {
			return err
		}
		for _, p := range created {
			fmt.Fprintf(out, "  created %s\n", p)
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  cd %s\n", dir)
		fmt.Fprintln(out, "  inkpress serve --watch")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Set INKPRESS_SESSION_SECRET before serving in production.")
		return nil
	},
}
