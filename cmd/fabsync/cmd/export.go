package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewExportCommand bundles item files into a content package.
func NewExportCommand(app App) *cobra.Command {
	var outDir string

	c := &cobra.Command{
		Use:   "export <item.itm>...",
		Short: "Export content items into a package",
		Long: `Export copies the given item files and their thumbnails into a package
directory and records every catalog reference by name, so another
configuration can import the items and rewire them against its own
catalog. Items that cannot be read are skipped, not fatal.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			pkg, err := client.Export(c.Context(), args, outDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(c.OutOrStdout(), "Exported %d of %d items to %s (package %s)\n",
				len(pkg.Items), len(args), outDir, pkg.ID)
			return nil
		},
	}

	c.Flags().StringVar(&outDir, "out", "", "package output directory")
	_ = c.MarkFlagRequired("out")

	return c
}
