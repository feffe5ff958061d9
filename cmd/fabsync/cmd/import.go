package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/pack"
)

// NewImportCommand places packaged items into the current configuration.
func NewImportCommand(app App) *cobra.Command {
	var (
		pkgDir    string
		targetDir string
		selected  []int
		dryRun    bool
	)

	c := &cobra.Command{
		Use:   "import",
		Short: "Import content items from a package",
		Long: `Import copies items from a content package into a target folder and
rewires each item's catalog references against the current profile's
catalog, matching by name. References that do not resolve are reported
as warnings; the item is still imported with its shipped indices.

With --dry-run, nothing is written: the package is validated against the
catalog and the would-be warnings are printed.`,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			if dryRun {
				return runValidate(c, app, pkgDir)
			}

			reportDuplicates(c, app, pkgDir, targetDir)

			sel := selected
			if !c.Flags().Changed("select") {
				sel = nil // import everything
			}

			results, err := client.Import(c.Context(), pkgDir, targetDir, sel, nil)
			if err != nil {
				return err
			}
			printResults(c, results)
			return nil
		},
	}

	c.Flags().StringVar(&pkgDir, "package", "", "package directory")
	c.Flags().StringVar(&targetDir, "target", "", "destination folder for imported items")
	c.Flags().IntSliceVar(&selected, "select", nil, "zero-based item indices to import (default all)")
	c.Flags().BoolVar(&dryRun, "dry-run", false, "validate only, write nothing")
	_ = c.MarkFlagRequired("package")

	return c
}

func runValidate(c *cobra.Command, app App, pkgDir string) error {
	client, err := app.Client()
	if err != nil {
		return err
	}
	db, err := client.Database()
	if err != nil {
		return err
	}

	pkg, err := pack.LoadPackage(pkgDir)
	if err != nil {
		return err
	}
	if pkg == nil {
		return &errors.NotFoundError{Resource: "package manifest", Name: pkgDir}
	}

	printResults(c, pack.Validate(pkg, db))
	return nil
}

// reportDuplicates prints advisory identity collisions before an import.
// The scan is best-effort; a failure only loses the advisory.
func reportDuplicates(c *cobra.Command, app App, pkgDir, targetDir string) {
	pkg, err := pack.LoadPackage(pkgDir)
	if err != nil || pkg == nil {
		return
	}

	dups, err := pack.CheckDuplicateIDs(pkg, targetDir)
	if err != nil {
		app.Logger().Debug().Err(err).Msg("Duplicate scan failed")
		return
	}
	for _, d := range dups {
		fmt.Fprintf(c.OutOrStdout(), "note: %s shares identity %s with %s\n",
			d.FileName, d.DatabaseID, d.ExistingPath)
	}
}

func printResults(c *cobra.Command, results []pack.ItemResult) {
	ok := 0
	for _, r := range results {
		status := "ok"
		if !r.Success {
			status = "FAILED"
		} else {
			ok++
		}
		fmt.Fprintf(c.OutOrStdout(), "%-30s %s\n", r.FileName, status)
		for _, w := range r.Warnings {
			fmt.Fprintf(c.OutOrStdout(), "  warning: %s\n", w)
		}
		for _, e := range r.Errors {
			fmt.Fprintf(c.OutOrStdout(), "  error: %s\n", e)
		}
	}
	fmt.Fprintf(c.OutOrStdout(), "%d of %d items succeeded\n", ok, len(results))
}
