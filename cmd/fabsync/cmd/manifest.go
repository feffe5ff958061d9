package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/manifest"
)

// NewManifestCommand groups the manifest subcommands.
func NewManifestCommand(app App) *cobra.Command {
	c := &cobra.Command{
		Use:   "manifest",
		Short: "Snapshot and inspect catalog manifests",
		Long: `A manifest is a point-in-time snapshot of a profile's catalog: every
category's entry names, recorded by name so the snapshot is meaningful
outside the profile that produced it.`,
	}
	c.AddCommand(newManifestGenerateCommand(app))
	c.AddCommand(newManifestShowCommand(app))
	return c
}

func newManifestGenerateCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the current profile's manifest",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			doc, err := client.GenerateManifest()
			if err != nil {
				return err
			}

			total := 0
			for _, entries := range doc.Categories {
				total += len(entries)
			}
			fmt.Fprintf(c.OutOrStdout(), "Manifest for %s: %d categories, %d entries\n",
				doc.ProfileName, len(doc.Categories), total)
			return nil
		},
	}
}

func newManifestShowCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile's stored manifest",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			db, err := client.Database()
			if err != nil {
				return err
			}

			doc, err := manifest.Load(db.DataPath())
			if err != nil {
				return err
			}
			if doc == nil {
				fmt.Fprintln(c.OutOrStdout(), "No manifest found; run `fabsync manifest generate` first")
				return nil
			}

			fmt.Fprintf(c.OutOrStdout(), "%s (generated %s)\n", doc.ProfileName, doc.GeneratedAt)
			for _, id := range fabdb.Categories() {
				names := doc.Names(id)
				if len(names) == 0 {
					continue
				}
				fmt.Fprintf(c.OutOrStdout(), "\n%s:\n", categoryTitle(id))
				for _, name := range names {
					fmt.Fprintf(c.OutOrStdout(), "  %s\n", name)
				}
			}
			return nil
		},
	}
}
