package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/journal"
)

// NewJournalCommand groups the pending-cleanup subcommands.
func NewJournalCommand(app App) *cobra.Command {
	c := &cobra.Command{
		Use:   "journal",
		Short: "Inspect and run pending cleanup journals",
		Long: `A push that deselects entries leaves a cleanup journal at the target
profile. The journal is consumed the next time that profile loads; these
commands inspect it or consume it on demand.`,
	}
	c.AddCommand(newJournalStatusCommand(app))
	c.AddCommand(newJournalRunCommand(app))
	return c
}

func newJournalStatusCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current profile's pending cleanup",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			db, err := client.Database()
			if err != nil {
				return err
			}

			pending, err := journal.Load(db.DataPath())
			if err != nil {
				return err
			}
			if pending == nil {
				fmt.Fprintln(c.OutOrStdout(), "No pending cleanup")
				return nil
			}

			fmt.Fprintf(c.OutOrStdout(), "Pending cleanup for %s (created %s):\n",
				pending.ProfileName, pending.CreatedAt)
			for _, id := range fabdb.Categories() {
				names := pending.ItemsToDelete[id]
				if len(names) == 0 {
					continue
				}
				fmt.Fprintf(c.OutOrStdout(), "  %s: %d entries\n", categoryTitle(id), len(names))
			}
			return nil
		},
	}
}

func newJournalRunCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Consume the current profile's pending cleanup",
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			summary, err := client.ExecutePending(c.Context())
			if err != nil {
				return err
			}
			if summary == nil {
				fmt.Fprintln(c.OutOrStdout(), "No pending cleanup")
				return nil
			}

			fmt.Fprintln(c.OutOrStdout(), summary.String())
			return nil
		},
	}
}
