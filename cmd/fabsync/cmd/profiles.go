package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewProfilesCommand lists the configurations under the database root.
func NewProfilesCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configuration profiles",
		Long: `Profiles lists every configuration under the database root: the
Global configuration first, then each named profile in sorted order.
The current profile is marked with an asterisk.`,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			found, err := client.Profiles()
			if err != nil {
				return err
			}

			for _, p := range found {
				marker := " "
				if p.IsCurrent {
					marker = "*"
				}
				fmt.Fprintf(c.OutOrStdout(), "%s %-20s %s\n", marker, p.Name, p.DataPath)
			}
			return nil
		},
	}
}
