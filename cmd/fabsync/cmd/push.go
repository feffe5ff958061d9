package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	fabsync "github.com/Ty9112/FabricationSample-sub002"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// NewPushCommand copies catalog categories to other profiles.
func NewPushCommand(app App) *cobra.Command {
	var (
		targets    []string
		categories []string
		deselected []string
	)

	c := &cobra.Command{
		Use:   "push",
		Short: "Push catalog categories to target profiles",
		Long: `Push copies the current profile's catalog category files to each named
target profile, backing up whatever it overwrites. Entries deselected
with --deselect are recorded in a cleanup journal at the target, to be
removed the next time that profile loads.

Example:
  fabsync push --to Site-A --to Site-B --category services --deselect services=Extract Air`,
		RunE: func(c *cobra.Command, _ []string) error {
			client, err := app.Client()
			if err != nil {
				return err
			}

			cats, err := parseCategories(categories)
			if err != nil {
				return err
			}
			des, err := parseDeselections(deselected)
			if err != nil {
				return err
			}
			opts := fabsync.PushOptions{Categories: cats, Deselected: des}

			result, err := client.Push(c.Context(), targets, opts)
			if err != nil {
				return err
			}

			for _, t := range result.Targets {
				if t.Err != nil {
					fmt.Fprintf(c.OutOrStdout(), "%-20s FAILED: %v\n", t.Profile, t.Err)
					continue
				}
				line := fmt.Sprintf("%-20s %d categories copied", t.Profile, len(t.Copied))
				if t.JournalSaved {
					line += ", cleanup journal saved"
				}
				fmt.Fprintln(c.OutOrStdout(), line)
			}
			if failed := result.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d targets failed", failed, len(result.Targets))
			}
			return nil
		},
	}

	c.Flags().StringArrayVar(&targets, "to", nil, "target profile name (repeatable)")
	c.Flags().StringArrayVar(&categories, "category", nil, "category to push (repeatable, default all)")
	c.Flags().StringArrayVar(&deselected, "deselect", nil, "entry to exclude, as category=name (repeatable)")
	_ = c.MarkFlagRequired("to")

	return c
}

func parseCategories(raw []string) ([]fabdb.CategoryID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]fabdb.CategoryID, 0, len(raw))
	for _, s := range raw {
		id := fabdb.CategoryID(strings.ToLower(strings.TrimSpace(s)))
		if !id.Valid() {
			return nil, &errors.ValidationError{Field: "category", Value: s, Message: "unknown category"}
		}
		out = append(out, id)
	}
	return out, nil
}

func parseDeselections(raw []string) (map[fabdb.CategoryID][]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[fabdb.CategoryID][]string)
	for _, s := range raw {
		category, name, found := strings.Cut(s, "=")
		if !found || name == "" {
			return nil, &errors.ValidationError{Field: "deselect", Value: s, Message: "expected category=name"}
		}
		id := fabdb.CategoryID(strings.ToLower(strings.TrimSpace(category)))
		if !id.Valid() {
			return nil, &errors.ValidationError{Field: "deselect", Value: category, Message: "unknown category"}
		}
		out[id] = append(out[id], name)
	}
	return out, nil
}
