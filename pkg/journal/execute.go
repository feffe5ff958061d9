package journal

import (
	"context"
	"os"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// Execute consumes the journal for a target directory against the live
// catalog store of the now-loaded target profile. It returns (nil, nil)
// when no journal is pending; it is intended to run on every profile load.
//
// Categories are processed in canonical order; a failure deleting one
// category is recorded in the summary and does not prevent attempting the
// rest. The journal file is deleted after the attempt regardless of
// per-category outcome: a deletion that failed once is never retried.
func Execute(ctx context.Context, db fabdb.Database, dir string) (*Summary, error) {
	cleanup, err := Load(dir)
	if err != nil {
		return nil, err
	}
	if cleanup == nil {
		return nil, nil
	}

	// Consume unconditionally once execution is attempted.
	defer func() {
		if err := os.Remove(journalPath(dir)); err != nil && !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("dir", dir).Msg("Could not remove consumed journal")
		}
	}()

	summary := &Summary{ProfileName: cleanup.ProfileName}

	for _, id := range fabdb.Categories() {
		names, ok := cleanup.ItemsToDelete[id]
		if !ok || len(names) == 0 {
			continue
		}

		if err := ctx.Err(); err != nil {
			summary.Categories = append(summary.Categories, CategorySummary{
				Category: id,
				Err:      errors.ErrCanceled,
			})
			continue
		}

		summary.Categories = append(summary.Categories, executeCategory(db, id, names))
	}

	logging.Info().
		Str("profile", cleanup.ProfileName).
		Int("deleted", summary.Deleted()).
		Bool("errors", summary.HasErrors()).
		Msg("Pending cleanup consumed")

	return summary, nil
}

// executeCategory deletes the listed names from one live category and saves
// the table. Names already absent are recorded, not errors: the copy that
// deferred them may have been superseded.
func executeCategory(db fabdb.Database, id fabdb.CategoryID, names []string) CategorySummary {
	result := CategorySummary{Category: id}

	table, ok := db.Table(id)
	if !ok {
		result.Err = errors.NewNotFoundError("category", string(id))
		return result
	}

	for _, name := range names {
		if _, found := table.FindByName(name); !found {
			result.Missing = append(result.Missing, name)
			continue
		}
		if err := table.Delete(name); err != nil {
			result.Err = errors.WrapResource("delete", string(id), name, err)
			return result
		}
		result.Deleted++
	}

	if err := table.Save(); err != nil {
		result.Err = errors.WrapResource("save", string(id), "", err)
	}
	return result
}
