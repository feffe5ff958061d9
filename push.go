package fabsync

import (
	"context"
	"strings"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/journal"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
	"github.com/Ty9112/FabricationSample-sub002/pkg/profiles"
)

// PushOptions selects what a push carries.
type PushOptions struct {
	// Categories limits the push to these categories. Nil means all.
	Categories []fabdb.CategoryID

	// Deselected lists entry names, per category, that the push excludes.
	// They are recorded in a cleanup journal at each target so the copied
	// category files lose them when the target is next loaded.
	Deselected map[fabdb.CategoryID][]string
}

// TargetResult is the per-target outcome of a push.
type TargetResult struct {
	Profile      string
	Copied       []fabdb.CategoryID
	Missing      []fabdb.CategoryID
	JournalSaved bool
	Err          error
}

// PushResult collects every target's outcome. Targets fail independently.
type PushResult struct {
	Targets []TargetResult
}

// Failed counts targets that ended in error.
func (r *PushResult) Failed() int {
	n := 0
	for _, t := range r.Targets {
		if t.Err != nil {
			n++
		}
	}
	return n
}

// Push copies the selected categories' data files from the current profile
// to each named target profile, backing up whatever it overwrites. When
// entries were deselected, a cleanup journal is written into the target's
// data directory so the next load of that profile removes them.
//
// Targets are independent: a failure on one is recorded and the rest are
// still attempted. Push returns an error only when the source side cannot
// be resolved at all.
func (c *client) Push(ctx context.Context, targets []string, opts PushOptions) (*PushResult, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	known, err := profiles.Discover(c.config.rootPath)
	if err != nil {
		return nil, err
	}

	categories := opts.Categories
	if categories == nil {
		categories = fabdb.Categories()
	}

	result := &PushResult{}
	for _, name := range targets {
		if err := ctx.Err(); err != nil {
			result.Targets = append(result.Targets, TargetResult{Profile: name, Err: errors.ErrCanceled})
			continue
		}
		result.Targets = append(result.Targets, c.pushTarget(db, known, name, categories, opts.Deselected))
	}

	logging.Info().
		Str("source", db.ProfileName()).
		Int("targets", len(result.Targets)).
		Int("failed", result.Failed()).
		Msg("Push finished")
	return result, nil
}

func (c *client) pushTarget(db fabdb.Database, known []profiles.Descriptor, name string, categories []fabdb.CategoryID, deselected map[fabdb.CategoryID][]string) TargetResult {
	result := TargetResult{Profile: name}

	target, ok := findProfile(known, name)
	if !ok {
		result.Err = &errors.NotFoundError{Resource: "profile", Name: name}
		return result
	}
	if target.DataPath == db.DataPath() {
		result.Err = &errors.ValidationError{Field: "target", Value: name, Message: "cannot push a profile onto itself"}
		return result
	}

	copied, err := c.config.copier.CopyCategories(db.DataPath(), target.DataPath, categories)
	result.Copied = copied.Copied
	result.Missing = copied.Missing
	if err != nil {
		result.Err = err
		return result
	}

	if hasDeselections(deselected) {
		cleanup := journal.New(target.Name, target.DataPath)
		for id, names := range deselected {
			cleanup.Add(id, names...)
		}
		if err := journal.Save(cleanup, target.DataPath); err != nil {
			result.Err = err
			return result
		}
		result.JournalSaved = true
	}

	return result
}

func findProfile(known []profiles.Descriptor, name string) (profiles.Descriptor, bool) {
	for _, d := range known {
		if strings.EqualFold(d.Name, name) {
			return d, true
		}
	}
	return profiles.Descriptor{}, false
}

func hasDeselections(deselected map[fabdb.CategoryID][]string) bool {
	for _, names := range deselected {
		if len(names) > 0 {
			return true
		}
	}
	return false
}
