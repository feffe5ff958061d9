// Package journal provides the durable deferred-cleanup queue for selective
// cross-profile copies. When a copy operation excludes entries the user
// deselected, the excluded names cannot be deleted from the target
// immediately: the target profile may not be loaded, and the catalog store
// can hold stale in-memory entries that would reappear on its next save. The
// journal records "category → names to delete" on disk and is consumed the
// next time the target profile loads.
//
// The journal is a two-state machine: Pending while its file exists,
// Consumed once the file is deleted. The file's existence is the only state
// signal; there is no status field to desynchronize.
package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentstation/utc"
	"github.com/goccy/go-json"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/profiles"
)

// PendingCleanup is the persisted journal document.
type PendingCleanup struct {
	// ProfileName is the target profile the deletions apply to.
	ProfileName string `json:"profileName"`

	// DataPath is the target profile's data directory.
	DataPath string `json:"dataPath"`

	// CreatedAt records when the copy operation deferred these deletions.
	CreatedAt utc.Time `json:"createdAt"`

	// ItemsToDelete maps each category to the entry names the copy
	// excluded.
	ItemsToDelete map[fabdb.CategoryID][]string `json:"itemsToDelete"`
}

// New creates a cleanup record for a target profile.
func New(profileName, dataPath string) *PendingCleanup {
	return &PendingCleanup{
		ProfileName:   profileName,
		DataPath:      dataPath,
		CreatedAt:     utc.Now(),
		ItemsToDelete: make(map[fabdb.CategoryID][]string),
	}
}

// Add records names to delete from one category.
func (p *PendingCleanup) Add(id fabdb.CategoryID, names ...string) {
	if len(names) == 0 {
		return
	}
	p.ItemsToDelete[id] = append(p.ItemsToDelete[id], names...)
}

// Targets reports whether the cleanup was recorded for the given profile.
// A data path match is authoritative; otherwise names are compared
// case-insensitively, with the empty name and "Global" both meaning the
// Global configuration.
func (p *PendingCleanup) Targets(profileName, dataPath string) bool {
	if p.DataPath != "" && dataPath != "" &&
		filepath.Clean(p.DataPath) == filepath.Clean(dataPath) {
		return true
	}
	if profiles.IsGlobalName(p.ProfileName) || profiles.IsGlobalName(profileName) {
		return profiles.IsGlobalName(p.ProfileName) && profiles.IsGlobalName(profileName)
	}
	return strings.EqualFold(p.ProfileName, profileName)
}

// Empty reports whether the cleanup holds no deletions at all.
func (p *PendingCleanup) Empty() bool {
	for _, names := range p.ItemsToDelete {
		if len(names) > 0 {
			return false
		}
	}
	return true
}

// journalPath returns the journal file path for a target directory. The
// directory is either the shared backup directory (legacy single-target
// flow) or the target profile's own data directory (multi-target push flow);
// the dual addressing is what allows one outstanding journal per target.
func journalPath(dir string) string {
	return filepath.Join(dir, constants.JournalFileName)
}

// Save serializes the cleanup to the target directory, overwriting any
// journal already there. Only one cleanup may be outstanding per target;
// overwrite-on-save enforces that without locking.
func Save(cleanup *PendingCleanup, dir string) error {
	data, err := json.MarshalIndent(cleanup, "", "  ")
	if err != nil {
		return errors.WrapParse("json", constants.JournalFileName, err)
	}

	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}
	path := journalPath(dir)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// HasPending reports whether a journal file exists for the target directory.
func HasPending(dir string) bool {
	info, err := os.Stat(journalPath(dir))
	return err == nil && !info.IsDir()
}

// Load reads the journal for a target directory. A missing journal returns
// (nil, nil); an unreadable or unparsable journal is an error.
func Load(dir string) (*PendingCleanup, error) {
	path := journalPath(dir)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var cleanup PendingCleanup
	if err := json.Unmarshal(data, &cleanup); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &cleanup, nil
}

// CategorySummary is the execution outcome for one journal category.
type CategorySummary struct {
	Category fabdb.CategoryID
	Deleted  int
	Missing  []string
	Err      error
}

// Summary is the outcome of one journal execution.
type Summary struct {
	ProfileName string
	Categories  []CategorySummary
}

// Deleted returns the total number of entries deleted.
func (s *Summary) Deleted() int {
	n := 0
	for _, c := range s.Categories {
		n += c.Deleted
	}
	return n
}

// HasErrors reports whether any category failed.
func (s *Summary) HasErrors() bool {
	for _, c := range s.Categories {
		if c.Err != nil {
			return true
		}
	}
	return false
}

// String renders a human-readable execution report: per-category delete
// counts, names that were already gone, and any errors.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pending cleanup executed for profile %q:\n", s.ProfileName)
	if len(s.Categories) == 0 {
		b.WriteString("  nothing to delete\n")
		return b.String()
	}
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "  %s: %d deleted", c.Category, c.Deleted)
		if len(c.Missing) > 0 {
			sorted := append([]string(nil), c.Missing...)
			sort.Strings(sorted)
			fmt.Fprintf(&b, ", not present: %s", strings.Join(sorted, ", "))
		}
		if c.Err != nil {
			fmt.Fprintf(&b, ", error: %v", c.Err)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
