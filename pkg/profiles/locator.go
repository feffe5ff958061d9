// Package profiles discovers the isolated configuration profiles of a
// fabrication database installation. An installation root holds the Global
// profile's data directory plus zero or more named profiles under a
// profiles/ subdirectory, each with its own data directory. Profiles share
// nothing: catalog indices in one mean nothing in another.
package profiles

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// IsGlobalName reports whether an active-profile name means the Global
// profile. The configuration context reports the literal string "Global" on
// the default profile, but callers must treat an empty name the same way.
func IsGlobalName(name string) bool {
	return name == "" || strings.EqualFold(name, constants.GlobalProfileName)
}

// LocateRoot derives the installation root from any one profile's data path.
// A named profile's data path looks like root/profiles/<name>/data; the
// Global profile's like root/data. The result is verified by the presence of
// a profiles/ or data/ entry; when neither is found the immediate parent is
// returned as a soft fallback.
func LocateRoot(anyDataPath string) (string, error) {
	if anyDataPath == "" {
		return "", &errors.ValidationError{Field: "dataPath", Message: "data path cannot be empty"}
	}

	dataPath := filepath.Clean(anyDataPath)
	parent := filepath.Dir(dataPath)

	// Named profile pattern: .../profiles/<name>/<data>
	if filepath.Base(filepath.Dir(parent)) == constants.ProfilesDirName {
		candidate := filepath.Dir(filepath.Dir(parent))
		if hasRootMarker(candidate) {
			return candidate, nil
		}
	}

	if hasRootMarker(parent) {
		return parent, nil
	}

	// Soft fallback: no marker anywhere, treat the parent as the root.
	logging.Debug().
		Str("data_path", anyDataPath).
		Str("root", parent).
		Msg("No root marker found, falling back to parent directory")
	return parent, nil
}

// hasRootMarker checks for the directory entries that mark an installation
// root.
func hasRootMarker(path string) bool {
	for _, marker := range []string{constants.ProfilesDirName, constants.DataDirName} {
		if info, err := os.Stat(filepath.Join(path, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// Discover enumerates every profile under the installation root. Global is
// always first with data path root/data; named profiles follow in sorted
// order, including only directories whose data subdirectory holds at least
// one catalog file. Candidates that cannot be read are skipped, not fatal.
func Discover(root string) ([]Descriptor, error) {
	if root == "" {
		return nil, &errors.ValidationError{Field: "root", Message: "root cannot be empty"}
	}
	if _, err := os.Stat(root); err != nil {
		return nil, errors.WrapResource("discover", "profile", root, errors.ErrNoProfile)
	}

	descriptors := []Descriptor{{
		Name:     constants.GlobalProfileName,
		RootPath: root,
		DataPath: filepath.Join(root, constants.DataDirName),
	}}

	profilesDir := filepath.Join(root, constants.ProfilesDirName)
	names, err := godirwalk.ReadDirnames(profilesDir, nil)
	if err != nil {
		// No profiles directory means a Global-only installation.
		return descriptors, nil
	}
	sort.Strings(names)

	for _, name := range names {
		dataPath := filepath.Join(profilesDir, name, constants.DataDirName)
		ok, err := hasCatalogFile(dataPath)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("profile", name).
				Msg("Skipping unreadable profile candidate")
			continue
		}
		if !ok {
			continue
		}
		descriptors = append(descriptors, Descriptor{
			Name:     name,
			RootPath: root,
			DataPath: dataPath,
		})
	}

	return descriptors, nil
}

// hasCatalogFile reports whether a data directory contains at least one
// catalog data file.
func hasCatalogFile(dataPath string) (bool, error) {
	info, err := os.Stat(dataPath)
	if err != nil || !info.IsDir() {
		return false, nil
	}

	entries, err := godirwalk.ReadDirents(dataPath, nil)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), constants.CatalogFileExt) {
			return true, nil
		}
	}
	return false, nil
}

// MarkCurrent flags the descriptor matching the active profile name.
// An empty or "Global" (any case) active name marks the Global descriptor;
// any other name marks the named profile it matches, case-insensitively.
// The input slice is modified in place and returned.
func MarkCurrent(descriptors []Descriptor, activeName string) []Descriptor {
	for i := range descriptors {
		if IsGlobalName(activeName) {
			descriptors[i].IsCurrent = descriptors[i].IsGlobal()
		} else {
			descriptors[i].IsCurrent = strings.EqualFold(descriptors[i].Name, activeName)
		}
	}
	return descriptors
}
