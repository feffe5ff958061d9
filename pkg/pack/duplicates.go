package pack

import (
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// Duplicate pairs an incoming package item with an existing on-disk item
// that carries the same database identity.
type Duplicate struct {
	FileName     string `json:"fileName"`
	DatabaseID   string `json:"databaseId"`
	ExistingPath string `json:"existingPath"`
}

// CheckDuplicateIDs walks targetDir for item files whose database identity
// collides with an item in the package. Identity comparison is
// case-insensitive. Each package item contributes at most one entry, the
// first on-disk collision found; an item that collides with several files
// is still one duplicate.
//
// Unreadable files and folders are skipped, not fatal: a partial answer
// beats no answer when the caller is deciding whether to overwrite.
func CheckDuplicateIDs(pkg *Package, targetDir string) ([]Duplicate, error) {
	wanted := make(map[string]string, len(pkg.Items)) // lowercased id -> file name
	for _, item := range pkg.Items {
		if item.DatabaseID == "" {
			continue
		}
		wanted[strings.ToLower(item.DatabaseID)] = item.FileName
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	var duplicates []Duplicate
	err := godirwalk.Walk(targetDir, &godirwalk.Options{
		Unsorted: true,
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !strings.EqualFold(filepath.Ext(path), constants.ItemFileExt) {
				return nil
			}
			item, err := fabdb.LoadItem(path)
			if err != nil {
				logging.Debug().Err(err).Str("path", path).Msg("Skipping unreadable item during duplicate scan")
				return nil
			}
			key := strings.ToLower(item.DatabaseID)
			fileName, collides := wanted[key]
			if !collides {
				return nil
			}
			duplicates = append(duplicates, Duplicate{
				FileName:     fileName,
				DatabaseID:   item.DatabaseID,
				ExistingPath: path,
			})
			delete(wanted, key)
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			logging.Debug().Err(err).Str("path", path).Msg("Skipping unreadable entry during duplicate scan")
			return godirwalk.SkipNode
		},
	})
	if err != nil {
		return nil, err
	}
	return duplicates, nil
}
