// Package copier copies catalog files between configurations, backing up
// anything it overwrites.
package copier

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// CopyResult reports what a category copy actually did.
type CopyResult struct {
	Copied  []fabdb.CategoryID // category files written to the target
	Missing []fabdb.CategoryID // categories the source had no file for
}

// Copier copies catalog files into place, preserving whatever it replaces.
type Copier interface {
	// CopyWithBackup copies src over dst. When dst already exists, the old
	// content is saved into the copier's backup directory first.
	CopyWithBackup(src, dst string) error

	// CopyCategories copies the given categories' data files from one
	// profile data directory to another, backing up overwritten files.
	// Categories the source has no file for are skipped and reported in
	// the result, not failed.
	CopyCategories(srcDataPath, dstDataPath string, categories []fabdb.CategoryID) (CopyResult, error)
}

// New returns a Copier that stores backups under backupDir. Backups carry a
// timestamp so repeated pushes to the same target never clobber each other.
func New(backupDir string) Copier {
	return &fileCopier{backupDir: backupDir, now: time.Now}
}

type fileCopier struct {
	backupDir string
	now       func() time.Time
}

func (c *fileCopier) CopyWithBackup(src, dst string) error {
	if info, err := os.Stat(dst); err == nil && !info.IsDir() {
		if err := c.backup(dst); err != nil {
			return err
		}
	}
	return copyContents(src, dst)
}

func (c *fileCopier) CopyCategories(srcDataPath, dstDataPath string, categories []fabdb.CategoryID) (CopyResult, error) {
	var result CopyResult
	for _, id := range categories {
		src := fabdb.CategoryFilePath(srcDataPath, id)
		if info, err := os.Stat(src); err != nil || info.IsDir() {
			result.Missing = append(result.Missing, id)
			continue
		}
		if err := c.CopyWithBackup(src, fabdb.CategoryFilePath(dstDataPath, id)); err != nil {
			return result, err
		}
		result.Copied = append(result.Copied, id)
	}
	return result, nil
}

// backup moves a copy of the file into the backup directory under a
// timestamped name: <file><ext>.<20060102-150405>.bak.
func (c *fileCopier) backup(path string) error {
	if err := os.MkdirAll(c.backupDir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", c.backupDir, err)
	}

	stamp := c.now().Format(constants.TimeFormatFilename)
	name := fmt.Sprintf("%s.%s%s", filepath.Base(path), stamp, constants.BackupFileExt)
	backupPath := filepath.Join(c.backupDir, name)

	if err := copyContents(path, backupPath); err != nil {
		return err
	}

	logging.Debug().
		Str("file", path).
		Str("backup", backupPath).
		Msg("Backed up file before overwrite")
	return nil
}

func copyContents(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("read", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.WrapIO("copy", dst, err)
	}
	return out.Close()
}
