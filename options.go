package fabsync

import (
	"path/filepath"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/copier"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/pack"
)

// Option is a function that configures a Client instance.
type Option func(*config) error

type config struct {
	rootPath    string
	dataPath    string
	profileName string
	backupDir   string
	copier      copier.Copier
	database    fabdb.Database
	progress    pack.ProgressFunc
}

func defaultConfig() *config {
	return &config{}
}

// defaultBackupDir is where overwritten files and legacy journals live.
func defaultBackupDir(rootPath string) string {
	return filepath.Join(rootPath, constants.BackupDirName)
}

// WithRoot sets the database installation root directly.
func WithRoot(path string) Option {
	return func(c *config) error {
		c.rootPath = path
		return nil
	}
}

// WithDataPath derives the installation root from any profile's data path.
// Ignored when WithRoot is also given.
func WithDataPath(path string) Option {
	return func(c *config) error {
		c.dataPath = path
		return nil
	}
}

// WithProfile selects the current profile by name. An empty name or
// "Global" (any case) selects the Global profile.
func WithProfile(name string) Option {
	return func(c *config) error {
		c.profileName = name
		return nil
	}
}

// WithBackupDir overrides the shared backup directory.
func WithBackupDir(path string) Option {
	return func(c *config) error {
		c.backupDir = path
		return nil
	}
}

// WithCopier supplies a custom Copier for push operations.
func WithCopier(cp copier.Copier) Option {
	return func(c *config) error {
		if cp == nil {
			return &errors.ConfigError{Component: "fabsync", Message: "copier cannot be nil"}
		}
		c.copier = cp
		return nil
	}
}

// WithDatabase injects an already-open catalog as the current profile's
// database, bypassing discovery. Intended for tests and embedders.
func WithDatabase(db fabdb.Database) Option {
	return func(c *config) error {
		if db == nil {
			return &errors.ConfigError{Component: "fabsync", Message: "database cannot be nil"}
		}
		c.database = db
		return nil
	}
}

// WithProgress registers a callback invoked per item during export and
// import runs.
func WithProgress(fn pack.ProgressFunc) Option {
	return func(c *config) error {
		c.progress = fn
		return nil
	}
}
