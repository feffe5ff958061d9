// Package fabsync synchronizes profile catalogs and transfers content
// packages for a CAD fabrication database. A database root holds a Global
// configuration plus named profiles under profiles/<name>; fabsync
// discovers them, snapshots their catalogs into manifests, pushes catalog
// categories between them with durable cleanup journals, and exports and
// imports portable content packages whose references travel by name.
package fabsync

import (
	"context"
	"sync"

	"github.com/Ty9112/FabricationSample-sub002/pkg/copier"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/journal"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
	"github.com/Ty9112/FabricationSample-sub002/pkg/manifest"
	"github.com/Ty9112/FabricationSample-sub002/pkg/pack"
	"github.com/Ty9112/FabricationSample-sub002/pkg/profiles"
)

// Client is the entry point into a fabrication database root.
type Client interface {
	// Profiles lists every configuration under the root, Global first.
	Profiles() ([]profiles.Descriptor, error)

	// Database opens the current profile's live catalog.
	Database() (fabdb.Database, error)

	// GenerateManifest snapshots the current profile's catalog into its
	// manifest file and returns the document.
	GenerateManifest() (*manifest.Document, error)

	// ExecutePending consumes the current profile's pending cleanup
	// journal, if any. A nil summary means there was nothing pending.
	ExecutePending(ctx context.Context) (*journal.Summary, error)

	// Export bundles the given item files into a content package at outDir.
	Export(ctx context.Context, itemPaths []string, outDir string) (*pack.Package, error)

	// Import places items from the package at pkgDir into targetDir,
	// reconciling their references against the current profile's catalog.
	Import(ctx context.Context, pkgDir, targetDir string, selected []int, overrides map[int]pack.Overrides) ([]pack.ItemResult, error)

	// Push copies catalog categories from the current profile to the named
	// target profiles, journaling deselected entries for later cleanup.
	Push(ctx context.Context, targets []string, opts PushOptions) (*PushResult, error)
}

// client is the internal implementation of the Client interface.
type client struct {
	mu     sync.Mutex
	config *config
	db     fabdb.Database // lazily opened current-profile catalog
}

// New creates a Client for a database root with the given options.
func New(opts ...Option) (Client, error) {
	c := &client{config: defaultConfig()}

	for _, opt := range opts {
		if err := opt(c.config); err != nil {
			return nil, err
		}
	}

	if c.config.rootPath == "" && c.config.dataPath != "" {
		root, err := profiles.LocateRoot(c.config.dataPath)
		if err != nil {
			return nil, err
		}
		c.config.rootPath = root
	}
	if c.config.rootPath == "" && c.config.database == nil {
		return nil, &errors.ConfigError{Component: "fabsync", Message: "no database root configured"}
	}

	if c.config.backupDir == "" {
		c.config.backupDir = defaultBackupDir(c.config.rootPath)
	}
	if c.config.copier == nil {
		c.config.copier = copier.New(c.config.backupDir)
	}
	c.db = c.config.database

	return c, nil
}

func (c *client) Profiles() ([]profiles.Descriptor, error) {
	found, err := profiles.Discover(c.config.rootPath)
	if err != nil {
		return nil, err
	}
	profiles.MarkCurrent(found, c.config.profileName)
	return found, nil
}

// Database opens the current profile's catalog on first use and reuses it
// afterwards.
func (c *client) Database() (fabdb.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	desc, err := c.currentProfile()
	if err != nil {
		return nil, err
	}

	db, err := fabdb.Open(desc.DataPath, fabdb.WithProfileName(desc.Name))
	if err != nil {
		return nil, err
	}
	c.db = db
	return db, nil
}

func (c *client) GenerateManifest() (*manifest.Document, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	doc := manifest.Generate(db)
	if err := manifest.Write(doc, db.DataPath()); err != nil {
		return nil, err
	}
	return doc, nil
}

// ExecutePending looks for a journal in the current profile's data
// directory first, then in the shared backup directory, and consumes
// whichever it finds. The data directory wins when both exist; the backup
// directory one stays pending for the next call. A backup-directory
// journal recorded for a different profile is left untouched so its real
// target can consume it on a later load.
func (c *client) ExecutePending(ctx context.Context) (*journal.Summary, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	summary, err := journal.Execute(ctx, db, db.DataPath())
	if err != nil || summary != nil {
		return summary, err
	}

	pending, err := journal.Load(c.config.backupDir)
	if err != nil || pending == nil {
		return nil, err
	}
	if !pending.Targets(db.ProfileName(), db.DataPath()) {
		logging.Debug().
			Str("journal_profile", pending.ProfileName).
			Str("current_profile", db.ProfileName()).
			Msg("pending cleanup targets another profile, leaving it")
		return nil, nil
	}
	return journal.Execute(ctx, db, c.config.backupDir)
}

func (c *client) Export(ctx context.Context, itemPaths []string, outDir string) (*pack.Package, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	exp := &pack.Exporter{DB: db, Progress: c.config.progress}
	return exp.Export(ctx, itemPaths, outDir)
}

func (c *client) Import(ctx context.Context, pkgDir, targetDir string, selected []int, overrides map[int]pack.Overrides) ([]pack.ItemResult, error) {
	db, err := c.Database()
	if err != nil {
		return nil, err
	}

	pkg, err := pack.LoadPackage(pkgDir)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, &errors.NotFoundError{Resource: "package manifest", Name: pkgDir}
	}

	im := &pack.Importer{DB: db, Progress: c.config.progress}
	return im.Import(ctx, pkg, pkgDir, targetDir, selected, overrides), nil
}

// currentProfile resolves the configured profile name to a descriptor.
func (c *client) currentProfile() (*profiles.Descriptor, error) {
	found, err := profiles.Discover(c.config.rootPath)
	if err != nil {
		return nil, err
	}
	profiles.MarkCurrent(found, c.config.profileName)
	for i := range found {
		if found[i].IsCurrent {
			return &found[i], nil
		}
	}
	return nil, &errors.NotFoundError{Resource: "profile", Name: c.config.profileName}
}
