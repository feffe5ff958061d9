package fabsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/journal"
	"github.com/Ty9112/FabricationSample-sub002/pkg/manifest"
)

// writeCategory persists one category file the way the store does.
func writeCategory(t *testing.T, dataPath string, id fabdb.CategoryID, entries []fabdb.Entry) {
	t.Helper()
	data, err := yaml.Marshal(entries)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dataPath, 0o755))
	require.NoError(t, os.WriteFile(fabdb.CategoryFilePath(dataPath, id), data, 0o644))
}

// testRoot builds a database root with a populated Global profile and one
// named profile.
func testRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	globalData := filepath.Join(root, "data")
	writeCategory(t, globalData, fabdb.Services, []fabdb.Entry{
		{Index: 1, Name: "Supply Air"},
		{Index: 2, Name: "Extract Air"},
	})
	writeCategory(t, globalData, fabdb.Materials, []fabdb.Entry{
		{Index: 1, Name: "Galvanized Steel"},
	})

	siteData := filepath.Join(root, "profiles", "Site-A", "data")
	writeCategory(t, siteData, fabdb.Services, []fabdb.Entry{
		{Index: 1, Name: "Old Service"},
	})

	return root
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := New()
	assert.Error(t, err)
}

func TestNewLocatesRootFromDataPath(t *testing.T) {
	root := testRoot(t)

	c, err := New(WithDataPath(filepath.Join(root, "profiles", "Site-A", "data")), WithProfile("Site-A"))
	require.NoError(t, err)

	found, err := c.Profiles()
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Global", found[0].Name)
	assert.Equal(t, "Site-A", found[1].Name)
	assert.False(t, found[0].IsCurrent)
	assert.True(t, found[1].IsCurrent)
}

func TestClientDatabase(t *testing.T) {
	root := testRoot(t)

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	db, err := c.Database()
	require.NoError(t, err)
	assert.Equal(t, "Global", db.ProfileName())

	tbl, ok := db.Table(fabdb.Services)
	require.True(t, ok)
	assert.Equal(t, 2, tbl.Len())

	// Same handle on repeated calls.
	again, err := c.Database()
	require.NoError(t, err)
	assert.Same(t, db, again)
}

func TestGenerateManifest(t *testing.T) {
	root := testRoot(t)

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	doc, err := c.GenerateManifest()
	require.NoError(t, err)
	assert.Equal(t, "Global", doc.ProfileName)

	loaded, err := manifest.Load(filepath.Join(root, "data"))
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, []string{"Supply Air", "Extract Air"}, loaded.Names(fabdb.Services))
}

func TestExecutePendingNothingPending(t *testing.T) {
	c, err := New(WithRoot(testRoot(t)))
	require.NoError(t, err)

	summary, err := c.ExecutePending(context.Background())
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestExecutePendingConsumesDataDirJournal(t *testing.T) {
	root := testRoot(t)
	globalData := filepath.Join(root, "data")

	cleanup := journal.New("Global", globalData)
	cleanup.Add(fabdb.Services, "Extract Air")
	require.NoError(t, journal.Save(cleanup, globalData))

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	summary, err := c.ExecutePending(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Deleted())
	assert.False(t, journal.HasPending(globalData))

	db, err := c.Database()
	require.NoError(t, err)
	tbl, _ := db.Table(fabdb.Services)
	_, found := tbl.FindByName("Extract Air")
	assert.False(t, found)
}

func TestExecutePendingConsumesBackupDirJournal(t *testing.T) {
	root := testRoot(t)
	globalData := filepath.Join(root, "data")

	cleanup := journal.New("Global", globalData)
	cleanup.Add(fabdb.Services, "Extract Air")
	backupDir := filepath.Join(root, "backups")
	require.NoError(t, journal.Save(cleanup, backupDir))

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	summary, err := c.ExecutePending(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Deleted())
	assert.False(t, journal.HasPending(backupDir))
}

// A backup-directory journal recorded for one profile must not run against
// another. Here the journal targets Site-A but the loaded profile is Global;
// Global's catalog stays intact and the journal stays pending.
func TestExecutePendingLeavesOtherProfilesJournal(t *testing.T) {
	root := testRoot(t)
	siteData := filepath.Join(root, "profiles", "Site-A", "data")

	cleanup := journal.New("Site-A", siteData)
	cleanup.Add(fabdb.Services, "Supply Air")
	backupDir := filepath.Join(root, "backups")
	require.NoError(t, journal.Save(cleanup, backupDir))

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	summary, err := c.ExecutePending(context.Background())
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.True(t, journal.HasPending(backupDir))

	db, err := c.Database()
	require.NoError(t, err)
	tbl, _ := db.Table(fabdb.Services)
	_, found := tbl.FindByName("Supply Air")
	assert.True(t, found)
}

func TestExecutePendingDataDirJournalWins(t *testing.T) {
	root := testRoot(t)
	globalData := filepath.Join(root, "data")
	backupDir := filepath.Join(root, "backups")

	inData := journal.New("Global", globalData)
	inData.Add(fabdb.Services, "Extract Air")
	require.NoError(t, journal.Save(inData, globalData))

	inBackup := journal.New("Global", globalData)
	inBackup.Add(fabdb.Materials, "Galvanized Steel")
	require.NoError(t, journal.Save(inBackup, backupDir))

	c, err := New(WithRoot(root))
	require.NoError(t, err)

	summary, err := c.ExecutePending(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 1, summary.Deleted())
	assert.False(t, journal.HasPending(globalData))
	assert.True(t, journal.HasPending(backupDir))
}

// Exporting from one configuration and importing into another must carry
// references by name, warn on names the target lacks, and still import.
func TestExportImportAcrossConfigurations(t *testing.T) {
	root := testRoot(t)
	pkgDir := t.TempDir()
	targetDir := t.TempDir()

	item := &fabdb.Item{
		CID:        842,
		DatabaseID: "transfer-0001",
		Name:       "Transition",
		Refs:       fabdb.RefIndices{Service: 2, Material: 1},
	}
	data, err := yaml.Marshal(item)
	require.NoError(t, err)
	itemPath := filepath.Join(root, "items", "transition.itm")
	require.NoError(t, os.MkdirAll(filepath.Dir(itemPath), 0o755))
	require.NoError(t, os.WriteFile(itemPath, data, 0o644))

	source, err := New(WithRoot(root))
	require.NoError(t, err)

	pkg, err := source.Export(context.Background(), []string{itemPath}, pkgDir)
	require.NoError(t, err)
	require.Len(t, pkg.Items, 1)
	assert.Equal(t, "Extract Air", pkg.Items[0].References.Service)
	assert.Equal(t, "Galvanized Steel", pkg.Items[0].References.Material)

	// The target catalog has Galvanized Steel but no Extract Air service.
	target, err := New(WithDatabase(fabdb.TestDatabase(t)))
	require.NoError(t, err)

	results, err := target.Import(context.Background(), pkgDir, targetDir, nil, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	require.Len(t, results[0].Warnings, 1)
	assert.Contains(t, results[0].Warnings[0], "Extract Air")

	imported, err := fabdb.LoadItem(filepath.Join(targetDir, "transition.itm"))
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Refs.Material)
	assert.Equal(t, 2, imported.Refs.Service, "service index ships unchanged")
}

func TestImportMissingPackage(t *testing.T) {
	c, err := New(WithRoot(testRoot(t)))
	require.NoError(t, err)

	_, err = c.Import(context.Background(), t.TempDir(), t.TempDir(), nil, nil)
	assert.Error(t, err)
}
