package pack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// writeItemFile writes an item to disk the way the catalog stores them.
func writeItemFile(t *testing.T, path string, item *fabdb.Item) {
	t.Helper()
	data, err := yaml.Marshal(item)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestExporterCapturesReferencesByName(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	item := fabdb.TestItem(t)
	itemPath := filepath.Join(srcDir, "elbow.itm")
	writeItemFile(t, itemPath, item)
	require.NoError(t, os.WriteFile(fabdb.ThumbnailPath(itemPath), []byte("png"), 0o644))

	exp := &Exporter{DB: fabdb.TestDatabase(t)}
	pkg, err := exp.Export(context.Background(), []string{itemPath}, outDir)
	require.NoError(t, err)
	require.Len(t, pkg.Items, 1)

	got := pkg.Items[0]
	assert.Equal(t, "elbow.itm", got.FileName)
	assert.Equal(t, "test-item-0001", got.DatabaseID)
	assert.Equal(t, "Supply Air", got.References.Service)
	assert.Equal(t, "Copper", got.References.Material)
	assert.Equal(t, "DW144", got.References.Specification)
	assert.Equal(t, "Ductwork", got.References.SectionDescription)
	assert.Equal(t, "2026 List", got.References.PriceList)
	assert.Equal(t, "Acme Supply", got.References.SupplierGroup)
	assert.Equal(t, "Standard Install", got.References.InstallationTimes)
	assert.Equal(t, "Shop Rates", got.References.FabricationTimes)

	assert.NotEmpty(t, pkg.ID)
	assert.Equal(t, "Global", pkg.ConfigurationName)

	assert.FileExists(t, filepath.Join(outDir, "elbow.itm"))
	assert.FileExists(t, filepath.Join(outDir, "elbow.png"))
	assert.FileExists(t, filepath.Join(outDir, "package.json"))

	loaded, err := LoadPackage(outDir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, pkg.ID, loaded.ID)
	assert.Len(t, loaded.Items, 1)
}

func TestExporterSkipsBadItems(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()

	good := filepath.Join(srcDir, "good.itm")
	writeItemFile(t, good, fabdb.TestItem(t))

	paths := []string{
		good,
		filepath.Join(srcDir, "missing.itm"),
		good, // exported twice is fine, same file
	}

	exp := &Exporter{DB: fabdb.TestDatabase(t)}
	pkg, err := exp.Export(context.Background(), paths, outDir)
	require.NoError(t, err)
	assert.Len(t, pkg.Items, 2)
}

func TestExporterOmitsUnresolvableReference(t *testing.T) {
	srcDir := t.TempDir()

	item := fabdb.TestItem(t)
	item.Refs.Service = 99 // no such entry in the source catalog
	itemPath := filepath.Join(srcDir, "orphan.itm")
	writeItemFile(t, itemPath, item)

	exp := &Exporter{DB: fabdb.TestDatabase(t)}
	pkg, err := exp.Export(context.Background(), []string{itemPath}, t.TempDir())
	require.NoError(t, err)
	require.Len(t, pkg.Items, 1)

	assert.Empty(t, pkg.Items[0].References.Service)
	assert.Equal(t, "Copper", pkg.Items[0].References.Material)
}

func TestExporterProgress(t *testing.T) {
	srcDir := t.TempDir()
	itemPath := filepath.Join(srcDir, "one.itm")
	writeItemFile(t, itemPath, fabdb.TestItem(t))

	var events []ProgressEvent
	exp := &Exporter{
		DB:       fabdb.TestDatabase(t),
		Progress: func(e ProgressEvent) { events = append(events, e) },
	}
	_, err := exp.Export(context.Background(), []string{itemPath}, t.TempDir())
	require.NoError(t, err)

	require.Len(t, events, 1)
	assert.Equal(t, "export", events[0].Op)
	assert.Equal(t, "one.itm", events[0].FileName)
}

func TestLoadPackageMissing(t *testing.T) {
	pkg, err := LoadPackage(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, pkg)
}

func TestLoadPackageUnparsable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{nope"), 0o644))

	_, err := LoadPackage(dir)
	assert.Error(t, err)
}
