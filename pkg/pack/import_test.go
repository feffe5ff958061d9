package pack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// packageWithItems writes item files into pkgDir and returns a manifest
// covering them. refs applies to every item; identities are distinct.
func packageWithItems(t *testing.T, pkgDir string, refs ItemReferences, names ...string) *Package {
	t.Helper()

	pkg := &Package{ID: "pkg-test", ConfigurationName: "Source"}
	for _, name := range names {
		item := fabdb.TestItem(t)
		item.DatabaseID = "import-item-" + name
		item.Name = name
		writeItemFile(t, filepath.Join(pkgDir, name+".itm"), item)
		pkg.Items = append(pkg.Items, ExportedItem{
			FileName:   name + ".itm",
			CID:        item.CID,
			DatabaseID: item.DatabaseID,
			References: refs,
		})
	}
	return pkg
}

func resolvableRefs() ItemReferences {
	return ItemReferences{
		Service:            "Supply Air",
		Material:           "Galvanized Steel",
		Specification:      "DW144",
		SectionDescription: "Ductwork",
		PriceList:          "2026 List",
		SupplierGroup:      "Acme Supply",
		InstallationTimes:  "Standard Install",
		FabricationTimes:   "Shop Rates",
	}
}

func TestImportRewiresReferences(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	pkg := packageWithItems(t, pkgDir, resolvableRefs(), "tee")

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, nil, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Warnings)
	assert.Empty(t, results[0].Errors)

	imported, err := fabdb.LoadItem(filepath.Join(targetDir, "tee.itm"))
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Refs.Material, "Galvanized Steel is entry 1 in the target")
	assert.Equal(t, 1, imported.Refs.Specification)
	assert.Equal(t, 1, imported.Refs.Section)
	assert.Equal(t, 1, imported.Refs.PriceList)
}

func TestImportWarnsOnUnresolvedReference(t *testing.T) {
	pkgDir := t.TempDir()
	refs := resolvableRefs()
	refs.Material = "Bronze" // not in the target catalog
	pkg := packageWithItems(t, pkgDir, refs, "valve")

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, t.TempDir(), nil, nil)
	require.Len(t, results, 1)

	assert.True(t, results[0].Success, "unresolved reference is a warning, not a failure")
	require.Len(t, results[0].Warnings, 1)
	assert.Contains(t, results[0].Warnings[0], "Bronze")
}

// A price list that resolves by name but belongs to a different supplier
// group than the source's is still wired, with a warning.
func TestImportWarnsOnSupplierGroupMismatch(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	refs := resolvableRefs()
	refs.SupplierGroup = "Other Supply"
	pkg := packageWithItems(t, pkgDir, refs, "bend")

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, nil, nil)
	require.Len(t, results, 1)

	assert.True(t, results[0].Success)
	require.Len(t, results[0].Warnings, 1)
	assert.Contains(t, results[0].Warnings[0], "supplier group")

	imported, err := fabdb.LoadItem(filepath.Join(targetDir, "bend.itm"))
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Refs.PriceList)
}

func TestImportOverrideResolvesReference(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	refs := resolvableRefs()
	refs.Material = "Bronze"
	pkg := packageWithItems(t, pkgDir, refs, "valve")

	overrides := map[int]Overrides{
		0: {fabdb.RefMaterial: "Copper"},
	}

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, nil, overrides)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Warnings)

	imported, err := fabdb.LoadItem(filepath.Join(targetDir, "valve.itm"))
	require.NoError(t, err)
	assert.Equal(t, 2, imported.Refs.Material, "Copper is entry 2 in the target")
}

func TestImportServiceReferenceIsReportOnly(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()

	refs := resolvableRefs()
	refs.Service = "District Heating" // not in the target catalog
	pkg := packageWithItems(t, pkgDir, refs, "bend")

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, nil, nil)
	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	require.Len(t, results[0].Warnings, 1)
	assert.Contains(t, results[0].Warnings[0], "District Heating")

	// The shipped service index stays untouched whether or not the name
	// resolved; the target configuration owns service assignments.
	imported, err := fabdb.LoadItem(filepath.Join(targetDir, "bend.itm"))
	require.NoError(t, err)
	assert.Equal(t, fabdb.TestItem(t).Refs.Service, imported.Refs.Service)
}

func TestImportItemsAreIndependent(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	pkg := packageWithItems(t, pkgDir, resolvableRefs(), "a", "b", "c")

	// Break item b by removing its source file from the package.
	require.NoError(t, os.Remove(filepath.Join(pkgDir, "b.itm")))

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, nil, nil)
	require.Len(t, results, 3, "every selected item gets a result")

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].Errors)
	assert.True(t, results[2].Success)

	assert.FileExists(t, filepath.Join(targetDir, "a.itm"))
	assert.NoFileExists(t, filepath.Join(targetDir, "b.itm"))
	assert.FileExists(t, filepath.Join(targetDir, "c.itm"))
}

func TestImportSelection(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	pkg := packageWithItems(t, pkgDir, resolvableRefs(), "a", "b", "c")

	im := &Importer{DB: fabdb.TestDatabase(t)}
	results := im.Import(context.Background(), pkg, pkgDir, targetDir, []int{1}, nil)
	require.Len(t, results, 1)
	assert.Equal(t, "b.itm", results[0].FileName)

	assert.NoFileExists(t, filepath.Join(targetDir, "a.itm"))
	assert.FileExists(t, filepath.Join(targetDir, "b.itm"))
}

func TestImportCanceledKeepsCommittedItems(t *testing.T) {
	pkgDir := t.TempDir()
	targetDir := t.TempDir()
	pkg := packageWithItems(t, pkgDir, resolvableRefs(), "a", "b")

	ctx, cancel := context.WithCancel(context.Background())

	im := &Importer{DB: fabdb.TestDatabase(t)}
	im.Progress = func(e ProgressEvent) {
		if e.Index == 0 {
			cancel()
		}
	}

	results := im.Import(ctx, pkg, pkgDir, targetDir, nil, nil)
	require.Len(t, results, 2)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)

	assert.FileExists(t, filepath.Join(targetDir, "a.itm"), "committed item survives cancellation")
	assert.NoFileExists(t, filepath.Join(targetDir, "b.itm"))
}

func TestValidateReportsUnresolvedWithoutWriting(t *testing.T) {
	good := resolvableRefs()
	bad := resolvableRefs()
	bad.Specification = "Spec-X"

	pkg := &Package{Items: []ExportedItem{
		{FileName: "a.itm", References: good},
		{FileName: "b.itm", References: bad},
	}}

	results := Validate(pkg, fabdb.TestDatabase(t))
	require.Len(t, results, 2)

	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Warnings)

	assert.True(t, results[1].Success)
	require.Len(t, results[1].Warnings, 1)
	assert.Contains(t, results[1].Warnings[0], "Spec-X")
}

func TestCheckDuplicateIDs(t *testing.T) {
	targetDir := t.TempDir()

	existing := fabdb.TestItem(t)
	existing.DatabaseID = "DUP-0001"
	writeItemFile(t, filepath.Join(targetDir, "nested", "existing.itm"), existing)

	pkg := &Package{Items: []ExportedItem{
		{FileName: "incoming.itm", DatabaseID: "dup-0001"}, // case differs
		{FileName: "fresh.itm", DatabaseID: "unique-0002"},
	}}

	dups, err := CheckDuplicateIDs(pkg, targetDir)
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "incoming.itm", dups[0].FileName)
	assert.Equal(t, "DUP-0001", dups[0].DatabaseID)
}

func TestCheckDuplicateIDsNoCollisions(t *testing.T) {
	targetDir := t.TempDir()
	writeItemFile(t, filepath.Join(targetDir, "existing.itm"), fabdb.TestItem(t))

	pkg := &Package{Items: []ExportedItem{
		{FileName: "incoming.itm", DatabaseID: "nobody-home"},
	}}

	dups, err := CheckDuplicateIDs(pkg, targetDir)
	require.NoError(t, err)
	assert.Empty(t, dups)
}
