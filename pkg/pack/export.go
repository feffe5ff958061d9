package pack

import (
	"context"
	"os"
	"os/user"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// Exporter bundles content items from the current configuration into a
// portable package directory. It is read-only with respect to the source
// catalog: reference capture only looks indices up, it never mutates.
type Exporter struct {
	// DB is the source configuration's live catalog.
	DB fabdb.Database

	// Progress, when set, receives one event per processed item.
	Progress ProgressFunc
}

// Export copies each item file (and its thumbnail, when present) into
// outDir and captures the item's catalog references by name. A single bad
// item, such as a corrupt file, is logged and omitted; the export as a
// whole never aborts because one item failed. Only the inability to create
// the output directory or write the final manifest is fatal.
func (e *Exporter) Export(ctx context.Context, itemPaths []string, outDir string) (*Package, error) {
	if err := os.MkdirAll(outDir, constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", outDir, err)
	}

	pkg := &Package{
		ID:                uuid.NewString(),
		ConfigurationName: e.DB.ProfileName(),
		ExportedBy:        currentUserName(),
		ExportedAt:        utc.Now(),
	}

	for i, path := range itemPaths {
		if err := ctx.Err(); err != nil {
			logging.Warn().Int("exported", len(pkg.Items)).Msg("Export canceled; writing partial package")
			break
		}

		exported, err := e.exportItem(path, outDir)
		if err != nil {
			logging.Warn().
				Err(err).
				Str("item", path).
				Msg("Item omitted from package")
			continue
		}
		pkg.Items = append(pkg.Items, *exported)

		if e.Progress != nil {
			e.Progress(ProgressEvent{Op: "export", Index: i, Total: len(itemPaths), FileName: exported.FileName})
		}
	}

	if err := writeManifest(pkg, outDir); err != nil {
		return nil, err
	}
	return pkg, nil
}

// exportItem copies one item into the package and captures its references.
func (e *Exporter) exportItem(path, outDir string) (*ExportedItem, error) {
	item, err := fabdb.LoadItem(path)
	if err != nil {
		return nil, err
	}

	fileName := filepath.Base(path)
	if err := copyFile(path, filepath.Join(outDir, fileName)); err != nil {
		return nil, err
	}

	// Thumbnail is optional; a copy failure only loses the preview image.
	if thumb := fabdb.ThumbnailPath(path); fileExists(thumb) {
		if err := copyFile(thumb, filepath.Join(outDir, filepath.Base(thumb))); err != nil {
			logging.Warn().Err(err).Str("item", fileName).Msg("Thumbnail not copied")
		}
	}

	exported := &ExportedItem{
		FileName:      fileName,
		SourceFolder:  filepath.Dir(path),
		CID:           item.CID,
		DatabaseID:    item.DatabaseID,
		IsProductList: item.IsProductList(),
		ProductList:   item.ProductList,
	}

	for _, key := range fabdb.RefKeys() {
		name, ok := e.captureRef(key, item.Refs.Get(key))
		if !ok {
			continue
		}
		exported.References.set(key, name)

		// The price list's owning supplier group rides along so the
		// importer can flag a same-named list owned by a different
		// group in the target.
		if key == fabdb.RefPriceList {
			if entry, found := e.findByIndex(fabdb.PriceLists, item.Refs.PriceList); found {
				exported.References.SupplierGroup = entry.Group
			}
		}
	}

	return exported, nil
}

// captureRef resolves one reference index to its name in the source
// configuration. The (value, ok) form keeps omissions visible: an unset
// index, an absent category, and an unknown index all capture nothing.
func (e *Exporter) captureRef(key fabdb.RefKey, index int) (string, bool) {
	if index == 0 {
		return "", false
	}
	entry, found := e.findByIndex(key.Category(), index)
	if !found {
		logging.Debug().
			Str("reference", string(key)).
			Int("index", index).
			Msg("Reference index did not resolve in source; omitted")
		return "", false
	}
	return entry.Name, true
}

func (e *Exporter) findByIndex(id fabdb.CategoryID, index int) (fabdb.Entry, bool) {
	table, ok := e.DB.Table(id)
	if !ok {
		return fabdb.Entry{}, false
	}
	return table.FindByIndex(index)
}

// currentUserName identifies who ran the export, for the package manifest.
func currentUserName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
