package pack

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// Importer places package items into a target configuration and rewires
// each item's catalog references to the target's indices by name.
type Importer struct {
	// DB is the target configuration's live catalog.
	DB fabdb.Database

	// Progress, when set, receives one event per processed item.
	Progress ProgressFunc
}

// Import copies the selected items from pkgDir into targetDir and
// reconciles their references. selected holds indices into pkg.Items; a
// nil selection imports everything. overrides maps an item index to
// per-reference replacement names that take precedence over the captured
// ones.
//
// Items are independent: one item's failure never blocks the rest, and
// items already written stay written when the context is canceled
// mid-run. Service references are report-only; the item keeps the
// service index it shipped with.
func (im *Importer) Import(ctx context.Context, pkg *Package, pkgDir, targetDir string, selected []int, overrides map[int]Overrides) []ItemResult {
	indices := selected
	if indices == nil {
		indices = make([]int, len(pkg.Items))
		for i := range pkg.Items {
			indices[i] = i
		}
	}

	results := make([]ItemResult, 0, len(indices))
	for n, idx := range indices {
		if err := ctx.Err(); err != nil {
			logging.Warn().Int("imported", len(results)).Msg("Import canceled; committed items kept")
			for _, rest := range indices[n:] {
				if rest < 0 || rest >= len(pkg.Items) {
					continue
				}
				result := ItemResult{FileName: pkg.Items[rest].FileName}
				result.errorf("import canceled before item was processed")
				results = append(results, result)
			}
			break
		}
		if idx < 0 || idx >= len(pkg.Items) {
			result := ItemResult{}
			result.errorf("selection index %d is out of range", idx)
			results = append(results, result)
			continue
		}

		item := pkg.Items[idx]
		results = append(results, im.importItem(item, pkgDir, targetDir, overrides[idx]))

		if im.Progress != nil {
			im.Progress(ProgressEvent{Op: "import", Index: n, Total: len(indices), FileName: item.FileName})
		}
	}
	return results
}

// importItem copies one item into the target folder, reloads it from its
// new location, and resolves its references against the target catalog.
func (im *Importer) importItem(exported ExportedItem, pkgDir, targetDir string, overrides Overrides) ItemResult {
	result := ItemResult{FileName: exported.FileName}

	src := filepath.Join(pkgDir, exported.FileName)
	dst := filepath.Join(targetDir, exported.FileName)
	if err := copyFile(src, dst); err != nil {
		result.errorf("copy item file: %v", err)
		return result
	}

	if thumb := fabdb.ThumbnailPath(src); fileExists(thumb) {
		if err := copyFile(thumb, fabdb.ThumbnailPath(dst)); err != nil {
			result.warnf("thumbnail not copied: %v", err)
		}
	}

	item, err := fabdb.LoadItem(dst)
	if err != nil {
		result.errorf("load copied item: %v", err)
		return result
	}

	im.resolveReferences(item, exported.References, overrides, &result)

	if err := item.Save(); err != nil {
		if errors.Is(err, fabdb.ErrIdentityMismatch) {
			// The destination already held an item with a different
			// identity. Re-identify rather than silently adopt it.
			if err := item.SaveAs(dst); err != nil {
				result.errorf("save item: %v", err)
				return result
			}
			result.warnf("existing item had a different database identity; imported item was re-identified")
		} else {
			result.errorf("save item: %v", err)
			return result
		}
	}

	result.Success = true
	return result
}

// resolveReferences rewires each captured reference to the target
// configuration's index for the same name. An override name, when given,
// replaces the captured one before lookup. Unresolved names leave the
// item's shipped index in place and surface as warnings.
func (im *Importer) resolveReferences(item *fabdb.Item, refs ItemReferences, overrides Overrides, result *ItemResult) {
	for _, key := range fabdb.RefKeys() {
		name := refs.Get(key)
		if override, ok := overrides[key]; ok && override != "" {
			name = override
		}
		if name == "" {
			continue
		}

		entry, found := findByName(im.DB, key.Category(), name)
		if !found {
			result.warnf("%s %q not found in target configuration", key, name)
			continue
		}

		// The source recorded which supplier group owned the price
		// list; flag a same-named list that belongs to a different one.
		if key == fabdb.RefPriceList && refs.SupplierGroup != "" &&
			!strings.EqualFold(entry.Group, refs.SupplierGroup) {
			result.warnf("price list %q belongs to supplier group %q in the target, not %q",
				name, entry.Group, refs.SupplierGroup)
		}

		// Service assignments are owned by the target configuration;
		// resolution outcome is reported but the index is left alone.
		if key == fabdb.RefService {
			continue
		}
		item.Refs.Set(key, entry.Index)
	}
}
