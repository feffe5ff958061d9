package pack

import (
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// Validate resolves every captured reference of every item against the
// target configuration by name and reports, per item, which references
// would not resolve on import. Nothing is written; the result is a
// preview of the reconciliation the importer will perform.
//
// Service references are report-only: items keep whatever service index
// they carry, so an unresolved service is a warning here too, never an
// error.
func Validate(pkg *Package, db fabdb.Database) []ItemResult {
	results := make([]ItemResult, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		results = append(results, validateItem(item, db))
	}
	return results
}

func validateItem(item ExportedItem, db fabdb.Database) ItemResult {
	result := ItemResult{FileName: item.FileName, Success: true}

	for _, key := range fabdb.RefKeys() {
		name := item.References.Get(key)
		if name == "" {
			continue
		}
		if _, found := findByName(db, key.Category(), name); !found {
			result.warnf("%s %q not found in target configuration", key, name)
		}
	}

	if item.References.SupplierGroup != "" {
		if !supplierGroupExists(db, item.References.SupplierGroup) {
			result.warnf("SupplierGroup %q not found in target configuration", item.References.SupplierGroup)
		}
	}

	return result
}

func findByName(db fabdb.Database, id fabdb.CategoryID, name string) (fabdb.Entry, bool) {
	table, ok := db.Table(id)
	if !ok {
		return fabdb.Entry{}, false
	}
	return table.FindByName(name)
}

func supplierGroupExists(db fabdb.Database, name string) bool {
	_, found := findByName(db, fabdb.SupplierGroups, name)
	return found
}
