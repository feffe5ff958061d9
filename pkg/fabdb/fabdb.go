// Package fabdb provides the catalog store model for a fabrication database
// profile. A profile's catalog is a set of named categories (services,
// materials, specifications, price lists, ...) whose rows are addressed
// internally by integer index and externally by name. The integer indices are
// meaningful only within one profile; names are the portable identity used
// when data moves between profiles.
//
// The package offers a single concrete database implementation that can be
// file-backed (one YAML file per category inside a profile's data directory)
// or purely in-memory for tests, behind small capability interfaces.
//
// Example usage:
//
//	db, err := fabdb.Open("./data", fabdb.WithProfileName("Global"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if materials, ok := db.Table(fabdb.Materials); ok {
//	    entry, found := materials.FindByName("Copper")
//	    ...
//	}
package fabdb

// Database is the live catalog store for one loaded profile. It is injected
// into the manifest, journal, and package components rather than accessed as
// ambient global state, so tests can substitute an in-memory construction.
type Database interface {
	// ProfileName returns the name of the loaded profile. The default
	// profile reports the literal name "Global"; callers must treat an
	// empty name as Global too.
	ProfileName() string

	// DataPath returns the catalog data directory, empty for in-memory
	// databases.
	DataPath() string

	// Tables returns every category table present in this configuration,
	// in canonical category order.
	Tables() []Table

	// Table returns the table for one category, reporting whether the
	// category exists in this configuration.
	Table(id CategoryID) (Table, bool)
}

// Table is the per-category capability surface of the catalog store.
// One implementation serves every category; there is no reflection-based
// dispatch on category types.
type Table interface {
	// ID returns the category this table holds.
	ID() CategoryID

	// Len returns the number of entries.
	Len() int

	// List returns all entries in stable enumeration order.
	List() []Entry

	// FindByName returns the first entry whose name matches,
	// case-insensitively.
	FindByName(name string) (Entry, bool)

	// FindByIndex returns the entry with the given internal index.
	FindByIndex(index int) (Entry, bool)

	// Add appends an entry, assigning its index when unset.
	Add(entry Entry) error

	// Delete removes the entry with the given name (case-insensitive).
	Delete(name string) error

	// Save persists the table through the store's backing, a no-op for
	// in-memory databases.
	Save() error
}

// Compile-time interface checks to ensure proper implementation.
var (
	_ Database = (*database)(nil)
	_ Table    = (*table)(nil)
)
