package fabdb

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/logging"
)

// database is the single concrete Database implementation. File-backed when
// dataPath is set, purely in-memory otherwise.
type database struct {
	profileName string
	dataPath    string
	tables      map[CategoryID]*table
}

// Option configures a database during construction.
type Option func(*database)

// WithProfileName sets the profile name the database reports.
func WithProfileName(name string) Option {
	return func(db *database) {
		db.profileName = name
	}
}

// Open loads a file-backed database from a profile's data directory.
// Each category lives in its own YAML file (services.yaml, materials.yaml,
// ...). A missing or unparsable category file means that category is not
// present in this configuration; it never fails the whole open. A missing
// data directory is fatal.
func Open(dataPath string, opts ...Option) (Database, error) {
	info, err := os.Stat(dataPath)
	if err != nil {
		return nil, errors.WrapIO("read", dataPath, err)
	}
	if !info.IsDir() {
		return nil, &errors.ValidationError{Field: "dataPath", Value: dataPath, Message: "not a directory"}
	}

	db := &database{
		profileName: constants.GlobalProfileName,
		dataPath:    dataPath,
		tables:      make(map[CategoryID]*table),
	}
	for _, opt := range opts {
		opt(db)
	}

	for _, id := range categories {
		entries, err := readCategoryFile(dataPath, id)
		if err != nil {
			logging.Debug().
				Err(err).
				Str("category", string(id)).
				Str("data_path", dataPath).
				Msg("Category not loaded")
			continue
		}
		t := newTable(id, db.persistTable)
		t.entries = entries
		db.tables[id] = t
	}

	return db, nil
}

// NewEmpty creates an in-memory database with every category present and
// empty. Useful for testing or as a substitute target configuration.
func NewEmpty(opts ...Option) Database {
	db := &database{
		profileName: constants.GlobalProfileName,
		tables:      make(map[CategoryID]*table),
	}
	for _, opt := range opts {
		opt(db)
	}
	for _, id := range categories {
		db.tables[id] = newTable(id, nil)
	}
	return db
}

// ProfileName returns the loaded profile's name.
func (db *database) ProfileName() string {
	return db.profileName
}

// DataPath returns the data directory, empty for in-memory databases.
func (db *database) DataPath() string {
	return db.dataPath
}

// Tables returns the present category tables in canonical order.
func (db *database) Tables() []Table {
	out := make([]Table, 0, len(db.tables))
	for _, id := range categories {
		if t, ok := db.tables[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Table returns the table for one category.
func (db *database) Table(id CategoryID) (Table, bool) {
	t, ok := db.tables[id]
	if !ok {
		return nil, false
	}
	return t, true
}

// persistTable writes one category file back to the data directory.
func (db *database) persistTable(id CategoryID, entries []Entry) error {
	if db.dataPath == "" {
		return nil
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return errors.WrapParse("yaml", string(id), err)
	}

	path := CategoryFilePath(db.dataPath, id)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// CategoryFilePath returns the data file path for one category.
func CategoryFilePath(dataPath string, id CategoryID) string {
	return filepath.Join(dataPath, string(id)+constants.CatalogFileExt)
}

// readCategoryFile reads and parses one category file.
func readCategoryFile(dataPath string, id CategoryID) ([]Entry, error) {
	path := CategoryFilePath(dataPath, id)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return entries, nil
}
