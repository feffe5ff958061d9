// Package manifest snapshots a profile's catalog categories into a
// name-indexed document. The manifest is the preview and reconciliation
// surface for cross-profile operations: it records what a profile's catalog
// contained, by name, without requiring the profile to be loaded.
//
// One manifest exists per profile, stored as manifest.json inside the
// profile's data directory. Regeneration overwrites it wholesale, never
// merges.
package manifest

import (
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/goccy/go-json"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// Entry is one named catalog row in a manifest category.
type Entry struct {
	Name  string `json:"name"`
	Group string `json:"group,omitempty"`
}

// Document is the name-indexed snapshot of one profile's catalog.
// A category is present only if it had at least one entry when the manifest
// was generated; absence means "not captured", not "empty".
type Document struct {
	ProfileName string                       `json:"profileName"`
	DataPath    string                       `json:"dataPath"`
	GeneratedAt utc.Time                     `json:"generatedAt"`
	Categories  map[fabdb.CategoryID][]Entry `json:"categories"`
}

// Category returns the captured entries for one category and whether the
// category was captured at all.
func (d *Document) Category(id fabdb.CategoryID) ([]Entry, bool) {
	entries, ok := d.Categories[id]
	return entries, ok
}

// Names returns the captured entry names for one category.
func (d *Document) Names(id fabdb.CategoryID) []string {
	entries := d.Categories[id]
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Generate snapshots every enumerable category of the given database.
// Each category is enumerated independently; one category failing to
// enumerate (a catalog type unsupported in this configuration) is simply
// omitted and never aborts the manifest.
func Generate(db fabdb.Database) *Document {
	doc := &Document{
		ProfileName: db.ProfileName(),
		DataPath:    db.DataPath(),
		GeneratedAt: utc.Now(),
		Categories:  make(map[fabdb.CategoryID][]Entry),
	}

	for _, id := range fabdb.Categories() {
		table, ok := db.Table(id)
		if !ok {
			continue
		}
		rows := table.List()
		if len(rows) == 0 {
			continue
		}
		entries := make([]Entry, len(rows))
		for i, row := range rows {
			entries[i] = Entry{Name: row.Name, Group: row.Group}
		}
		doc.Categories[id] = entries
	}

	return doc
}

// Write persists the document to its fixed filename inside dataPath,
// replacing any prior manifest.
func Write(doc *Document, dataPath string) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WrapParse("json", constants.ManifestFileName, err)
	}

	path := filepath.Join(dataPath, constants.ManifestFileName)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Load reads a profile's manifest. A missing or unparsable manifest returns
// (nil, nil): callers treat "no manifest" as "no preview available" and
// prompt for regeneration rather than failing.
func Load(dataPath string) (*Document, error) {
	path := filepath.Join(dataPath, constants.ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil
	}
	return &doc, nil
}
