package fabdb

import (
	"testing"
)

// TestDatabase creates an in-memory database seeded with a small but
// realistic configuration. The t.Helper() call ensures stack traces point
// to the test, not this function.
func TestDatabase(t testing.TB) Database {
	t.Helper()

	db := NewEmpty(WithProfileName("Global"))

	seed := map[CategoryID][]Entry{
		Services:          {{Name: "Supply Air"}, {Name: "Chilled Water"}},
		Materials:         {{Name: "Galvanized Steel"}, {Name: "Copper"}},
		Specifications:    {{Name: "DW144"}, {Name: "SMACNA"}},
		Sections:          {{Name: "Ductwork"}, {Name: "Pipework"}},
		Connectors:        {{Name: "Slip Joint"}, {Name: "Flanged"}},
		PriceLists:        {{Name: "2026 List", Group: "Acme Supply"}},
		SupplierGroups:    {{Name: "Acme Supply"}},
		InstallationTimes: {{Name: "Standard Install"}},
		FabricationTimes:  {{Name: "Shop Rates"}},
	}

	for id, entries := range seed {
		tbl, ok := db.Table(id)
		if !ok {
			t.Fatalf("missing table %s", id)
		}
		for _, e := range entries {
			if err := tbl.Add(e); err != nil {
				t.Fatalf("seed %s: %v", id, err)
			}
		}
	}

	return db
}

// TestItem creates a test item wired to the TestDatabase references.
func TestItem(t testing.TB) *Item {
	t.Helper()
	return &Item{
		CID:        2521,
		DatabaseID: "test-item-0001",
		Name:       "Test Elbow",
		Refs: RefIndices{
			Service:           1,
			Material:          2,
			Specification:     1,
			Section:           1,
			PriceList:         1,
			InstallationTimes: 1,
			FabricationTimes:  1,
		},
	}
}
