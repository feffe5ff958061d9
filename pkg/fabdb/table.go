package fabdb

import (
	"strings"
	"sync"

	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
)

// table is the single Table implementation. Entries keep their load order so
// enumeration is stable across repeated runs. persist is the store hook that
// writes the table back to its backing; nil for in-memory databases.
type table struct {
	mu      sync.RWMutex
	id      CategoryID
	entries []Entry
	persist func(id CategoryID, entries []Entry) error
}

// newTable creates a table for one category.
func newTable(id CategoryID, persist func(CategoryID, []Entry) error) *table {
	return &table{id: id, persist: persist}
}

// ID returns the category this table holds.
func (t *table) ID() CategoryID {
	return t.id
}

// Len returns the number of entries.
func (t *table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// List returns a copy of all entries in enumeration order.
func (t *table) List() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// FindByName returns the first entry whose name matches, case-insensitively.
func (t *table) FindByName(name string) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if strings.EqualFold(e.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// FindByIndex returns the entry with the given internal index.
func (t *table) FindByIndex(index int) (Entry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if e.Index == index {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends an entry. When the entry's index is unset it is assigned the
// next free index, starting at 1; index 0 always means "no reference".
func (t *table) Add(entry Entry) error {
	if entry.Name == "" {
		return &errors.ValidationError{Field: "name", Message: "entry name cannot be empty"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for _, e := range t.entries {
		if strings.EqualFold(e.Name, entry.Name) {
			return errors.WrapResource("add", string(t.id), entry.Name, errors.ErrAlreadyExists)
		}
	}

	if entry.Index == 0 {
		max := 0
		for _, e := range t.entries {
			if e.Index > max {
				max = e.Index
			}
		}
		entry.Index = max + 1
	}

	t.entries = append(t.entries, entry)
	return nil
}

// Delete removes the entry with the given name, case-insensitively.
func (t *table) Delete(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, e := range t.entries {
		if strings.EqualFold(e.Name, name) {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return nil
		}
	}

	return &errors.NotFoundError{Resource: string(t.id), Name: name}
}

// Save persists the table through the store hook. In-memory tables have no
// backing and Save is a successful no-op.
func (t *table) Save() error {
	t.mu.RLock()
	persist := t.persist
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	t.mu.RUnlock()

	if persist == nil {
		return nil
	}
	return persist(t.id, entries)
}
