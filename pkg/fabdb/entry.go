package fabdb

// Entry is one catalog row. Index is the store-internal integer reference;
// it is assigned per configuration and carries no meaning in any other
// profile. Name is the portable identity. Group is optional grouping
// metadata; price-list entries use it for their owning supplier group.
type Entry struct {
	Index int    `yaml:"index" json:"index"`
	Name  string `yaml:"name" json:"name"`
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
}
