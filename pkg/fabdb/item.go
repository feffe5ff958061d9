package fabdb

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
)

// ErrIdentityMismatch indicates that an item file's on-disk identity no
// longer matches the loaded item, so a direct save would clobber a different
// item. Callers fall back to SaveAs, which re-identifies the item.
var ErrIdentityMismatch = errors.New("item identity mismatch")

// RefIndices are a content item's catalog references as stored on disk:
// integer indices into the owning configuration's category tables.
// Index 0 means "no reference".
type RefIndices struct {
	Service           int `yaml:"service,omitempty"`
	Material          int `yaml:"material,omitempty"`
	Specification     int `yaml:"specification,omitempty"`
	Section           int `yaml:"section,omitempty"`
	PriceList         int `yaml:"price_list,omitempty"`
	InstallationTimes int `yaml:"installation_times,omitempty"`
	FabricationTimes  int `yaml:"fabrication_times,omitempty"`
}

// Get returns the index stored in the given reference slot.
func (r RefIndices) Get(key RefKey) int {
	switch key {
	case RefService:
		return r.Service
	case RefMaterial:
		return r.Material
	case RefSpecification:
		return r.Specification
	case RefSection:
		return r.Section
	case RefPriceList:
		return r.PriceList
	case RefInstallationTimes:
		return r.InstallationTimes
	case RefFabricationTimes:
		return r.FabricationTimes
	}
	return 0
}

// Set stores an index into the given reference slot.
func (r *RefIndices) Set(key RefKey, index int) {
	switch key {
	case RefService:
		r.Service = index
	case RefMaterial:
		r.Material = index
	case RefSpecification:
		r.Specification = index
	case RefSection:
		r.Section = index
	case RefPriceList:
		r.PriceList = index
	case RefInstallationTimes:
		r.InstallationTimes = index
	case RefFabricationTimes:
		r.FabricationTimes = index
	}
}

// ProductRow is one row of an item's embedded product list.
type ProductRow struct {
	Name        string  `yaml:"name" json:"name"`
	Alias       string  `yaml:"alias,omitempty" json:"alias,omitempty"`
	ID          string  `yaml:"id,omitempty" json:"id,omitempty"`
	OrderNumber string  `yaml:"order_number,omitempty" json:"orderNumber,omitempty"`
	BoughtOut   bool    `yaml:"bought_out,omitempty" json:"boughtOut,omitempty"`
	Weight      float64 `yaml:"weight,omitempty" json:"weight,omitempty"`
}

// Item is one content item file. CID is the catalog item type code;
// DatabaseID is the item's unique identity across files.
type Item struct {
	CID         int          `yaml:"cid"`
	DatabaseID  string       `yaml:"database_id"`
	Name        string       `yaml:"name"`
	Refs        RefIndices   `yaml:"refs"`
	ProductList []ProductRow `yaml:"product_list,omitempty"`

	path string
}

// LoadItem reads an item file.
func LoadItem(path string) (*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var item Item
	if err := yaml.Unmarshal(data, &item); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	if item.DatabaseID == "" {
		return nil, &errors.ValidationError{Field: "database_id", Message: "item has no database id"}
	}

	item.path = path
	return &item, nil
}

// Path returns the file the item was loaded from or last saved to.
func (i *Item) Path() string {
	return i.path
}

// IsProductList reports whether the item carries an embedded product list.
func (i *Item) IsProductList() bool {
	return len(i.ProductList) > 0
}

// Save writes the item back to the file it was loaded from. It refuses to
// write when the on-disk item's identity no longer matches, returning
// ErrIdentityMismatch so the caller can fall back to SaveAs.
func (i *Item) Save() error {
	if i.path == "" {
		return &errors.ConfigError{Component: "item", Message: "no file path to save to"}
	}

	if data, err := os.ReadFile(i.path); err == nil {
		var onDisk Item
		if err := yaml.Unmarshal(data, &onDisk); err == nil &&
			onDisk.DatabaseID != "" && !strings.EqualFold(onDisk.DatabaseID, i.DatabaseID) {
			return ErrIdentityMismatch
		}
	}

	return i.write(i.path)
}

// SaveAs re-identifies the item with a fresh database id and writes it to
// the given path unconditionally.
func (i *Item) SaveAs(path string) error {
	i.DatabaseID = uuid.NewString()
	if err := i.write(path); err != nil {
		return err
	}
	i.path = path
	return nil
}

func (i *Item) write(path string) error {
	data, err := yaml.Marshal(i)
	if err != nil {
		return errors.WrapParse("yaml", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// ThumbnailPath returns the companion thumbnail path for an item file.
// The thumbnail is optional; callers check existence themselves.
func ThumbnailPath(itemPath string) string {
	return strings.TrimSuffix(itemPath, constants.ItemFileExt) + constants.ThumbnailFileExt
}
