// Package pack implements content-package export and import between
// fabrication database configurations. A package is a portable directory of
// item files plus a manifest that captures every catalog reference by name.
// Names are the identity bridge: the underlying store records references as
// integer indices that are meaningful only within one configuration, so a
// package carries the human-readable names instead and the importer
// reconciles them against the target configuration's live catalog.
package pack

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentstation/utc"
	"github.com/goccy/go-json"

	"github.com/Ty9112/FabricationSample-sub002/pkg/constants"
	"github.com/Ty9112/FabricationSample-sub002/pkg/errors"
	"github.com/Ty9112/FabricationSample-sub002/pkg/fabdb"
)

// ItemReferences are one item's catalog references captured by name.
// Empty fields mean the item carried no reference in that slot, or the
// reference could not be captured at export time.
type ItemReferences struct {
	Service            string `json:"service,omitempty"`
	Material           string `json:"material,omitempty"`
	Specification      string `json:"specification,omitempty"`
	SectionDescription string `json:"sectionDescription,omitempty"`
	PriceList          string `json:"priceList,omitempty"`
	SupplierGroup      string `json:"supplierGroup,omitempty"`
	InstallationTimes  string `json:"installationTimesTable,omitempty"`
	FabricationTimes   string `json:"fabricationTimesTable,omitempty"`
}

// Get returns the captured name for one reference slot.
func (r ItemReferences) Get(key fabdb.RefKey) string {
	switch key {
	case fabdb.RefService:
		return r.Service
	case fabdb.RefMaterial:
		return r.Material
	case fabdb.RefSpecification:
		return r.Specification
	case fabdb.RefSection:
		return r.SectionDescription
	case fabdb.RefPriceList:
		return r.PriceList
	case fabdb.RefInstallationTimes:
		return r.InstallationTimes
	case fabdb.RefFabricationTimes:
		return r.FabricationTimes
	}
	return ""
}

// set stores a captured name into one reference slot.
func (r *ItemReferences) set(key fabdb.RefKey, name string) {
	switch key {
	case fabdb.RefService:
		r.Service = name
	case fabdb.RefMaterial:
		r.Material = name
	case fabdb.RefSpecification:
		r.Specification = name
	case fabdb.RefSection:
		r.SectionDescription = name
	case fabdb.RefPriceList:
		r.PriceList = name
	case fabdb.RefInstallationTimes:
		r.InstallationTimes = name
	case fabdb.RefFabricationTimes:
		r.FabricationTimes = name
	}
}

// ExportedItem is one content item's entry in the package manifest.
type ExportedItem struct {
	FileName      string             `json:"fileName"`
	SourceFolder  string             `json:"sourceFolder"`
	CID           int                `json:"cid"`
	DatabaseID    string             `json:"databaseId"`
	IsProductList bool               `json:"isProductList"`
	References    ItemReferences     `json:"references"`
	ProductList   []fabdb.ProductRow `json:"productList,omitempty"`
}

// Package is the content package manifest.
type Package struct {
	ID                string         `json:"id"`
	ConfigurationName string         `json:"configurationName"`
	ExportedBy        string         `json:"exportedBy"`
	ExportedAt        utc.Time       `json:"exportedAt"`
	Items             []ExportedItem `json:"items"`
}

// Overrides are user-supplied replacement names for references that did not
// resolve in the target configuration. Absent keys mean "leave unresolved".
type Overrides map[fabdb.RefKey]string

// ItemResult is the per-item outcome of a validate or import run. Each
// item's outcome is fully independent of every other item's.
type ItemResult struct {
	FileName string   `json:"fileName"`
	Success  bool     `json:"success"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// warnf appends a formatted warning.
func (r *ItemResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// errorf appends a formatted error.
func (r *ItemResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// ProgressEvent reports one processed item during a long-running operation.
type ProgressEvent struct {
	Op       string // "export", "validate", "import"
	Index    int    // zero-based position within the run
	Total    int
	FileName string
}

// ProgressFunc receives progress checkpoints. Invoked synchronously from the
// processing loop; implementations must not block.
type ProgressFunc func(ProgressEvent)

// LoadPackage reads a package manifest from a package directory. A missing
// manifest returns (nil, nil); an unparsable one is a fatal error since
// nothing can proceed without it.
func LoadPackage(dir string) (*Package, error) {
	path := filepath.Join(dir, constants.PackageManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var pkg Package
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}
	return &pkg, nil
}

// writeManifest persists the package manifest into the package directory.
func writeManifest(pkg *Package, dir string) error {
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return errors.WrapParse("json", constants.PackageManifestFileName, err)
	}
	path := filepath.Join(dir, constants.PackageManifestFileName)
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// copyFile copies one file, creating the destination directory as needed.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("read", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(dst), err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return errors.WrapIO("create", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.WrapIO("copy", dst, err)
	}
	return out.Close()
}
