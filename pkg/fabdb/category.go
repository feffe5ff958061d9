package fabdb

// CategoryID identifies one enumerable catalog category.
type CategoryID string

// The catalog categories of a fabrication database configuration.
const (
	// Services are the duct/pipe services an item can belong to.
	Services CategoryID = "services"

	// Materials are the fabrication materials.
	Materials CategoryID = "materials"

	// Specifications are the construction specifications.
	Specifications CategoryID = "specifications"

	// Sections are the section descriptions used for costing breakdown.
	Sections CategoryID = "sections"

	// Connectors are the connector definitions.
	Connectors CategoryID = "connectors"

	// PriceLists are supplier price lists. Each entry's Group holds the
	// supplier group that owns the list.
	PriceLists CategoryID = "price-lists"

	// SupplierGroups are the supplier groups themselves.
	SupplierGroups CategoryID = "supplier-groups"

	// InstallationTimes are the installation labor time tables.
	InstallationTimes CategoryID = "installation-times"

	// FabricationTimes are the fabrication labor time tables.
	FabricationTimes CategoryID = "fabrication-times"
)

// categories is the canonical enumeration order. Journal execution and
// manifest generation walk categories in this order so repeated runs are
// deterministic.
var categories = []CategoryID{
	Services,
	Materials,
	Specifications,
	Sections,
	Connectors,
	PriceLists,
	SupplierGroups,
	InstallationTimes,
	FabricationTimes,
}

// Categories returns all known category IDs in canonical order.
func Categories() []CategoryID {
	out := make([]CategoryID, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether the id names a known category.
func (id CategoryID) Valid() bool {
	for _, c := range categories {
		if c == id {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer.
func (id CategoryID) String() string {
	return string(id)
}

// RefKey identifies one catalog reference slot on a content item. Keys are
// the stable identifiers used in package manifests and user-supplied
// overrides.
type RefKey string

// The reference slots a content item carries.
const (
	RefService           RefKey = "Service"
	RefMaterial          RefKey = "Material"
	RefSpecification     RefKey = "Specification"
	RefSection           RefKey = "Section"
	RefPriceList         RefKey = "PriceList"
	RefInstallationTimes RefKey = "InstallationTimes"
	RefFabricationTimes  RefKey = "FabricationTimes"
)

// refKeys is the canonical reference resolution order.
var refKeys = []RefKey{
	RefService,
	RefMaterial,
	RefSpecification,
	RefSection,
	RefPriceList,
	RefInstallationTimes,
	RefFabricationTimes,
}

// RefKeys returns all reference keys in canonical order.
func RefKeys() []RefKey {
	out := make([]RefKey, len(refKeys))
	copy(out, refKeys)
	return out
}

// Category returns the catalog category a reference key resolves against.
func (k RefKey) Category() CategoryID {
	switch k {
	case RefService:
		return Services
	case RefMaterial:
		return Materials
	case RefSpecification:
		return Specifications
	case RefSection:
		return Sections
	case RefPriceList:
		return PriceLists
	case RefInstallationTimes:
		return InstallationTimes
	case RefFabricationTimes:
		return FabricationTimes
	}
	return ""
}
