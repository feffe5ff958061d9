package profiles

// Descriptor describes one discovered profile.
type Descriptor struct {
	// Name is "Global" for the default profile, the directory name for
	// named profiles.
	Name string `json:"name"`

	// RootPath is the common installation root shared by all profiles.
	RootPath string `json:"rootPath"`

	// DataPath is the profile's catalog data directory.
	DataPath string `json:"dataPath"`

	// IsCurrent reports whether this is the profile the active
	// configuration is loaded from. Computed by name, never by path:
	// the active configuration's reported data path does not reliably
	// distinguish Global from a named profile.
	IsCurrent bool `json:"isCurrent"`
}

// IsGlobal reports whether this descriptor is the default profile.
func (d Descriptor) IsGlobal() bool {
	return IsGlobalName(d.Name)
}
