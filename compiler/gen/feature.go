package gen

var (
	// FeatureIncremental embeds the content hash of each template in the
	// generated header and skips outputs whose recorded hash is unchanged.
	FeatureIncremental = Feature{
		Name:        "incremental",
		Stage:       Stable,
		Default:     true,
		Description: "Records the template content hash in generated headers and skips unchanged outputs",
	}

	// FeatureParentSerialization makes the copy/save/load methods of a record
	// call the methods of its parent before handling its own fields, so that
	// inherited fields travel on the wire.
	FeatureParentSerialization = Feature{
		Name:        "serialization/parent",
		Stage:       Beta,
		Default:     true,
		Description: "Serialization methods delegate to the parent record before writing own fields",
	}

	// FeatureGoImports runs generated Go files through goimports.
	FeatureGoImports = Feature{
		Name:        "go/imports",
		Stage:       Stable,
		Default:     true,
		Description: "Formats generated Go files and groups their imports with goimports",
	}

	// FeatureGoStringer adds a String method to generated Go enums.
	FeatureGoStringer = Feature{
		Name:        "go/stringer",
		Stage:       Experimental,
		Default:     false,
		Description: "Generates a String method for Go enum types",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureIncremental,
		FeatureParentSerialization,
		FeatureGoImports,
		FeatureGoStringer,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development and may change or disappear.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and no breaking changes are expected.
	Beta

	// Stable features have been the default for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return "unknown"
	}
}

// A Feature of the podgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature registered under the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// DefaultFeatures returns the features enabled by default.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}
