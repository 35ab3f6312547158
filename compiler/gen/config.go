package gen

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// Target language names, as reported by Dialect.Name.
const (
	LangCpp    = "cpp"
	LangCSharp = "csharp"
	LangJava   = "java"
	LangGo     = "go"
)

// External describes a well-known type that has no template in the registry.
type External struct {
	// Name as written in templates.
	Name string
	// Root types are implicit base classes. They are dropped from
	// inheritance clauses and never imported.
	Root bool
	// Imports maps a language name to the import needed to use the type,
	// e.g. "java" -> "java.io.Serializable". An empty import means the type
	// exists in that language without one. Interfaces are declared only in
	// the languages listed here.
	Imports map[string]string
}

// Supports reports if the type exists in the given language.
func (e *External) Supports(lang string) bool {
	if e == nil {
		return false
	}
	_, ok := e.Imports[lang]
	return ok
}

// Import returns the import for the given language, if any.
func (e *External) Import(lang string) string {
	if e == nil {
		return ""
	}
	return e.Imports[lang]
}

// DefaultExternals returns the external types known without configuration.
func DefaultExternals() map[string]*External {
	return map[string]*External{
		"Object":       {Name: "Object", Root: true},
		"object":       {Name: "object", Root: true},
		"Serializable": {Name: "Serializable", Imports: map[string]string{LangJava: "java.io.Serializable"}},
		"Cloneable":    {Name: "Cloneable", Imports: map[string]string{LangJava: ""}},
	}
}

// Target pairs a language dialect with the directory its files are written to.
type Target struct {
	Dialect Dialect
	Dir     string
}

// Config holds the code generation settings shared by all targets.
type Config struct {
	// Targets to generate, in order. A language without a target is skipped.
	Targets []Target

	// Force disables the incremental skip and regenerates every output.
	Force bool

	// Externals are the well-known types allowed as parent or interface
	// without a template.
	Externals map[string]*External

	// GoImportBase is the import path of the Go target directory. It is
	// required only when Go output references types in other packages.
	GoImportBase string

	// BufferImports overrides the import of the bit buffer type per
	// language.
	BufferImports map[string]string

	// Features holds the enabled feature-flags.
	Features []Feature

	// Logger receives progress and diagnostics. Never nil after NewConfig.
	Logger *zap.SugaredLogger
}

// DefaultConfig returns a config with the default externals, the default
// features and a no-op logger.
func DefaultConfig() *Config {
	return &Config{
		Externals: DefaultExternals(),
		Features:  DefaultFeatures(),
		Logger:    zap.NewNop().Sugar(),
	}
}

// FeatureEnabled reports if the given feature name is enabled.
// It returns a ConfigError for unknown feature names.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, NewConfigError("Features", name, "unknown feature")
	}
	return c.HasFeature(name), nil
}

// HasFeature reports if the feature is present in the enabled list.
func (c *Config) HasFeature(name string) bool {
	return slices.ContainsFunc(c.Features, func(f Feature) bool {
		return f.Name == name
	})
}

// External returns the external type registered under the given name.
func (c *Config) External(name string) (*External, bool) {
	e, ok := c.Externals[name]
	return e, ok
}

// BufferImport returns the configured bit buffer import for a language, or
// the given fallback.
func (c *Config) BufferImport(lang, fallback string) string {
	if v, ok := c.BufferImports[lang]; ok {
		return v
	}
	return fallback
}

// Languages returns the names of the configured target languages.
func (c *Config) Languages() []string {
	langs := make([]string, 0, len(c.Targets))
	for _, t := range c.Targets {
		langs = append(langs, t.Dialect.Name())
	}
	return langs
}

func (c *Config) logger() *zap.SugaredLogger {
	if c.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return c.Logger
}

func cloneExternals(m map[string]*External) map[string]*External {
	out := make(map[string]*External, len(m))
	maps.Copy(out, m)
	return out
}
