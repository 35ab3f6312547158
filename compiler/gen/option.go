package gen

import (
	"errors"
	"slices"

	"go.uber.org/zap"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget adds an output target for the given dialect.
// Each language may be targeted once.
func WithTarget(d Dialect, dir string) Option {
	return func(c *Config) error {
		if d == nil {
			return NewConfigError("Target", nil, "dialect cannot be nil")
		}
		if dir == "" {
			return NewConfigError("Target", d.Name(), "target directory cannot be empty")
		}
		if slices.Contains(c.Languages(), d.Name()) {
			return NewConfigError("Target", d.Name(), "language targeted more than once")
		}
		c.Targets = append(c.Targets, Target{Dialect: d, Dir: dir})
		return nil
	}
}

// WithForce regenerates every output, ignoring recorded content hashes.
func WithForce(force bool) Option {
	return func(c *Config) error {
		c.Force = force
		return nil
	}
}

// WithExternals registers additional well-known types.
func WithExternals(externals ...*External) Option {
	return func(c *Config) error {
		if c.Externals == nil {
			c.Externals = make(map[string]*External)
		} else {
			c.Externals = cloneExternals(c.Externals)
		}
		for _, e := range externals {
			if e == nil || e.Name == "" {
				return NewConfigError("Externals", nil, "external type requires a name")
			}
			c.Externals[e.Name] = e
		}
		return nil
	}
}

// WithGoImportBase sets the import path of the Go target directory.
// For example: "github.com/org/game/protocol".
func WithGoImportBase(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("GoImportBase", nil, "import path cannot be empty")
		}
		c.GoImportBase = path
		return nil
	}
}

// WithBufferImport overrides the bit buffer import of one language.
func WithBufferImport(lang, imp string) Option {
	return func(c *Config) error {
		switch lang {
		case LangCpp, LangCSharp, LangJava, LangGo:
		default:
			return NewConfigError("BufferImports", lang, "unsupported language; use cpp, csharp, java, or go")
		}
		if c.BufferImports == nil {
			c.BufferImports = make(map[string]string)
		}
		c.BufferImports[lang] = imp
		return nil
	}
}

// WithFeatures enables specific features.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if !c.HasFeature(f.Name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithFeatureNames enables features by name.
func WithFeatureNames(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			f, ok := FeatureByName(name)
			if !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			if !c.HasFeature(name) {
				c.Features = append(c.Features, f)
			}
		}
		return nil
	}
}

// WithoutFeatures disables features by name, including default ones.
func WithoutFeatures(names ...string) Option {
	return func(c *Config) error {
		for _, name := range names {
			if _, ok := FeatureByName(name); !ok {
				return NewConfigError("Features", name, "unknown feature")
			}
			c.Features = slices.DeleteFunc(c.Features, func(f Feature) bool {
				return f.Name == name
			})
		}
		return nil
	}
}

// WithLogger sets the logger used during generation.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
