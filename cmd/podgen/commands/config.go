package commands

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/compiler/gen/cpp"
	"github.com/syssam/podgen/compiler/gen/csharp"
	"github.com/syssam/podgen/compiler/gen/golang"
	"github.com/syssam/podgen/compiler/gen/java"
)

// EnvPrefix prefixes every environment override, e.g. PODGEN_CPP_PATH.
const EnvPrefix = "PODGEN"

// Options is the merged command configuration. Precedence, lowest first:
// config file, environment, flags.
type Options struct {
	// Schemas are paths or glob patterns used when no file is passed on
	// the command line.
	Schemas []string `mapstructure:"schemas"`

	CppPath    string `mapstructure:"cpp_path"`
	CSharpPath string `mapstructure:"cs_path"`
	JavaPath   string `mapstructure:"java_path"`
	GoPath     string `mapstructure:"go_path"`

	GoImportBase  string            `mapstructure:"go_import_base"`
	BufferImports map[string]string `mapstructure:"buffer_imports"`
	Externals     []ExternalOptions `mapstructure:"externals"`

	Force           bool     `mapstructure:"force"`
	Strict          bool     `mapstructure:"strict"`
	Features        []string `mapstructure:"features"`
	DisableFeatures []string `mapstructure:"disable_features"`

	Verbose int  `mapstructure:"verbose"`
	JSONLog bool `mapstructure:"json_log"`
}

// ExternalOptions declares a well-known type in the config file.
type ExternalOptions struct {
	Name    string            `mapstructure:"name"`
	Root    bool              `mapstructure:"root"`
	Imports map[string]string `mapstructure:"imports"`
}

// flagKeys maps flag names to their configuration keys.
var flagKeys = map[string]string{
	"cpp-path":        "cpp_path",
	"cs-path":         "cs_path",
	"java-path":       "java_path",
	"go-path":         "go_path",
	"go-import-base":  "go_import_base",
	"buffer-import":   "buffer_imports",
	"force":           "force",
	"strict":          "strict",
	"feature":         "features",
	"disable-feature": "disable_features",
	"verbose":         "verbose",
	"json-log":        "json_log",
}

// registerFlags adds the configuration flags shared by all commands.
func registerFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: podgen.yaml, podgen.toml or podgen.json in the working directory)")
	fs.String("cpp-path", "", "output directory of C++ headers; C++ is skipped when empty")
	fs.String("cs-path", "", "output directory of C# sources; C# is skipped when empty")
	fs.String("java-path", "", "output directory of Java sources; Java is skipped when empty")
	fs.String("go-path", "", "output directory of Go packages; Go is skipped when empty")
	fs.String("go-import-base", "", "import path of the Go output directory")
	fs.StringToString("buffer-import", nil, "bit buffer import per language, e.g. java=net.wire.BitBuffer")
	fs.BoolP("force", "f", false, "regenerate every output, ignoring recorded hashes")
	fs.Bool("strict", false, "exit non-zero when any template fails")
	fs.StringSlice("feature", nil, "enable a feature flag (repeatable)")
	fs.StringSlice("disable-feature", nil, "disable a feature flag, including default ones (repeatable)")
	fs.CountP("verbose", "v", "increase output verbosity (-v, -vv)")
	fs.Bool("json-log", false, "emit logs as JSON lines")
}

// newViper layers the config file and environment under the flags of fs.
func newViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	for name, key := range flagKeys {
		if f := fs.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errors.Wrapf(err, "bind flag %s", name)
			}
		}
	}

	path, _ := fs.GetString("config")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("podgen")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.WithHint(errors.Wrap(err, "read config"),
				"config files may be YAML, TOML or JSON")
		}
	}
	return v, nil
}

// loadOptions resolves the options of a command invocation.
func loadOptions(fs *pflag.FlagSet) (*Options, error) {
	v, err := newViper(fs)
	if err != nil {
		return nil, err
	}
	o := &Options{}
	if err := v.Unmarshal(o); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if used := v.ConfigFileUsed(); used != "" {
		o.resolve(filepath.Dir(used))
	}
	return o, nil
}

// resolve makes the schema patterns of a config file relative to it.
func (o *Options) resolve(base string) {
	for i, p := range o.Schemas {
		if !filepath.IsAbs(p) {
			o.Schemas[i] = filepath.Join(base, p)
		}
	}
}

// SchemaPaths returns the template files to load: the arguments if any,
// else the expanded Schemas patterns. The result is sorted and unique.
func (o *Options) SchemaPaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var paths []string
	for _, pattern := range o.Schemas {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "schema pattern %q", pattern)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, errors.WithHint(errors.New("no template files"),
			"pass template files as arguments or list them under schemas in podgen.yaml")
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

// targetDirs returns the configured output directory per language.
func (o *Options) targetDirs() map[string]string {
	dirs := make(map[string]string)
	for lang, dir := range map[string]string{
		gen.LangCpp:    o.CppPath,
		gen.LangCSharp: o.CSharpPath,
		gen.LangJava:   o.JavaPath,
		gen.LangGo:     o.GoPath,
	} {
		if dir != "" {
			dirs[lang] = dir
		}
	}
	return dirs
}

// GenOptions converts the options into generator options.
func (o *Options) GenOptions(log *zap.SugaredLogger) ([]gen.Option, error) {
	var opts []gen.Option
	for _, t := range []struct {
		dir string
		d   gen.Dialect
	}{
		{o.CppPath, cpp.New()},
		{o.CSharpPath, csharp.New()},
		{o.JavaPath, java.New()},
		{o.GoPath, golang.New()},
	} {
		if t.dir != "" {
			opts = append(opts, gen.WithTarget(t.d, t.dir))
		}
	}
	if len(opts) == 0 {
		return nil, errors.WithHint(errors.New("no output directory"),
			"pass at least one of --cpp-path, --cs-path, --java-path or --go-path")
	}
	opts = append(opts, gen.WithForce(o.Force))
	if o.GoImportBase != "" {
		opts = append(opts, gen.WithGoImportBase(o.GoImportBase))
	}
	langs := make([]string, 0, len(o.BufferImports))
	for lang := range o.BufferImports {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	for _, lang := range langs {
		opts = append(opts, gen.WithBufferImport(lang, o.BufferImports[lang]))
	}
	if len(o.Externals) > 0 {
		ext := make([]*gen.External, 0, len(o.Externals))
		for _, e := range o.Externals {
			ext = append(ext, &gen.External{Name: e.Name, Root: e.Root, Imports: e.Imports})
		}
		opts = append(opts, gen.WithExternals(ext...))
	}
	if len(o.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(o.Features...))
	}
	if len(o.DisableFeatures) > 0 {
		opts = append(opts, gen.WithoutFeatures(o.DisableFeatures...))
	}
	if log != nil {
		opts = append(opts, gen.WithLogger(log))
	}
	return opts, nil
}
