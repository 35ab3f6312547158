// Package commands implements the podgen command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/compiler/load"
	"github.com/syssam/podgen/internal/logger"
)

// ErrFailed is returned in strict mode when any template failed.
var ErrFailed = errors.New("podgen: some outputs failed")

// state carries the options resolved before a command runs.
type state struct {
	opts *Options
}

// NewRootCmd returns the podgen command tree.
func NewRootCmd() *cobra.Command {
	st := &state{}
	cmd := &cobra.Command{
		Use:   "podgen [template files...]",
		Short: "Generate C++, C#, Java and Go types from templates",
		Long: `podgen reads Enum and Record templates and emits one source file per
template and target language. Records may carry a copy/save/load
serialization triad over a bit buffer.

A language is generated only when its output directory is set. Outputs
whose template did not change since the last run are skipped unless
--force is given.

Examples:
  podgen --cpp-path out/cpp --java-path out/java templates/*.json
  podgen --go-path out/go --go-import-base example.com/game/proto Point.yaml
  podgen check --cs-path out/cs templates/*.json
  podgen watch --config podgen.yaml`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: st.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := run(cmd.Context(), cmd.OutOrStdout(), st.opts, args, gen.Generate)
			return err
		},
	}
	registerFlags(cmd.PersistentFlags())
	cmd.AddCommand(newCheckCmd(st), newWatchCmd(st), newVersionCmd())
	return cmd
}

// setup resolves the options and initializes the global logger.
func (st *state) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	o, err := loadOptions(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logger.Initialize(o.JSONLog, o.Verbose); err != nil {
		return errors.Wrap(err, "initialize logger")
	}
	logger.Debugw("options resolved", "targets", o.targetDirs(), "force", o.Force, "features", o.Features)
	st.opts = o
	return nil
}

// pipeline is gen.Generate or gen.Check.
type pipeline func(context.Context, *gen.Graph) (*gen.Report, error)

// run loads the templates, builds the graph and runs p over it. Load and
// template failures are logged and reported; they fail the command only in
// strict mode.
func run(ctx context.Context, w io.Writer, o *Options, args []string, p pipeline) (*gen.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	opts, err := o.GenOptions(logger.Logger)
	if err != nil {
		return nil, err
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "configure generator")
	}
	paths, err := o.SchemaPaths(args)
	if err != nil {
		return nil, err
	}
	res, err := load.Files(ctx, paths...)
	if err != nil {
		return nil, errors.Wrap(err, "load templates")
	}
	for _, fe := range res.Errors {
		logger.Errorw("template not loaded", "path", fe.Path, "error", fe.Err)
	}
	g, err := gen.NewGraph(cfg, res.Schemas...)
	if err != nil {
		return nil, errors.Wrap(err, "build type graph")
	}
	rep, err := p(ctx, g)
	if err != nil {
		return rep, errors.Wrap(err, "generate")
	}
	printReport(w, rep, len(res.Errors))
	if o.Strict && (len(rep.Failed) > 0 || len(res.Errors) > 0) {
		return rep, errors.WithHint(ErrFailed, "run with -v for per-output details")
	}
	return rep, nil
}

func printReport(w io.Writer, rep *gen.Report, loadErrors int) {
	for _, o := range rep.Failed {
		fmt.Fprintf(w, "FAIL %s %s: %v\n", o.Language, o.Type, o.Err)
	}
	fmt.Fprintf(w, "%s", rep.Summary())
	if loadErrors > 0 {
		fmt.Fprintf(w, ", %d unreadable", loadErrors)
	}
	fmt.Fprintln(w)
}
