package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/syssam/podgen/compiler/gen"
)

// ErrStale is returned by check when some output would be regenerated.
var ErrStale = errors.New("podgen: generated outputs are stale")

func newCheckCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "check [template files...]",
		Short: "Report outputs that are out of date without writing them",
		Long: `check computes the same decisions as a normal run but writes nothing.
It exits non-zero when any output is missing or was generated from a
different template revision. Useful in CI to verify that generated code
is committed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := run(cmd.Context(), cmd.OutOrStdout(), st.opts, args, gen.Check)
			if err != nil {
				return err
			}
			for _, s := range rep.Created {
				fmt.Fprintf(cmd.OutOrStdout(), "STALE %s %s\n", s.Language, s.Path)
			}
			if len(rep.Created) > 0 {
				return errors.WithHintf(ErrStale, "%d outputs are stale; run podgen without check to regenerate", len(rep.Created))
			}
			return nil
		},
	}
}
