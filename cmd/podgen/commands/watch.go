package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/internal/logger"
)

// DefaultDebounce is the quiet period after the last template change
// before regenerating.
const DefaultDebounce = 300 * time.Millisecond

// templateExts are the extensions of template documents.
var templateExts = []string{".json", ".yaml", ".yml", ".toml"}

func newWatchCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [template files...]",
		Short: "Regenerate whenever a template changes",
		Long: `watch runs a normal generation, then watches the directories of the
templates and regenerates after every change. Rapid changes are
coalesced. Stop with Ctrl-C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			o := st.opts
			debounce, _ := cmd.Flags().GetDuration("debounce")
			paths, err := o.SchemaPaths(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			regenerate := func(ctx context.Context) error {
				_, err := run(ctx, out, o, args, gen.Generate)
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if err := regenerate(ctx); err != nil {
				return err
			}
			w, err := newWatcher(watchDirs(paths), debounce, regenerate)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "watching %s\n", strings.Join(w.dirs, ", "))
			return w.Run(ctx)
		},
	}
	cmd.Flags().Duration("debounce", DefaultDebounce, "quiet period before regenerating")
	return cmd
}

// watchDirs returns the sorted unique directories of paths.
func watchDirs(paths []string) []string {
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		dirs = append(dirs, filepath.Dir(p))
	}
	slices.Sort(dirs)
	return slices.Compact(dirs)
}

// watcher calls onChange once per burst of template changes in dirs.
// Directories are watched instead of files so that editors replacing a
// file on save are noticed.
type watcher struct {
	fs       *fsnotify.Watcher
	dirs     []string
	debounce time.Duration
	onChange func(context.Context) error
}

func newWatcher(dirs []string, debounce time.Duration, onChange func(context.Context) error) (*watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	for _, d := range dirs {
		if err := fs.Add(d); err != nil {
			fs.Close()
			return nil, errors.Wrapf(err, "watch %s", d)
		}
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &watcher{fs: fs, dirs: dirs, debounce: debounce, onChange: onChange}, nil
}

// Run blocks until ctx is done. Regeneration errors are logged and never
// stop the watcher.
func (w *watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			logger.Debugw("template changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("file watcher error", "error", err)
		case <-fire:
			fire = nil
			logger.Infow("regenerating")
			if err := w.onChange(ctx); err != nil {
				logger.Errorw("regeneration failed", "error", err)
			}
		}
	}
}

// relevant reports if ev may change a template.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return slices.Contains(templateExts, strings.ToLower(filepath.Ext(base)))
}
