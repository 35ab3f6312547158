package gen

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

type (
	// Outcome describes what happened to one (language, template) output.
	Outcome struct {
		Language string
		Type     string
		Path     string
		Decision Decision
		Err      error
	}

	// Report summarizes one generation run. In check mode, Created holds
	// the outputs that would be regenerated.
	Report struct {
		Created []Outcome
		Skipped []Outcome
		Failed  []Outcome
		Metrics WriterMetrics
	}
)

// Summary returns a one-line summary of the report.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d created, %d skipped, %d failed", len(r.Created), len(r.Skipped), len(r.Failed))
}

// Err returns the joined errors of all failed outputs, or nil.
func (r *Report) Err() error {
	errs := make([]error, 0, len(r.Failed))
	for _, o := range r.Failed {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// Generate emits every resolved template for every configured target,
// one output at a time. Each output first passes the incremental gate.
// Failures are collected in the report and never stop the run; the
// returned error is reserved for invalid configs and cancellation.
func Generate(ctx context.Context, g *Graph) (*Report, error) {
	return run(ctx, g, true)
}

// Check runs the same pipeline as Generate without writing any file.
// Outputs that would be regenerated are reported as created.
func Check(ctx context.Context, g *Graph) (*Report, error) {
	return run(ctx, g, false)
}

func run(ctx context.Context, g *Graph, write bool) (*Report, error) {
	if g == nil || g.Config == nil {
		return nil, NewConfigError("Config", nil, "missing graph config")
	}
	if len(g.Targets) == 0 {
		return nil, NewConfigError("Targets", nil, "no target language configured")
	}
	var (
		log         = g.logger()
		rep         = &Report{}
		w           = NewFileWriter(g.HasFeature(FeatureGoImports.Name))
		incremental = g.HasFeature(FeatureIncremental.Name)
	)
	for _, target := range g.Targets {
		lang := target.Dialect.Name()
		for _, f := range g.Failed {
			rep.Failed = append(rep.Failed, Outcome{Language: lang, Type: f.Name, Err: f.Err})
		}
		for _, t := range g.Nodes {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			out := Outcome{
				Language: lang,
				Type:     t.Name,
				Path:     filepath.Join(target.Dir, filepath.FromSlash(target.Dialect.OutputPath(t))),
			}
			hash := ""
			if incremental {
				hash = t.Hash
			}
			d, err := Decide(out.Path, hash, g.Force)
			out.Decision = d
			if err != nil {
				out.Err = NewGenerationError(lang, t.Name, out.Path, "read previous output", err)
				rep.Failed = append(rep.Failed, out)
				continue
			}
			if d == Skip {
				log.Debugw("output unchanged", "language", lang, "type", t.Name, "path", out.Path)
				rep.Skipped = append(rep.Skipped, out)
				continue
			}
			src, err := target.Dialect.Generate(t)
			if err == nil && write {
				err = w.Write(out.Path, src)
			}
			if err != nil {
				if !IsGenerationError(err) {
					err = NewGenerationError(lang, t.Name, out.Path, "", err)
				}
				out.Err = err
				log.Errorw("generation failed", "language", lang, "type", t.Name, "error", err)
				rep.Failed = append(rep.Failed, out)
				continue
			}
			if write {
				log.Infow("generated", "language", lang, "type", t.Name, "path", out.Path)
			}
			rep.Created = append(rep.Created, out)
		}
	}
	rep.Metrics = w.Metrics()
	return rep, nil
}
