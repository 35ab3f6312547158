package load

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileError reports a document that could not be loaded. It never aborts
// a batch; the template is simply left out of the result.
type FileError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of loading a batch of documents.
type Result struct {
	// Schemas that loaded successfully, in argument order.
	Schemas []*Schema
	// Errors of the documents that failed, in argument order.
	Errors []*FileError
}

// File reads and parses a single template document.
func File(path string) (*Schema, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	s, err := UnmarshalSchema(NameFromPath(path), format, buf)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	s.Source = path
	return s, nil
}

// Files loads the given documents concurrently. Per-file failures are
// collected in Result.Errors; the returned error is non-nil only if the
// context was canceled.
func Files(ctx context.Context, paths ...string) (*Result, error) {
	var (
		schemas = make([]*Schema, len(paths))
		errs    = make([]error, len(paths))
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			schemas[i], errs[i] = File(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res := &Result{}
	for i := range paths {
		if errs[i] != nil {
			fe, ok := errs[i].(*FileError)
			if !ok {
				fe = &FileError{Path: paths[i], Err: errs[i]}
			}
			res.Errors = append(res.Errors, fe)
			continue
		}
		res.Schemas = append(res.Schemas, schemas[i])
	}
	return res, nil
}
