package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/tools/imports"
)

// FileWriter writes generated files and tracks write metrics. Go sources
// can optionally be passed through goimports first.
type FileWriter struct {
	goimports bool

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
	FormatTime   int64 // nanoseconds
	WriteTime    int64 // nanoseconds
}

// NewFileWriter creates a writer. If goimports is set, files with the .go
// extension are formatted before they are written.
func NewFileWriter(goimports bool) *FileWriter {
	return &FileWriter{goimports: goimports, metrics: &WriterMetrics{}}
}

// Metrics returns a snapshot of the write metrics.
func (w *FileWriter) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// Write formats (for Go sources) and writes data to path, creating parent
// directories as needed.
func (w *FileWriter) Write(path string, data []byte) error {
	if w.goimports && filepath.Ext(path) == ".go" {
		start := time.Now()
		formatted, err := imports.Process(path, data, nil)
		if err != nil {
			// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
			debugPath := path + ".error"
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, data, 0o644)
			return fmt.Errorf("format %s: %w (unformatted written to %s)", path, err, debugPath)
		}
		data = formatted
		w.track(func(m *WriterMetrics) { m.FormatTime += int64(time.Since(start)) })
	}
	start := time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.track(func(m *WriterMetrics) {
		m.FilesWritten++
		m.TotalBytes += int64(len(data))
		m.WriteTime += int64(time.Since(start))
	})
	return nil
}

func (w *FileWriter) track(fn func(*WriterMetrics)) {
	w.mu.Lock()
	fn(w.metrics)
	w.mu.Unlock()
}
