package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/podgen/compiler/load"
)

func newTestGraph(t *testing.T, d Dialect, dir string, opts []Option, schemas ...*load.Schema) *Graph {
	t.Helper()
	cfg, err := NewConfig(append([]Option{WithTarget(d, dir)}, opts...)...)
	require.NoError(t, err)
	g, err := NewGraph(cfg, schemas...)
	require.NoError(t, err)
	return g
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	point := recordSchema("Point", "geo", member("x", "Integer"), member("y", "Integer"))

	t.Run("creates then skips", func(t *testing.T) {
		dir := t.TempDir()
		d := &fakeDialect{name: "fake"}
		g := newTestGraph(t, d, dir, nil, point)

		rep, err := Generate(ctx, g)
		require.NoError(t, err)
		require.Len(t, rep.Created, 1)
		assert.Empty(t, rep.Skipped)
		assert.Equal(t, filepath.Join(dir, "Point.txt"), rep.Created[0].Path)
		assert.Equal(t, 1, rep.Metrics.FilesWritten)

		content, err := os.ReadFile(rep.Created[0].Path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "// Hash: "+point.Hash)

		rep, err = Generate(ctx, g)
		require.NoError(t, err)
		assert.Empty(t, rep.Created)
		require.Len(t, rep.Skipped, 1)
		assert.Equal(t, Skip, rep.Skipped[0].Decision)
		assert.Equal(t, 1, d.calls)
		assert.Equal(t, "0 created, 1 skipped, 0 failed", rep.Summary())
	})

	t.Run("changed template regenerates", func(t *testing.T) {
		dir := t.TempDir()
		rep, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, point))
		require.NoError(t, err)
		require.Len(t, rep.Created, 1)

		changed := recordSchema("Point", "geo", member("y", "Integer"), member("x", "Integer"))
		require.NotEqual(t, point.Hash, changed.Hash)
		rep, err = Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, changed))
		require.NoError(t, err)
		assert.Len(t, rep.Created, 1)
		assert.Empty(t, rep.Skipped)
	})

	t.Run("force regenerates", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, point))
		require.NoError(t, err)
		rep, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, []Option{WithForce(true)}, point))
		require.NoError(t, err)
		assert.Len(t, rep.Created, 1)
	})

	t.Run("without incremental feature", func(t *testing.T) {
		dir := t.TempDir()
		opts := []Option{WithoutFeatures(FeatureIncremental.Name)}
		rep, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, opts, point))
		require.NoError(t, err)
		content, err := os.ReadFile(rep.Created[0].Path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), HashMarker)

		rep, err = Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, opts, point))
		require.NoError(t, err)
		assert.Len(t, rep.Created, 1)
	})

	t.Run("deterministic output", func(t *testing.T) {
		dir1, dir2 := t.TempDir(), t.TempDir()
		_, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir1, nil, point))
		require.NoError(t, err)
		_, err = Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir2, nil, point))
		require.NoError(t, err)
		a, err := os.ReadFile(filepath.Join(dir1, "Point.txt"))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dir2, "Point.txt"))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("subdir", func(t *testing.T) {
		dir := t.TempDir()
		s := recordSchema("Point", "geo", member("x", "Integer"))
		s.Subdir = "math/geo"
		rep, err := Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, s))
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "math", "geo", "Point.txt"))
		assert.Len(t, rep.Created, 1)
	})

	t.Run("failures are reported per template", func(t *testing.T) {
		dir := t.TempDir()
		d := &fakeDialect{name: "fake", fail: map[string]error{"Point": errors.New("boom")}}
		g := newTestGraph(t, d, dir, nil,
			point,
			recordSchema("Line", "geo", member("a", "Point"), member("b", "Point")),
			recordSchema("Bad", "geo", member("a", "Nope")),
		)
		rep, err := Generate(ctx, g)
		require.NoError(t, err)
		assert.Len(t, rep.Created, 1)
		require.Len(t, rep.Failed, 2)
		assert.Equal(t, "Bad", rep.Failed[0].Type)
		assert.ErrorIs(t, rep.Failed[0].Err, ErrUnresolvedReference)
		assert.Equal(t, "Point", rep.Failed[1].Type)
		assert.ErrorIs(t, rep.Failed[1].Err, ErrGenerationFailed)
		assert.ErrorIs(t, rep.Err(), ErrGenerationFailed)
		assert.True(t, strings.HasPrefix(rep.Summary(), "1 created"))
	})

	t.Run("no targets", func(t *testing.T) {
		g, err := NewGraph(DefaultConfig(), point)
		require.NoError(t, err)
		_, err = Generate(ctx, g)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := Generate(cctx, newTestGraph(t, &fakeDialect{name: "fake"}, t.TempDir(), nil, point))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	point := recordSchema("Point", "geo", member("x", "Integer"))

	rep, err := Check(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, point))
	require.NoError(t, err)
	assert.Len(t, rep.Created, 1)
	assert.NoFileExists(t, filepath.Join(dir, "Point.txt"))
	assert.Zero(t, rep.Metrics.FilesWritten)

	_, err = Generate(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, point))
	require.NoError(t, err)
	rep, err = Check(ctx, newTestGraph(t, &fakeDialect{name: "fake"}, dir, nil, point))
	require.NoError(t, err)
	assert.Empty(t, rep.Created)
	assert.Len(t, rep.Skipped, 1)
}

func TestHeader(t *testing.T) {
	s := recordSchema("Point", "geo")
	s.Source = "schemas/Point.json"
	s.Comment = "A point.\nIn two dimensions.\n"
	g := mustGraph(t, s)
	lines := Header(g.Node("Point"))
	assert.Equal(t, []string{
		Generated,
		"Source: Point.json",
		"Hash: " + s.Hash,
		"",
		"A point.",
		"In two dimensions.",
	}, lines)
	assert.Equal(t, "// "+Generated+"\n// Source: Point.json\n// Hash: "+s.Hash+"\n//\n// A point.\n// In two dimensions.\n", LineComment(lines))
}

func TestIndent(t *testing.T) {
	assert.Equal(t, "\tfor {\n\t\tx;\n\n\t}", Indent("for {\n\tx;\n\n}", "\t"))
	assert.Equal(t, "  a;\n  b {\n    c;\n  }\n", Block([]string{"a;", "b {\n  c;\n}"}, "  "))
	assert.Empty(t, Block(nil, "  "))
}
