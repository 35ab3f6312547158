package csharp

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/podgen/compiler/gen"
	"github.com/syssam/podgen/compiler/load"
)

func loadGraph(t *testing.T, opts ...gen.Option) *gen.Graph {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("..", "testdata", "*.json"))
	require.NoError(t, err)
	res, err := load.Files(context.Background(), paths...)
	require.NoError(t, err)
	require.Empty(t, res.Errors)
	g, err := gen.NewGraph(gen.MustNewConfig(opts...), res.Schemas...)
	require.NoError(t, err)
	require.Empty(t, g.Failed)
	return g
}

func generate(t *testing.T, g *gen.Graph, name string) string {
	t.Helper()
	node := g.Node(name)
	require.NotNil(t, node, name)
	src, err := New().Generate(node)
	require.NoError(t, err)
	return string(src)
}

func method(t *testing.T, src, sig string) string {
	t.Helper()
	open := sig + "\n        {\n"
	i := strings.Index(src, open)
	require.GreaterOrEqual(t, i, 0, "missing %q", sig)
	rest := src[i+len(open):]
	j := strings.Index(rest, "\n        }\n")
	require.GreaterOrEqual(t, j, 0)
	return rest[:j]
}

var loops = regexp.MustCompile(`\bfor(each)? \(`)

func TestDialect(t *testing.T) {
	g := loadGraph(t)
	d := New()
	assert.Equal(t, "csharp", d.Name())
	assert.Equal(t, ".cs", d.FileExtension())
	assert.Equal(t, "players/Player.cs", d.OutputPath(g.Node("Player")))
}

func TestPoint(t *testing.T) {
	g := loadGraph(t)
	src := generate(t, g, "Point")

	assert.True(t, strings.HasPrefix(src, "// "+gen.Generated+"\n// Source: Point.json\n"))
	assert.Empty(t, Usings(g.Node("Point")))
	assert.Contains(t, src, "namespace Geo\n{\n    public class Point\n    {\n        public uint x;\n        public uint y;\n")
	assert.Equal(t, "            buf.PutInt(this.x);\n            buf.PutInt(this.y);",
		method(t, src, "public virtual void SaveBinary(BitBuffer buf)"))
	assert.Equal(t, "            this.x = buf.GetInt();\n            this.y = buf.GetInt();",
		method(t, src, "public virtual void LoadBinary(BitBuffer buf)"))
	assert.Equal(t, "            this.x = other.x;\n            this.y = other.y;",
		method(t, src, "public void Set(Point other)"))
	assert.True(t, strings.HasSuffix(src, "    }\n}\n"))
}

func TestEnum(t *testing.T) {
	g := loadGraph(t)
	src := generate(t, g, "Color")
	assert.Contains(t, src, "namespace Game\n{\n    public enum Color : uint\n    {\n        Red,\n        Green,\n        Blue,\n    }\n")
	assert.Contains(t, src, "    public static class ColorInfo\n    {\n        public const uint Count = 3;\n    }\n")

	player := generate(t, g, "Player")
	assert.Contains(t, player, "buf.PutEnum((uint)this.color, ColorInfo.Count);")
	assert.Contains(t, player, "this.color = (Color)buf.GetEnum(ColorInfo.Count);")
}

func TestUsingsMinimal(t *testing.T) {
	g := loadGraph(t)
	assert.Equal(t, []string{
		"System.Collections.Generic",
		"X = Deps.X",
		"Y = Deps.Y",
		"Z = Deps.Z",
	}, Usings(g.Node("Uses")))

	src := generate(t, g, "Uses")
	assert.Contains(t, src, "    public class Uses : Z\n")
	assert.Contains(t, src, "        public List<Y> b = new List<Y>();\n")
	assert.Equal(t, 4, strings.Count(src, "using "))
	assert.NotContains(t, src, "SaveBinary")
}

func TestPlayer(t *testing.T) {
	g := loadGraph(t)
	src := generate(t, g, "Player")

	assert.Equal(t, []string{
		"System.Collections.Generic",
		"Color = Game.Color",
		"Entity = Game.Entity",
		"Point = Geo.Point",
	}, Usings(g.Node("Player")))
	for _, decl := range []string{
		"    public class Player : Entity",
		`        public string name = "anonymous";`,
		"        public float speed = 1.5f;",
		"        public bool alive = true;",
		"        public uint level = 3;",
		"        public Color color = Color.Green;",
		"        public Point position = new Point();",
		"        public List<string> friends = new List<string>();",
		"        public List<List<uint>> grid = new List<List<uint>>();",
	} {
		assert.Contains(t, src, decl+"\n")
	}

	save := method(t, src, "public override void SaveBinary(BitBuffer buf)")
	assert.True(t, strings.HasPrefix(save, "            base.SaveBinary(buf);\n            buf.PutString(this.name);"))
	assert.Contains(t, save, "this.position.SaveBinary(buf);")
	load := method(t, src, "public override void LoadBinary(BitBuffer buf)")
	assert.True(t, strings.HasPrefix(load, "            base.LoadBinary(buf);\n            this.name = buf.GetString();"))
	assert.Contains(t, load, "this.grid.Clear();\n            for (uint i0 = 0, count0 = buf.GetInt(); i0 < count0; i0++)\n            {\n                List<uint> gridItem0 = new List<uint>();\n")

	set := method(t, src, "public void Set(Player other)")
	assert.Contains(t, set, "base.Set(other);")
	assert.Contains(t, set, "this.position.Set(other.position);")
	assert.Contains(t, set, "foreach (var srcFriendItem0 in other.friends)\n            {\n                string friendItem0 = \"\";\n                friendItem0 = srcFriendItem0;\n                this.friends.Add(friendItem0);\n            }")
}

func TestListNesting(t *testing.T) {
	g := loadGraph(t)
	for depth := 1; depth <= 3; depth++ {
		name := fmt.Sprintf("Nest%d", depth)
		t.Run(name, func(t *testing.T) {
			src := generate(t, g, name)
			save := method(t, src, "public virtual void SaveBinary(BitBuffer buf)")
			load := method(t, src, "public virtual void LoadBinary(BitBuffer buf)")
			set := method(t, src, fmt.Sprintf("public void Set(%s other)", name))
			for _, body := range []string{save, load, set} {
				assert.Len(t, loops.FindAllString(body, -1), depth)
			}
			inner := fmt.Sprintf("pathItem%d", depth-1)
			assert.Contains(t, save, inner+".SaveBinary(buf);")
			assert.Contains(t, load, inner+".LoadBinary(buf);")
			assert.Contains(t, src, "using Point = Geo.Point;\n")
		})
	}
}

func TestEnumCountAcrossNamespaces(t *testing.T) {
	g := loadGraph(t)
	fr := fragments{owner: g.Node("Point")}
	player := g.Node("Player")
	assert.Equal(t, "global::Game.ColorInfo.Count", fr.count(player.Fields[4].Type))
}

func TestBufferImport(t *testing.T) {
	g := loadGraph(t, gen.WithBufferImport(gen.LangCSharp, "Phantom.Multiplayer"))
	assert.Equal(t, []string{"Phantom.Multiplayer"}, Usings(g.Node("Point")))
	assert.Empty(t, Usings(g.Node("X")))
}

func TestDeterminism(t *testing.T) {
	g := loadGraph(t)
	for _, n := range g.Nodes {
		first, err := New().Generate(n)
		require.NoError(t, err)
		second, err := New().Generate(n)
		require.NoError(t, err)
		assert.Equal(t, first, second, n.Name)
	}
}

func TestInterfaceClause(t *testing.T) {
	t.Run("omitted without a C# declaration", func(t *testing.T) {
		src := generate(t, loadGraph(t), "Player")
		assert.NotContains(t, src, "Serializable")
	})

	t.Run("declared when the external exists in C#", func(t *testing.T) {
		g := loadGraph(t, gen.WithExternals(&gen.External{
			Name:    "Serializable",
			Imports: map[string]string{gen.LangCSharp: ""},
		}))
		src := generate(t, g, "Player")
		assert.Contains(t, src, "    public class Player : Entity, Serializable\n")
	})
}
