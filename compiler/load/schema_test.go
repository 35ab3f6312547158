package load

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a/Point.json", FormatJSON, false},
		{"Color.YAML", FormatYAML, false},
		{"Color.yml", FormatYAML, false},
		{"Player.toml", FormatTOML, false},
		{"README.md", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnmarshalSchema(t *testing.T) {
	t.Run("name defaults to argument", func(t *testing.T) {
		s, err := UnmarshalSchema("Point", FormatJSON, []byte(`{"type":"Record","members":[]}`))
		require.NoError(t, err)
		assert.Equal(t, "Point", s.Name)
		assert.Equal(t, KindRecord, s.Type)
		assert.NotNil(t, s.Members)
		assert.Empty(t, s.Members)
	})

	t.Run("explicit name wins", func(t *testing.T) {
		s, err := UnmarshalSchema("file", FormatJSON, []byte(`{"name":"Vec","type":"Record","members":[]}`))
		require.NoError(t, err)
		assert.Equal(t, "Vec", s.Name)
	})

	t.Run("defaults keep their literal type", func(t *testing.T) {
		s, err := UnmarshalSchema("P", FormatJSON, []byte(`{"type":"Record","members":[
			{"name":"a","type":"Integer","default":3},
			{"name":"b","type":"Boolean","default":false},
			{"name":"c","type":"String","default":"x"},
			{"name":"d","type":"Float"}
		]}`))
		require.NoError(t, err)
		require.Len(t, s.Members, 4)
		assert.Equal(t, float64(3), s.Members[0].Default)
		assert.Equal(t, false, s.Members[1].Default)
		assert.True(t, s.Members[1].HasDefault())
		assert.Equal(t, "x", s.Members[2].Default)
		assert.False(t, s.Members[3].HasDefault())
	})

	t.Run("missing members key stays nil", func(t *testing.T) {
		s, err := UnmarshalSchema("P", FormatJSON, []byte(`{"type":"Record"}`))
		require.NoError(t, err)
		assert.Nil(t, s.Members)
	})

	t.Run("hash covers raw bytes", func(t *testing.T) {
		a, err := UnmarshalSchema("P", FormatJSON, []byte(`{"type":"Enum","values":["A"]}`))
		require.NoError(t, err)
		b, err := UnmarshalSchema("P", FormatJSON, []byte(`{"type": "Enum", "values": ["A"]}`))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(a.Hash, HashPrefix))
		assert.NotEqual(t, a.Hash, b.Hash)
		assert.Equal(t, Hash([]byte(`{"type":"Enum","values":["A"]}`)), a.Hash)
	})

	t.Run("implements alias", func(t *testing.T) {
		s, err := UnmarshalSchema("P", FormatJSON, []byte(`{"type":"Record","members":[],"implements":"Serializable"}`))
		require.NoError(t, err)
		assert.Equal(t, "Serializable", s.InterfaceName())
		s.Interface = "Cloneable"
		assert.Equal(t, "Cloneable", s.InterfaceName())
	})
}

func TestUnmarshalSchemaInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"type":`},
		{"not an object", `[1,2]`},
		{"missing type", `{"members":[]}`},
		{"unknown key", `{"type":"Record","member":[]}`},
		{"member without type", `{"type":"Record","members":[{"name":"x"}]}`},
		{"member unknown key", `{"type":"Record","members":[{"name":"x","type":"Integer","opt":1}]}`},
		{"list default", `{"type":"Record","members":[{"name":"x","type":"List<Integer>","default":[1]}]}`},
		{"serialization not bool", `{"type":"Record","members":[],"generate_serialization":"yes"}`},
		{"values not strings", `{"type":"Enum","values":[1,2]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalSchema("X", FormatJSON, []byte(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestFile(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		s, err := File("testdata/Point.json")
		require.NoError(t, err)
		assert.Equal(t, "Point", s.Name)
		assert.Equal(t, "geo", s.Namespace)
		assert.True(t, s.Serialization)
		require.Len(t, s.Members, 2)
		assert.Equal(t, "x", s.Members[0].Name)
		assert.Equal(t, "Float", s.Members[0].Type)
		assert.Equal(t, "testdata/Point.json", s.Source)
	})

	t.Run("yaml", func(t *testing.T) {
		s, err := File("testdata/Color.yaml")
		require.NoError(t, err)
		assert.Equal(t, KindEnum, s.Type)
		assert.Equal(t, []string{"Red", "Green", "Blue"}, s.Values)
	})

	t.Run("toml", func(t *testing.T) {
		s, err := File("testdata/Player.toml")
		require.NoError(t, err)
		assert.Equal(t, "Player", s.Name)
		assert.Equal(t, "game.world", s.Package)
		assert.Equal(t, "Entity", s.Parent)
		assert.Equal(t, "Serializable", s.InterfaceName())
		require.Len(t, s.Members, 2)
		assert.Equal(t, "anonymous", s.Members[0].Default)
		assert.Equal(t, "List<Integer>", s.Members[1].Type)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := File(filepath.Join(t.TempDir(), "Nope.json"))
		require.Error(t, err)
		var fe *FileError
		require.ErrorAs(t, err, &fe)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFiles(t *testing.T) {
	t.Run("collects per-file errors", func(t *testing.T) {
		res, err := Files(context.Background(),
			"testdata/Point.json",
			"testdata/Broken.json",
			"testdata/Color.yaml",
			"testdata/Player.toml",
		)
		require.NoError(t, err)
		require.Len(t, res.Schemas, 3)
		assert.Equal(t, "Point", res.Schemas[0].Name)
		assert.Equal(t, "Color", res.Schemas[1].Name)
		assert.Equal(t, "Player", res.Schemas[2].Name)
		require.Len(t, res.Errors, 1)
		assert.Equal(t, "testdata/Broken.json", res.Errors[0].Path)
		assert.Contains(t, res.Errors[0].Error(), "Broken.json")
	})

	t.Run("empty", func(t *testing.T) {
		res, err := Files(context.Background())
		require.NoError(t, err)
		assert.Empty(t, res.Schemas)
		assert.Empty(t, res.Errors)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Files(ctx, "testdata/Point.json")
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("written documents", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "Size.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"type":"Enum","values":["S","M","L"]}`), 0o644))
		res, err := Files(context.Background(), path)
		require.NoError(t, err)
		require.Len(t, res.Schemas, 1)
		assert.Equal(t, "Size", res.Schemas[0].Name)
	})
}

func TestMarshalSchema(t *testing.T) {
	s := &Schema{Name: "Size", Type: KindEnum, Values: []string{"S"}}
	buf, err := MarshalSchema(s)
	require.NoError(t, err)
	got, err := UnmarshalSchema("other", FormatJSON, buf)
	require.NoError(t, err)
	assert.Equal(t, "Size", got.Name)
	assert.Equal(t, []string{"S"}, got.Values)
}
