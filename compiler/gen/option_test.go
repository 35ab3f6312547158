package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWithTarget(t *testing.T) {
	t.Run("adds target", func(t *testing.T) {
		c := &Config{}
		err := WithTarget(&fakeDialect{name: "java"}, "out/java")(c)

		require.NoError(t, err)
		require.Len(t, c.Targets, 1)
		assert.Equal(t, "out/java", c.Targets[0].Dir)
		assert.Equal(t, []string{"java"}, c.Languages())
	})

	t.Run("empty directory returns error", func(t *testing.T) {
		err := WithTarget(&fakeDialect{name: "java"}, "")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("nil dialect returns error", func(t *testing.T) {
		err := WithTarget(nil, "out")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("duplicate language returns error", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithTarget(&fakeDialect{name: "cpp"}, "a")(c))
		err := WithTarget(&fakeDialect{name: "cpp"}, "b")(c)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than once")
	})
}

func TestWithForce(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithForce(true)(c))
	assert.True(t, c.Force)
}

func TestWithExternals(t *testing.T) {
	t.Run("adds to defaults without mutating them", func(t *testing.T) {
		c := DefaultConfig()
		orig := c.Externals
		err := WithExternals(&External{Name: "Packet", Imports: map[string]string{LangJava: "net.Packet"}})(c)

		require.NoError(t, err)
		e, ok := c.External("Packet")
		require.True(t, ok)
		assert.Equal(t, "net.Packet", e.Import(LangJava))
		assert.Empty(t, e.Import(LangCpp))
		_, ok = c.External("Object")
		assert.True(t, ok)
		_, ok = orig["Packet"]
		assert.False(t, ok)
	})

	t.Run("nameless external returns error", func(t *testing.T) {
		err := WithExternals(&External{})(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithGoImportBase(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithGoImportBase("github.com/acme/proto")(c))
	assert.Equal(t, "github.com/acme/proto", c.GoImportBase)

	err := WithGoImportBase("")(c)
	require.Error(t, err)
}

func TestWithBufferImport(t *testing.T) {
	tests := []struct {
		lang    string
		wantErr bool
	}{
		{LangCpp, false},
		{LangCSharp, false},
		{LangJava, false},
		{LangGo, false},
		{"cobol", true},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			c := &Config{}
			err := WithBufferImport(tt.lang, "net/BitBuffer")(c)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "net/BitBuffer", c.BufferImport(tt.lang, "fallback"))
		})
	}
	assert.Equal(t, "fallback", (&Config{}).BufferImport(LangJava, "fallback"))
}

func TestWithFeatures(t *testing.T) {
	t.Run("enables features once", func(t *testing.T) {
		c := &Config{}
		err := WithFeatures(FeatureGoStringer, FeatureGoStringer)(c)

		require.NoError(t, err)
		assert.Len(t, c.Features, 1)
		assert.True(t, c.HasFeature(FeatureGoStringer.Name))
	})

	t.Run("by name", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatureNames("go/stringer")(c))
		assert.True(t, c.HasFeature("go/stringer"))

		err := WithFeatureNames("sql/upsert")(c)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("disables default features", func(t *testing.T) {
		c := DefaultConfig()
		require.True(t, c.HasFeature(FeatureIncremental.Name))
		require.NoError(t, WithoutFeatures(FeatureIncremental.Name)(c))
		assert.False(t, c.HasFeature(FeatureIncremental.Name))
		assert.True(t, c.HasFeature(FeatureParentSerialization.Name))

		err := WithoutFeatures("nonexistent")(c)
		require.Error(t, err)
	})
}

func TestWithLogger(t *testing.T) {
	c := &Config{}
	l := zap.NewExample().Sugar()
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Logger)
	require.Error(t, WithLogger(nil)(c))
}

func TestConfigApply(t *testing.T) {
	t.Run("applies all options", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithForce(true),
			WithGoImportBase("example.com/p"),
		)

		require.NoError(t, err)
		assert.True(t, c.Force)
		assert.Equal(t, "example.com/p", c.GoImportBase)
	})

	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(
			WithGoImportBase(""),
			WithForce(true),
		)

		require.Error(t, err)
		assert.False(t, c.Force)
	})
}

func TestConfigApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(
		WithGoImportBase(""),
		WithForce(true),
		WithTarget(nil, "x"),
	)

	require.Error(t, err)
	assert.True(t, c.Force)
	assert.Contains(t, err.Error(), "GoImportBase")
	assert.Contains(t, err.Error(), "Target")
}

func TestNewConfig(t *testing.T) {
	t.Run("starts from defaults", func(t *testing.T) {
		c, err := NewConfig(WithForce(true))

		require.NoError(t, err)
		assert.True(t, c.Force)
		assert.NotNil(t, c.Logger)
		assert.Equal(t, DefaultFeatures(), c.Features)
		_, ok := c.External("Serializable")
		assert.True(t, ok)
	})

	t.Run("returns error for invalid option", func(t *testing.T) {
		_, err := NewConfig(WithGoImportBase(""))
		require.Error(t, err)
	})
}

func TestMustNewConfig(t *testing.T) {
	assert.NotPanics(t, func() { MustNewConfig() })
	assert.Panics(t, func() { MustNewConfig(WithGoImportBase("")) })
}
