package podgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/podgen"
)

func TestEnumRangeError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := podgen.NewEnumRangeError(3, 3)
		assert.Equal(t, "podgen: enum value 3 out of range [0, 3)", err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		err := podgen.NewEnumRangeError(7, 2)
		assert.True(t, errors.Is(err, podgen.ErrEnumRange))
		assert.False(t, errors.Is(err, podgen.ErrTruncated))
	})

	t.Run("IsEnumRange", func(t *testing.T) {
		err := podgen.NewEnumRangeError(1, 0)
		assert.True(t, podgen.IsEnumRange(err))

		// Wrapped error
		wrapped := fmt.Errorf("load Animal: %w", err)
		assert.True(t, podgen.IsEnumRange(wrapped))

		// Sentinel error
		assert.True(t, podgen.IsEnumRange(podgen.ErrEnumRange))

		// Non-matching error
		assert.False(t, podgen.IsEnumRange(errors.New("other error")))
		assert.False(t, podgen.IsEnumRange(nil))
	})
}

func TestCheckEnum(t *testing.T) {
	require.NoError(t, podgen.CheckEnum(0, 3))
	require.NoError(t, podgen.CheckEnum(2, 3))

	err := podgen.CheckEnum(3, 3)
	require.Error(t, err)
	var rangeErr *podgen.EnumRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, uint32(3), rangeErr.Value)
	assert.Equal(t, uint32(3), rangeErr.Count)

	assert.Error(t, podgen.CheckEnum(0, 0))
}
