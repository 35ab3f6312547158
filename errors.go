package podgen

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for BitBuffer implementations.
var (
	// ErrEnumRange is matched by every EnumRangeError.
	ErrEnumRange = errors.New("podgen: enum value out of range")

	// ErrTruncated is returned when a read runs past the end of the buffer.
	ErrTruncated = errors.New("podgen: buffer truncated")
)

// EnumRangeError is returned when an enum ordinal is not below the enum's
// count constant.
type EnumRangeError struct {
	Value uint32
	Count uint32
}

// Error returns the error string.
func (e *EnumRangeError) Error() string {
	return fmt.Sprintf("podgen: enum value %d out of range [0, %d)", e.Value, e.Count)
}

// Is reports whether the target error matches EnumRangeError.
// This allows errors.Is(rangeErr, ErrEnumRange) to return true.
func (e *EnumRangeError) Is(err error) bool {
	return err == ErrEnumRange
}

// NewEnumRangeError returns a new EnumRangeError.
func NewEnumRangeError(value, count uint32) *EnumRangeError {
	return &EnumRangeError{Value: value, Count: count}
}

// CheckEnum returns an *EnumRangeError if v is not a valid ordinal for an
// enum with count values.
func CheckEnum(v, count uint32) error {
	if v >= count {
		return NewEnumRangeError(v, count)
	}
	return nil
}

// IsEnumRange returns true if the error is an EnumRangeError.
func IsEnumRange(err error) bool {
	if err == nil {
		return false
	}
	var e *EnumRangeError
	return errors.As(err, &e) || errors.Is(err, ErrEnumRange)
}
