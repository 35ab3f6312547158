// Package podgen holds the runtime contract shared by generated Go code.
//
// Generated records serialize themselves through a BitBuffer. This package
// only declares the contract; buffer implementations live with the
// applications that own the wire format.
package podgen

// Version of the generator, reported by the version command.
// Generated headers do not carry it.
const Version = "0.3.0"

// BitBuffer is the binary buffer generated SaveBinary and LoadBinary methods
// write to and read from. Values are consumed in exactly the order they were
// written.
type BitBuffer interface {
	// PutInt writes an unsigned 32-bit integer. List lengths are written with it too.
	PutInt(v uint32)
	// PutString writes a string.
	PutString(v string)
	// PutFloat writes a 32-bit float.
	PutFloat(v float32)
	// PutBit writes a single boolean bit.
	PutBit(v bool)
	// PutEnum writes an enum ordinal bounded by count. It fails with an
	// *EnumRangeError if v >= count.
	PutEnum(v, count uint32) error

	// GetInt reads an unsigned 32-bit integer.
	GetInt() (uint32, error)
	// GetString reads a string.
	GetString() (string, error)
	// GetFloat reads a 32-bit float.
	GetFloat() (float32, error)
	// GetBit reads a single boolean bit.
	GetBit() (bool, error)
	// GetEnum reads an enum ordinal bounded by count. An ordinal outside
	// [0, count) is a decode error and must be reported as *EnumRangeError.
	GetEnum(count uint32) (uint32, error)
}

// Record is implemented by every generated record type with serialization
// enabled.
type Record interface {
	SaveBinary(BitBuffer) error
	LoadBinary(BitBuffer) error
}
