package wire

import "errors"

// Sentinel errors for the failures that originate below the schema
// layer. Invalid UTF-8, unknown enumerators and merge type mismatches
// need schema context to raise, so those live in package decode.
var (
	// ErrTruncated is returned when the input ends mid-value: a
	// continuation bit was set on the last available varint byte, or a
	// fixed-width or length-delimited frame needed more bytes than were
	// left in the buffer.
	ErrTruncated = errors.New("truncated: input ended mid-value")

	// ErrUnsupportedWireType is returned for wire types 3 and 4 (group
	// start/end), both on a known field and when Skip is asked to step
	// over an unknown one; groups are not supported.
	ErrUnsupportedWireType = errors.New("unsupported wire type: groups (3, 4) are not implemented")
)
