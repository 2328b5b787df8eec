// Package dynapb decodes proto2 wire-format messages against a schema
// supplied at call time rather than generated code, and merges
// independently-decoded messages of the same type according to proto2
// merge semantics.
package dynapb

import (
	"github.com/anirudhraja/dynapb/decode"
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
)

// Decode decodes data as a complete, top-level serialized message of
// type msgName against table.
func Decode(data []byte, msgName string, table *schema.Table) (*value.Message, error) {
	return decode.DecodeMessage(data, msgName, table)
}

// Merge combines two already-decoded messages of the same type into a
// fresh result, following proto2's merge rules: repeated fields
// concatenate, singular sub-messages merge recursively, and singular
// scalars take next unless next is unset.
func Merge(prev, next *value.Message, table *schema.Table) (*value.Message, error) {
	return decode.Merge(prev, next, table)
}
