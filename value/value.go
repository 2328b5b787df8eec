// Package value holds the decoded in-memory representation of a
// message: a tagged-variant Value type and a slot-indexed Message
// record. The representation is uniform and dynamic; no per-schema code
// generation is involved.
package value

// Kind discriminates the variant a Value currently holds.
type Kind int

const (
	// KindUnset is the sentinel for a singular field whose wire bytes
	// were absent. Never observed for repeated fields or for the slot-0
	// type tag.
	KindUnset Kind = iota
	KindInt64
	KindUint64
	KindBool
	KindFloat32
	KindFloat64
	KindString
	KindBytes
	// KindEnum holds the symbolic enumerator name, already resolved
	// against the schema's enum table.
	KindEnum
	KindMessage
	KindSeq
)

// Value is a tagged union over every kind of value a field can decode
// to. The 32-bit integer types are not narrowed: int32 and sint32 both
// live in I64, uint32 and fixed32 in U64. Narrowing, where a caller
// wants it, is the caller's concern.
type Value struct {
	Kind  Kind
	I64   int64
	U64   uint64
	Bool  bool
	F32   float32
	F64   float64
	Str   string
	Bytes []byte
	Enum  string
	Msg   *Message
	Seq   []Value
}

// Unset is the zero Value; it satisfies the KindUnset sentinel.
func Unset() Value { return Value{Kind: KindUnset} }

func Int64(v int64) Value     { return Value{Kind: KindInt64, I64: v} }
func Uint64(v uint64) Value   { return Value{Kind: KindUint64, U64: v} }
func BoolVal(v bool) Value    { return Value{Kind: KindBool, Bool: v} }
func Float32(v float32) Value { return Value{Kind: KindFloat32, F32: v} }
func Float64(v float64) Value { return Value{Kind: KindFloat64, F64: v} }
func String(v string) Value   { return Value{Kind: KindString, Str: v} }
func Bytes(v []byte) Value    { return Value{Kind: KindBytes, Bytes: v} }
func EnumName(v string) Value { return Value{Kind: KindEnum, Enum: v} }
func MsgVal(m *Message) Value { return Value{Kind: KindMessage, Msg: m} }
func EmptySeq() Value         { return Value{Kind: KindSeq, Seq: []Value{}} }

// Message is a positional record: Slots[0] carries the message's type
// tag (its name), Slots[1:] carry one value per field descriptor, in
// descriptor order, addressed by the descriptor's Slot.
type Message struct {
	Name  string
	Slots []Value
}

// Slot returns the value at a 1-based field slot.
func (m *Message) Slot(i int) Value {
	return m.Slots[i]
}
