// Package schema describes the shape of protobuf messages the decoder
// interprets at call time: field descriptors, message definitions, enum
// definitions, and the keyed table that ties symbolic names to them.
//
// Nothing in this package touches wire bytes; it is the static
// counterpart to package decode, which walks these descriptors against
// an input buffer.
package schema

// Kind is one of the wire-level logical types a field can declare.
type Kind int

const (
	KindSint32 Kind = iota
	KindSint64
	KindInt32
	KindInt64
	KindUint32
	KindUint64
	KindBool
	KindFixed64
	KindSfixed64
	KindDouble
	KindFixed32
	KindSfixed32
	KindFloat
	KindString
	KindBytes
	KindEnum
	KindMessage
)

func (k Kind) String() string {
	switch k {
	case KindSint32:
		return "sint32"
	case KindSint64:
		return "sint64"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindBool:
		return "bool"
	case KindFixed64:
		return "fixed64"
	case KindSfixed64:
		return "sfixed64"
	case KindDouble:
		return "double"
	case KindFixed32:
		return "fixed32"
	case KindSfixed32:
		return "sfixed32"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindEnum:
		return "enum"
	case KindMessage:
		return "message"
	default:
		return "unknown"
	}
}

// IsPackable reports whether values of this kind may appear concatenated
// inside a single length-delimited packed-repeated frame. String, bytes
// and message values never do: each occurrence carries its own length
// prefix.
func IsPackable(k Kind) bool {
	switch k {
	case KindString, KindBytes, KindMessage:
		return false
	default:
		return true
	}
}

// Type is a field's declared logical type. Name carries the symbolic
// enum or message name for KindEnum/KindMessage and is empty otherwise.
type Type struct {
	Kind Kind
	Name string
}

// Occurrence is a field's cardinality.
type Occurrence int

const (
	Required Occurrence = iota
	Optional
	Repeated
)

// Opts carries per-field flags. Packed only matters as an encoding hint
// in this implementation: the decoder accepts packed framing for any
// packable repeated field regardless of this flag, so callers
// constructing descriptors by hand need not set it for decode-only use.
type Opts struct {
	Packed bool
}

// Field is an immutable field descriptor.
type Field struct {
	Name       string
	FNum       int32
	Slot       int
	Type       Type
	Occurrence Occurrence
	Opts       Opts
}

// MessageDef is a finite ordered list of field descriptors. FNum values
// are unique within a message; Slot values are unique and contiguous
// starting at 1 (slot 0 is reserved for the message's type tag).
type MessageDef struct {
	Name   string
	Fields []*Field
}

// FieldByNumber returns the field descriptor for the given wire field
// number, or nil if fnum is not declared on this message (an unknown
// field, which the decoder skips rather than errors on).
func (m *MessageDef) FieldByNumber(fnum int32) *Field {
	for _, f := range m.Fields {
		if f.FNum == fnum {
			return f
		}
	}
	return nil
}

// SlotCount is the number of value slots a message value needs,
// including the reserved slot 0.
func (m *MessageDef) SlotCount() int {
	return len(m.Fields) + 1
}

// EnumValue is one symbolic enumerator of an enum definition.
type EnumValue struct {
	Name   string
	Number int32
}

// EnumDef is a bijective mapping between symbolic enumerators and
// integer codes.
type EnumDef struct {
	Name     string
	byName   map[string]int32
	byNumber map[int32]string
}

// NewEnumDef builds an EnumDef from its value list. Later duplicate
// numbers overwrite earlier ones in the number->name direction, matching
// proto's allow_alias semantics where the last declared alias wins for
// decode.
func NewEnumDef(name string, values []EnumValue) *EnumDef {
	e := &EnumDef{
		Name:     name,
		byName:   make(map[string]int32, len(values)),
		byNumber: make(map[int32]string, len(values)),
	}
	for _, v := range values {
		e.byName[v.Name] = v.Number
		e.byNumber[v.Number] = v.Name
	}
	return e
}

// NameOf returns the symbolic enumerator for an integer code, and
// whether it exists.
func (e *EnumDef) NameOf(number int32) (string, bool) {
	name, ok := e.byNumber[number]
	return name, ok
}

// NumberOf returns the integer code for a symbolic enumerator, and
// whether it exists.
func (e *EnumDef) NumberOf(name string) (int32, bool) {
	n, ok := e.byName[name]
	return n, ok
}
