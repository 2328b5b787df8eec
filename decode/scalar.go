package decode

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
	"github.com/anirudhraja/dynapb/wire"
)

// decodeScalar consumes one frame of the wire type actually present
// (wireType, taken from the tag that was just read) and interprets it
// according to the field's declared logical type. The wire type
// determines the framing; the declared type determines what those bytes
// mean.
func decodeScalar(d *wire.Decoder, t schema.Type, wireType wire.Type, table *schema.Table) (value.Value, error) {
	switch wireType {
	case wire.Varint:
		return decodeVarintScalar(d, t, table)
	case wire.Fixed64:
		return decodeFixed64Scalar(d, t)
	case wire.Fixed32:
		return decodeFixed32Scalar(d, t)
	case wire.Bytes:
		return decodeBytesScalar(d, t, table)
	default:
		return value.Value{}, fmt.Errorf("%w: wire type %d", wire.ErrUnsupportedWireType, wireType)
	}
}

func decodeVarintScalar(d *wire.Decoder, t schema.Type, table *schema.Table) (value.Value, error) {
	raw, err := d.DecodeVarint()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case schema.KindSint32:
		return value.Int64(int64(wire.DecodeZigZag32(raw))), nil
	case schema.KindSint64:
		return value.Int64(wire.DecodeZigZag64(raw)), nil
	case schema.KindInt32, schema.KindInt64:
		// proto2 encodes negative int32 as a full 10-byte varint; both
		// int32 and int64 reinterpret the raw 64-bit magnitude as
		// two's-complement signed, undoing exactly that encoding.
		return value.Int64(int64(raw)), nil
	case schema.KindUint32, schema.KindUint64:
		return value.Uint64(raw), nil
	case schema.KindBool:
		return value.BoolVal(raw != 0), nil
	case schema.KindEnum:
		enumDef, err := table.Enum(t.Name)
		if err != nil {
			return value.Value{}, err
		}
		name, ok := enumDef.NameOf(int32(raw))
		if !ok {
			return value.Value{}, fmt.Errorf("%w: %d for enum %s", ErrUnknownEnumerator, int32(raw), t.Name)
		}
		return value.EnumName(name), nil
	default:
		return value.Value{}, fmt.Errorf("field declared %s but wire carried a varint", t.Kind)
	}
}

func decodeFixed64Scalar(d *wire.Decoder, t schema.Type) (value.Value, error) {
	raw, err := d.DecodeFixed64()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case schema.KindFixed64:
		return value.Uint64(raw), nil
	case schema.KindSfixed64:
		return value.Int64(int64(raw)), nil
	case schema.KindDouble:
		return value.Float64(math.Float64frombits(raw)), nil
	default:
		return value.Value{}, fmt.Errorf("field declared %s but wire carried a fixed64", t.Kind)
	}
}

func decodeFixed32Scalar(d *wire.Decoder, t schema.Type) (value.Value, error) {
	raw, err := d.DecodeFixed32()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case schema.KindFixed32:
		return value.Uint64(uint64(raw)), nil
	case schema.KindSfixed32:
		return value.Int64(int64(int32(raw))), nil
	case schema.KindFloat:
		return value.Float32(math.Float32frombits(raw)), nil
	default:
		return value.Value{}, fmt.Errorf("field declared %s but wire carried a fixed32", t.Kind)
	}
}

func decodeBytesScalar(d *wire.Decoder, t schema.Type, table *schema.Table) (value.Value, error) {
	frame, err := d.DecodeBytesFrame()
	if err != nil {
		return value.Value{}, err
	}
	switch t.Kind {
	case schema.KindString:
		if !utf8.Valid(frame) {
			return value.Value{}, ErrInvalidUTF8
		}
		return value.String(string(frame)), nil
	case schema.KindBytes:
		return value.Bytes(frame), nil
	case schema.KindMessage:
		sub, err := decodeMessageBytes(frame, t.Name, table)
		if err != nil {
			return value.Value{}, err
		}
		return value.MsgVal(sub), nil
	default:
		return value.Value{}, fmt.Errorf("field declared %s but wire carried a length-delimited frame", t.Kind)
	}
}
