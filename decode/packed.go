package decode

import (
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
	"github.com/anirudhraja/dynapb/wire"
)

// decodePacked interprets one length-delimited frame as a concatenation
// of primitive values of a single declared type. It consumes values
// until the frame is exhausted; a frame that ends mid-value surfaces as
// wire.ErrTruncated from the sub-decoder, so no separate boundary check
// is needed. An empty frame yields a zero-length, non-nil slice.
func decodePacked(frame []byte, t schema.Type, table *schema.Table) ([]value.Value, error) {
	sub := wire.NewDecoder(frame)
	wireType := primitiveWireType(t.Kind)
	vals := make([]value.Value, 0)
	for sub.Len() > 0 {
		v, err := decodeScalar(sub, t, wireType, table)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// primitiveWireType returns the framing a packed value of this declared
// type uses. Packed frames carry no per-value tags, so the framing is
// entirely determined by the declared type, not by anything on the
// wire.
func primitiveWireType(k schema.Kind) wire.Type {
	switch k {
	case schema.KindFixed32, schema.KindSfixed32, schema.KindFloat:
		return wire.Fixed32
	case schema.KindFixed64, schema.KindSfixed64, schema.KindDouble:
		return wire.Fixed64
	default:
		return wire.Varint
	}
}
