// Package decode is the driver: it walks a wire buffer against a
// schema.MessageDef, installing values into a value.Message, and
// exposes the merge engine those installs (and callers) rely on.
//
// This is the sole place wire framing, schema interpretation, numeric
// transforms, recursive sub-message decoding, and merge all meet.
package decode

import (
	"fmt"

	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
	"github.com/anirudhraja/dynapb/wire"
)

// DecodeMessage decodes data as a complete, top-level serialized
// message of type msgName against table. There is no external length
// framing around data; the whole buffer is the message.
func DecodeMessage(data []byte, msgName string, table *schema.Table) (*value.Message, error) {
	def, err := table.Message(msgName)
	if err != nil {
		return nil, err
	}
	return decodeMessageDef(data, def, table)
}

// decodeMessageBytes is the entry point for recursive sub-message
// fields: the payload has already been extracted from its
// length-delimited frame by the caller.
func decodeMessageBytes(data []byte, msgName string, table *schema.Table) (*value.Message, error) {
	def, err := table.Message(msgName)
	if err != nil {
		return nil, err
	}
	return decodeMessageDef(data, def, table)
}

func decodeMessageDef(data []byte, def *schema.MessageDef, table *schema.Table) (*value.Message, error) {
	msg, err := newMessage(def, table)
	if err != nil {
		return nil, wrapMessage(err, def.Name)
	}

	d := wire.NewDecoder(data)
	for d.Len() > 0 {
		fnum, wireType, err := d.DecodeTag()
		if err != nil {
			return nil, wrapMessage(err, def.Name)
		}

		field := def.FieldByNumber(fnum)
		if field == nil {
			// Unknown field numbers are not errors, they are skipped
			// for forward compatibility. An unknown field framed as a
			// group still fails: Skip does not step over groups.
			if err := d.Skip(wireType); err != nil {
				return nil, wrapMessage(fmt.Errorf("skipping unknown field %d: %w", fnum, err), def.Name)
			}
			continue
		}

		if wireType == wire.Group || wireType == wire.GroupEnd {
			return nil, wrapField(wire.ErrUnsupportedWireType, field)
		}

		// Packed and non-packed occurrences of a repeated primitive
		// field are accepted interchangeably, so a length-delimited
		// frame on a packable repeated field is always treated as
		// packed, regardless of the descriptor's own Opts.Packed (an
		// encoding-time hint this decoder doesn't need).
		if field.Occurrence == schema.Repeated && wireType == wire.Bytes && schema.IsPackable(field.Type.Kind) {
			frame, err := d.DecodeBytesFrame()
			if err != nil {
				return nil, wrapField(err, field)
			}
			vals, err := decodePacked(frame, field.Type, table)
			if err != nil {
				return nil, wrapField(err, field)
			}
			installRepeatedSeq(msg, field, vals)
			continue
		}

		v, err := decodeScalar(d, field.Type, wireType, table)
		if err != nil {
			return nil, wrapField(err, field)
		}
		if err := install(msg, field, v, table); err != nil {
			return nil, wrapField(err, field)
		}
	}
	return msg, nil
}
