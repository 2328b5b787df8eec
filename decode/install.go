package decode

import (
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
)

// install places one decoded scalar/enum/string/bytes/message value into
// a message according to the field's cardinality. Repeated-field
// sequences are built by appending directly, in stream order; Go slices
// make that O(1) amortized, so no prepend-and-reverse pass is needed.
func install(msg *value.Message, field *schema.Field, v value.Value, table *schema.Table) error {
	slot := field.Slot
	if field.Occurrence == schema.Repeated {
		cur := msg.Slots[slot]
		cur.Seq = append(cur.Seq, v)
		msg.Slots[slot] = cur
		return nil
	}

	if field.Type.Kind == schema.KindMessage {
		// A singular sub-message field is never unset: it starts as an
		// empty constructed message, so a second occurrence on the wire
		// merges into whatever is already in the slot, through the same
		// merge engine callers use directly.
		cur := msg.Slots[slot]
		merged, err := Merge(cur.Msg, v.Msg, table)
		if err != nil {
			return err
		}
		msg.Slots[slot] = value.MsgVal(merged)
		return nil
	}

	// Singular scalar/enum/string/bytes: last value wins (proto2 rule).
	msg.Slots[slot] = v
	return nil
}

// installRepeatedSeq appends every element of a packed-repeated frame's
// decoded values onto the field's sequence, in frame order.
func installRepeatedSeq(msg *value.Message, field *schema.Field, vals []value.Value) {
	slot := field.Slot
	cur := msg.Slots[slot]
	cur.Seq = append(cur.Seq, vals...)
	msg.Slots[slot] = cur
}
