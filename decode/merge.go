package decode

import (
	"fmt"

	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
)

// Merge combines prev and next, two already-decoded messages of the
// same type, into a fresh result, per proto2 merge semantics. Neither
// input is mutated.
//
// This is also the operation the installer calls internally when a
// singular sub-message field appears twice within one decode, which is
// why a second occurrence of such a field produces the same result as
// decoding each occurrence alone and merging them in order.
func Merge(prev, next *value.Message, table *schema.Table) (*value.Message, error) {
	if prev.Name != next.Name {
		return nil, fmt.Errorf("%w: %s vs %s", ErrTypeMismatch, prev.Name, next.Name)
	}
	def, err := table.Message(prev.Name)
	if err != nil {
		return nil, err
	}

	result := &value.Message{
		Name:  prev.Name,
		Slots: make([]value.Value, len(prev.Slots)),
	}
	result.Slots[0] = prev.Slots[0]

	for _, f := range def.Fields {
		slot := f.Slot
		pv := prev.Slots[slot]
		nv := next.Slots[slot]

		switch {
		case f.Occurrence == schema.Repeated:
			merged := make([]value.Value, 0, len(pv.Seq)+len(nv.Seq))
			merged = append(merged, pv.Seq...)
			merged = append(merged, nv.Seq...)
			result.Slots[slot] = value.Value{Kind: value.KindSeq, Seq: merged}

		case f.Type.Kind == schema.KindMessage:
			mergedSub, err := Merge(pv.Msg, nv.Msg, table)
			if err != nil {
				return nil, wrapField(err, f)
			}
			result.Slots[slot] = value.MsgVal(mergedSub)

		default:
			// If next didn't carry this field, keep whatever prev had,
			// including the unset sentinel itself.
			if nv.Kind == value.KindUnset {
				result.Slots[slot] = pv
			} else {
				result.Slots[slot] = nv
			}
		}
	}
	return result, nil
}
