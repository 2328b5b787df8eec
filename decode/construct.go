package decode

import (
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
)

// newMessage builds a fresh message value for def: slot 0 holds the
// type tag, repeated fields start at an empty sequence, singular
// sub-message fields start at a freshly constructed empty sub-message
// (not unset), and everything else starts unset.
//
// Pre-constructing singular sub-messages recursively can only fail to
// terminate if a schema is self-referential through a chain of singular
// message fields with no repeated field breaking the cycle. Real proto2
// schemas never do this, but we detect it rather than stack-overflow on
// a malformed table.
func newMessage(def *schema.MessageDef, table *schema.Table) (*value.Message, error) {
	return newMessageVisiting(def, table, map[string]bool{})
}

func newMessageVisiting(def *schema.MessageDef, table *schema.Table, visiting map[string]bool) (*value.Message, error) {
	if visiting[def.Name] {
		return nil, ErrSchemaCycle
	}
	visiting[def.Name] = true
	defer delete(visiting, def.Name)

	msg := &value.Message{
		Name:  def.Name,
		Slots: make([]value.Value, def.SlotCount()),
	}
	msg.Slots[0] = value.String(def.Name)

	for _, f := range def.Fields {
		switch {
		case f.Occurrence == schema.Repeated:
			msg.Slots[f.Slot] = value.EmptySeq()
		case f.Type.Kind == schema.KindMessage:
			subDef, err := table.Message(f.Type.Name)
			if err != nil {
				return nil, wrapField(err, f)
			}
			sub, err := newMessageVisiting(subDef, table, visiting)
			if err != nil {
				return nil, wrapField(err, f)
			}
			msg.Slots[f.Slot] = value.MsgVal(sub)
		default:
			msg.Slots[f.Slot] = value.Unset()
		}
	}
	return msg, nil
}
