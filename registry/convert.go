package registry

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/yoheimuta/go-protoparser/v4/parser"

	"github.com/anirudhraja/dynapb/schema"
)

var scalarKinds = map[string]schema.Kind{
	"int32":    schema.KindInt32,
	"int64":    schema.KindInt64,
	"uint32":   schema.KindUint32,
	"uint64":   schema.KindUint64,
	"sint32":   schema.KindSint32,
	"sint64":   schema.KindSint64,
	"fixed32":  schema.KindFixed32,
	"fixed64":  schema.KindFixed64,
	"sfixed32": schema.KindSfixed32,
	"sfixed64": schema.KindSfixed64,
	"bool":     schema.KindBool,
	"float":    schema.KindFloat,
	"double":   schema.KindDouble,
	"string":   schema.KindString,
	"bytes":    schema.KindBytes,
}

// build folds the freshly-parsed files in paths into the registry's
// table. It runs in two passes: pass one registers every message and
// enum name, including nested ones, so type references can resolve
// regardless of declaration order or which file they land in, pass two
// fills in the actual fields. Names accumulate on the registry across
// calls, so a later LoadFile can reference types a previous call
// already registered.
func (r *Registry) build(paths []string) error {
	type pending struct {
		full string
		msg  *parser.Message
	}
	var pendings []pending
	names := r.names

	var collect func(prefix string, m *parser.Message) error
	collect = func(prefix string, m *parser.Message) error {
		full := qualify(prefix, m.MessageName)
		names[full] = true
		pendings = append(pendings, pending{full: full, msg: m})
		for _, v := range m.MessageBody {
			switch b := v.(type) {
			case *parser.Message:
				if err := collect(full, b); err != nil {
					return err
				}
			case *parser.Enum:
				nested := qualify(full, b.EnumName)
				names[nested] = true
				enumDef, err := buildEnum(nested, b)
				if err != nil {
					return err
				}
				r.table.AddEnum(enumDef)
			}
		}
		return nil
	}

	for _, path := range paths {
		proto := r.parsed[path]
		pkg := r.pkgOf[path]
		for _, v := range proto.ProtoBody {
			switch b := v.(type) {
			case *parser.Message:
				if err := collect(pkg, b); err != nil {
					return err
				}
			case *parser.Enum:
				full := qualify(pkg, b.EnumName)
				names[full] = true
				enumDef, err := buildEnum(full, b)
				if err != nil {
					return err
				}
				r.table.AddEnum(enumDef)
			}
		}
	}

	for _, p := range pendings {
		def, err := buildMessage(p.full, p.msg, names, r.table)
		if err != nil {
			return fmt.Errorf("message %s: %w", p.full, err)
		}
		r.table.AddMessage(def)
	}
	return nil
}

// isPacked reports whether the field carries a [packed = true] option.
// The decoder accepts packed framing either way; this only preserves
// what the .proto declared.
func isPacked(opts []*parser.FieldOption) bool {
	for _, o := range opts {
		if o.OptionName == "packed" && o.Constant == "true" {
			return true
		}
	}
	return false
}

// mapEntryName mirrors protoc's synthetic map-entry naming: the field
// name converted to CamelCase with "Entry" appended, so "user_scores"
// becomes "UserScoresEntry".
func mapEntryName(fieldName string) string {
	var b strings.Builder
	upper := true
	for _, r := range fieldName {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	b.WriteString("Entry")
	return b.String()
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

func buildEnum(full string, e *parser.Enum) (*schema.EnumDef, error) {
	var values []schema.EnumValue
	for _, v := range e.EnumBody {
		field, ok := v.(*parser.EnumField)
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(field.Number, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("enum %s value %s: %w", full, field.Ident, err)
		}
		values = append(values, schema.EnumValue{Name: field.Ident, Number: int32(n)})
	}
	return schema.NewEnumDef(full, values), nil
}

// buildMessage converts one parsed message into a schema.MessageDef.
// Slots are assigned in declaration order starting at 1 (slot 0 is
// reserved for the message's own name). Oneof groups are flattened into
// ordinary optional fields: there is no oneof-exclusivity concept to
// preserve here, only the fields themselves, and the usual last-one-wins
// rule already gives the right wire behavior. Map fields become a
// repeated synthetic <Name>Entry message with slot-1 key / slot-2 value
// fields, the same shape maps actually take on the wire.
func buildMessage(full string, m *parser.Message, names map[string]bool, table *schema.Table) (*schema.MessageDef, error) {
	def := &schema.MessageDef{Name: full}
	slot := 1

	addField := func(name string, fnum int32, occ schema.Occurrence, t schema.Type) {
		def.Fields = append(def.Fields, &schema.Field{
			Name:       name,
			FNum:       fnum,
			Slot:       slot,
			Type:       t,
			Occurrence: occ,
		})
		slot++
	}

	resolveType := func(raw string) (schema.Type, error) {
		if kind, ok := scalarKinds[raw]; ok {
			return schema.Type{Kind: kind}, nil
		}
		resolved, err := getReferencedType(raw, full, names)
		if err != nil {
			return schema.Type{}, err
		}
		if enumDef, err := table.Enum(resolved); err == nil && enumDef != nil {
			return schema.Type{Kind: schema.KindEnum, Name: resolved}, nil
		}
		return schema.Type{Kind: schema.KindMessage, Name: resolved}, nil
	}

	for _, v := range m.MessageBody {
		switch f := v.(type) {
		case *parser.Field:
			t, err := resolveType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", f.FieldName, err)
			}
			occ := schema.Optional
			if f.IsRepeated {
				occ = schema.Repeated
			} else if f.IsRequired {
				occ = schema.Required
			}
			n, err := strconv.ParseInt(f.FieldNumber, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("field %s number: %w", f.FieldName, err)
			}
			def.Fields = append(def.Fields, &schema.Field{
				Name:       f.FieldName,
				FNum:       int32(n),
				Slot:       slot,
				Type:       t,
				Occurrence: occ,
				Opts:       schema.Opts{Packed: isPacked(f.FieldOptions)},
			})
			slot++

		case *parser.MapField:
			keyType, err := resolveType(f.KeyType)
			if err != nil {
				return nil, fmt.Errorf("map field %s key: %w", f.MapName, err)
			}
			valType, err := resolveType(f.Type)
			if err != nil {
				return nil, fmt.Errorf("map field %s value: %w", f.MapName, err)
			}
			entryName := full + "." + mapEntryName(f.MapName)
			entryDef := &schema.MessageDef{
				Name: entryName,
				Fields: []*schema.Field{
					{Name: "key", FNum: 1, Slot: 1, Type: keyType, Occurrence: schema.Optional},
					{Name: "value", FNum: 2, Slot: 2, Type: valType, Occurrence: schema.Optional},
				},
			}
			table.AddMessage(entryDef)
			n, err := strconv.ParseInt(f.FieldNumber, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("map field %s number: %w", f.MapName, err)
			}
			addField(f.MapName, int32(n), schema.Repeated, schema.Type{Kind: schema.KindMessage, Name: entryName})

		case *parser.Oneof:
			for _, ov := range f.OneofFields {
				t, err := resolveType(ov.Type)
				if err != nil {
					return nil, fmt.Errorf("oneof field %s: %w", ov.FieldName, err)
				}
				n, err := strconv.ParseInt(ov.FieldNumber, 10, 32)
				if err != nil {
					return nil, fmt.Errorf("oneof field %s number: %w", ov.FieldName, err)
				}
				addField(ov.FieldName, int32(n), schema.Optional, t)
			}
		}
	}
	return def, nil
}
