package schema

import "fmt"

// NoSuchKeyError reports a schema lookup miss: a caller asked for a
// message or enum name the table does not carry. This is a programmer
// error, not a wire-format error; it is never recovered from within a
// decode, only propagated.
type NoSuchKeyError struct {
	Kind string // "message" or "enum"
	Name string
}

func (e *NoSuchKeyError) Error() string {
	return fmt.Sprintf("no such %s in schema table: %q", e.Kind, e.Name)
}

// Table is a keyed collection of message and enum definitions,
// read-only after construction and safe to share across concurrent
// decode calls.
type Table struct {
	messages map[string]*MessageDef
	enums    map[string]*EnumDef
}

// NewTable returns an empty, mutable table. Populate it with AddMessage
// and AddEnum before handing it to decode.DecodeMessage; once handed
// off, treat it as read-only.
func NewTable() *Table {
	return &Table{
		messages: make(map[string]*MessageDef),
		enums:    make(map[string]*EnumDef),
	}
}

// AddMessage registers a message definition under its own name.
func (t *Table) AddMessage(m *MessageDef) {
	t.messages[m.Name] = m
}

// AddEnum registers an enum definition under its own name.
func (t *Table) AddEnum(e *EnumDef) {
	t.enums[e.Name] = e
}

// Message looks up a message definition by name.
func (t *Table) Message(name string) (*MessageDef, error) {
	m, ok := t.messages[name]
	if !ok {
		return nil, &NoSuchKeyError{Kind: "message", Name: name}
	}
	return m, nil
}

// Enum looks up an enum definition by name.
func (t *Table) Enum(name string) (*EnumDef, error) {
	e, ok := t.enums[name]
	if !ok {
		return nil, &NoSuchKeyError{Kind: "enum", Name: name}
	}
	return e, nil
}

// MessageNames returns every registered message name, for diagnostics.
func (t *Table) MessageNames() []string {
	names := make([]string, 0, len(t.messages))
	for name := range t.messages {
		names = append(names, name)
	}
	return names
}
