// dynapbdemo builds a small schema by hand, encodes two wire-format
// messages with the wire package's encoder, decodes each against the
// schema, and merges the results.
package main

import (
	"fmt"
	"log"

	"github.com/anirudhraja/dynapb"
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
	"github.com/anirudhraja/dynapb/wire"
)

func buildTable() *schema.Table {
	table := schema.NewTable()

	table.AddMessage(&schema.MessageDef{
		Name: "Person",
		Fields: []*schema.Field{
			{Name: "id", FNum: 1, Slot: 1, Type: schema.Type{Kind: schema.KindInt32}, Occurrence: schema.Required},
			{Name: "name", FNum: 2, Slot: 2, Type: schema.Type{Kind: schema.KindString}, Occurrence: schema.Optional},
			{Name: "tags", FNum: 3, Slot: 3, Type: schema.Type{Kind: schema.KindString}, Occurrence: schema.Repeated},
			{Name: "home", FNum: 4, Slot: 4, Type: schema.Type{Kind: schema.KindMessage, Name: "Address"}, Occurrence: schema.Optional},
		},
	})
	table.AddMessage(&schema.MessageDef{
		Name: "Address",
		Fields: []*schema.Field{
			{Name: "city", FNum: 1, Slot: 1, Type: schema.Type{Kind: schema.KindString}, Occurrence: schema.Optional},
			{Name: "zip", FNum: 2, Slot: 2, Type: schema.Type{Kind: schema.KindString}, Occurrence: schema.Optional},
		},
	})
	return table
}

func encodeFirst() []byte {
	e := wire.NewEncoder()
	e.EncodeTag(1, wire.Varint)
	e.EncodeVarint(7)
	e.EncodeTag(2, wire.Bytes)
	e.EncodeBytesFrame([]byte("Ada Lovelace"))
	e.EncodeTag(3, wire.Bytes)
	e.EncodeBytesFrame([]byte("engineer"))

	home := wire.NewEncoder()
	home.EncodeTag(1, wire.Bytes)
	home.EncodeBytesFrame([]byte("London"))
	e.EncodeTag(4, wire.Bytes)
	e.EncodeBytesFrame(home.Bytes())
	return e.Bytes()
}

func encodeSecond() []byte {
	e := wire.NewEncoder()
	e.EncodeTag(3, wire.Bytes)
	e.EncodeBytesFrame([]byte("mathematician"))

	home := wire.NewEncoder()
	home.EncodeTag(2, wire.Bytes)
	home.EncodeBytesFrame([]byte("W1 0AA"))
	e.EncodeTag(4, wire.Bytes)
	e.EncodeBytesFrame(home.Bytes())
	return e.Bytes()
}

func main() {
	table := buildTable()

	first, err := dynapb.Decode(encodeFirst(), "Person", table)
	if err != nil {
		log.Fatalf("decoding first message: %v", err)
	}
	second, err := dynapb.Decode(encodeSecond(), "Person", table)
	if err != nil {
		log.Fatalf("decoding second message: %v", err)
	}

	merged, err := dynapb.Merge(first, second, table)
	if err != nil {
		log.Fatalf("merging messages: %v", err)
	}

	printPerson("first", first)
	printPerson("second", second)
	printPerson("merged", merged)
}

func printPerson(label string, m *value.Message) {
	fmt.Printf("%s: id=%d name=%q tags=%v city=%q zip=%q\n",
		label,
		m.Slot(1).I64,
		m.Slot(2).Str,
		tagsOf(m.Slot(3)),
		m.Slot(4).Msg.Slot(1).Str,
		m.Slot(4).Msg.Slot(2).Str,
	)
}

func tagsOf(v value.Value) []string {
	tags := make([]string, len(v.Seq))
	for i, t := range v.Seq {
		tags[i] = t.Str
	}
	return tags
}
