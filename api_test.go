package dynapb

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/wire"
)

func personTable() *schema.Table {
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
		},
	})
	return table
}

func TestDecodeThenMerge(t *testing.T) {
	table := personTable()

	first := wire.NewEncoder()
	first.EncodeTag(1, wire.Varint)
	first.EncodeVarint(7)
	first.EncodeTag(3, wire.Bytes)
	first.EncodeBytesFrame([]byte("engineer"))

	second := wire.NewEncoder()
	second.EncodeTag(2, wire.Bytes)
	second.EncodeBytesFrame([]byte("Ada"))
	second.EncodeTag(3, wire.Bytes)
	second.EncodeBytesFrame([]byte("mathematician"))

	a, err := Decode(first.Bytes(), "Person", table)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decode(second.Bytes(), "Person", table)
	if err != nil {
		t.Fatal(err)
	}

	merged, err := Merge(a, b, table)
	if err != nil {
		t.Fatal(err)
	}

	if got := merged.Slot(1).I64; got != 7 {
		t.Errorf("id = %d, want 7 preserved from the first message", got)
	}
	if got := merged.Slot(2).Str; got != "Ada" {
		t.Errorf("name = %q", got)
	}
	var tags []string
	for _, v := range merged.Slot(3).Seq {
		tags = append(tags, v.Str)
	}
	if want := []string{"engineer", "mathematician"}; !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
}

func TestDecodeMergeEquivalence(t *testing.T) {
	// Decoding the concatenation of two serialized messages of the same
	// type is equivalent to decoding each and merging.
	table := personTable()

	first := wire.NewEncoder()
	first.EncodeTag(1, wire.Varint)
	first.EncodeVarint(1)
	second := wire.NewEncoder()
	second.EncodeTag(1, wire.Varint)
	second.EncodeVarint(2)
	second.EncodeTag(2, wire.Bytes)
	second.EncodeBytesFrame([]byte("x"))

	oneShot, err := Decode(append(first.Bytes(), second.Bytes()...), "Person", table)
	if err != nil {
		t.Fatal(err)
	}
	a, err := Decode(first.Bytes(), "Person", table)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Decode(second.Bytes(), "Person", table)
	if err != nil {
		t.Fatal(err)
	}
	merged, err := Merge(a, b, table)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(oneShot, merged) {
		t.Errorf("concatenated decode %v differs from decode-then-merge %v", oneShot, merged)
	}
	if oneShot.Slot(1).I64 != 2 {
		t.Errorf("id = %d, want the later occurrence to win", oneShot.Slot(1).I64)
	}
}

func TestDecodeSharedTableAcrossGoroutines(t *testing.T) {
	table := personTable()
	e := wire.NewEncoder()
	e.EncodeTag(1, wire.Varint)
	e.EncodeVarint(99)
	data := e.Bytes()

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			msg, err := Decode(data, "Person", table)
			if err == nil && msg.Slot(1).I64 != 99 {
				err = fmt.Errorf("id = %d, want 99", msg.Slot(1).I64)
			}
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Fatal(err)
		}
	}
}
