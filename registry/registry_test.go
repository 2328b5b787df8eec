package registry

import (
	"os"
	"path/filepath"
	"testing"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/anirudhraja/dynapb/decode"
	"github.com/anirudhraja/dynapb/schema"
	"github.com/anirudhraja/dynapb/value"
)

const userProto = `syntax = "proto2";

package demo;

enum Status {
  UNKNOWN = 0;
  ACTIVE = 1;
  DISABLED = 2;
}

message User {
  required int32 id = 1;
  optional string name = 2;
  repeated string tags = 3;
  optional Status status = 4;
  map<string, int32> scores = 5;
  oneof contact {
    string email = 6;
    int64 phone = 7;
  }
  message Inner {
    optional bool flag = 1;
  }
  optional Inner inner = 8;
}
`

const wrapperProto = `syntax = "proto2";

package other;

import "user.proto";

message Wrapper {
  optional demo.User user = 1;
}
`

func writeProtos(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "user.proto"), []byte(userProto), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wrapper.proto"), []byte(wrapperProto), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadFileBuildsDescriptors(t *testing.T) {
	dir := writeProtos(t)
	r := NewRegistry(dir)
	if err := r.LoadFile(filepath.Join(dir, "user.proto")); err != nil {
		t.Fatal(err)
	}
	table := r.Table()

	user, err := table.Message("demo.User")
	if err != nil {
		t.Fatal(err)
	}

	type want struct {
		name string
		fnum int32
		slot int
		kind schema.Kind
		occ  schema.Occurrence
	}
	wants := []want{
		{"id", 1, 1, schema.KindInt32, schema.Required},
		{"name", 2, 2, schema.KindString, schema.Optional},
		{"tags", 3, 3, schema.KindString, schema.Repeated},
		{"status", 4, 4, schema.KindEnum, schema.Optional},
		{"scores", 5, 5, schema.KindMessage, schema.Repeated},
		{"email", 6, 6, schema.KindString, schema.Optional},
		{"phone", 7, 7, schema.KindInt64, schema.Optional},
		{"inner", 8, 8, schema.KindMessage, schema.Optional},
	}
	if len(user.Fields) != len(wants) {
		t.Fatalf("got %d fields, want %d", len(user.Fields), len(wants))
	}
	for i, w := range wants {
		f := user.Fields[i]
		if f.Name != w.name || f.FNum != w.fnum || f.Slot != w.slot || f.Type.Kind != w.kind || f.Occurrence != w.occ {
			t.Errorf("field %d = %+v, want %+v", i, f, w)
		}
	}

	if f := user.FieldByNumber(4); f.Type.Name != "demo.Status" {
		t.Errorf("status resolves to %q, want demo.Status", f.Type.Name)
	}
	if f := user.FieldByNumber(8); f.Type.Name != "demo.User.Inner" {
		t.Errorf("inner resolves to %q, want demo.User.Inner", f.Type.Name)
	}

	// The map field becomes a repeated synthetic entry message with
	// key at slot 1 and value at slot 2.
	entry, err := table.Message("demo.User.ScoresEntry")
	if err != nil {
		t.Fatal(err)
	}
	if len(entry.Fields) != 2 {
		t.Fatalf("entry fields = %d, want 2", len(entry.Fields))
	}
	if k := entry.Fields[0]; k.Name != "key" || k.FNum != 1 || k.Type.Kind != schema.KindString {
		t.Errorf("entry key = %+v", k)
	}
	if v := entry.Fields[1]; v.Name != "value" || v.FNum != 2 || v.Type.Kind != schema.KindInt32 {
		t.Errorf("entry value = %+v", v)
	}

	status, err := table.Enum("demo.Status")
	if err != nil {
		t.Fatal(err)
	}
	if name, ok := status.NameOf(1); !ok || name != "ACTIVE" {
		t.Errorf("Status 1 = (%q, %v), want ACTIVE", name, ok)
	}
}

func TestLoadFileFollowsImports(t *testing.T) {
	dir := writeProtos(t)
	r := NewRegistry(dir)
	if err := r.LoadFile(filepath.Join(dir, "wrapper.proto")); err != nil {
		t.Fatal(err)
	}
	table := r.Table()

	wrapper, err := table.Message("other.Wrapper")
	if err != nil {
		t.Fatal(err)
	}
	f := wrapper.FieldByNumber(1)
	if f == nil || f.Type.Kind != schema.KindMessage || f.Type.Name != "demo.User" {
		t.Errorf("wrapper.user = %+v, want a demo.User message field", f)
	}
	// The imported file's own entries are present too.
	if _, err := table.Message("demo.User"); err != nil {
		t.Errorf("imported message not registered: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := writeProtos(t)
	r := NewRegistry(dir)
	if err := r.LoadDir(dir); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"demo.User", "other.Wrapper", "demo.User.ScoresEntry"} {
		if _, err := r.Table().Message(name); err != nil {
			t.Errorf("after LoadDir: %v", err)
		}
	}
}

func TestLoadedTableDecodesWire(t *testing.T) {
	dir := writeProtos(t)
	r := NewRegistry(dir)
	if err := r.LoadFile(filepath.Join(dir, "user.proto")); err != nil {
		t.Fatal(err)
	}
	table := r.Table()

	var entry []byte
	entry = protowire.AppendTag(entry, 1, protowire.BytesType)
	entry = protowire.AppendString(entry, "math")
	entry = protowire.AppendTag(entry, 2, protowire.VarintType)
	entry = protowire.AppendVarint(entry, 97)

	var buf []byte
	buf = protowire.AppendTag(buf, 1, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 42)
	buf = protowire.AppendTag(buf, 2, protowire.BytesType)
	buf = protowire.AppendString(buf, "ada")
	buf = protowire.AppendTag(buf, 4, protowire.VarintType)
	buf = protowire.AppendVarint(buf, 2)
	buf = protowire.AppendTag(buf, 5, protowire.BytesType)
	buf = protowire.AppendBytes(buf, entry)

	msg, err := decode.DecodeMessage(buf, "demo.User", table)
	if err != nil {
		t.Fatal(err)
	}
	if got := msg.Slot(1).I64; got != 42 {
		t.Errorf("id = %d", got)
	}
	if got := msg.Slot(2).Str; got != "ada" {
		t.Errorf("name = %q", got)
	}
	if got := msg.Slot(4); got.Kind != value.KindEnum || got.Enum != "DISABLED" {
		t.Errorf("status = %v, want DISABLED", got)
	}
	scores := msg.Slot(5).Seq
	if len(scores) != 1 {
		t.Fatalf("scores = %v, want one entry", scores)
	}
	e := scores[0].Msg
	if e.Slot(1).Str != "math" || e.Slot(2).I64 != 97 {
		t.Errorf("scores entry = %v", e.Slots)
	}
}

func TestUnresolvableImport(t *testing.T) {
	dir := t.TempDir()
	proto := `syntax = "proto2";
import "missing.proto";
message M {}
`
	if err := os.WriteFile(filepath.Join(dir, "m.proto"), []byte(proto), 0o644); err != nil {
		t.Fatal(err)
	}
	r := NewRegistry(dir)
	if err := r.LoadFile(filepath.Join(dir, "m.proto")); err == nil {
		t.Error("expected an error for an unresolvable import")
	}
}

func TestMapEntryName(t *testing.T) {
	cases := map[string]string{
		"scores":      "ScoresEntry",
		"user_scores": "UserScoresEntry",
		"x":           "XEntry",
	}
	for in, want := range cases {
		if got := mapEntryName(in); got != want {
			t.Errorf("mapEntryName(%q) = %q, want %q", in, got, want)
		}
	}
}
