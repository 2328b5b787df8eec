package decode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anirudhraja/dynapb/schema"
)

// Sentinel errors for the failures that need schema context to raise.
// The wire-level kinds live in package wire and are re-exported
// nowhere; callers compare against wire.ErrTruncated /
// wire.ErrUnsupportedWireType directly, since errors.Is sees through
// the FieldError wrapper below.
var (
	// ErrUnknownEnumerator is returned when a decoded integer has no
	// mapping in the enum's symbol table.
	ErrUnknownEnumerator = errors.New("unknown enumerator")

	// ErrInvalidUTF8 is returned when a string field's payload is not
	// valid UTF-8.
	ErrInvalidUTF8 = errors.New("invalid utf8")

	// ErrTypeMismatch is returned by Merge when prev and next do not
	// carry the same type tag.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrSchemaCycle is returned when constructing a message's empty
	// sub-messages would recurse through the same message name without
	// ever bottoming out.
	ErrSchemaCycle = errors.New("schema cycle through a singular message field")
)

// PathStep is one frame of a FieldError's path. A message frame carries
// only the message name; a field frame also records the field's wire
// number and value slot, so the path pins down both what the bytes
// claimed (the number) and where the value was headed (the slot).
type PathStep struct {
	Name string
	FNum int32 // wire field number, 0 on a message frame
	Slot int   // value slot, 0 on a message frame
}

func (s PathStep) String() string {
	if s.FNum == 0 {
		return s.Name
	}
	return fmt.Sprintf("%s#%d", s.Name, s.FNum)
}

// FieldError wraps an error with the path of message and field frames
// that were active when it occurred. Wrapping happens innermost-first
// as the error propagates back up the recursive decode, so the path
// reads outer to inner.
type FieldError struct {
	Path []PathStep
	Err  error
}

func (e *FieldError) Error() string {
	if len(e.Path) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, len(e.Path))
	for i, s := range e.Path {
		parts[i] = s.String()
	}
	return fmt.Sprintf("field %s: %v", strings.Join(parts, "."), e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// wrapField records that err happened while handling f.
func wrapField(err error, f *schema.Field) error {
	return wrapStep(err, PathStep{Name: f.Name, FNum: f.FNum, Slot: f.Slot})
}

// wrapMessage records that err happened at the top of a message body,
// before any field was in hand (a bad tag, a failed construction).
func wrapMessage(err error, msgName string) error {
	return wrapStep(err, PathStep{Name: msgName})
}

func wrapStep(err error, step PathStep) error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*FieldError); ok {
		return &FieldError{Path: append([]PathStep{step}, fe.Path...), Err: fe.Err}
	}
	return &FieldError{Path: []PathStep{step}, Err: err}
}
