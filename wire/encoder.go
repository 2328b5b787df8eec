package wire

import "encoding/binary"

// Encoder is the symmetric counterpart to Decoder. The message decoder
// never uses it; it exists for tests and demo programs that need to
// construct wire bytes by hand. There is no schema-driven encoder in
// this module.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Bytes returns the accumulated output.
func (e *Encoder) Bytes() []byte { return e.buf }

// EncodeVarint appends v as a base-128 little-endian varint.
func (e *Encoder) EncodeVarint(v uint64) {
	for v >= 0x80 {
		e.buf = append(e.buf, byte(v)|0x80)
		v >>= 7
	}
	e.buf = append(e.buf, byte(v))
}

// EncodeTag appends the tag varint for (fnum, wireType).
func (e *Encoder) EncodeTag(fnum int32, wireType Type) {
	e.EncodeVarint(MakeTag(fnum, wireType))
}

// EncodeFixed32 appends v as 4 little-endian bytes.
func (e *Encoder) EncodeFixed32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// EncodeFixed64 appends v as 8 little-endian bytes.
func (e *Encoder) EncodeFixed64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// EncodeBytesFrame appends a varint length prefix followed by data.
func (e *Encoder) EncodeBytesFrame(data []byte) {
	e.EncodeVarint(uint64(len(data)))
	e.buf = append(e.buf, data...)
}
