// Binary serialization for compiled Bytecode, extending kristofer-smog's
// .sg file format (pkg/bytecode/format.go) with a label-table section,
// since prog's jump instructions reference labels rather than baked-in
// instruction offsets.
//
// Binary layout:
//
//	[Header]      magic "PROG" (4 bytes), format version (4 bytes)
//	[Names]       count (4 bytes), then each: length-prefixed UTF-8 string
//	[Constants]   count (4 bytes), then each: type tag (1 byte) + payload
//	              0x01 number (float64, 8 bytes)
//	              0x02 string (4-byte length + UTF-8 bytes)
//	              0x03 boolean (1 byte)
//	              0x04 none (no payload)
//	              0x05 function prototype (name, params, nested Bytecode)
//	[Instructions] count (4 bytes), then each: opcode (1 byte) + operand (4 bytes)
//	[Labels]       count (4 bytes), then each: label id (4 bytes) + instruction index (4 bytes)
package bytecode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	magicNumber   uint32 = 0x50524F47 // "PROG"
	formatVersion uint32 = 1
)

const (
	constTagNumber  byte = 0x01
	constTagString  byte = 0x02
	constTagBoolean byte = 0x03
	constTagNone    byte = 0x04
	constTagFunc    byte = 0x05
)

// Bytes serializes b into prog's binary bytecode format.
func (b *Bytecode) Bytes() ([]byte, error) {
	var buf []byte
	w := &byteWriter{buf: &buf}

	w.uint32(magicNumber)
	w.uint32(formatVersion)

	w.uint32(uint32(len(b.Names)))
	for _, name := range b.Names {
		w.string(name)
	}

	w.uint32(uint32(len(b.Constants)))
	for _, c := range b.Constants {
		if err := writeConstant(w, c); err != nil {
			return nil, err
		}
	}

	w.uint32(uint32(len(b.Instructions)))
	for _, instr := range b.Instructions {
		w.byte(byte(instr.Op))
		w.int32(int32(instr.Operand))
	}

	w.uint32(uint32(len(b.Labels)))
	for id, idx := range b.Labels {
		w.int32(int32(id))
		w.int32(int32(idx))
	}

	return buf, w.err
}

// FromBytes deserializes a Bytecode previously produced by Bytes.
func FromBytes(data []byte) (*Bytecode, error) {
	r := &byteReader{buf: data}

	magic := r.uint32()
	if magic != magicNumber {
		return nil, fmt.Errorf("bytecode: bad magic number %#x", magic)
	}
	version := r.uint32()
	if version != formatVersion {
		return nil, fmt.Errorf("bytecode: unsupported format version %d", version)
	}

	b := New()

	nameCount := r.uint32()
	for i := uint32(0); i < nameCount && r.err == nil; i++ {
		b.Names = append(b.Names, r.string())
	}

	constCount := r.uint32()
	for i := uint32(0); i < constCount && r.err == nil; i++ {
		c, err := readConstant(r)
		if err != nil {
			return nil, err
		}
		b.Constants = append(b.Constants, c)
	}

	instrCount := r.uint32()
	for i := uint32(0); i < instrCount && r.err == nil; i++ {
		op := Opcode(r.byte())
		operand := int(r.int32())
		b.Instructions = append(b.Instructions, Instruction{Op: op, Operand: operand})
	}

	labelCount := r.uint32()
	for i := uint32(0); i < labelCount && r.err == nil; i++ {
		id := int(r.int32())
		idx := int(r.int32())
		b.Labels[id] = idx
	}

	if r.err != nil {
		return nil, r.err
	}
	return b, nil
}

func writeConstant(w *byteWriter, c any) error {
	switch v := c.(type) {
	case float64:
		w.byte(constTagNumber)
		w.float64(v)
	case string:
		w.byte(constTagString)
		w.string(v)
	case bool:
		w.byte(constTagBoolean)
		if v {
			w.byte(1)
		} else {
			w.byte(0)
		}
	case nil:
		w.byte(constTagNone)
	case *FuncProto:
		w.byte(constTagFunc)
		w.string(v.Name)
		w.uint32(uint32(len(v.Params)))
		for _, p := range v.Params {
			w.string(p)
		}
		nested, err := v.Code.Bytes()
		if err != nil {
			return err
		}
		w.uint32(uint32(len(nested)))
		w.raw(nested)
	default:
		return fmt.Errorf("bytecode: unencodable constant of type %T", c)
	}
	return nil
}

func readConstant(r *byteReader) (any, error) {
	tag := r.byte()
	switch tag {
	case constTagNumber:
		return r.float64(), r.err
	case constTagString:
		return r.string(), r.err
	case constTagBoolean:
		return r.byte() != 0, r.err
	case constTagNone:
		return nil, r.err
	case constTagFunc:
		name := r.string()
		paramCount := r.uint32()
		params := make([]string, 0, paramCount)
		for i := uint32(0); i < paramCount; i++ {
			params = append(params, r.string())
		}
		nestedLen := r.uint32()
		nested := r.rawN(int(nestedLen))
		code, err := FromBytes(nested)
		if err != nil {
			return nil, err
		}
		return &FuncProto{Name: name, Params: params, Code: code}, r.err
	default:
		return nil, fmt.Errorf("bytecode: unknown constant tag %#x", tag)
	}
}

// --- minimal binary writer/reader helpers ---

type byteWriter struct {
	buf *[]byte
	err error
}

func (w *byteWriter) raw(b []byte) { *w.buf = append(*w.buf, b...) }
func (w *byteWriter) byte(b byte)  { *w.buf = append(*w.buf, b) }

func (w *byteWriter) uint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.raw(b[:])
}

func (w *byteWriter) int32(v int32) { w.uint32(uint32(v)) }

func (w *byteWriter) float64(v float64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
	w.raw(b[:])
}

func (w *byteWriter) string(s string) {
	w.uint32(uint32(len(s)))
	w.raw([]byte(s))
}

type byteReader struct {
	buf []byte
	pos int
	err error
}

func (r *byteReader) rawN(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.pos+n > len(r.buf) {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out
}

func (r *byteReader) byte() byte {
	b := r.rawN(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *byteReader) uint32() uint32 {
	b := r.rawN(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *byteReader) int32() int32 { return int32(r.uint32()) }

func (r *byteReader) float64() float64 {
	b := r.rawN(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

func (r *byteReader) string() string {
	n := r.uint32()
	b := r.rawN(int(n))
	return string(b)
}
