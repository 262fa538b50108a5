package protocol

import (
	"fmt"
	"math"
)

// DefaultMaxAllocation caps 32-bit length-prefixed strings (4MB).
// A backend config document is far below this.
const DefaultMaxAllocation = 4 * 1024 * 1024

// Decoder is a bounds-checked read cursor over a byte buffer.
// A read that would run past the end returns ErrOutOfBounds and leaves
// the position where it was.
type Decoder struct {
	buf []byte
	pos int
}

// NewDecoder creates a new decoder from the given byte slice.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.buf) - d.pos
}

// EOF returns true if all bytes have been read.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.buf)
}

// Position returns the current read position.
func (d *Decoder) Position() int {
	return d.pos
}

func (d *Decoder) need(n int, what string) error {
	if n < 0 || d.pos+n > len(d.buf) {
		return fmt.Errorf("%w: %s needs %d bytes at offset %d, have %d", ErrOutOfBounds, what, n, d.pos, d.Remaining())
	}
	return nil
}

// Skip advances the position by n bytes.
func (d *Decoder) Skip(n int) error {
	if err := d.need(n, "skip"); err != nil {
		return err
	}
	d.pos += n
	return nil
}

// ReadUint8 reads a single byte.
func (d *Decoder) ReadUint8() (uint8, error) {
	if err := d.need(1, "uint8"); err != nil {
		return 0, err
	}
	b := d.buf[d.pos]
	d.pos++
	return b, nil
}

// ReadInt8 reads a signed byte.
func (d *Decoder) ReadInt8() (int8, error) {
	v, err := d.ReadUint8()
	return int8(v), err
}

// ReadBytes reads exactly n bytes and returns them.
// The returned slice references the decoder's buffer; do not modify.
func (d *Decoder) ReadBytes(n int) ([]byte, error) {
	if err := d.need(n, "bytes"); err != nil {
		return nil, err
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// Rest returns every unread byte and moves to the end.
func (d *Decoder) Rest() []byte {
	b := d.buf[d.pos:]
	d.pos = len(d.buf)
	return b
}

// ReadBool reads a boolean (single byte, any non-zero is true).
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadUint8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadUint16 reads a uint16 in big-endian byte order.
func (d *Decoder) ReadUint16() (uint16, error) {
	if err := d.need(2, "uint16"); err != nil {
		return 0, err
	}
	v := uint16(d.buf[d.pos])<<8 | uint16(d.buf[d.pos+1])
	d.pos += 2
	return v, nil
}

// ReadUint32 reads a uint32 in big-endian byte order.
func (d *Decoder) ReadUint32() (uint32, error) {
	if err := d.need(4, "uint32"); err != nil {
		return 0, err
	}
	v := uint32(d.buf[d.pos])<<24 | uint32(d.buf[d.pos+1])<<16 |
		uint32(d.buf[d.pos+2])<<8 | uint32(d.buf[d.pos+3])
	d.pos += 4
	return v, nil
}

// ReadUint64 reads a uint64 in big-endian byte order.
func (d *Decoder) ReadUint64() (uint64, error) {
	if err := d.need(8, "uint64"); err != nil {
		return 0, err
	}
	v := uint64(d.buf[d.pos])<<56 | uint64(d.buf[d.pos+1])<<48 |
		uint64(d.buf[d.pos+2])<<40 | uint64(d.buf[d.pos+3])<<32 |
		uint64(d.buf[d.pos+4])<<24 | uint64(d.buf[d.pos+5])<<16 |
		uint64(d.buf[d.pos+6])<<8 | uint64(d.buf[d.pos+7])
	d.pos += 8
	return v, nil
}

// ReadInt16 reads an int16 in big-endian byte order.
func (d *Decoder) ReadInt16() (int16, error) {
	v, err := d.ReadUint16()
	return int16(v), err
}

// ReadInt32 reads an int32 in big-endian byte order.
func (d *Decoder) ReadInt32() (int32, error) {
	v, err := d.ReadUint32()
	return int32(v), err
}

// ReadInt64 reads an int64 in big-endian byte order.
func (d *Decoder) ReadInt64() (int64, error) {
	v, err := d.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads a float32 in IEEE 754 format (big-endian).
func (d *Decoder) ReadFloat32() (float32, error) {
	v, err := d.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadIString reads a string with an 8-bit length prefix.
// On failure the position is left unchanged, prefix included.
func (d *Decoder) ReadIString() (string, error) {
	if err := d.need(1, "istring length"); err != nil {
		return "", err
	}
	n := int(d.buf[d.pos])
	if err := d.need(1+n, "istring"); err != nil {
		return "", err
	}
	s := string(d.buf[d.pos+1 : d.pos+1+n])
	d.pos += 1 + n
	return s, nil
}

// ReadString reads a string with a 32-bit big-endian length prefix.
// On failure the position is left unchanged, prefix included.
func (d *Decoder) ReadString() (string, error) {
	start := d.pos
	length, err := d.ReadUint32()
	if err != nil {
		return "", err
	}
	if length > DefaultMaxAllocation {
		d.pos = start
		return "", fmt.Errorf("%w: string length %d exceeds limit", ErrMalformedFrame, length)
	}
	if err := d.need(int(length), "string"); err != nil {
		d.pos = start
		return "", err
	}
	n := int(length)
	s := string(d.buf[d.pos : d.pos+n])
	d.pos += n
	return s, nil
}
