package protocol

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEncoderDecoder(t *testing.T) {
	e := NewEncoder()

	e.WriteUint8(0x42)
	e.WriteInt8(-7)
	e.WriteBytes([]byte{0x01, 0x02, 0x03})
	e.WriteBool(true)
	e.WriteBool(false)
	e.WriteUint16(0x1234)
	e.WriteUint32(0x12345678)
	e.WriteUint64(0x123456789ABCDEF0)
	e.WriteInt16(-1234)
	e.WriteInt32(-12345678)
	e.WriteInt64(-123456789012345)
	e.WriteFloat32(3.14159)
	if err := e.WriteIString("short"); err != nil {
		t.Fatalf("WriteIString() error = %v", err)
	}
	e.WriteString("hello world")

	d := NewDecoder(e.Bytes())

	if b, err := d.ReadUint8(); err != nil || b != 0x42 {
		t.Errorf("ReadUint8() = %x, %v; want 0x42, nil", b, err)
	}
	if v, err := d.ReadInt8(); err != nil || v != -7 {
		t.Errorf("ReadInt8() = %d, %v; want -7, nil", v, err)
	}
	if bs, err := d.ReadBytes(3); err != nil || string(bs) != "\x01\x02\x03" {
		t.Errorf("ReadBytes(3) = %v, %v; want [1 2 3], nil", bs, err)
	}
	if v, err := d.ReadBool(); err != nil || !v {
		t.Errorf("ReadBool() = %v, %v; want true, nil", v, err)
	}
	if v, err := d.ReadBool(); err != nil || v {
		t.Errorf("ReadBool() = %v, %v; want false, nil", v, err)
	}
	if v, err := d.ReadUint16(); err != nil || v != 0x1234 {
		t.Errorf("ReadUint16() = %x, %v; want 0x1234, nil", v, err)
	}
	if v, err := d.ReadUint32(); err != nil || v != 0x12345678 {
		t.Errorf("ReadUint32() = %x, %v; want 0x12345678, nil", v, err)
	}
	if v, err := d.ReadUint64(); err != nil || v != 0x123456789ABCDEF0 {
		t.Errorf("ReadUint64() = %x, %v; want 0x123456789ABCDEF0, nil", v, err)
	}
	if v, err := d.ReadInt16(); err != nil || v != -1234 {
		t.Errorf("ReadInt16() = %d, %v; want -1234, nil", v, err)
	}
	if v, err := d.ReadInt32(); err != nil || v != -12345678 {
		t.Errorf("ReadInt32() = %d, %v; want -12345678, nil", v, err)
	}
	if v, err := d.ReadInt64(); err != nil || v != -123456789012345 {
		t.Errorf("ReadInt64() = %d, %v; want -123456789012345, nil", v, err)
	}
	if v, err := d.ReadFloat32(); err != nil || math.Abs(float64(v)-3.14159) > 0.0001 {
		t.Errorf("ReadFloat32() = %f, %v; want 3.14159, nil", v, err)
	}
	if v, err := d.ReadIString(); err != nil || v != "short" {
		t.Errorf("ReadIString() = %q, %v; want \"short\", nil", v, err)
	}
	if v, err := d.ReadString(); err != nil || v != "hello world" {
		t.Errorf("ReadString() = %q, %v; want \"hello world\", nil", v, err)
	}
	if !d.EOF() {
		t.Errorf("EOF() = false; want true, %d bytes left", d.Remaining())
	}
}

func TestBigEndianLayout(t *testing.T) {
	e := NewEncoder()
	e.WriteUint32(0x01020304)
	e.WriteUint64(1)
	want := []byte{1, 2, 3, 4, 0, 0, 0, 0, 0, 0, 0, 1}
	if string(e.Bytes()) != string(want) {
		t.Errorf("bytes = %v, want %v", e.Bytes(), want)
	}
}

func TestUint64NotTruncated(t *testing.T) {
	const id = uint64(math.MaxUint64 - 5)
	e := NewEncoder()
	e.WriteUint64(id)
	got, err := NewDecoder(e.Bytes()).ReadUint64()
	if err != nil || got != id {
		t.Errorf("ReadUint64() = %d, %v; want %d, nil", got, err, id)
	}
}

func TestDecoderOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		read func(d *Decoder) error
	}{
		{"uint8 empty", nil, func(d *Decoder) error { _, err := d.ReadUint8(); return err }},
		{"uint16 short", []byte{1}, func(d *Decoder) error { _, err := d.ReadUint16(); return err }},
		{"uint32 short", []byte{1, 2, 3}, func(d *Decoder) error { _, err := d.ReadUint32(); return err }},
		{"uint64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(d *Decoder) error { _, err := d.ReadUint64(); return err }},
		{"float32 short", []byte{1}, func(d *Decoder) error { _, err := d.ReadFloat32(); return err }},
		{"bytes short", []byte{1, 2}, func(d *Decoder) error { _, err := d.ReadBytes(3); return err }},
		{"istring no prefix", nil, func(d *Decoder) error { _, err := d.ReadIString(); return err }},
		{"istring short body", []byte{5, 'a', 'b'}, func(d *Decoder) error { _, err := d.ReadIString(); return err }},
		{"string short prefix", []byte{0, 0}, func(d *Decoder) error { _, err := d.ReadString(); return err }},
		{"string short body", []byte{0, 0, 0, 4, 'a'}, func(d *Decoder) error { _, err := d.ReadString(); return err }},
		{"skip past end", []byte{1}, func(d *Decoder) error { return d.Skip(2) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecoder(tc.buf)
			err := tc.read(d)
			if !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("err = %v, want ErrOutOfBounds", err)
			}
			if d.Position() != 0 {
				t.Errorf("Position() = %d after failed read, want 0", d.Position())
			}
		})
	}
}

func TestReadUint8EmptyKeepsOffset(t *testing.T) {
	d := NewDecoder([]byte{})
	if _, err := d.ReadUint8(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("ReadUint8() err = %v, want ErrOutOfBounds", err)
	}
	if d.Position() != 0 || d.Remaining() != 0 {
		t.Errorf("Position() = %d, Remaining() = %d; want 0, 0", d.Position(), d.Remaining())
	}
}

func TestReadStringTooLarge(t *testing.T) {
	e := NewEncoder()
	e.WriteUint32(DefaultMaxAllocation + 1)
	d := NewDecoder(e.Bytes())
	if _, err := d.ReadString(); !errors.Is(err, ErrMalformedFrame) {
		t.Fatalf("ReadString() err = %v, want ErrMalformedFrame", err)
	}
	if d.Position() != 0 {
		t.Errorf("Position() = %d, want 0", d.Position())
	}
}

func TestWriteIStringLimit(t *testing.T) {
	e := NewEncoder()
	if err := e.WriteIString(strings.Repeat("x", MaxIStringLen)); err != nil {
		t.Fatalf("WriteIString(255) error = %v", err)
	}
	if e.Len() != 1+MaxIStringLen {
		t.Fatalf("Len() = %d, want %d", e.Len(), 1+MaxIStringLen)
	}

	e.Reset()
	err := e.WriteIString(strings.Repeat("x", MaxIStringLen+1))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("WriteIString(256) err = %v, want ErrInvalidArgument", err)
	}
	if e.Len() != 0 {
		t.Errorf("Len() = %d after rejected write, want 0", e.Len())
	}
}

func TestReadBoolNonZero(t *testing.T) {
	d := NewDecoder([]byte{0x7F})
	v, err := d.ReadBool()
	if err != nil || !v {
		t.Errorf("ReadBool(0x7F) = %v, %v; want true, nil", v, err)
	}
}

func TestDecoderRest(t *testing.T) {
	d := NewDecoder([]byte{1, 2, 3})
	_, _ = d.ReadUint8()
	rest := d.Rest()
	if string(rest) != "\x02\x03" || !d.EOF() {
		t.Errorf("Rest() = %v, EOF() = %v", rest, d.EOF())
	}
}
