package protocol

import (
	"fmt"
	"math"
)

// Arg is one typed command argument. Arguments are written in the order
// they are passed to EncodeCommand.
type Arg interface {
	EncodeTo(e *Encoder) error
}

// Sentinels written for absent optional arguments. There is exactly one
// convention per wire type:
//
//	OptInt32   -1         (indices, colors)
//	OptFloat32 -1         (volume)
//	OptString  length 0   (names, plugin identifiers)
const (
	NoInt32   int32   = -1
	NoFloat32 float32 = -1
)

type (
	Uint8Arg   uint8
	Int8Arg    int8
	Uint16Arg  uint16
	Uint32Arg  uint32
	Int32Arg   int32
	Uint64Arg  uint64
	Float32Arg float32
	BoolArg    bool
	IStringArg string
	StringArg  string
)

func (a Uint8Arg) EncodeTo(e *Encoder) error   { e.WriteUint8(uint8(a)); return nil }
func (a Int8Arg) EncodeTo(e *Encoder) error    { e.WriteInt8(int8(a)); return nil }
func (a Uint16Arg) EncodeTo(e *Encoder) error  { e.WriteUint16(uint16(a)); return nil }
func (a Uint32Arg) EncodeTo(e *Encoder) error  { e.WriteUint32(uint32(a)); return nil }
func (a Int32Arg) EncodeTo(e *Encoder) error   { e.WriteInt32(int32(a)); return nil }
func (a Uint64Arg) EncodeTo(e *Encoder) error  { e.WriteUint64(uint64(a)); return nil }
func (a Float32Arg) EncodeTo(e *Encoder) error { e.WriteFloat32(float32(a)); return nil }
func (a BoolArg) EncodeTo(e *Encoder) error    { e.WriteBool(bool(a)); return nil }
func (a IStringArg) EncodeTo(e *Encoder) error { return e.WriteIString(string(a)) }
func (a StringArg) EncodeTo(e *Encoder) error  { e.WriteString(string(a)); return nil }

// OptInt32 is an int32 that may be left unset. A set value must be
// non-negative so it can never collide with the sentinel.
type OptInt32 struct {
	Value int32
	Set   bool
}

// SomeInt32 returns a set OptInt32.
func SomeInt32(v int32) OptInt32 { return OptInt32{Value: v, Set: true} }

// EncodeTo writes the value or NoInt32.
func (o OptInt32) EncodeTo(e *Encoder) error {
	if !o.Set {
		e.WriteInt32(NoInt32)
		return nil
	}
	if o.Value < 0 {
		return fmt.Errorf("%w: optional int32 %d is negative", ErrInvalidArgument, o.Value)
	}
	e.WriteInt32(o.Value)
	return nil
}

// OptFloat32 is a float32 that may be left unset. A set value must be
// non-negative and finite.
type OptFloat32 struct {
	Value float32
	Set   bool
}

// SomeFloat32 returns a set OptFloat32.
func SomeFloat32(v float32) OptFloat32 { return OptFloat32{Value: v, Set: true} }

// EncodeTo writes the value or NoFloat32.
func (o OptFloat32) EncodeTo(e *Encoder) error {
	if !o.Set {
		e.WriteFloat32(NoFloat32)
		return nil
	}
	// NaN fails both comparisons.
	if !(o.Value >= 0) || o.Value > math.MaxFloat32 {
		return fmt.Errorf("%w: optional float32 %v out of range", ErrInvalidArgument, o.Value)
	}
	e.WriteFloat32(o.Value)
	return nil
}

// OptString is a 32-bit length-prefixed string that may be left unset.
// A set value must be non-empty.
type OptString struct {
	Value string
	Set   bool
}

// SomeString returns a set OptString.
func SomeString(v string) OptString { return OptString{Value: v, Set: true} }

// EncodeTo writes the value or an empty string.
func (o OptString) EncodeTo(e *Encoder) error {
	if !o.Set {
		e.WriteString("")
		return nil
	}
	if o.Value == "" {
		return fmt.Errorf("%w: optional string is set but empty", ErrInvalidArgument)
	}
	e.WriteString(o.Value)
	return nil
}
