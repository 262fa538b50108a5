package protocol

import "fmt"

// Frame layout, both directions. One frame travels in one binary
// WebSocket message, so there is no length header:
//
//	┌─────────────┬──────────────────────────────────────────┐
//	│ Opcode      │ Payload                                  │
//	│ (1 byte)    │ (rest of the message)                    │
//	└─────────────┴──────────────────────────────────────────┘
//
// Correlated commands start their payload with a uint32 reply id, and the
// matching Reply packet starts with the same id.

// EncodeCommand encodes a serverbound frame: the opcode byte followed by
// each argument in order. If any argument is invalid no bytes are returned.
func EncodeCommand(op Serverbound, args ...Arg) ([]byte, error) {
	e := NewEncoderWithCap(16)
	e.WriteUint8(uint8(op))
	for i, arg := range args {
		if err := arg.EncodeTo(e); err != nil {
			return nil, fmt.Errorf("%s arg %d: %w", op, i, err)
		}
	}
	return e.Bytes(), nil
}

// DecodeCommand splits a serverbound frame into opcode and argument cursor.
func DecodeCommand(frame []byte) (Serverbound, *Decoder, error) {
	if len(frame) == 0 {
		return 0, nil, fmt.Errorf("%w: empty frame", ErrMalformedFrame)
	}
	return Serverbound(frame[0]), NewDecoder(frame[1:]), nil
}

// Packet is one clientbound frame.
type Packet struct {
	Opcode  Clientbound
	Payload []byte
}

// Encode returns the packet as a frame.
func (p Packet) Encode() []byte {
	buf := make([]byte, 1+len(p.Payload))
	buf[0] = byte(p.Opcode)
	copy(buf[1:], p.Payload)
	return buf
}

// NewPacket builds a packet from an encoder's current contents.
func NewPacket(op Clientbound, e *Encoder) Packet {
	payload := make([]byte, e.Len())
	copy(payload, e.Bytes())
	return Packet{Opcode: op, Payload: payload}
}

// DecodePacket splits a clientbound frame into its opcode and a cursor
// positioned just past the opcode byte.
func DecodePacket(frame []byte) (Clientbound, *Decoder, error) {
	if len(frame) == 0 {
		return 0, nil, fmt.Errorf("%w: empty frame", ErrMalformedFrame)
	}
	return Clientbound(frame[0]), NewDecoder(frame[1:]), nil
}
