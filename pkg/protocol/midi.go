package protocol

import "fmt"

// MidiNote is one note in a TrackMidiData packet. Start and Length are in
// backend ticks.
type MidiNote struct {
	Key      uint8
	Velocity uint8
	Start    uint32
	Length   uint32
}

// TrackMidi is the payload of a TrackMidiData packet.
type TrackMidi struct {
	ID    uint64
	Notes []MidiNote
}

// MaxMidiNotes is the most notes one packet can carry.
const MaxMidiNotes = 0xFFFF

// EncodeTrackMidiTo encodes a TrackMidi using the provided encoder.
func EncodeTrackMidiTo(e *Encoder, m *TrackMidi) error {
	if len(m.Notes) > MaxMidiNotes {
		return fmt.Errorf("%w: %d notes exceeds %d", ErrInvalidArgument, len(m.Notes), MaxMidiNotes)
	}
	e.WriteUint64(m.ID)
	e.WriteUint16(uint16(len(m.Notes)))
	for _, n := range m.Notes {
		e.WriteUint8(n.Key)
		e.WriteUint8(n.Velocity)
		e.WriteUint32(n.Start)
		e.WriteUint32(n.Length)
	}
	return nil
}

// noteSize is the encoded width of one MidiNote.
const noteSize = 1 + 1 + 4 + 4

// DecodeTrackMidiFrom decodes a TrackMidi from a decoder.
func DecodeTrackMidiFrom(d *Decoder) (TrackMidi, error) {
	var m TrackMidi
	var err error

	if m.ID, err = d.ReadUint64(); err != nil {
		return m, err
	}
	count, err := d.ReadUint16()
	if err != nil {
		return m, err
	}
	// Check the whole note block up front so a short frame never allocates.
	if d.Remaining() < int(count)*noteSize {
		return m, fmt.Errorf("%w: %d notes need %d bytes, have %d", ErrOutOfBounds, count, int(count)*noteSize, d.Remaining())
	}
	m.Notes = make([]MidiNote, count)
	for i := range m.Notes {
		n := &m.Notes[i]
		n.Key, _ = d.ReadUint8()
		n.Velocity, _ = d.ReadUint8()
		n.Start, _ = d.ReadUint32()
		n.Length, _ = d.ReadUint32()
	}
	return m, nil
}

// MidiMessage builds the MidiMessage command for one short message.
func MidiMessage(trackIndex uint8, status, data1, data2 uint8) ([]byte, error) {
	return EncodeCommand(ServerboundMidiMessage,
		Uint8Arg(trackIndex), Uint8Arg(status), Uint8Arg(data1), Uint8Arg(data2))
}
