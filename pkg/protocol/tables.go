package protocol

import "fmt"

// Pan limits in percent, left to right.
const (
	PanMin = -100
	PanMax = 100
)

// MaxTableRecords is the most records a single table packet can carry.
const MaxTableRecords = 255

// TrackRecord is one row of a TrackInfo packet.
type TrackRecord struct {
	ID            uint64
	Name          string
	Color         uint32
	Volume        float32
	Muted         bool
	Solo          bool
	HasInstrument bool
}

// EncodeTrackRecordTo encodes a TrackRecord using the provided encoder.
func EncodeTrackRecordTo(e *Encoder, r *TrackRecord) error {
	e.WriteUint64(r.ID)
	if err := e.WriteIString(r.Name); err != nil {
		return fmt.Errorf("track %d name: %w", r.ID, err)
	}
	e.WriteUint32(r.Color)
	e.WriteFloat32(r.Volume)
	e.WriteBool(r.Muted)
	e.WriteBool(r.Solo)
	e.WriteBool(r.HasInstrument)
	return nil
}

// DecodeTrackRecordFrom decodes a TrackRecord from a decoder.
func DecodeTrackRecordFrom(d *Decoder) (TrackRecord, error) {
	var r TrackRecord
	var err error

	if r.ID, err = d.ReadUint64(); err != nil {
		return r, err
	}
	if r.Name, err = d.ReadIString(); err != nil {
		return r, err
	}
	if r.Color, err = d.ReadUint32(); err != nil {
		return r, err
	}
	if r.Volume, err = d.ReadFloat32(); err != nil {
		return r, err
	}
	if r.Muted, err = d.ReadBool(); err != nil {
		return r, err
	}
	if r.Solo, err = d.ReadBool(); err != nil {
		return r, err
	}
	if r.HasInstrument, err = d.ReadBool(); err != nil {
		return r, err
	}
	return r, nil
}

// MixerRecord is one row of a TrackMixerInfo packet. Plugin slot index is
// the position in Plugins.
type MixerRecord struct {
	ID      uint64
	Pan     int8
	PanRule uint8
	Plugins []string
}

// EncodeMixerRecordTo encodes a MixerRecord using the provided encoder.
func EncodeMixerRecordTo(e *Encoder, r *MixerRecord) error {
	if r.Pan < PanMin || r.Pan > PanMax {
		return fmt.Errorf("%w: pan %d outside [%d, %d]", ErrInvalidArgument, r.Pan, PanMin, PanMax)
	}
	if len(r.Plugins) > MaxTableRecords {
		return fmt.Errorf("%w: %d plugins exceeds %d", ErrInvalidArgument, len(r.Plugins), MaxTableRecords)
	}
	e.WriteUint64(r.ID)
	e.WriteInt8(r.Pan)
	e.WriteUint8(r.PanRule)
	e.WriteUint8(uint8(len(r.Plugins)))
	for i, name := range r.Plugins {
		if err := e.WriteIString(name); err != nil {
			return fmt.Errorf("track %d plugin %d: %w", r.ID, i, err)
		}
	}
	return nil
}

// DecodeMixerRecordFrom decodes a MixerRecord from a decoder.
func DecodeMixerRecordFrom(d *Decoder) (MixerRecord, error) {
	var r MixerRecord
	var err error

	if r.ID, err = d.ReadUint64(); err != nil {
		return r, err
	}
	if r.Pan, err = d.ReadInt8(); err != nil {
		return r, err
	}
	if r.Pan < PanMin || r.Pan > PanMax {
		return r, fmt.Errorf("%w: track %d pan %d out of range", ErrMalformedFrame, r.ID, r.Pan)
	}
	if r.PanRule, err = d.ReadUint8(); err != nil {
		return r, err
	}
	count, err := d.ReadUint8()
	if err != nil {
		return r, err
	}
	r.Plugins = make([]string, count)
	for i := range r.Plugins {
		if r.Plugins[i], err = d.ReadIString(); err != nil {
			return r, err
		}
	}
	return r, nil
}

// EncodeTrackTable encodes a TrackInfo payload.
func EncodeTrackTable(e *Encoder, records []TrackRecord) error {
	if len(records) > MaxTableRecords {
		return fmt.Errorf("%w: %d records exceeds %d", ErrInvalidArgument, len(records), MaxTableRecords)
	}
	e.WriteUint8(uint8(len(records)))
	for i := range records {
		if err := EncodeTrackRecordTo(e, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeTrackTable decodes a TrackInfo payload. single reports whether the
// packet names exactly one track, which the backend uses to mark a delta.
func DecodeTrackTable(d *Decoder) (records []TrackRecord, single bool, err error) {
	count, err := d.ReadUint8()
	if err != nil {
		return nil, false, err
	}
	records = make([]TrackRecord, count)
	for i := range records {
		if records[i], err = DecodeTrackRecordFrom(d); err != nil {
			return nil, false, err
		}
	}
	return records, count == 1, nil
}

// EncodeMixerTable encodes a TrackMixerInfo payload.
func EncodeMixerTable(e *Encoder, records []MixerRecord) error {
	if len(records) > MaxTableRecords {
		return fmt.Errorf("%w: %d records exceeds %d", ErrInvalidArgument, len(records), MaxTableRecords)
	}
	e.WriteUint8(uint8(len(records)))
	for i := range records {
		if err := EncodeMixerRecordTo(e, &records[i]); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMixerTable decodes a TrackMixerInfo payload.
func DecodeMixerTable(d *Decoder) (records []MixerRecord, single bool, err error) {
	count, err := d.ReadUint8()
	if err != nil {
		return nil, false, err
	}
	records = make([]MixerRecord, count)
	for i := range records {
		if records[i], err = DecodeMixerRecordFrom(d); err != nil {
			return nil, false, err
		}
	}
	return records, count == 1, nil
}
