package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

// RGB is a 24-bit color packed as 0xRRGGBB.
type RGB uint32

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// MarshalText encodes the color as #rrggbb.
func (c RGB) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText parses #rrggbb.
func (c *RGB) UnmarshalText(b []byte) error {
	v, err := ParseRGB(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseRGB parses #rrggbb or rrggbb.
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("model: invalid color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("model: invalid color %q: %w", s, err)
	}
	return RGB(v), nil
}

// Track is one entry of the ordered track list.
type Track struct {
	ID            EntityID `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Color         RGB      `json:"color" yaml:"color"`
	Volume        float32  `json:"volume" yaml:"volume"`
	Muted         bool     `json:"muted" yaml:"muted"`
	Solo          bool     `json:"solo" yaml:"solo"`
	HasInstrument bool     `json:"hasInstrument" yaml:"hasInstrument"`

	// Tentative is set while the track carries a local change the backend
	// has not confirmed yet.
	Tentative bool `json:"tentative" yaml:"tentative"`
}

// Key implements Keyed.
func (t Track) Key() EntityID { return t.ID }

// DisplayedVolume returns the track volume on the slider scale.
func (t Track) DisplayedVolume() float64 { return DisplayedVolume(t.Volume) }

// TrackFromRecord converts a decoded TrackInfo record.
func TrackFromRecord(r protocol.TrackRecord) Track {
	return Track{
		ID:            EntityID(r.ID),
		Name:          r.Name,
		Color:         RGB(r.Color & 0xFFFFFF),
		Volume:        r.Volume,
		Muted:         r.Muted,
		Solo:          r.Solo,
		HasInstrument: r.HasInstrument,
	}
}

// Record converts the track back to its wire form.
func (t Track) Record() protocol.TrackRecord {
	return protocol.TrackRecord{
		ID:            uint64(t.ID),
		Name:          t.Name,
		Color:         uint32(t.Color),
		Volume:        t.Volume,
		Muted:         t.Muted,
		Solo:          t.Solo,
		HasInstrument: t.HasInstrument,
	}
}

// TrackUpdate is a partial change to a track. Unset optional fields leave
// the current value alone. Muted and Solo are always sent.
type TrackUpdate struct {
	Name   protocol.OptString
	Color  protocol.OptInt32
	Volume protocol.OptFloat32
	Muted  bool
	Solo   bool
}

// Apply returns t with u applied.
func (u TrackUpdate) Apply(t Track) Track {
	if u.Name.Set {
		t.Name = u.Name.Value
	}
	if u.Color.Set {
		t.Color = RGB(u.Color.Value)
	}
	if u.Volume.Set {
		t.Volume = u.Volume.Value
	}
	t.Muted = u.Muted
	t.Solo = u.Solo
	return t
}

// Args returns the UpdateTrackInfo arguments for the track at index.
func (u TrackUpdate) Args(index int32) []protocol.Arg {
	return []protocol.Arg{
		protocol.Int32Arg(index),
		u.Name,
		u.Color,
		u.Volume,
		protocol.BoolArg(u.Muted),
		protocol.BoolArg(u.Solo),
	}
}

// PanRule selects the backend's pan law.
type PanRule uint8

// Plugin is one insert slot. The slot index is its position in MixerInfo.
type Plugin struct {
	Name string `json:"name" yaml:"name"`
}

// MixerInfo is the mixer strip of one track.
type MixerInfo struct {
	ID      EntityID `json:"id" yaml:"id"`
	Pan     int8     `json:"pan" yaml:"pan"`
	PanRule PanRule  `json:"panRule" yaml:"panRule"`
	Plugins []Plugin `json:"plugins" yaml:"plugins"`
}

// Key implements Keyed.
func (m MixerInfo) Key() EntityID { return m.ID }

// MixerFromRecord converts a decoded TrackMixerInfo record.
func MixerFromRecord(r protocol.MixerRecord) MixerInfo {
	m := MixerInfo{
		ID:      EntityID(r.ID),
		Pan:     r.Pan,
		PanRule: PanRule(r.PanRule),
		Plugins: make([]Plugin, len(r.Plugins)),
	}
	for i, name := range r.Plugins {
		m.Plugins[i] = Plugin{Name: name}
	}
	return m
}

// TrackMidi is the note content of one track.
type TrackMidi struct {
	ID    EntityID
	Notes []protocol.MidiNote
}

// Key implements Keyed.
func (m TrackMidi) Key() EntityID { return m.ID }
