package model

import (
	"sync"

	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Store is the cached backend state. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	tracks   *Table[Track]
	mixer    *Table[MixerInfo]
	midi     *Table[TrackMidi]
	config   BackendConfig
	hasCfg   bool
	scanning bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		tracks: NewTable[Track](),
		mixer:  NewTable[MixerInfo](),
		midi:   NewTable[TrackMidi](),
	}
}

// ApplyTracks reconciles a TrackInfo packet. Authoritative records clear
// any tentative local change.
func (s *Store) ApplyTracks(records []protocol.TrackRecord, single bool) []EntityID {
	tracks := make([]Track, len(records))
	for i, r := range records {
		tracks[i] = TrackFromRecord(r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracks.Apply(tracks, single)
}

// ApplyMixer reconciles a TrackMixerInfo packet.
func (s *Store) ApplyMixer(records []protocol.MixerRecord, single bool) []EntityID {
	infos := make([]MixerInfo, len(records))
	for i, r := range records {
		infos[i] = MixerFromRecord(r)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mixer.Apply(infos, single)
}

// ApplyMidi replaces the notes of one track.
func (s *Store) ApplyMidi(m protocol.TrackMidi) (EntityID, bool) {
	id := EntityID(m.ID)
	s.mu.Lock()
	defer s.mu.Unlock()
	return id, s.midi.Put(TrackMidi{ID: id, Notes: m.Notes})
}

// RemoveTrack deletes a track and everything cached for it.
func (s *Store) RemoveTrack(id EntityID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ok := s.tracks.Remove(id)
	s.mixer.Remove(id)
	s.midi.Remove(id)
	return ok
}

// UpdateTrack applies a local change to the track at index and marks it
// tentative. It returns the track before and after the change. The next
// authoritative record for that track replaces it.
func (s *Store) UpdateTrack(index int, u TrackUpdate) (prev, next Track, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok = s.tracks.At(index)
	if !ok {
		return Track{}, Track{}, false
	}
	next = u.Apply(prev)
	next.Tentative = true
	s.tracks.Put(next)
	return prev, next, true
}

// RevertTrack puts prev back if the cached track is still the tentative
// value applied. It reports whether anything changed; a record that
// arrived in the meantime is kept.
func (s *Store) RevertTrack(applied, prev Track) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.tracks.Get(applied.ID)
	if !ok || cur != applied {
		return false
	}
	s.tracks.Put(prev)
	return true
}

// Tracks returns the track list in backend order.
func (s *Store) Tracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks.All()
}

// Track returns the track with the given id.
func (s *Store) Track(id EntityID) (Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks.Get(id)
}

// TrackAt returns the track at index.
func (s *Store) TrackAt(index int) (Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks.At(index)
}

// TrackIndex returns the index commands use to address id, or -1.
func (s *Store) TrackIndex(id EntityID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tracks.Index(id)
}

// Mixer returns the mixer strip of a track.
func (s *Store) Mixer(id EntityID) (MixerInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mixer.Get(id)
}

// Mixers returns every cached mixer strip.
func (s *Store) Mixers() []MixerInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mixer.All()
}

// Midi returns the notes of a track.
func (s *Store) Midi(id EntityID) (TrackMidi, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.midi.Get(id)
}

// SetScanning records the plugin scan state and reports whether it changed.
func (s *Store) SetScanning(v bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.scanning != v
	s.scanning = v
	return changed
}

// Scanning reports whether the backend is scanning for plugins.
func (s *Store) Scanning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanning
}

// SetConfig stores the latest backend configuration.
func (s *Store) SetConfig(cfg BackendConfig) {
	s.mu.Lock()
	s.config = cfg
	s.hasCfg = true
	s.mu.Unlock()
}

// Config returns the latest backend configuration, if one has arrived.
func (s *Store) Config() (BackendConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config, s.hasCfg
}

// State is a point-in-time copy of the store.
type State struct {
	Tracks   []Track     `json:"tracks" yaml:"tracks"`
	Mixer    []MixerInfo `json:"mixer" yaml:"mixer"`
	Scanning bool        `json:"scanning" yaml:"scanning"`
}

// Snapshot copies the store under one read lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		Tracks:   s.tracks.All(),
		Mixer:    s.mixer.All(),
		Scanning: s.scanning,
	}
}
