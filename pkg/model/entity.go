package model

import (
	"fmt"
	"strconv"
)

// EntityID is the backend's 64-bit entity identifier. Ids are assigned by
// the backend and never change.
type EntityID uint64

// MasterID is the master track. It cannot be removed.
const MasterID EntityID = 0

// String returns the base-32 form used by user interfaces.
func (id EntityID) String() string {
	return strconv.FormatUint(uint64(id), 32)
}

// IsMaster reports whether id is the master track.
func (id EntityID) IsMaster() bool {
	return id == MasterID
}

// MarshalText encodes the id in its base-32 form.
func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText parses the base-32 form.
func (id *EntityID) UnmarshalText(b []byte) error {
	v, err := ParseEntityID(string(b))
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// ParseEntityID parses the base-32 form produced by String.
func ParseEntityID(s string) (EntityID, error) {
	v, err := strconv.ParseUint(s, 32, 64)
	if err != nil {
		return 0, fmt.Errorf("model: invalid entity id %q: %w", s, err)
	}
	return EntityID(v), nil
}

// Keyed is implemented by every entity a Table can hold.
type Keyed interface {
	Key() EntityID
}
