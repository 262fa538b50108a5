// Package model is the client's cached view of backend state.
//
// Table reconciles the two kinds of table packet the backend sends. A
// packet naming exactly one entity is a delta and overlays that entity. Any
// other packet is a snapshot: it is authoritative for the entities it
// names and leaves the others in place. Only an explicit removal deletes an
// entity, and a removed id is never brought back by a later packet.
//
// Store combines the per-domain tables behind one lock and carries the
// optimistic state applied when the client changes a track before the
// backend confirms it.
package model
