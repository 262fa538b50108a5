// Package protocol implements the binary wire protocol spoken with the EIM
// audio backend.
//
// Every WebSocket binary message carries exactly one frame: an opcode byte
// followed by a payload. Commands travel client to server and use the
// Serverbound opcode space; packets travel server to client and use the
// Clientbound space.
//
// # Encoding
//
//   - Big-endian: all fixed-width integers and IEEE 754 float32
//   - Bool: one byte, zero is false
//   - IString: 8-bit length prefix, at most 255 bytes
//   - String: 32-bit length prefix
//
// Reads are bounds checked. A read that would pass the end of the buffer
// returns ErrOutOfBounds and leaves the cursor where it was.
//
// # Optional arguments
//
// Commands that update only some fields of an entity send a sentinel for
// the fields they leave alone:
//
//	OptInt32   -1
//	OptFloat32 -1
//	OptString  empty string
//
// # Correlation
//
// GetExplorerData, CreateTrack, LoadPlugin and GetConfig carry a uint32
// reply id straight after the opcode. The backend answers with a Reply
// packet whose payload starts with the same id:
//
//	Client                          Backend
//	  │                                │
//	  │──── CreateTrack(id=7, …) ────>│
//	  │                                │
//	  │<──── Reply(id=7, err="") ─────│
//	  │                                │
//
// # Tables
//
// TrackInfo and TrackMixerInfo start with a uint8 record count. A count of
// one marks a single-track delta; any other count is a snapshot.
package protocol
