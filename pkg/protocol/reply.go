package protocol

import (
	"fmt"
	"strings"
)

// ExplorerType selects what GetExplorerData lists.
type ExplorerType uint8

const (
	// ExplorerPlugins lists plugin vendors at the root path, and the
	// plugins of one vendor when the path names it.
	ExplorerPlugins ExplorerType = 1
)

// pluginEntrySep joins a plugin's display name and its identifier in
// explorer file entries.
const pluginEntrySep = "#EIM#"

// ExplorerData is the reply payload of GetExplorerData.
type ExplorerData struct {
	Dirs  []string
	Files []string
}

// maxListLen caps the element count of a 32-bit counted string list.
const maxListLen = 1 << 16

// EncodeExplorerDataTo encodes an ExplorerData using the provided encoder.
func EncodeExplorerDataTo(e *Encoder, x *ExplorerData) {
	e.WriteUint32(uint32(len(x.Dirs)))
	for _, s := range x.Dirs {
		e.WriteString(s)
	}
	e.WriteUint32(uint32(len(x.Files)))
	for _, s := range x.Files {
		e.WriteString(s)
	}
}

// DecodeExplorerDataFrom decodes an ExplorerData from a decoder.
func DecodeExplorerDataFrom(d *Decoder) (ExplorerData, error) {
	var x ExplorerData
	var err error
	if x.Dirs, err = readStringList(d); err != nil {
		return x, err
	}
	if x.Files, err = readStringList(d); err != nil {
		return x, err
	}
	return x, nil
}

func readStringList(d *Decoder) ([]string, error) {
	n, err := d.ReadUint32()
	if err != nil {
		return nil, err
	}
	// Every element costs at least its 4 byte prefix.
	if n > maxListLen || int(n)*4 > d.Remaining() {
		return nil, fmt.Errorf("%w: list of %d strings with %d bytes left", ErrMalformedFrame, n, d.Remaining())
	}
	out := make([]string, n)
	for i := range out {
		if out[i], err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// PluginEntry is a parsed explorer file entry.
type PluginEntry struct {
	Name       string
	Identifier string
}

// ParsePluginEntry splits an explorer file entry into name and identifier.
// Entries without a separator are returned with an empty identifier.
func ParsePluginEntry(s string) PluginEntry {
	name, id, _ := strings.Cut(s, pluginEntrySep)
	return PluginEntry{Name: name, Identifier: id}
}

// String returns the entry in its wire form.
func (p PluginEntry) String() string {
	return p.Name + pluginEntrySep + p.Identifier
}

// ReplyHeader reads the reply id that starts every Reply packet.
func ReplyHeader(d *Decoder) (uint32, error) {
	id, err := d.ReadUint32()
	if err != nil {
		return 0, fmt.Errorf("%w: reply without id: %v", ErrMalformedFrame, err)
	}
	return id, nil
}

// EncodeReply builds a Reply packet for the given id. The encoder holds the
// command specific payload and may be nil.
func EncodeReply(replyID uint32, payload *Encoder) Packet {
	e := NewEncoderWithCap(4)
	e.WriteUint32(replyID)
	if payload != nil {
		e.WriteBytes(payload.Bytes())
	}
	return NewPacket(ClientboundReply, e)
}
