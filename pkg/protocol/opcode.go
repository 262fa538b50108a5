package protocol

// Serverbound identifies a command sent from the client to the backend.
type Serverbound uint8

const (
	ServerboundReply              Serverbound = 0x00 // reserved, never sent by the client
	ServerboundGetExplorerData    Serverbound = 0x01
	ServerboundCreateTrack        Serverbound = 0x02
	ServerboundRefresh            Serverbound = 0x03
	ServerboundMidiMessage        Serverbound = 0x04
	ServerboundUpdateTrackInfo    Serverbound = 0x05
	ServerboundLoadPlugin         Serverbound = 0x06
	ServerboundOpenPluginWindow   Serverbound = 0x07
	ServerboundGetTracksMixerInfo Serverbound = 0x08
	ServerboundScanVSTs           Serverbound = 0x09
	ServerboundOpenPluginManager  Serverbound = 0x0A
	ServerboundGetConfig          Serverbound = 0x0B
	ServerboundSetTrackPan        Serverbound = 0x0C
)

// String returns the string representation of the opcode.
func (op Serverbound) String() string {
	switch op {
	case ServerboundReply:
		return "Reply"
	case ServerboundGetExplorerData:
		return "GetExplorerData"
	case ServerboundCreateTrack:
		return "CreateTrack"
	case ServerboundRefresh:
		return "Refresh"
	case ServerboundMidiMessage:
		return "MidiMessage"
	case ServerboundUpdateTrackInfo:
		return "UpdateTrackInfo"
	case ServerboundLoadPlugin:
		return "LoadPlugin"
	case ServerboundOpenPluginWindow:
		return "OpenPluginWindow"
	case ServerboundGetTracksMixerInfo:
		return "GetTracksMixerInfo"
	case ServerboundScanVSTs:
		return "ScanVSTs"
	case ServerboundOpenPluginManager:
		return "OpenPluginManager"
	case ServerboundGetConfig:
		return "GetConfig"
	case ServerboundSetTrackPan:
		return "SetTrackPan"
	default:
		return "Unknown"
	}
}

// Correlated reports whether the command carries a reply id and expects a
// Reply packet back.
func (op Serverbound) Correlated() bool {
	switch op {
	case ServerboundGetExplorerData, ServerboundCreateTrack, ServerboundLoadPlugin, ServerboundGetConfig:
		return true
	default:
		return false
	}
}

// Clientbound identifies a packet sent from the backend to the client.
type Clientbound uint8

const (
	ClientboundReply          Clientbound = 0x00 // replyID u32, then command specific payload
	ClientboundTrackInfo      Clientbound = 0x01
	ClientboundTrackMidiData  Clientbound = 0x02
	ClientboundTrackMixerInfo Clientbound = 0x03
	ClientboundScanVSTs       Clientbound = 0x04
	ClientboundConfig         Clientbound = 0x05
	ClientboundTrackRemoved   Clientbound = 0x06
)

// String returns the string representation of the opcode.
func (op Clientbound) String() string {
	switch op {
	case ClientboundReply:
		return "Reply"
	case ClientboundTrackInfo:
		return "TrackInfo"
	case ClientboundTrackMidiData:
		return "TrackMidiData"
	case ClientboundTrackMixerInfo:
		return "TrackMixerInfo"
	case ClientboundScanVSTs:
		return "ScanVSTs"
	case ClientboundConfig:
		return "Config"
	case ClientboundTrackRemoved:
		return "TrackRemoved"
	default:
		return "Unknown"
	}
}
