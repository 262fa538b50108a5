package client

import (
	"context"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"

	"github.com/eim-dev/eim-client/pkg/model"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Refresh asks the backend to push the full track list.
func (c *Client) Refresh(ctx context.Context) error {
	return c.Send(ctx, protocol.ServerboundRefresh)
}

// GetTracksMixerInfo asks the backend to push every mixer strip.
func (c *Client) GetTracksMixerInfo(ctx context.Context) error {
	return c.Send(ctx, protocol.ServerboundGetTracksMixerInfo)
}

// ScanVSTs starts a plugin scan. Progress arrives as ScanVSTs packets.
func (c *Client) ScanVSTs(ctx context.Context) error {
	return c.Send(ctx, protocol.ServerboundScanVSTs)
}

// OpenPluginManager opens the backend's plugin manager window.
func (c *Client) OpenPluginManager(ctx context.Context) error {
	return c.Send(ctx, protocol.ServerboundOpenPluginManager)
}

// OpenPluginWindow opens the editor of a track's instrument, or of the
// insert at plugin when it is set.
func (c *Client) OpenPluginWindow(ctx context.Context, trackIndex int32, plugin protocol.OptInt32) error {
	return c.Send(ctx, protocol.ServerboundOpenPluginWindow, protocol.Int32Arg(trackIndex), plugin)
}

// MidiMessage plays one short MIDI message on a track.
func (c *Client) MidiMessage(ctx context.Context, trackIndex, status, data1, data2 uint8) error {
	return c.Send(ctx, protocol.ServerboundMidiMessage,
		protocol.Uint8Arg(trackIndex), protocol.Uint8Arg(status), protocol.Uint8Arg(data1), protocol.Uint8Arg(data2))
}

// SendMidi plays a channel voice message such as midi.NoteOn(0, 60, 100)
// on a track. Two-byte messages are padded with a zero data byte.
func (c *Client) SendMidi(ctx context.Context, trackIndex uint8, msg midi.Message) error {
	if len(msg) < 2 || len(msg) > 3 || msg[0] < 0x80 || msg[0] >= 0xF0 {
		return fmt.Errorf("%w: not a channel message: % x", protocol.ErrInvalidArgument, []byte(msg))
	}
	var data2 uint8
	if len(msg) == 3 {
		data2 = msg[2]
	}
	return c.MidiMessage(ctx, trackIndex, msg[0], msg[1], data2)
}

// UpdateTrackInfo changes a track and applies the change to the Store just
// before the frame is written, so the backend's own record for the track
// always lands on top of it. The cached track stays tentative until that
// record arrives. If the write fails the change is rolled back.
//
// The master track cannot be soloed.
func (c *Client) UpdateTrackInfo(ctx context.Context, index int, u model.TrackUpdate) error {
	if index < 0 || index > math.MaxInt32 {
		return fmt.Errorf("%w: track index %d", protocol.ErrInvalidArgument, index)
	}
	if t, ok := c.store.TrackAt(index); ok && t.ID.IsMaster() && u.Solo {
		return fmt.Errorf("%w: the master track cannot be soloed", protocol.ErrInvalidArgument)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := protocol.EncodeCommand(protocol.ServerboundUpdateTrackInfo, u.Args(int32(index))...)
	if err != nil {
		return err
	}

	var (
		id      model.EntityID
		changed bool
	)
	err = c.writeApplying(protocol.ServerboundUpdateTrackInfo, frame, func() func() {
		prev, next, ok := c.store.UpdateTrack(index, u)
		if !ok {
			return nil
		}
		id, changed = next.ID, true
		return func() {
			changed = c.store.RevertTrack(next, prev)
		}
	})
	if changed {
		c.entities.Notify(id)
	}
	return err
}

// SetVolume sets a track's volume from the slider scale, keeping its
// current mute and solo state.
func (c *Client) SetVolume(ctx context.Context, index int, displayed float64) error {
	v, err := model.VolumeFromDisplayed(displayed)
	if err != nil {
		return fmt.Errorf("%w: %v", protocol.ErrInvalidArgument, err)
	}
	t, ok := c.store.TrackAt(index)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrUnknownTrack, index)
	}
	return c.UpdateTrackInfo(ctx, index, model.TrackUpdate{
		Volume: protocol.SomeFloat32(v),
		Muted:  t.Muted,
		Solo:   t.Solo,
	})
}

// ToggleMute flips a track's mute state and leaves everything else alone.
func (c *Client) ToggleMute(ctx context.Context, index int) error {
	t, ok := c.store.TrackAt(index)
	if !ok {
		return fmt.Errorf("%w: index %d", ErrUnknownTrack, index)
	}
	return c.UpdateTrackInfo(ctx, index, model.TrackUpdate{Muted: !t.Muted, Solo: t.Solo})
}

// SetTrackPan sets a track's pan in percent. Values outside [-100, 100]
// are rejected before anything is sent.
func (c *Client) SetTrackPan(ctx context.Context, trackIndex int32, pan int) error {
	if pan < protocol.PanMin || pan > protocol.PanMax {
		return fmt.Errorf("%w: pan %d outside [%d, %d]", protocol.ErrInvalidArgument, pan, protocol.PanMin, protocol.PanMax)
	}
	return c.Send(ctx, protocol.ServerboundSetTrackPan, protocol.Int32Arg(trackIndex), protocol.Int8Arg(pan))
}

// CreateTrackOptions describes a new track. Every field is optional.
type CreateTrackOptions struct {
	// PluginData is the identifier of an instrument to load.
	PluginData protocol.OptString
	// Index is the insert position; unset appends.
	Index protocol.OptInt32
	Name  protocol.OptString
	Color protocol.OptInt32
}

// CreateTrack creates a track and waits for the backend to confirm it.
// The track itself arrives through the usual TrackInfo push.
func (c *Client) CreateTrack(ctx context.Context, opts CreateTrackOptions) error {
	args := []protocol.Arg{opts.PluginData, opts.Index, opts.Name, opts.Color}
	return c.request(ctx, protocol.ServerboundCreateTrack, args, replyError(protocol.ServerboundCreateTrack))
}

// LoadPlugin loads a plugin onto a track and waits for the result.
func (c *Client) LoadPlugin(ctx context.Context, trackIndex int32, pluginData string) error {
	if pluginData == "" {
		return fmt.Errorf("%w: empty plugin identifier", protocol.ErrInvalidArgument)
	}
	args := []protocol.Arg{protocol.Int32Arg(trackIndex), protocol.StringArg(pluginData)}
	return c.request(ctx, protocol.ServerboundLoadPlugin, args, replyError(protocol.ServerboundLoadPlugin))
}

// replyError reads the error string that ends CreateTrack and LoadPlugin
// replies. An empty string is success.
func replyError(op protocol.Serverbound) func(*protocol.Decoder) error {
	return func(d *protocol.Decoder) error {
		msg, err := d.ReadString()
		if err != nil {
			return fmt.Errorf("%s reply: %w", op, err)
		}
		if msg != "" {
			return &BackendError{Op: op, Message: msg}
		}
		return nil
	}
}

// GetExplorerData lists the plugin browser at path.
func (c *Client) GetExplorerData(ctx context.Context, typ protocol.ExplorerType, path string) (protocol.ExplorerData, error) {
	var x protocol.ExplorerData
	args := []protocol.Arg{protocol.Uint8Arg(typ), protocol.StringArg(path)}
	err := c.request(ctx, protocol.ServerboundGetExplorerData, args, func(d *protocol.Decoder) error {
		var err error
		if x, err = protocol.DecodeExplorerDataFrom(d); err != nil {
			return fmt.Errorf("%s reply: %w", protocol.ServerboundGetExplorerData, err)
		}
		return nil
	})
	return x, err
}

// GetConfig fetches the backend configuration and caches it.
func (c *Client) GetConfig(ctx context.Context) (model.BackendConfig, error) {
	var cfg model.BackendConfig
	err := c.request(ctx, protocol.ServerboundGetConfig, nil, func(d *protocol.Decoder) error {
		raw, err := d.ReadString()
		if err != nil {
			return fmt.Errorf("%s reply: %w", protocol.ServerboundGetConfig, err)
		}
		cfg, err = model.ParseBackendConfig(raw)
		c.store.SetConfig(cfg)
		return err
	})
	return cfg, err
}
