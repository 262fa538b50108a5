package client

import (
	"github.com/eim-dev/eim-client/pkg/model"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

// registerHandlers installs the built-in decoders that keep the Store
// current.
func (c *Client) registerHandlers() {
	c.dispatcher.Register(protocol.ClientboundReply, c.handleReply)
	c.dispatcher.Register(protocol.ClientboundTrackInfo, c.handleTrackInfo)
	c.dispatcher.Register(protocol.ClientboundTrackMidiData, c.handleTrackMidi)
	c.dispatcher.Register(protocol.ClientboundTrackMixerInfo, c.handleMixerInfo)
	c.dispatcher.Register(protocol.ClientboundScanVSTs, c.handleScanVSTs)
	c.dispatcher.Register(protocol.ClientboundConfig, c.handleConfig)
	c.dispatcher.Register(protocol.ClientboundTrackRemoved, c.handleTrackRemoved)
}

func (c *Client) handleReply(d *protocol.Decoder) error {
	id, err := protocol.ReplyHeader(d)
	if err != nil {
		return err
	}
	if !c.pending.resolve(id, d.Rest()) {
		c.logger.Debug("late reply dropped", "reply_id", id)
		c.metrics.lateReply()
	}
	return nil
}

func (c *Client) notifyAll(ids []model.EntityID) {
	for _, id := range ids {
		c.entities.Notify(id)
	}
}

func (c *Client) handleTrackInfo(d *protocol.Decoder) error {
	records, single, err := protocol.DecodeTrackTable(d)
	if err != nil {
		return err
	}
	c.notifyAll(c.store.ApplyTracks(records, single))
	return nil
}

func (c *Client) handleMixerInfo(d *protocol.Decoder) error {
	records, single, err := protocol.DecodeMixerTable(d)
	if err != nil {
		return err
	}
	c.notifyAll(c.store.ApplyMixer(records, single))
	return nil
}

func (c *Client) handleTrackMidi(d *protocol.Decoder) error {
	m, err := protocol.DecodeTrackMidiFrom(d)
	if err != nil {
		return err
	}
	if id, ok := c.store.ApplyMidi(m); ok {
		c.entities.Notify(id)
	}
	return nil
}

func (c *Client) handleScanVSTs(d *protocol.Decoder) error {
	scanning, err := d.ReadBool()
	if err != nil {
		return err
	}
	if c.store.SetScanning(scanning) {
		c.logger.Info("plugin scan state changed", "scanning", scanning)
	}
	return nil
}

func (c *Client) handleConfig(d *protocol.Decoder) error {
	raw, err := d.ReadString()
	if err != nil {
		return err
	}
	cfg, err := model.ParseBackendConfig(raw)
	if err != nil {
		// The raw document is still worth keeping.
		c.logger.Warn("backend config is not valid JSON", "error", err)
	}
	c.store.SetConfig(cfg)
	return nil
}

func (c *Client) handleTrackRemoved(d *protocol.Decoder) error {
	raw, err := d.ReadUint64()
	if err != nil {
		return err
	}
	id := model.EntityID(raw)
	if c.store.RemoveTrack(id) {
		c.entities.Notify(id)
	}
	return nil
}
