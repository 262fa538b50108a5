// Package client is the EIM backend protocol client.
//
// A Client owns one WebSocket channel. Outgoing commands are encoded with
// package protocol and written in call order under a single lock. A read
// loop decodes each incoming frame, routes it through a dispatch table and
// applies it to a model.Store, then notifies the subscribers of every
// entity that changed.
//
// Commands come in two kinds. Fire-and-forget commands return as soon as
// the frame is written. Correlated commands carry a reply id and wait for
// the matching Reply packet, up to Config.RequestTimeout:
//
//	c, err := client.Dial(ctx, "ws://127.0.0.1:8088", client.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer c.Close()
//
//	sub := c.Subscribe(trackID, redraw)
//	defer sub.Close()
//
//	if err := c.SetVolume(ctx, 2, 50); err != nil {
//		return err
//	}
//	cfg, err := c.GetConfig(ctx)
//
// Changes made through UpdateTrackInfo show up in the Store immediately,
// marked Tentative. Whatever the backend reports next for that track
// replaces them.
//
// When the channel drops, every pending request fails with
// ErrChannelClosed and Done is closed. The client does not reconnect.
package client
