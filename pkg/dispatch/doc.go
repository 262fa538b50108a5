// Package dispatch routes decoded backend packets to their consumers.
//
// A Dispatcher holds exactly one handler per clientbound opcode in a fixed
// table. Handlers run synchronously on the read loop goroutine, in frame
// order, and must not block.
//
// Notifiers is the per-entity fan-out below the dispatcher: one callback
// per entity id, replaced on re-registration, removed through the
// Subscription handed back at registration time.
//
//	d := dispatch.New()
//	d.Register(protocol.ClientboundTrackInfo, func(dec *protocol.Decoder) error {
//		records, single, err := protocol.DecodeTrackTable(dec)
//		...
//	})
//
//	sub := notifiers.Register(trackID, redraw)
//	defer sub.Close()
package dispatch
