package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/eim-dev/eim-client/pkg/dispatch"
	"github.com/eim-dev/eim-client/pkg/model"
	"github.com/eim-dev/eim-client/pkg/protocol"
)

// Client keeps one channel to the backend. Commands are written in the
// order they are issued; incoming packets are decoded and applied to the
// Store one at a time on the read loop goroutine.
type Client struct {
	id        string
	cfg       *Config
	logger    *slog.Logger
	metrics   *Metrics
	transport Transport

	dispatcher *dispatch.Dispatcher
	entities   *dispatch.Notifiers[model.EntityID]
	packets    *dispatch.Notifiers[protocol.Clientbound]
	store      *model.Store
	pending    *correlator

	writeMu sync.Mutex

	// dispatching is set while the read loop runs handlers and callbacks.
	dispatching atomic.Bool

	done      chan struct{}
	closeOnce sync.Once
	errMu     sync.Mutex
	err       error
}

// Dial connects to the backend at url and starts the read loop.
func Dial(ctx context.Context, url string, cfg *Config) (*Client, error) {
	t, err := DialWebSocket(ctx, url, cfg)
	if err != nil {
		return nil, err
	}
	return New(t, cfg), nil
}

// New wraps an open transport and starts the read loop.
func New(t Transport, cfg *Config) *Client {
	cfg = cfg.withDefaults()
	id := uuid.NewString()
	c := &Client{
		id:         id,
		cfg:        cfg,
		logger:     cfg.Logger.With("client_id", id),
		metrics:    cfg.Metrics,
		transport:  t,
		dispatcher: dispatch.New(),
		entities:   dispatch.NewNotifiers[model.EntityID](),
		packets:    dispatch.NewNotifiers[protocol.Clientbound](),
		store:      model.NewStore(),
		pending:    newCorrelator(),
		done:       make(chan struct{}),
	}
	c.registerHandlers()
	c.metrics.setConnected(true)
	go c.readLoop()
	return c
}

// ID returns the client instance id used in logs and spans.
func (c *Client) ID() string { return c.id }

// Store returns the cached backend state.
func (c *Client) Store() *model.Store { return c.store }

// Dispatcher returns the opcode table. Registering a handler for a
// built-in opcode replaces the built-in.
func (c *Client) Dispatcher() *dispatch.Dispatcher { return c.dispatcher }

// Subscribe calls fn on the read loop whenever the cached state of id
// changes, including its removal. A later Subscribe for the same id
// replaces fn.
func (c *Client) Subscribe(id model.EntityID, fn func()) *dispatch.Subscription[model.EntityID] {
	return c.entities.Register(id, fn)
}

// Watch calls fn on the read loop after each packet of type op has been
// applied to the Store.
func (c *Client) Watch(op protocol.Clientbound, fn func()) *dispatch.Subscription[protocol.Clientbound] {
	return c.packets.Register(op, fn)
}

// Done is closed when the channel to the backend is gone.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err returns why the channel closed, or nil while it is open. The error
// always matches ErrChannelClosed.
func (c *Client) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

// Close shuts the channel down and fails every pending request. It waits
// for the read loop to stop, except while a handler or a Subscribe or
// Watch callback is running: the loop cannot stop under its own callback,
// so Close returns at once and the loop exits when the callback returns.
func (c *Client) Close() error {
	c.shutdown(nil)
	if c.dispatching.Load() {
		return nil
	}
	<-c.done
	return nil
}

// Wait blocks until the channel closes or ctx is done. A cancelled ctx
// closes the client.
func (c *Client) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		c.Close()
		return ctx.Err()
	}
}

func (c *Client) shutdown(cause error) {
	c.closeOnce.Do(func() {
		err := ErrChannelClosed
		if cause != nil {
			err = fmt.Errorf("%w: %v", ErrChannelClosed, cause)
		}
		c.errMu.Lock()
		c.err = err
		c.errMu.Unlock()

		c.pending.closeAll(err)
		_ = c.transport.Close()
		c.metrics.setConnected(false)
		if cause != nil {
			c.logger.Error("backend channel lost", "error", cause)
		} else {
			c.logger.Info("backend channel closed")
		}
	})
}

func (c *Client) readLoop() {
	defer close(c.done)

	for {
		frame, err := c.transport.ReadFrame()
		if err != nil {
			if c.Err() == nil && websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.shutdown(nil)
			} else {
				c.shutdown(err)
			}
			return
		}
		c.handleFrame(frame)
	}
}

// handleFrame decodes and dispatches one frame. Nothing that goes wrong
// here stops the loop.
func (c *Client) handleFrame(frame []byte) {
	op, dec, err := protocol.DecodePacket(frame)
	if err != nil {
		c.logger.Warn("frame decode error", "error", err)
		c.metrics.frameMalformed("none")
		return
	}
	c.metrics.frameReceived(op)

	c.dispatching.Store(true)
	defer c.dispatching.Store(false)

	handled, err := c.dispatcher.Dispatch(op, dec)
	switch {
	case !handled:
		c.logger.Debug("frame dropped", "opcode", op, "bytes", len(frame))
		c.metrics.frameDropped(op)
	case err != nil:
		c.logger.Warn("packet decode error", "opcode", op, "error", err)
		c.metrics.frameMalformed(op.String())
	default:
		c.packets.Notify(op)
	}
}

// write sends one encoded frame. Holding writeMu for the whole write keeps
// frames in call order.
func (c *Client) write(op protocol.Serverbound, frame []byte) error {
	return c.writeApplying(op, frame, nil)
}

// writeApplying runs apply under writeMu right before the frame goes out,
// so anything the backend sends in response lands after it. If the write
// fails the function apply returned is called to undo the change.
func (c *Client) writeApplying(op protocol.Serverbound, frame []byte, apply func() (undo func())) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.Err(); err != nil {
		return err
	}
	var undo func()
	if apply != nil {
		undo = apply()
	}
	if err := c.transport.WriteFrame(frame); err != nil {
		if undo != nil {
			undo()
		}
		c.shutdown(err)
		return c.Err()
	}
	c.metrics.frameSent(op)
	return nil
}

// Send encodes and writes a fire-and-forget command. An invalid argument
// fails before anything is written.
func (c *Client) Send(ctx context.Context, op protocol.Serverbound, args ...protocol.Arg) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	frame, err := protocol.EncodeCommand(op, args...)
	if err != nil {
		return err
	}
	return c.write(op, frame)
}

// Request sends a correlated command and returns a cursor over its reply
// payload, positioned after the reply id. Cancelling ctx stops the wait
// but cannot recall a command already written.
func (c *Client) Request(ctx context.Context, op protocol.Serverbound, args ...protocol.Arg) (*protocol.Decoder, error) {
	var reply *protocol.Decoder
	err := c.request(ctx, op, args, func(d *protocol.Decoder) error {
		reply = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// request runs a correlated command and hands the reply to decode. An
// error from decode fails the request, so every request is recorded as
// exactly one success or one failure.
func (c *Client) request(ctx context.Context, op protocol.Serverbound, args []protocol.Arg, decode func(*protocol.Decoder) error) (err error) {
	id := c.pending.nextReplyID()
	ctx, span := c.startRequestSpan(ctx, op, id)
	start := time.Now()
	defer func() {
		endSpan(span, err)
		if err != nil {
			c.metrics.requestFailed(op, failureReason(err))
		} else {
			c.metrics.requestDone(op, time.Since(start))
		}
	}()

	frame, err := protocol.EncodeCommand(op, append([]protocol.Arg{protocol.Uint32Arg(id)}, args...)...)
	if err != nil {
		return err
	}

	ch, err := c.pending.add(id)
	if err != nil {
		return err
	}
	c.metrics.pendingAdd(1)
	defer c.metrics.pendingAdd(-1)

	if err := c.write(op, frame); err != nil {
		c.pending.drop(id)
		return err
	}

	timer := time.NewTimer(c.cfg.RequestTimeout)
	defer timer.Stop()

	select {
	case r := <-ch:
		if r.err != nil {
			return r.err
		}
		return decode(protocol.NewDecoder(r.payload))
	case <-timer.C:
		c.pending.drop(id)
		c.logger.Warn("request timed out", "opcode", op, "reply_id", id, "timeout", c.cfg.RequestTimeout)
		return fmt.Errorf("%w: %s after %s", ErrTimeout, op, c.cfg.RequestTimeout)
	case <-ctx.Done():
		c.pending.drop(id)
		return ctx.Err()
	}
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrChannelClosed):
		return "closed"
	case errors.Is(err, protocol.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrBackend):
		return "backend"
	case errors.Is(err, protocol.ErrOutOfBounds), errors.Is(err, protocol.ErrMalformedFrame):
		return "malformed_reply"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
