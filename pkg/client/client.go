package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"golang.org/x/net/websocket"
	"golang.org/x/sync/singleflight"
)

// DefaultURL is the recall search WebSocket endpoint.
const DefaultURL = "wss://b96kdpstti.execute-api.ap-northeast-1.amazonaws.com/dev/"

// DefaultOrigin is sent as the Origin header during the handshake.
const DefaultOrigin = "http://localhost/"

// Handlers are the connection lifecycle callbacks.
// Any of them may be nil. OnMessage is invoked from a single goroutine,
// one frame at a time, in arrival order.
type Handlers struct {
	OnOpen    func()
	OnMessage func(frame []byte)
	OnError   func(err error)
	OnClose   func()
}

// Transport is the capability a search session needs from a connection.
type Transport interface {
	// Connect opens the connection and registers h. It is a no-op when the
	// connection is already open.
	Connect(ctx context.Context, h Handlers) error
	// Send serializes v to JSON and transmits it as one text frame.
	Send(ctx context.Context, v any) error
	// Close closes the connection.
	Close() error
}

// State is the lifecycle state of a Conn.
type State int

const (
	StateIdle State = iota
	StateOpen
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "idle"
	}
}

// Conn is a Transport over a single WebSocket connection.
// It never reconnects on its own; after the peer closes or a read fails the
// Conn stays closed until Connect is called again.
type Conn struct {
	url         string
	origin      string
	dialTimeout time.Duration

	connectGroup singleflight.Group

	mu       sync.Mutex
	ws       *websocket.Conn
	state    State
	handlers Handlers
	readDone chan struct{}
}

var _ Transport = (*Conn)(nil)

// Option is a functional option for configuring the Conn.
type Option func(*Conn)

// WithURL sets the WebSocket endpoint.
func WithURL(url string) Option {
	return func(c *Conn) {
		c.url = url
	}
}

// WithOrigin sets the Origin header sent during the handshake.
func WithOrigin(origin string) Option {
	return func(c *Conn) {
		c.origin = origin
	}
}

// WithDialTimeout bounds the handshake. Zero means no bound beyond ctx.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Conn) {
		c.dialTimeout = d
	}
}

// New creates a new, unconnected Conn.
func New(opts ...Option) *Conn {
	c := &Conn{
		url:    DefaultURL,
		origin: DefaultOrigin,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Connect dials the endpoint and starts the read loop.
// Concurrent callers share a single dial.
func (c *Conn) Connect(ctx context.Context, h Handlers) error {
	_, err, _ := c.connectGroup.Do("connect", func() (any, error) {
		return nil, c.dial(ctx, h)
	})
	return err
}

func (c *Conn) dial(ctx context.Context, h Handlers) error {
	c.mu.Lock()
	if c.state == StateOpen {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	start := time.Now()

	cfg, err := websocket.NewConfig(c.url, c.origin)
	if err != nil {
		return &ConnectionError{Op: "configure", Err: err}
	}

	dialCtx := ctx
	if c.dialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.dialTimeout)
		defer cancel()
	}

	ws, err := cfg.DialContext(dialCtx)
	if err != nil {
		slog.Warn("websocket dial failed",
			slog.String("url", c.url),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		if h.OnError != nil {
			h.OnError(err)
		}
		return &ConnectionError{Op: "dial", Err: err}
	}

	done := make(chan struct{})
	c.mu.Lock()
	c.ws = ws
	c.state = StateOpen
	c.handlers = h
	c.readDone = done
	c.mu.Unlock()

	slog.Info("websocket connected",
		slog.String("url", c.url),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	if h.OnOpen != nil {
		h.OnOpen()
	}

	go c.readLoop(ws, h, done)
	return nil
}

// readLoop delivers frames until the connection ends.
func (c *Conn) readLoop(ws *websocket.Conn, h Handlers, done chan struct{}) {
	defer close(done)

	for {
		var frame []byte
		if err := websocket.Message.Receive(ws, &frame); err != nil {
			c.markClosed(ws)
			if !isCleanClose(err) {
				slog.Error("websocket read failed", slog.String("error", err.Error()))
				if h.OnError != nil {
					h.OnError(&ConnectionError{Op: "read", Err: err})
				}
			}
			slog.Info("websocket closed", slog.String("url", c.url))
			if h.OnClose != nil {
				h.OnClose()
			}
			return
		}

		if h.OnMessage != nil {
			h.OnMessage(frame)
		}
	}
}

func isCleanClose(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed)
}

// markClosed transitions to StateClosed if ws is still the active socket.
func (c *Conn) markClosed(ws *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ws == ws {
		c.state = StateClosed
		c.ws = nil
	}
	ws.Close()
}

// Send serializes v and writes it as a text frame.
// It fails with ErrNotConnected when the connection is not open.
func (c *Conn) Send(ctx context.Context, v any) error {
	c.mu.Lock()
	ws := c.ws
	open := c.state == StateOpen
	c.mu.Unlock()

	if !open || ws == nil {
		return &ConnectionError{Op: "send", Err: ErrNotConnected}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		ws.SetWriteDeadline(deadline)
		defer ws.SetWriteDeadline(time.Time{})
	}

	if err := websocket.Message.Send(ws, string(data)); err != nil {
		slog.Warn("websocket send failed", slog.String("error", err.Error()))
		return &ConnectionError{Op: "send", Err: err}
	}

	slog.Debug("websocket frame sent", slog.Int("bytes", len(data)))
	return nil
}

// Close closes the connection and waits for the read loop to finish.
// Closing an unopened or already closed Conn is a no-op.
func (c *Conn) Close() error {
	c.mu.Lock()
	ws := c.ws
	done := c.readDone
	c.ws = nil
	if c.state == StateOpen {
		c.state = StateClosed
	}
	c.mu.Unlock()

	if ws == nil {
		return nil
	}
	err := ws.Close()
	if done != nil {
		<-done
	}
	if err != nil {
		return &ConnectionError{Op: "close", Err: err}
	}
	return nil
}
