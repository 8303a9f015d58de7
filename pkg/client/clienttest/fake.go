// Package clienttest provides a deterministic in-memory client.Transport.
package clienttest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/usestring/recall-stream/pkg/client"
)

// Transport is a fake client.Transport. Frames sent through it are recorded,
// and Deliver pushes inbound frames to the registered OnMessage handler
// synchronously on the caller's goroutine.
type Transport struct {
	mu       sync.Mutex
	open     bool
	handlers client.Handlers
	sent     [][]byte

	// ConnectErr, when set, is returned by Connect.
	ConnectErr error
	// SendErr, when set, is returned by Send and nothing is recorded.
	SendErr error
}

var _ client.Transport = (*Transport)(nil)

// New returns an unconnected fake.
func New() *Transport {
	return &Transport{}
}

// Connect registers h and fires OnOpen.
func (t *Transport) Connect(ctx context.Context, h client.Handlers) error {
	t.mu.Lock()
	if t.ConnectErr != nil {
		err := t.ConnectErr
		t.mu.Unlock()
		if h.OnError != nil {
			h.OnError(err)
		}
		return err
	}
	if t.open {
		t.mu.Unlock()
		return nil
	}
	t.open = true
	t.handlers = h
	t.mu.Unlock()

	if h.OnOpen != nil {
		h.OnOpen()
	}
	return nil
}

// Send records the JSON encoding of v.
func (t *Transport) Send(ctx context.Context, v any) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.SendErr != nil {
		return t.SendErr
	}
	if !t.open {
		return &client.ConnectionError{Op: "send", Err: client.ErrNotConnected}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	t.sent = append(t.sent, data)
	return nil
}

// Close fires OnClose once.
func (t *Transport) Close() error {
	t.mu.Lock()
	if !t.open {
		t.mu.Unlock()
		return nil
	}
	t.open = false
	h := t.handlers
	t.mu.Unlock()

	if h.OnClose != nil {
		h.OnClose()
	}
	return nil
}

// Deliver hands frame to OnMessage as if it arrived from the network.
func (t *Transport) Deliver(frame string) {
	t.mu.Lock()
	h := t.handlers
	t.mu.Unlock()
	if h.OnMessage != nil {
		h.OnMessage([]byte(frame))
	}
}

// Fail reports err through OnError as a transport failure would.
func (t *Transport) Fail(err error) {
	t.mu.Lock()
	h := t.handlers
	t.mu.Unlock()
	if h.OnError != nil {
		h.OnError(err)
	}
}

// Sent returns a copy of every recorded outbound frame.
func (t *Transport) Sent() [][]byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([][]byte, len(t.sent))
	copy(out, t.sent)
	return out
}

// Open reports whether Connect has succeeded and Close has not been called.
func (t *Transport) Open() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}
