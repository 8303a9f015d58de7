package client

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned by Send when no connection is open.
var ErrNotConnected = errors.New("websocket not connected")

// ConnectionError reports a transport-level failure.
type ConnectionError struct {
	Op  string // configure, dial, read, send, close
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("websocket %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
