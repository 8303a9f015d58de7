// Package client provides the WebSocket transport for the recall search backend.
//
// A Conn owns one connection to a fixed endpoint. It reports its lifecycle
// through four callbacks and sends JSON frames; it performs no reconnection
// or backoff.
//
// # Quick Start
//
//	c := client.New(client.WithURL("wss://example.com/dev/"))
//	err := c.Connect(ctx, client.Handlers{
//	    OnMessage: func(frame []byte) { fmt.Println(string(frame)) },
//	})
//	err = c.Send(ctx, map[string]any{"action": "sendMessage"})
//
// # Transports
//
// Code that drives a search depends on the Transport interface rather than
// on Conn, so tests can substitute the deterministic fake from the
// clienttest package.
//
// # Errors
//
// Transport failures are reported as *ConnectionError. Sending on a Conn that
// is not open fails with an error wrapping ErrNotConnected:
//
//	if errors.Is(err, client.ErrNotConnected) { ... }
package client
