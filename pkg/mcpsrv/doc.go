// Package mcpsrv provides an extensible MCP server for streaming recall search.
//
// This package exposes a high-level API for creating and running an MCP server
// with all builtin recall tools, prompts, and resources. Users can extend the
// server with custom tools, prompts, and resources using functional options.
//
// # Basic Usage
//
// Create a server with default configuration. Passing a nil transport
// connects to RECALL_WS_URL:
//
//	server, err := mcpsrv.NewServer(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Query string `json:"query"`
//	}
//
//	type MyOutput struct {
//	    Count int `json:"count"`
//	}
//
//	func myHandler(ctx context.Context, req *mcp.CallToolRequest, input MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	    return nil, MyOutput{Count: 42}, nil
//	}
//
//	server, err := mcpsrv.NewServer(
//	    nil,
//	    mcpsrv.WithTool(&mcp.Tool{Name: "my_tool", Description: "My tool"}, myHandler),
//	)
//
// Tools that need the live search use WithDepsTool and read [Deps].Session.
//
// # Configuration
//
// Configure logging, metrics and other options:
//
//	server, err := mcpsrv.NewServer(
//	    client.New(client.WithURL("wss://example.com/dev/")),
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/recall-stream.log"),
//	    mcpsrv.WithMetricsAddr(":9090"),
//	)
package mcpsrv
