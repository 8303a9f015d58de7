package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/internal/mcp/tools"
)

// AddTool registers a tool after checking that the zero value of Out passes
// the output schema the SDK infers for it. A slice field without omitzero or
// a json.RawMessage field makes it panic at registration rather than fail on
// the first call.
//
// Use this instead of [sdkmcp.AddTool] in custom registrations.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
