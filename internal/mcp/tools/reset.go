package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/pkg/types"
)

// ResetInput is the input for recall_reset.
type ResetInput struct{}

// ResetOutput is the output for recall_reset.
type ResetOutput struct {
	PreviousSessionID string       `json:"previous_session_id,omitempty"`
	Status            types.Status `json:"status"`
}

// ToolReset discards the live search.
func ToolReset(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ResetInput) (*sdkmcp.CallToolResult, ResetOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ResetInput) (*sdkmcp.CallToolResult, ResetOutput, error) {
		prev := d.Session.ID()
		d.Session.Reset()
		return nil, ResetOutput{
			PreviousSessionID: prev,
			Status:            d.Session.Status(),
		}, nil
	}
}
