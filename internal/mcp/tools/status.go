package tools

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/pkg/types"
)

// StatusInput is the input for recall_status.
type StatusInput struct {
	Offset int    `json:"offset,omitempty" jsonschema:"Skip this many artifacts"`
	Limit  int    `json:"limit,omitempty" jsonschema:"Max artifacts to return (default: server setting, -1: all)"`
	Kind   string `json:"kind,omitempty" jsonschema:"Only artifacts of this kind: result or download_link (default: all)"`
}

// StatusOutput is the output for recall_status.
type StatusOutput struct {
	Session SessionView `json:"session"`
	Hint    string      `json:"hint,omitempty"`
}

// ToolStatus reports the live search state without blocking.
func ToolStatus(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input StatusInput) (*sdkmcp.CallToolResult, StatusOutput, error) {
		if input.Offset < 0 {
			return nil, StatusOutput{}, ErrInvalidInput("offset must be >= 0")
		}
		var snap types.Snapshot
		switch kind := types.ArtifactKind(input.Kind); kind {
		case "":
			snap = d.Session.Snapshot()
		case types.ArtifactResult, types.ArtifactDownloadLink:
			snap = d.Session.SnapshotOf(kind)
		default:
			return nil, StatusOutput{}, ErrInvalidInput(fmt.Sprintf("kind must be %q or %q", types.ArtifactResult, types.ArtifactDownloadLink))
		}
		return nil, StatusOutput{
			Session: NewSessionView(snap, input.Offset, d.artifactLimit(input.Limit)),
			Hint:    statusHint(snap.Status),
		}, nil
	}
}
