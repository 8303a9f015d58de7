package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/internal/render"
)

// RenderInput is the input for recall_render.
type RenderInput struct {
	Format string `json:"format,omitempty" jsonschema:"Output format: html or text (default: html)"`
}

// RenderOutput is the output for recall_render.
type RenderOutput struct {
	SessionID string `json:"session_id,omitempty"`
	Format    string `json:"format"`
	Content   string `json:"content"`
}

// ToolRender renders the live session for display.
func ToolRender(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderInput) (*sdkmcp.CallToolResult, RenderOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RenderInput) (*sdkmcp.CallToolResult, RenderOutput, error) {
		format := strings.ToLower(input.Format)
		if format == "" {
			format = "html"
		}

		snap := d.Session.Snapshot()
		var sb strings.Builder
		var err error
		switch format {
		case "html":
			err = render.HTML(&sb, snap)
		case "text":
			err = d.printer().Text(&sb, snap)
		default:
			return nil, RenderOutput{}, ErrInvalidInput("format must be 'html' or 'text'")
		}
		if err != nil {
			return nil, RenderOutput{}, WrapError(err)
		}

		return nil, RenderOutput{
			SessionID: snap.SessionID,
			Format:    format,
			Content:   sb.String(),
		}, nil
	}
}

func (d *Deps) printer() *render.Printer {
	if d.Printer != nil {
		return d.Printer
	}
	return render.NewPrinter("ja")
}
