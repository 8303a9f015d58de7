package tools

import (
	"context"
	"io"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/internal/render"
)

// ExportInput is the input for recall_export.
type ExportInput struct {
	Format string `json:"format" jsonschema:"required,Export format: pdf, csv or xlsx"`
}

// ExportOutput is the output for recall_export.
type ExportOutput struct {
	Format string `json:"format"`
}

// ToolExport accepts an export request. No format is implemented yet; the
// backend's CSV download link (see recall_status artifacts) is the working
// export path.
func ToolExport(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExportInput) (*sdkmcp.CallToolResult, ExportOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExportInput) (*sdkmcp.CallToolResult, ExportOutput, error) {
		format, err := render.ParseExportFormat(input.Format)
		if err != nil {
			return nil, ExportOutput{}, ErrInvalidInput(err.Error())
		}
		if err := render.Export(io.Discard, d.Session.Snapshot(), format); err != nil {
			return nil, ExportOutput{}, WrapError(err)
		}
		return nil, ExportOutput{Format: string(format)}, nil
	}
}
