package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// QueryResultsInput is the input for recall_query_results.
type QueryResultsInput struct {
	Expression string `json:"expression" jsonschema:"required,jq expression evaluated against the session snapshot, e.g. .artifacts[].result.product_id // empty"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"Max values to return (default: server setting)"`
}

// QueryResultsOutput is the output for recall_query_results.
type QueryResultsOutput struct {
	SessionID string   `json:"session_id,omitempty"`
	Values    []any    `json:"values,omitzero"`
	Errors    []string `json:"errors,omitzero"`
	RawCount  int      `json:"raw_count"`
	Truncated bool     `json:"truncated,omitempty"`
	Hint      string   `json:"hint,omitempty"`
}

// ToolQueryResults runs a jq expression over the live session snapshot.
func ToolQueryResults(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultsInput) (*sdkmcp.CallToolResult, QueryResultsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultsInput) (*sdkmcp.CallToolResult, QueryResultsOutput, error) {
		if input.Expression == "" {
			return nil, QueryResultsOutput{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QueryResultsOutput{}, ErrInvalidInput(err.Error())
		}

		maxResults := input.MaxResults
		if maxResults <= 0 && d.Config != nil {
			maxResults = d.Config.MaxQueryResults
		}

		snap := d.Session.Snapshot()
		res, err := d.Query.Query(snap, input.Expression, maxResults)
		if err != nil {
			return nil, QueryResultsOutput{}, WrapError(err)
		}

		out := QueryResultsOutput{
			SessionID: snap.SessionID,
			Values:    res.Values,
			Errors:    res.Errors,
			RawCount:  res.RawCount,
			Truncated: res.Truncated,
		}
		if res.RawCount == 0 && len(res.Errors) == 0 {
			out.Hint = statusHint(snap.Status)
		}
		return nil, out, nil
	}
}
