package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: recall_search
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_search",
		Description: "Start a recall search (email, keyword, source PMDA|FDA, four-digit period) and wait up to wait_ms for it to finish. Any earlier search is replaced. Returns {session: {session_id, status, progress: {received, total}, artifacts, artifact_count, terminal_message}, timed_out, hint}. status is searching, completed or empty. If timed_out, poll recall_status.",
	}, ToolSearch(d))

	// Tool 2: recall_status
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_status",
		Description: "Get the live search state without waiting. Supports offset/limit paging over artifacts. Artifacts are results ({kind: result, result: {product_id, reason, health_risk, risk_analysis}}) or download links ({kind: download_link, link: {url}}) in arrival order.",
	}, ToolStatus(d))

	// Tool 3: recall_query_results
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_query_results",
		Description: "Run a jq expression over the live session snapshot ({session_id, criteria, status, progress, artifacts, terminal_message}). Example: '.artifacts[] | select(.kind == \"result\") | .result.product_id'. Returns values, runtime errors, raw_count and truncated.",
	}, ToolQueryResults(d))

	// Tool 4: recall_render
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_render",
		Description: "Render the live session as an HTML fragment (escaped, safe to embed) or a plain-text report. Use recall_status for structured data instead.",
	}, ToolRender(d))

	// Tool 5: recall_export
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_export",
		Description: "Export the session as pdf, csv or xlsx. Not implemented yet: always fails with NOT_IMPLEMENTED. Use the backend download link artifact for CSV.",
	}, ToolExport(d))

	// Tool 6: recall_reset
	AddTool(srv, &sdkmcp.Tool{
		Name:        "recall_reset",
		Description: "Discard the live search and return to idle. Frames still arriving for it are ignored.",
	}, ToolReset(d))
}
