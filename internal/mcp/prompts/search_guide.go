package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleSearchGuide implements the guided recall search workflow.
func HandleSearchGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var keyword, source, period string
		if req != nil && req.Params != nil && req.Params.Arguments != nil {
			args := req.Params.Arguments
			keyword = args["keyword"]
			source = args["source"]
			period = args["period"]
		}

		var sb strings.Builder

		sb.WriteString("# Recall Search\n\n")
		sb.WriteString("You help a user find product recalls and explain their health impact. ")
		sb.WriteString("The backend streams results over time; one search is live at a time.\n\n")

		sb.WriteString("## Search Lifecycle\n\n")
		sb.WriteString("- `idle`: nothing submitted\n")
		sb.WriteString("- `searching`: request sent, results streaming in\n")
		sb.WriteString("- `completed`: backend reported that every record was processed\n")
		sb.WriteString("- `empty`: backend reported no matching recalls\n\n")
		sb.WriteString("Progress is `{received, total}`. `total` arrives first; `received` counts analysed records and can exceed `total`.\n\n")

		sb.WriteString("## Workflow\n\n")
		sb.WriteString("1. Collect all four inputs: email, keyword, source (PMDA or FDA) and a four-digit period. Every field is required; ")
		sb.WriteString("a missing one fails with INVALID_INPUT and nothing is sent.\n")
		fmt.Fprintf(&sb, "2. Call `recall_search`. It waits up to %s for the search to finish. ", waitText(cfg.SearchWaitMs))
		sb.WriteString("If `timed_out` is true, poll `recall_status` until the status is `completed` or `empty`.\n")
		sb.WriteString("3. Extract what you need with `recall_query_results`, for example:\n")
		sb.WriteString("   - product IDs: `.artifacts[] | select(.kind == \"result\") | .result.product_id`\n")
		sb.WriteString("   - health risks: `[.artifacts[].result.health_risk // empty]`\n")
		sb.WriteString("   - CSV link: `.artifacts[] | select(.kind == \"download_link\") | .link.url`\n")
		sb.WriteString("4. Summarize per product: recall reason, expected health damage, risk analysis. ")
		sb.WriteString("A product ID of `不明` means the backend record had no ID.\n")
		sb.WriteString("5. If a download link exists, give it to the user. `recall_export` is not implemented.\n\n")

		sb.WriteString("## Data Shapes\n\n")
		sb.WriteString("- result artifact: `{kind: \"result\", result: {product_id, reason, health_risk, risk_analysis}}`\n")
		sb.WriteString("- link artifact: `{kind: \"download_link\", link: {url}}`\n")
		sb.WriteString("- Artifacts keep arrival order. Fetch `recall://session/current` for the full snapshot.\n")

		if keyword != "" || source != "" || period != "" {
			sb.WriteString("\n## Requested Search\n\n")
			if keyword != "" {
				fmt.Fprintf(&sb, "- keyword: %s\n", keyword)
			}
			if source != "" {
				fmt.Fprintf(&sb, "- source: %s\n", strings.ToUpper(source))
			}
			if period != "" {
				fmt.Fprintf(&sb, "- period: %s\n", period)
			}
			sb.WriteString("\nAsk the user for any missing field, including the email address.\n")
		}

		return &sdkmcp.GetPromptResult{
			Description: "Guided recall search workflow",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}

func waitText(ms int) string {
	if ms <= 0 {
		return "0s (it returns immediately)"
	}
	return fmt.Sprintf("%dms", ms)
}
