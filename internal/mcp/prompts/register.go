package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Guided recall search
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "recall_search_guide",
		Description: "RECOMMENDED: Run a recall search and summarize the results. Start here - explains the search lifecycle, the data shapes, and which tool to call at each step.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "keyword",
				Description: "Product or ingredient to search for",
				Required:    false,
			},
			{
				Name:        "source",
				Description: "PMDA (Japan) or FDA (United States)",
				Required:    false,
			},
			{
				Name:        "period",
				Description: "Four-digit year, e.g. 2024",
				Required:    false,
			},
		},
	}, HandleSearchGuide(cfg))
}
