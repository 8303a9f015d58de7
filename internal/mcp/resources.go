package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/internal/mcp/tools"
	"github.com/usestring/recall-stream/internal/render"
)

// Resource URIs.
const (
	ResourceSessionJSON = "recall://session/current"
	ResourceSessionHTML = "recall://session/current/html"
)

// registerResources registers the live session resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         ResourceSessionJSON,
		Name:        "Current Search",
		Description: "Full snapshot of the live search including every artifact. recall_status already pages artifacts; fetch this for a complete dump.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceSession)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         ResourceSessionHTML,
		Name:        "Current Search (HTML)",
		Description: "The live search rendered as an escaped HTML fragment for display to a user.",
		MIMEType:    tools.MimeHTML,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"user"},
			Priority: 0.3,
		},
	}, s.handleResourceSessionHTML)
}

func (s *Server) handleResourceSession(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	if err := checkResourceURI(req.Params.URI, ResourceSessionJSON); err != nil {
		return nil, err
	}
	return toResourceResult(req.Params.URI, s.deps.Session.Snapshot())
}

func (s *Server) handleResourceSessionHTML(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	if err := checkResourceURI(req.Params.URI, ResourceSessionHTML); err != nil {
		return nil, err
	}

	var sb strings.Builder
	if err := render.HTML(&sb, s.deps.Session.Snapshot()); err != nil {
		return nil, fmt.Errorf("rendering session: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: tools.MimeHTML,
				Text:     sb.String(),
			},
		},
	}, nil
}

// checkResourceURI rejects anything but want under the recall:// scheme.
func checkResourceURI(uri, want string) error {
	if !strings.HasPrefix(uri, "recall://") {
		return tools.ErrInvalidInput("invalid URI scheme: expected recall://")
	}
	if uri != want {
		return sdkmcp.ResourceNotFoundError(uri)
	}
	return nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
