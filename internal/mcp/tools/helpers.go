// Package tools contains MCP tool implementations for recall search.
package tools

import (
	"github.com/usestring/recall-stream/pkg/types"
)

// MIME type constants.
const (
	MimeJSON = "application/json"
	MimeHTML = "text/html"
)

// SessionView is the tool-facing form of a snapshot with artifacts paged.
type SessionView struct {
	SessionID       string               `json:"session_id,omitempty"`
	Criteria        types.SearchCriteria `json:"criteria"`
	Status          types.Status         `json:"status"`
	Progress        types.Progress       `json:"progress"`
	Artifacts       []types.Artifact     `json:"artifacts,omitzero"`
	ArtifactCount   int                  `json:"artifact_count"`
	Truncated       bool                 `json:"truncated,omitempty"`
	TerminalMessage string               `json:"terminal_message,omitempty"`
}

// NewSessionView copies snap, keeping at most limit artifacts from offset.
// A negative limit keeps all of them.
func NewSessionView(snap types.Snapshot, offset, limit int) SessionView {
	v := SessionView{
		SessionID:       snap.SessionID,
		Criteria:        snap.Criteria,
		Status:          snap.Status,
		Progress:        snap.Progress,
		ArtifactCount:   len(snap.Artifacts),
		TerminalMessage: snap.TerminalMessage,
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(snap.Artifacts) {
		return v
	}
	page := snap.Artifacts[offset:]
	if limit >= 0 && len(page) > limit {
		page = page[:limit]
		v.Truncated = true
	}
	v.Artifacts = page
	return v
}

// statusHint suggests the next call for a given status.
func statusHint(s types.Status) string {
	switch s {
	case types.StatusSearching:
		return "Search still running. Poll recall_status, or call recall_query_results once it completes."
	case types.StatusCompleted:
		return "Search complete. Use recall_query_results with a jq expression to extract fields, or recall_render for HTML."
	case types.StatusEmpty:
		return "No recalls matched. Try a broader keyword or another period."
	default:
		return "No active search. Start one with recall_search."
	}
}
