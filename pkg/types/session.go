package types

// Status is the lifecycle state of a search session.
type Status string

// Session states. Completed and Empty are terminal.
const (
	StatusIdle      Status = "idle"
	StatusSearching Status = "searching"
	StatusCompleted Status = "completed"
	StatusEmpty     Status = "empty"
)

// Terminal reports whether s ends a session's active phase.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusEmpty
}

// Progress counts results received against the announced total.
// Received is not clamped to Total; a backend that over-delivers is visible here.
type Progress struct {
	Received int `json:"received"`
	Total    int `json:"total"`
}

// Snapshot is a point-in-time copy of a session, safe to hand to renderers.
type Snapshot struct {
	SessionID       string         `json:"session_id,omitempty"`
	Criteria        SearchCriteria `json:"criteria"`
	Status          Status         `json:"status"`
	Progress        Progress       `json:"progress"`
	Artifacts       []Artifact     `json:"artifacts,omitzero"`
	TerminalMessage string         `json:"terminal_message,omitempty"`
}
