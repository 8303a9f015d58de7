package protocol

import "fmt"

// Kind is the semantic class of an inbound frame.
type Kind int

const (
	KindUnknown Kind = iota
	KindTotalCount
	KindAnalysisResult
	KindDownloadLink
	KindCompletion
	KindNoResults
)

func (k Kind) String() string {
	switch k {
	case KindTotalCount:
		return "total_count"
	case KindAnalysisResult:
		return "analysis_result"
	case KindDownloadLink:
		return "download_link"
	case KindCompletion:
		return "completion"
	case KindNoResults:
		return "no_results"
	default:
		return "unknown"
	}
}

// Terminal reports whether k ends a session's active phase.
func (k Kind) Terminal() bool {
	return k == KindCompletion || k == KindNoResults
}

// Event is a classified inbound frame. Only the field matching Kind is set.
type Event struct {
	Kind     Kind
	Message  string          // raw discriminant
	Total    int             // KindTotalCount
	Analysis *AnalysisFields // KindAnalysisResult
	URL      string          // KindDownloadLink
}

// ParseError reports a frame that could not be classified.
// The frame is dropped; ParseError never reaches the session state machine.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse frame: %s: %v", e.Reason, e.Err)
	}
	return "parse frame: " + e.Reason
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
