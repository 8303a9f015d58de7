package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Router classifies raw inbound frames into Events.
// A Router is safe for concurrent use.
type Router struct {
	analysis *jsonschema.Schema
}

// NewRouter creates a Router with its payload schemas compiled.
func NewRouter() (*Router, error) {
	analysis, err := compileAnalysisSchema()
	if err != nil {
		return nil, err
	}
	return &Router{analysis: analysis}, nil
}

// MustNewRouter is like NewRouter but panics on error.
func MustNewRouter() *Router {
	r, err := NewRouter()
	if err != nil {
		panic(err)
	}
	return r
}

// Classify parses raw and returns the event it carries.
// Malformed frames, and well-formed frames whose payload does not match the
// shape their discriminant promises, fail with *ParseError.
// Frames with an unrecognized discriminant yield KindUnknown and no error.
func (r *Router) Classify(raw []byte) (Event, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Event{}, &ParseError{Reason: "frame is not a JSON object"}
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Event{}, &ParseError{Reason: "invalid JSON envelope", Err: err}
	}

	switch {
	case env.Message == MsgTotalCount:
		n, err := decodeCount(env.Data)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: KindTotalCount, Message: env.Message, Total: n}, nil

	case env.Message == MsgAnalysis:
		fields, err := r.decodeAnalysis(env.Data)
		if err != nil {
			return Event{}, err
		}
		return Event{Kind: KindAnalysisResult, Message: env.Message, Analysis: fields}, nil

	case env.Message == MsgCompletion:
		return Event{Kind: KindCompletion, Message: env.Message}, nil

	case env.Message == MsgNoResults:
		return Event{Kind: KindNoResults, Message: env.Message}, nil
	}

	if url := decodeURL(env.URL); url != "" {
		return Event{Kind: KindDownloadLink, Message: env.Message, URL: url}, nil
	}

	return Event{Kind: KindUnknown, Message: env.Message}, nil
}

func isAbsent(data json.RawMessage) bool {
	return len(data) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}

// decodeURL returns the link only when url is a non-empty JSON string.
func decodeURL(data json.RawMessage) string {
	if isAbsent(data) {
		return ""
	}
	var url string
	if err := json.Unmarshal(data, &url); err != nil {
		return ""
	}
	return url
}

// decodeCount reads a non-negative integer total.
func decodeCount(data json.RawMessage) (int, error) {
	if isAbsent(data) {
		return 0, &ParseError{Reason: "total count frame has no data"}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, &ParseError{Reason: "total count is not valid JSON", Err: err}
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, &ParseError{Reason: fmt.Sprintf("total count is %T, not a number", v)}
	}
	n, err := num.Int64()
	if err != nil {
		return 0, &ParseError{Reason: "total count is not an integer", Err: err}
	}
	if n < 0 {
		return 0, &ParseError{Reason: fmt.Sprintf("total count %d is negative", n)}
	}
	return int(n), nil
}

// decodeAnalysis validates the payload against the analysis schema before
// decoding it.
func (r *Router) decodeAnalysis(data json.RawMessage) (*AnalysisFields, error) {
	if isAbsent(data) {
		return nil, &ParseError{Reason: "analysis frame has no data"}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, &ParseError{Reason: "analysis data is not valid JSON", Err: err}
	}
	if err := r.analysis.Validate(inst); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return nil, &ParseError{Reason: "analysis data does not match schema", Err: verr}
		}
		return nil, &ParseError{Reason: "validating analysis data", Err: err}
	}

	var fields AnalysisFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &ParseError{Reason: "decoding analysis data", Err: err}
	}
	return &fields, nil
}
