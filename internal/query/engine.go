// Package query runs jq expressions over the artifacts of a search session.
package query

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/itchyny/gojq"

	"github.com/usestring/recall-stream/internal/cache"
	"github.com/usestring/recall-stream/pkg/types"
)

// Engine executes jq queries against session snapshots.
type Engine struct {
	codes *cache.CodeCache
}

// NewEngine creates a query engine. Compiled programs are cached by
// expression; codes may be nil to disable caching.
func NewEngine(codes *cache.CodeCache) *Engine {
	return &Engine{codes: codes}
}

// QueryResult contains the results of a jq query.
type QueryResult struct {
	Values    []any    `json:"values"`           // Extracted values
	Errors    []string `json:"errors,omitempty"` // Runtime errors (e.g., type mismatch)
	RawCount  int      `json:"raw_count"`        // Count before truncation
	Truncated bool     `json:"truncated,omitempty"`
}

// Query runs expression with the snapshot as input. The input document is
// the snapshot's JSON form, so `.artifacts[] | select(.kind == "result")`
// and `.progress.received` work as expected.
func (e *Engine) Query(snap types.Snapshot, expression string, maxResults int) (*QueryResult, error) {
	code, err := e.compile(expression)
	if err != nil {
		return nil, err
	}

	input, err := types.ToAny(snap)
	if err != nil {
		return nil, fmt.Errorf("converting snapshot: %w", err)
	}

	result := &QueryResult{
		Values: make([]any, 0),
	}

	iter := code.Run(input)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}

		if err, isErr := v.(error); isErr {
			result.Errors = append(result.Errors, formatJQError(err))
			continue
		}

		// Skip nil values
		if v == nil {
			continue
		}

		result.RawCount++
		if maxResults > 0 && len(result.Values) >= maxResults {
			result.Truncated = true
			continue
		}
		result.Values = append(result.Values, v)
	}

	return result, nil
}

// compile parses and compiles expression, consulting the cache first.
func (e *Engine) compile(expression string) (*gojq.Code, error) {
	if e.codes != nil {
		if code, ok := e.codes.Get(expression); ok {
			return code, nil
		}
	}

	q, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	if e.codes != nil {
		e.codes.Put(expression, code)
		slog.Debug("cached jq program", slog.String("expression", expression))
	}
	return code, nil
}

// ValidateExpression checks if a jq expression is valid without executing it.
func (e *Engine) ValidateExpression(expression string) error {
	_, err := e.compile(expression)
	return err
}

// formatJQError adds a hint for common runtime errors. gojq reports these as
// plain errors, so the hints key on message text.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist, e.g. no artifacts yet)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	}

	return errStr + hint
}
