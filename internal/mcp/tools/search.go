package tools

import (
	"context"
	"errors"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/recall-stream/pkg/types"
)

// SearchInput is the input for recall_search.
type SearchInput struct {
	Email   string `json:"email" jsonschema:"required,Address the backend mails the CSV export to"`
	Keyword string `json:"keyword" jsonschema:"required,Product or ingredient keyword (Japanese or English)"`
	Source  string `json:"source" jsonschema:"required,Recall data source: PMDA or FDA"`
	Period  string `json:"period" jsonschema:"required,Four-digit year to search, e.g. 2024"`
	WaitMs  *int   `json:"wait_ms,omitempty" jsonschema:"How long to wait for the search to finish (default: server setting, 0: return immediately)"`
	Limit   int    `json:"limit,omitempty" jsonschema:"Max artifacts to return (default: server setting, -1: all)"`
}

// SearchOutput is the output for recall_search.
type SearchOutput struct {
	Session  SessionView `json:"session"`
	TimedOut bool        `json:"timed_out,omitempty"`
	Hint     string      `json:"hint,omitempty"`
}

// ToolSearch submits a search and waits for it to settle.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		criteria := types.SearchCriteria{
			Email:   input.Email,
			Keyword: input.Keyword,
			Source:  types.Source(input.Source),
			Period:  input.Period,
		}
		if err := criteria.Normalize().Validate(); err != nil {
			return nil, SearchOutput{}, WrapError(err)
		}

		if d.SearchLimiter != nil && !d.SearchLimiter.Allow() {
			return nil, SearchOutput{}, &CodedError{
				Code:    ErrCodeRateLimited,
				Message: "too many searches; wait before submitting another",
			}
		}

		if err := d.Session.Start(ctx); err != nil {
			return nil, SearchOutput{}, WrapError(err)
		}
		if err := d.Session.Submit(ctx, criteria); err != nil {
			return nil, SearchOutput{}, WrapError(err)
		}

		wait := d.searchWait(input.WaitMs)
		snap := d.Session.Snapshot()
		timedOut := false
		if wait > 0 {
			waitCtx, cancel := context.WithTimeout(ctx, wait)
			var err error
			snap, err = d.Session.Wait(waitCtx)
			cancel()
			if err != nil {
				// The caller's own context ending is an error; our wait bound is not.
				if ctx.Err() != nil {
					return nil, SearchOutput{}, WrapError(ctx.Err())
				}
				if !errors.Is(err, context.DeadlineExceeded) {
					return nil, SearchOutput{}, WrapError(err)
				}
				timedOut = true
			}
		}

		return nil, SearchOutput{
			Session:  NewSessionView(snap, 0, d.artifactLimit(input.Limit)),
			TimedOut: timedOut,
			Hint:     statusHint(snap.Status),
		}, nil
	}
}

func (d *Deps) searchWait(requestedMs *int) time.Duration {
	if requestedMs != nil {
		if *requestedMs <= 0 {
			return 0
		}
		return time.Duration(*requestedMs) * time.Millisecond
	}
	if d.Config != nil {
		return d.Config.SearchWait
	}
	return 0
}
