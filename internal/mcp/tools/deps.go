package tools

import (
	"golang.org/x/time/rate"

	"github.com/usestring/recall-stream/internal/config"
	"github.com/usestring/recall-stream/internal/metrics"
	"github.com/usestring/recall-stream/internal/query"
	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/internal/session"
)

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Session *session.Session
	Query   *query.Engine
	Printer *render.Printer
	Config  *config.Config
	Metrics *metrics.Metrics

	// SearchLimiter throttles recall_search submissions; nil means unlimited.
	SearchLimiter *rate.Limiter
}

// artifactLimit resolves a caller-supplied limit against the configured default.
// Negative means unlimited.
func (d *Deps) artifactLimit(requested int) int {
	if requested != 0 {
		return requested
	}
	if d.Config != nil && d.Config.DefaultArtifactLimit > 0 {
		return d.Config.DefaultArtifactLimit
	}
	return -1
}
