package mcpsrv

import (
	"github.com/usestring/recall-stream/internal/config"
	"github.com/usestring/recall-stream/internal/metrics"
	"github.com/usestring/recall-stream/internal/query"
	"github.com/usestring/recall-stream/internal/render"
	"github.com/usestring/recall-stream/internal/session"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Session *session.Session
	Query   *query.Engine
	Printer *render.Printer
	Config  *config.Config
	Metrics *metrics.Metrics
}
