// Package session drives one recall search from submission to its terminal
// outcome over a pluggable transport.
//
// Exactly one search is live at a time. Submitting new criteria replaces the
// previous search regardless of its state. Both request frames of a
// submission are answered on the same connection without correlation IDs, so
// everything they produce lands in the one live search.
//
// A search that never receives a terminal frame stays in StatusSearching
// indefinitely; there are no timeouts and no cancellation.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/usestring/recall-stream/internal/metrics"
	"github.com/usestring/recall-stream/internal/progress"
	"github.com/usestring/recall-stream/internal/results"
	"github.com/usestring/recall-stream/pkg/client"
	"github.com/usestring/recall-stream/pkg/protocol"
	"github.com/usestring/recall-stream/pkg/types"
)

// Notice is an alert-level message for the user, emitted once per terminal
// transition.
type Notice struct {
	SessionID string
	Status    types.Status
	Message   string
}

// Session is the search state machine. It is safe for concurrent use: frames
// arrive on the transport's read goroutine while callers submit and read
// snapshots from their own.
type Session struct {
	transport client.Transport
	router    *protocol.Router
	metrics   *metrics.Metrics
	notify    func(Notice)
	observe   func(types.Snapshot)

	mu          sync.Mutex
	seq         uint64
	id          string
	criteria    types.SearchCriteria
	status      types.Status
	tracker     progress.Tracker
	results     *results.Accumulator
	terminalMsg string
	// done is closed when the live search ends, is superseded, or is reset.
	done chan struct{}
}

// Option is a functional option for configuring the Session.
type Option func(*Session)

// WithRouter sets the frame router. By default a new Router is compiled.
func WithRouter(r *protocol.Router) Option {
	return func(s *Session) {
		s.router = r
	}
}

// WithMetrics records session activity on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Session) {
		s.metrics = m
	}
}

// WithNotifier registers fn to receive terminal notices.
func WithNotifier(fn func(Notice)) Option {
	return func(s *Session) {
		s.notify = fn
	}
}

// WithObserver registers fn to receive a snapshot after every state change.
// fn runs on the goroutine that caused the change and must not block.
func WithObserver(fn func(types.Snapshot)) Option {
	return func(s *Session) {
		s.observe = fn
	}
}

// New creates an idle Session bound to t.
func New(t client.Transport, opts ...Option) *Session {
	done := make(chan struct{})
	close(done)

	s := &Session{
		transport: t,
		status:    types.StatusIdle,
		results:   results.New(),
		done:      done,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.router == nil {
		s.router = protocol.MustNewRouter()
	}
	return s
}

// Start connects the transport with this session as its frame handler.
func (s *Session) Start(ctx context.Context) error {
	err := s.transport.Connect(ctx, client.Handlers{
		OnOpen: func() {
			slog.Info("search connection open")
		},
		OnMessage: s.HandleFrame,
		OnError: func(err error) {
			s.metrics.IncConnectionError()
			slog.Error("search connection error", slog.String("error", err.Error()))
		},
		OnClose: func() {
			slog.Warn("search connection closed",
				slog.String("session_id", s.ID()),
				slog.String("status", string(s.Status())),
			)
		},
	})
	if err != nil {
		return fmt.Errorf("connecting search transport: %w", err)
	}
	return nil
}

// Submit validates c and, if it is complete, starts a new search with it.
// Validation failures return *types.ValidationError and change nothing.
//
// Transport failures while sending the request frames are logged, not
// returned: the search stays in StatusSearching and makes no progress.
func (s *Session) Submit(ctx context.Context, c types.SearchCriteria) error {
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		s.metrics.IncSession("rejected")
		slog.Info("search rejected", slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	s.seq++
	s.id = fmt.Sprintf("search-%d", s.seq)
	s.criteria = c
	s.tracker.Reset()
	s.results.Reset()
	s.terminalMsg = ""
	s.status = types.StatusSearching
	s.releaseLocked()
	s.done = make(chan struct{})
	id := s.id
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.metrics.IncSession("submitted")
	slog.Info("search submitted",
		slog.String("session_id", id),
		slog.String("keyword", c.Keyword),
		slog.String("source", string(c.Source)),
		slog.String("period", c.Period),
	)
	s.emit(snap)

	for _, req := range protocol.NewRequests(c) {
		err := s.transport.Send(ctx, req)
		s.metrics.IncRequest(req.Action, err == nil)
		if err != nil {
			slog.Warn("request frame not sent, search will not progress",
				slog.String("session_id", id),
				slog.String("action", req.Action),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}

// HandleFrame classifies one inbound frame and applies it to the live search.
// Malformed frames are logged and dropped. Frames that arrive while no
// search is active are accepted but have no effect.
func (s *Session) HandleFrame(raw []byte) {
	ev, err := s.router.Classify(raw)
	if err != nil {
		s.metrics.IncFrameError("parse")
		slog.Warn("dropping inbound frame",
			slog.String("error", err.Error()),
			slog.Int("bytes", len(raw)),
		)
		return
	}
	s.metrics.IncFrame(ev.Kind.String())

	s.mu.Lock()
	if s.status != types.StatusSearching {
		status := s.status
		s.mu.Unlock()
		slog.Debug("frame ignored outside an active search",
			slog.String("kind", ev.Kind.String()),
			slog.String("status", string(status)),
		)
		return
	}

	var notice *Notice
	switch ev.Kind {
	case protocol.KindTotalCount:
		s.tracker.OnTotalCount(ev.Total)

	case protocol.KindAnalysisResult:
		s.results.OnResult(*ev.Analysis)
		s.tracker.OnResult()
		s.metrics.IncResult()
		if s.tracker.Overflow() {
			p := s.tracker.Progress()
			slog.Debug("received more results than announced",
				slog.String("session_id", s.id),
				slog.Int("received", p.Received),
				slog.Int("total", p.Total),
			)
		}

	case protocol.KindDownloadLink:
		s.results.OnDownloadLink(ev.URL)

	case protocol.KindCompletion, protocol.KindNoResults:
		s.status = types.StatusCompleted
		s.terminalMsg = protocol.MsgCompletion
		if ev.Kind == protocol.KindNoResults {
			s.status = types.StatusEmpty
			s.terminalMsg = protocol.MsgNoResults
		}
		s.releaseLocked()
		notice = &Notice{SessionID: s.id, Status: s.status, Message: s.terminalMsg}

	default:
		s.mu.Unlock()
		slog.Debug("ignoring frame with unknown message", slog.String("message", ev.Message))
		return
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snap)
	if notice != nil {
		s.metrics.IncSession(string(notice.Status))
		slog.Info("search finished",
			slog.String("session_id", notice.SessionID),
			slog.String("status", string(notice.Status)),
			slog.Int("received", snap.Progress.Received),
			slog.Int("total", snap.Progress.Total),
			slog.Int("artifacts", len(snap.Artifacts)),
		)
		if s.notify != nil {
			s.notify(*notice)
		}
	}
}

// Reset discards the live search and returns to StatusIdle.
func (s *Session) Reset() {
	s.mu.Lock()
	s.id = ""
	s.criteria = types.SearchCriteria{}
	s.tracker.Reset()
	s.results.Reset()
	s.terminalMsg = ""
	s.status = types.StatusIdle
	s.releaseLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	slog.Info("search reset")
	s.emit(snap)
}

// Wait blocks until the live search reaches a terminal state, is replaced or
// reset, or ctx ends, and returns the snapshot at that point. Ending ctx
// stops the wait only; the search itself continues.
func (s *Session) Wait(ctx context.Context) (types.Snapshot, error) {
	s.mu.Lock()
	if s.status != types.StatusSearching {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, nil
	}
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

// Snapshot returns a copy of the live search state.
func (s *Session) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// SnapshotOf is like Snapshot but keeps only artifacts of the given kind.
func (s *Session) SnapshotOf(kind types.ArtifactKind) types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshotLocked()
	snap.Artifacts = s.results.Select(kind)
	return snap
}

// Status returns the live search status.
func (s *Session) Status() types.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// ID returns the live search ID, empty when idle.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) snapshotLocked() types.Snapshot {
	return types.Snapshot{
		SessionID:       s.id,
		Criteria:        s.criteria,
		Status:          s.status,
		Progress:        s.tracker.Progress(),
		Artifacts:       s.results.Artifacts(),
		TerminalMessage: s.terminalMsg,
	}
}

// releaseLocked wakes waiters of the current search.
func (s *Session) releaseLocked() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
}

func (s *Session) emit(snap types.Snapshot) {
	if s.observe != nil {
		s.observe(snap)
	}
}
