// Package hub connects running games to the score service and to the
// presentation layer. Games stay side-effect free; the hub decides when
// a score is reported and dispatches it without blocking play.
package hub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ScoreSink records a score for an identity. Implementations may block;
// the Reporter calls them off the input path.
type ScoreSink interface {
	Record(ctx context.Context, identity, gameID string, score int) error
}

// ScoreSinkFunc adapts a function to ScoreSink.
type ScoreSinkFunc func(ctx context.Context, identity, gameID string, score int) error

// Record calls f.
func (f ScoreSinkFunc) Record(ctx context.Context, identity, gameID string, score int) error {
	return f(ctx, identity, gameID, score)
}

// ReporterConfig holds configuration for a Reporter.
type ReporterConfig struct {
	QueueSize int           // Pending reports kept before new ones are dropped
	Timeout   time.Duration // Deadline for one sink call
}

// DefaultReporterConfig returns sensible defaults.
func DefaultReporterConfig() ReporterConfig {
	return ReporterConfig{
		QueueSize: 16,
		Timeout:   5 * time.Second,
	}
}

type report struct {
	identity string
	gameID   string
	score    int
}

// Reporter dispatches score reports to a sink from a single background worker.
// Report never blocks and sink failures never reach the caller.
type Reporter struct {
	sink    ScoreSink
	config  ReporterConfig
	logger  *log.Logger
	queue   chan report
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
	failed  atomic.Int64
	sent    atomic.Int64
}

// NewReporter starts a reporter draining into sink.
func NewReporter(sink ScoreSink, cfg ReporterConfig, logger *log.Logger) *Reporter {
	def := DefaultReporterConfig()
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if logger == nil {
		logger = log.Default()
	}

	r := &Reporter{
		sink:   sink,
		config: cfg,
		logger: logger,
		queue:  make(chan report, cfg.QueueSize),
	}

	r.wg.Add(1)
	go r.run()

	return r
}

// Report enqueues a score. It returns false if the report was dropped
// because the queue is full or the reporter is closed.
func (r *Reporter) Report(identity, gameID string, score int) bool {
	if r == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return false
	}

	select {
	case r.queue <- report{identity: identity, gameID: gameID, score: score}:
		return true
	default:
		r.dropped.Add(1)
		r.logger.Warn("score report dropped", "game", gameID, "identity", identity, "score", score)
		return false
	}
}

func (r *Reporter) run() {
	defer r.wg.Done()

	for rep := range r.queue {
		r.deliver(rep)
	}
}

func (r *Reporter) deliver(rep report) {
	if r.sink == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	if err := r.sink.Record(ctx, rep.identity, rep.gameID, rep.score); err != nil {
		r.failed.Add(1)
		r.logger.Error("score report failed",
			"game", rep.gameID,
			"identity", rep.identity,
			"score", rep.score,
			"error", err,
		)
		return
	}

	r.sent.Add(1)
	r.logger.Debug("score reported", "game", rep.gameID, "identity", rep.identity, "score", rep.score)
}

// Close stops accepting reports and waits for queued ones to be delivered.
func (r *Reporter) Close() {
	if r == nil {
		return
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.queue)
	r.mu.Unlock()

	r.wg.Wait()

	st := r.Stats()
	r.logger.Debug("reporter stopped", "sent", st.Sent, "failed", st.Failed, "dropped", st.Dropped)
}

// ReporterStats counts what happened to reports so far.
type ReporterStats struct {
	Sent    int64
	Failed  int64
	Dropped int64
}

// Stats returns delivery counters.
func (r *Reporter) Stats() ReporterStats {
	if r == nil {
		return ReporterStats{}
	}
	return ReporterStats{
		Sent:    r.sent.Load(),
		Failed:  r.failed.Load(),
		Dropped: r.dropped.Load(),
	}
}
