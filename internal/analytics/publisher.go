package analytics

import (
	"context"
	"log/slog"
)

// Sink delivers events to their destination.
type Sink interface {
	Write(ctx context.Context, e Event) error
}

// Publisher enqueues events for a Worker. Emit never blocks; when the buffer
// is full the event is dropped.
type Publisher struct {
	inbox   chan<- Event
	logger  *slog.Logger
	metrics *Metrics
}

// Worker drains the publisher's buffer into a Sink.
type Worker struct {
	sink    Sink
	inbox   <-chan Event
	logger  *slog.Logger
	metrics *Metrics
}

type Option func(*options)

type options struct {
	buffer  int
	logger  *slog.Logger
	metrics *Metrics
}

func WithBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.buffer = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// NewPipeline connects a Publisher to a Worker writing into sink.
func NewPipeline(sink Sink, opts ...Option) (*Publisher, *Worker) {
	o := options{buffer: 256, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	ch := make(chan Event, o.buffer)
	return &Publisher{inbox: ch, logger: o.logger, metrics: o.metrics},
		&Worker{sink: sink, inbox: ch, logger: o.logger, metrics: o.metrics}
}

// Emit queues e. A nil Publisher is a no-op.
func (p *Publisher) Emit(ctx context.Context, e Event) {
	if p == nil {
		return
	}
	select {
	case p.inbox <- e:
	default:
		p.metrics.incDropped(e.Name)
		p.logger.WarnContext(ctx, "analytics buffer full, dropping event",
			"request_id", e.RequestID,
			"event", e.Name,
		)
	}
}

// Run writes queued events until ctx is cancelled. Sink failures are logged
// and never stop the loop.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-w.inbox:
			if err := w.sink.Write(ctx, e); err != nil {
				w.metrics.incFailed(e.Name)
				w.logger.WarnContext(ctx, "analytics publish failed",
					"request_id", e.RequestID,
					"event", e.Name,
					"error", err,
				)
				continue
			}
			w.metrics.incPublished(e.Name)
		}
	}
}

// LogSink writes events as structured log lines.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, e Event) error {
	s.logger.InfoContext(ctx, "analytics event",
		"request_id", e.RequestID,
		"event", e.Name,
		"chain", e.Chain,
		"account", e.Account,
		"manager", e.Manager,
		"role", e.Role,
		"action", e.Action,
		"browser", e.Browser,
		"os", e.OS,
		"occurred_at", e.OccurredAt,
	)
	return nil
}
