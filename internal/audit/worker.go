package audit

import (
	"context"
	"log/slog"
	"time"
)

const publishTimeout = 5 * time.Second

// Worker consumes committed entries from the outbox channel and publishes
// them to the sink. Delivery is best-effort: failures are logged and the
// entry is skipped.
type Worker struct {
	sink   Sink
	inbox  <-chan *Entry
	logger *slog.Logger
}

func NewWorker(sink Sink, inbox <-chan *Entry, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

// Run blocks until ctx is cancelled or the inbox is closed.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry, ok := <-w.inbox:
			if !ok {
				return nil
			}
			w.publish(ctx, entry)
		}
	}
}

func (w *Worker) publish(ctx context.Context, entry *Entry) {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := w.sink.Publish(pubCtx, entry); err != nil {
		w.logger.WarnContext(ctx, "failed to publish audit entry",
			"audit_id", entry.ID,
			"action", entry.Action,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}
