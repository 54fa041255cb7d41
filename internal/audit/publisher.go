package audit

import (
	"context"
	"fmt"
	"log/slog"

	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

// Store persists audit entries.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	ListByEntity(ctx context.Context, entityID string) ([]*Entry, error)
}

// Sink receives entries after they are durably stored, e.g. a message broker.
type Sink interface {
	Publish(ctx context.Context, entry *Entry) error
}

// Publisher captures structured audit entries. Record is synchronous and
// fail-closed so it can run inside the caller's unit of work; Forward hands
// committed entries to the optional sink without blocking the caller.
type Publisher struct {
	store  Store
	logger *slog.Logger
	outbox chan *Entry
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for forwarding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithOutbox connects the channel drained by a Worker.
func WithOutbox(outbox chan *Entry) Option {
	return func(p *Publisher) {
		p.outbox = outbox
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	return p
}

// Record fills ID, actor and timestamp when unset and appends the entry.
func (p *Publisher) Record(ctx context.Context, entry *Entry) error {
	if entry.Action == "" {
		return fmt.Errorf("audit entry requires an action")
	}
	if entry.ID == (domain.AuditEntryID{}) {
		entry.ID = domain.NewAuditEntryID()
	}
	if entry.Actor == "" {
		entry.Actor = requestcontext.Actor(ctx)
	}
	if entry.At.IsZero() {
		entry.At = requestcontext.Now(ctx)
	}
	if err := p.store.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Forward enqueues a committed entry for the sink. When no sink is wired the
// call is a no-op; when the outbox is full the entry is dropped and logged
// since the store already holds it.
func (p *Publisher) Forward(ctx context.Context, entry *Entry) {
	if p.outbox == nil {
		return
	}
	select {
	case p.outbox <- entry:
	default:
		p.logger.WarnContext(ctx, "audit outbox full, entry not forwarded",
			"audit_id", entry.ID,
			"action", entry.Action,
			"entity_id", entry.EntityID,
		)
	}
}

// List returns entries for one entity, newest first.
func (p *Publisher) List(ctx context.Context, entityID string) ([]*Entry, error) {
	return p.store.ListByEntity(ctx, entityID)
}
