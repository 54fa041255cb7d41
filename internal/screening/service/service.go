package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vendorscreen/internal/audit"
	evmetrics "vendorscreen/internal/evidence/metrics"
	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/scoring"
	"vendorscreen/internal/screening/metrics"
	"vendorscreen/internal/screening/models"
	vendormodels "vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
	"vendorscreen/pkg/platform/sentinel"
	txcontext "vendorscreen/pkg/platform/tx"
	"vendorscreen/pkg/requestcontext"
)

const tracerName = "vendorscreen/internal/screening"

type VendorStore interface {
	FindByID(ctx context.Context, id domain.VendorID) (*vendormodels.Vendor, error)
}

// Store persists runs and their snapshots. Lookups return sentinel.ErrNotFound
// when nothing matches.
type Store interface {
	CreateRun(ctx context.Context, run *models.ScreeningRun) error
	CreateSnapshots(ctx context.Context, snaps []*models.EvidenceSnapshot) error
	FindRun(ctx context.Context, id domain.ScreeningRunID) (*models.ScreeningRun, error)
	ListRunsByVendor(ctx context.Context, vendorID domain.VendorID) ([]*models.ScreeningRun, error)
	ListSnapshotsByRun(ctx context.Context, runID domain.ScreeningRunID) ([]*models.EvidenceSnapshot, error)
}

type EvidenceCache interface {
	Lookup(ctx context.Context, vendorID domain.VendorID, provider providers.Name) (providers.Result, bool, error)
	Remember(ctx context.Context, snaps []*models.EvidenceSnapshot)
}

type ProviderRegistry interface {
	Get(name providers.Name) (providers.Normalizer, bool)
}

type AuditPublisher interface {
	Record(ctx context.Context, entry *audit.Entry) error
	Forward(ctx context.Context, entry *audit.Entry)
	List(ctx context.Context, entityID string) ([]*audit.Entry, error)
}

type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service orchestrates screening runs and serves their read side.
type Service struct {
	vendors         VendorStore
	store           Store
	cache           EvidenceCache
	providers       ProviderRegistry
	audit           AuditPublisher
	tx              TxRunner
	logger          *slog.Logger
	metrics         *metrics.Metrics
	evidenceMetrics *evmetrics.Metrics
	tracer          trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithEvidenceMetrics(m *evmetrics.Metrics) Option {
	return func(s *Service) {
		s.evidenceMetrics = m
	}
}

// WithTxRunner makes run, snapshot and audit writes one unit of work.
// Without it the writes are sequential and best-effort.
func WithTxRunner(tx TxRunner) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(vendors VendorStore, store Store, cache EvidenceCache, registry ProviderRegistry, auditPublisher AuditPublisher, opts ...Option) *Service {
	s := &Service{
		vendors:   vendors,
		store:     store,
		cache:     cache,
		providers: registry,
		audit:     auditPublisher,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = txcontext.Sequential{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Run screens one vendor on behalf of actor. An empty actor falls back to the
// request actor. It fails with not_found before any write when the vendor
// does not exist.
func (s *Service) Run(ctx context.Context, vendorID domain.VendorID, actor string) (*models.Outcome, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "screening.Run",
		trace.WithAttributes(attribute.String("vendor_id", vendorID.String())))
	defer span.End()

	if actor == "" {
		actor = requestcontext.Actor(ctx)
	}

	outcome, err := s.run(ctx, vendorID, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, dErrors.MessageOf(err))
		s.metrics.RecordFailure(string(dErrors.CodeOf(err)))
		return nil, err
	}

	result := outcome.Result
	span.SetAttributes(
		attribute.String("screening_run_id", outcome.Run.ID.String()),
		attribute.String("grade", string(result.Grade)),
		attribute.String("recommendation", string(result.Recommendation)),
		attribute.Int("score_total", result.ScoreTotal),
	)
	flags := make([]string, 0, len(result.RedFlags))
	for _, f := range result.RedFlags {
		flags = append(flags, string(f.Code))
	}
	s.metrics.RecordRun(string(result.Grade), string(result.Recommendation), flags, time.Since(start))

	s.logger.InfoContext(ctx, "screening run completed",
		"request_id", requestcontext.RequestID(ctx),
		"actor", actor,
		"vendor_id", vendorID,
		"screening_run_id", outcome.Run.ID,
		"grade", result.Grade,
		"recommendation", result.Recommendation,
		"score_total", result.ScoreTotal,
		"red_flags", flags,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return outcome, nil
}

func (s *Service) run(ctx context.Context, vendorID domain.VendorID, actor string) (*models.Outcome, error) {
	vendor, err := s.vendors.FindByID(ctx, vendorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load vendor")
	}

	// Providers resolve sequentially in the fixed order that reports rely on.
	results := make([]providers.Result, 0, len(providers.Order))
	payloads := make([]providers.Normalized, 0, len(providers.Order))
	for _, name := range providers.Order {
		res, err := s.resolve(ctx, vendor, name)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		payloads = append(payloads, res.Normalized)
	}

	now := requestcontext.Now(ctx)
	result := scoring.Score(scoring.Inputs{
		Vendor:   vendor,
		Evidence: scoring.EvidenceFrom(now, payloads...),
	})

	run, err := models.NewScreeningRun(domain.NewScreeningRunID(), vendor.ID, actor, now, result)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build screening run")
	}
	snaps := make([]*models.EvidenceSnapshot, 0, len(results))
	for _, res := range results {
		snap, err := models.NewSnapshot(domain.NewSnapshotID(), run.ID, vendor.ID, res)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build evidence snapshot")
		}
		snaps = append(snaps, snap)
	}
	entry := &audit.Entry{
		ID:         domain.NewAuditEntryID(),
		Actor:      actor,
		Action:     audit.ActionScreeningRun,
		EntityType: audit.EntityScreeningRun,
		EntityID:   run.ID.String(),
		Metadata:   auditMetadata(ctx, vendor),
		At:         now,
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.CreateRun(ctx, run); err != nil {
			return fmt.Errorf("create screening run: %w", err)
		}
		if err := s.store.CreateSnapshots(ctx, snaps); err != nil {
			return fmt.Errorf("create evidence snapshots: %w", err)
		}
		return s.audit.Record(ctx, entry)
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist screening run")
	}

	s.cache.Remember(ctx, snaps)
	s.audit.Forward(ctx, entry)

	return &models.Outcome{Run: run, Result: result, Snapshots: snaps}, nil
}

// resolve serves a provider from a fresh snapshot of an earlier run, or
// fetches it live. Live lookups never fail; only cache reads can.
func (s *Service) resolve(ctx context.Context, vendor *vendormodels.Vendor, name providers.Name) (providers.Result, error) {
	ctx, span := s.tracer.Start(ctx, "screening.resolve",
		trace.WithAttributes(attribute.String("provider", name.String())))
	defer span.End()

	cached, ok, err := s.cache.Lookup(ctx, vendor.ID, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evidence cache read failed")
		return providers.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read evidence cache")
	}
	span.SetAttributes(attribute.Bool("cache_hit", ok))
	if ok {
		return cached, nil
	}

	normalizer, found := s.providers.Get(name)
	if !found {
		return providers.Result{}, dErrors.New(dErrors.CodeInternal, fmt.Sprintf("provider %s is not configured", name))
	}

	start := time.Now()
	res := normalizer.Fetch(ctx, vendor.BizRegNo)
	s.evidenceMetrics.ObserveLookup(name.String(), string(res.Status), time.Since(start))
	span.SetAttributes(attribute.String("status", string(res.Status)))

	if res.Status == providers.StatusError {
		s.logger.WarnContext(ctx, "provider lookup degraded",
			"vendor_id", vendor.ID,
			"provider", name,
			"message", res.Message,
		)
	}
	return res, nil
}

func auditMetadata(ctx context.Context, vendor *vendormodels.Vendor) map[string]string {
	md := map[string]string{
		"vendor_id":   vendor.ID.String(),
		"vendor_name": vendor.Name,
	}
	if ip := requestcontext.ClientIP(ctx); ip != "" {
		md["client_ip"] = ip
	}
	if ua := requestcontext.UserAgent(ctx); ua != "" {
		md["user_agent"] = ua
	}
	if info := requestcontext.ClientInfo(ctx); info != "" {
		md["client"] = info
	}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		md["request_id"] = rid
	}
	return md
}

// GetRun returns a run with its vendor and snapshots in provider order.
func (s *Service) GetRun(ctx context.Context, id domain.ScreeningRunID) (*models.RunDetail, error) {
	run, err := s.store.FindRun(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "screening run not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load screening run")
	}
	vendor, err := s.vendors.FindByID(ctx, run.VendorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load vendor")
	}
	snaps, err := s.store.ListSnapshotsByRun(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load evidence snapshots")
	}
	return &models.RunDetail{Run: run, Vendor: vendor, Snapshots: models.OrderSnapshots(snaps)}, nil
}

// ListRunsByVendor returns the vendor's runs, newest first.
func (s *Service) ListRunsByVendor(ctx context.Context, vendorID domain.VendorID) ([]*models.ScreeningRun, error) {
	runs, err := s.store.ListRunsByVendor(ctx, vendorID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list screening runs")
	}
	return runs, nil
}

// ListAudit returns audit entries for an entity, newest first.
func (s *Service) ListAudit(ctx context.Context, entityID string) ([]*audit.Entry, error) {
	entries, err := s.audit.List(ctx, entityID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit entries")
	}
	return entries, nil
}
