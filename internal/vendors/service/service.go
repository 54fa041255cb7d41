package service

import (
	"context"
	"errors"
	"log/slog"

	"vendorscreen/internal/audit"
	screeningmodels "vendorscreen/internal/screening/models"
	"vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
	"vendorscreen/pkg/platform/sentinel"
	"vendorscreen/pkg/requestcontext"
)

// Store persists vendors. Create returns sentinel.ErrConflict when the
// registration number is taken; lookups return sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, v *models.Vendor) error
	FindByID(ctx context.Context, id domain.VendorID) (*models.Vendor, error)
	FindByBizRegNo(ctx context.Context, bizRegNo domain.BizRegNo) (*models.Vendor, error)
	List(ctx context.Context) ([]*models.Vendor, error)
}

type RunLister interface {
	ListRunsByVendor(ctx context.Context, vendorID domain.VendorID) ([]*screeningmodels.ScreeningRun, error)
}

type AuditPublisher interface {
	Record(ctx context.Context, entry *audit.Entry) error
	Forward(ctx context.Context, entry *audit.Entry)
}

// Detail is a vendor with its screening history, newest run first.
type Detail struct {
	Vendor *models.Vendor
	Runs   []*screeningmodels.ScreeningRun
}

// Service manages the vendor registry.
type Service struct {
	vendors        Store
	runs           RunLister
	logger         *slog.Logger
	auditPublisher AuditPublisher
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// New constructs a Service.
func New(vendors Store, runs RunLister, opts ...Option) *Service {
	s := &Service{vendors: vendors, runs: runs}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Register validates and stores a new vendor.
func (s *Service) Register(ctx context.Context, req *models.RegisterVendorRequest) (*models.Vendor, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.create(ctx, req.Attributes())
}

func (s *Service) create(ctx context.Context, attrs models.Attributes) (*models.Vendor, error) {
	v, err := models.NewVendor(domain.NewVendorID(), attrs, requestcontext.Now(ctx))
	if err != nil {
		// Convert invariant violations to validation errors for API response
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
		}
		return nil, err
	}

	if err := s.vendors.Create(ctx, v); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "biz_reg_no is already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create vendor")
	}

	s.recordAudit(ctx, v)
	s.logger.InfoContext(ctx, "vendor registered",
		"request_id", requestcontext.RequestID(ctx),
		"vendor_id", v.ID,
		"vendor_type", v.Type,
	)
	return v, nil
}

// recordAudit is best-effort: registration has already succeeded.
func (s *Service) recordAudit(ctx context.Context, v *models.Vendor) {
	if s.auditPublisher == nil {
		return
	}
	entry := &audit.Entry{
		Action:     audit.ActionVendorRegistered,
		EntityType: audit.EntityVendor,
		EntityID:   v.ID.String(),
		Metadata: map[string]string{
			"vendor_name": v.Name,
			"biz_reg_no":  v.BizRegNo.String(),
		},
	}
	if err := s.auditPublisher.Record(ctx, entry); err != nil {
		s.logger.WarnContext(ctx, "failed to record vendor audit entry",
			"vendor_id", v.ID,
			"error", err,
		)
		return
	}
	s.auditPublisher.Forward(ctx, entry)
}

func (s *Service) Get(ctx context.Context, id domain.VendorID) (*models.Vendor, error) {
	v, err := s.vendors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "vendor not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load vendor")
	}
	return v, nil
}

// List returns all vendors, newest first.
func (s *Service) List(ctx context.Context) ([]*models.Vendor, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list vendors")
	}
	return vendors, nil
}

func (s *Service) Detail(ctx context.Context, id domain.VendorID) (*Detail, error) {
	v, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	runs, err := s.runs.ListRunsByVendor(ctx, id)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list screening runs")
	}
	return &Detail{Vendor: v, Runs: runs}, nil
}
