package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorscreen/internal/platform/metrics"
	screeningmodels "vendorscreen/internal/screening/models"
	"vendorscreen/internal/vendors/models"
	"vendorscreen/internal/vendors/service"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/httputil"
	"vendorscreen/pkg/requestcontext"
)

// Service defines the vendor registry operations the handler needs.
type Service interface {
	Register(ctx context.Context, req *models.RegisterVendorRequest) (*models.Vendor, error)
	List(ctx context.Context) ([]*models.Vendor, error)
	Detail(ctx context.Context, id domain.VendorID) (*service.Detail, error)
}

// Handler handles vendor registry endpoints.
type Handler struct {
	logger  *slog.Logger
	vendors Service
	metrics *metrics.Metrics
}

// New creates a new vendor Handler.
func New(vendors Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		logger:  logger,
		vendors: vendors,
		metrics: metrics,
	}
}

// Register registers the vendor routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/vendors", h.HandleRegister)
	r.Get("/vendors", h.HandleList)
	r.Get("/vendors/{id}", h.HandleDetail)
}

type listResponse struct {
	Vendors []*models.Vendor `json:"vendors"`
}

type detailResponse struct {
	Vendor *models.Vendor                  `json:"vendor"`
	Runs   []*screeningmodels.ScreeningRun `json:"screening_runs"`
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterVendorRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	v, err := h.vendors.Register(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to register vendor",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.metrics.IncrementVendorsRegistered()
	httputil.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vendors, err := h.vendors.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list vendors",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if vendors == nil {
		vendors = []*models.Vendor{}
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{Vendors: vendors})
}

func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := domain.ParseVendorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detail, err := h.vendors.Detail(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	runs := detail.Runs
	if runs == nil {
		runs = []*screeningmodels.ScreeningRun{}
	}
	httputil.WriteJSON(w, http.StatusOK, detailResponse{Vendor: detail.Vendor, Runs: runs})
}
