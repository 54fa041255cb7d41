package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vendorscreen/internal/audit"
	"vendorscreen/internal/reports"
	"vendorscreen/internal/scoring"
	"vendorscreen/internal/screening/models"
	vendormodels "vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
	"vendorscreen/pkg/platform/httputil"
	"vendorscreen/pkg/requestcontext"
)

// Service defines the screening operations the handler needs.
type Service interface {
	Run(ctx context.Context, vendorID domain.VendorID, actor string) (*models.Outcome, error)
	GetRun(ctx context.Context, id domain.ScreeningRunID) (*models.RunDetail, error)
	ListAudit(ctx context.Context, entityID string) ([]*audit.Entry, error)
}

// Handler handles screening endpoints.
type Handler struct {
	logger    *slog.Logger
	screening Service
}

// New creates a new screening Handler.
func New(screening Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		logger:    logger,
		screening: screening,
	}
}

// Register registers the screening routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/vendors/{id}/screenings", h.HandleRun)
	r.Get("/screenings/{id}", h.HandleGet)
	r.Get("/screenings/{id}/evidence", h.HandleEvidence)
	r.Get("/screenings/{id}/memo", h.HandleMemo)
}

type runResponse struct {
	Run       *models.ScreeningRun       `json:"screening_run"`
	Result    scoring.Result             `json:"result"`
	Snapshots []*models.EvidenceSnapshot `json:"evidence_snapshots"`
}

type detailResponse struct {
	Run       *models.ScreeningRun       `json:"screening_run"`
	Vendor    *vendormodels.Vendor       `json:"vendor"`
	Snapshots []*models.EvidenceSnapshot `json:"evidence_snapshots"`
	Audit     []*audit.Entry             `json:"audit_logs"`
}

// HandleRun screens the vendor on behalf of the request actor.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	vendorID, err := domain.ParseVendorID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.screening.Run(ctx, vendorID, requestcontext.Actor(ctx))
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "screening run failed",
				"request_id", requestID,
				"vendor_id", vendorID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, runResponse{
		Run:       outcome.Run,
		Result:    outcome.Result,
		Snapshots: outcome.Snapshots,
	})
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	entries, err := h.screening.ListAudit(ctx, detail.Run.ID.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit entries",
			"request_id", requestcontext.RequestID(ctx),
			"screening_run_id", detail.Run.ID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if entries == nil {
		entries = []*audit.Entry{}
	}

	httputil.WriteJSON(w, http.StatusOK, detailResponse{
		Run:       detail.Run,
		Vendor:    detail.Vendor,
		Snapshots: detail.Snapshots,
		Audit:     entries,
	})
}

// HandleEvidence serves the evidence pack as a JSON download.
func (h *Handler) HandleEvidence(w http.ResponseWriter, r *http.Request) {
	detail, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	body, err := json.MarshalIndent(reports.BuildEvidencePack(detail), "", "  ")
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build evidence pack"))
		return
	}
	writeAttachment(w, "application/json", reports.EvidenceFilename(detail.Run.ID), body)
}

// HandleMemo serves the screening memo as a PDF download.
func (h *Handler) HandleMemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	detail, ok := h.loadRun(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := reports.RenderMemo(&buf, detail); err != nil {
		h.logger.ErrorContext(ctx, "failed to render memo",
			"request_id", requestcontext.RequestID(ctx),
			"screening_run_id", detail.Run.ID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render memo"))
		return
	}
	writeAttachment(w, "application/pdf", reports.MemoFilename(detail.Run.ID), buf.Bytes())
}

func (h *Handler) loadRun(w http.ResponseWriter, r *http.Request) (*models.RunDetail, bool) {
	id, err := domain.ParseScreeningRunID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	detail, err := h.screening.GetRun(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return detail, true
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
