// Package nts normalizes the National Tax Service business status lookup.
package nts

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

const DefaultEndpoint = "https://api.odcloud.kr/api/nts-businessman/v1/status"

const (
	msgMissingKey = "DATA_GO_KR_API_KEY missing; using mock data"
	msgFailed     = "Failed to fetch NTS status"
)

type statusResponse struct {
	Data []struct {
		BNo     string `json:"b_no"`
		BStt    string `json:"b_stt"`
		TaxType string `json:"tax_type"`
	} `json:"data"`
}

// Provider looks up business status by registration number.
type Provider struct {
	cfg    providers.Config
	logger *slog.Logger
}

type Option func(*Provider)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) {
		p.logger = logger
	}
}

func New(cfg providers.Config, opts ...Option) *Provider {
	p := &Provider{cfg: cfg.WithDefaults(DefaultEndpoint), logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() providers.Name { return providers.NameNTS }

// Fetch never fails. Without an API key it reports mock active data.
func (p *Provider) Fetch(ctx context.Context, bizRegNo domain.BizRegNo) providers.Result {
	checkedAt := requestcontext.Now(ctx)
	if !p.cfg.Enabled() {
		return providers.Disabled(providers.NTSNormalized{
			Status:        providers.BusinessActive,
			TaxableType:   "general",
			LastCheckedAt: checkedAt,
		}, msgMissingKey)
	}

	body, normalized, err := p.lookup(ctx, bizRegNo, checkedAt)
	if err != nil {
		p.logger.WarnContext(ctx, "nts lookup failed",
			"provider", providers.NameNTS,
			"category", providers.GetCategory(err),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		return providers.Failed(providers.NameNTS, checkedAt, err, msgFailed)
	}
	return providers.Parsed(normalized, body, providers.StatusOK, "")
}

func (p *Provider) lookup(ctx context.Context, bizRegNo domain.BizRegNo, checkedAt time.Time) ([]byte, providers.NTSNormalized, error) {
	payload, err := json.Marshal(map[string][]string{"b_no": {bizRegNo.String()}})
	if err != nil {
		return nil, providers.NTSNormalized{}, providers.NewProviderError(providers.ErrorInternal, providers.NameNTS, "encode request", err)
	}

	endpoint := p.cfg.Endpoint + "?" + url.Values{"serviceKey": {p.cfg.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, providers.NTSNormalized{}, providers.NewProviderError(providers.ErrorInternal, providers.NameNTS, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := providers.Do(ctx, p.cfg, providers.NameNTS, req)
	if err != nil {
		return nil, providers.NTSNormalized{}, err
	}

	var resp statusResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, providers.NTSNormalized{}, providers.BadData(providers.NameNTS, err)
	}

	normalized := providers.NTSNormalized{Status: providers.BusinessUnknown, LastCheckedAt: checkedAt}
	if len(resp.Data) > 0 {
		normalized.Status = MapStatus(resp.Data[0].BStt)
		normalized.TaxableType = resp.Data[0].TaxType
	}
	return body, normalized, nil
}

// MapStatus classifies a free-text NTS status by Korean or English keyword.
// Closure wins over suspension, which wins over active.
func MapStatus(status string) providers.BusinessStatus {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case s == "":
		return providers.BusinessUnknown
	case strings.Contains(s, "폐업") || strings.Contains(s, "closed"):
		return providers.BusinessClosed
	case strings.Contains(s, "휴업") || strings.Contains(s, "suspend"):
		return providers.BusinessSuspended
	case strings.Contains(s, "계속") || strings.Contains(s, "active"):
		return providers.BusinessActive
	default:
		return providers.BusinessUnknown
	}
}
