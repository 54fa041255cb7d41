// Package opendart normalizes the OpenDART company disclosure lookup.
package opendart

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

const DefaultEndpoint = "https://opendart.fss.or.kr/api/company.json"

const (
	msgMissingKey = "OPENDART_API_KEY missing"
	msgFailed     = "Failed to fetch OpenDART"

	statusSuccess = "000"
)

type companyResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	CorpCode string `json:"corp_code"`
	CorpCls  string `json:"corp_cls"`
	CorpName string `json:"corp_name"`
}

// Provider looks up listing status by registration number.
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

func (p *Provider) Name() providers.Name { return providers.NameOpenDART }

// Fetch never fails. An upstream non-success status yields StatusNotApplicable
// with the upstream message.
func (p *Provider) Fetch(ctx context.Context, bizRegNo domain.BizRegNo) providers.Result {
	checkedAt := requestcontext.Now(ctx)
	if !p.cfg.Enabled() {
		return providers.Disabled(providers.Fallback(providers.NameOpenDART, checkedAt), msgMissingKey)
	}

	body, resp, err := p.lookup(ctx, bizRegNo)
	if err != nil {
		p.logger.WarnContext(ctx, "opendart lookup failed",
			"provider", providers.NameOpenDART,
			"category", providers.GetCategory(err),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		return providers.Failed(providers.NameOpenDART, checkedAt, err, msgFailed)
	}

	if resp.Status != statusSuccess {
		return providers.Parsed(providers.Fallback(providers.NameOpenDART, checkedAt), body, providers.StatusNotApplicable, resp.Message)
	}
	return providers.Parsed(Normalize(resp.CorpCls, resp.CorpCode, checkedAt), body, providers.StatusOK, "")
}

func (p *Provider) lookup(ctx context.Context, bizRegNo domain.BizRegNo) ([]byte, companyResponse, error) {
	q := url.Values{"crtfc_key": {p.cfg.APIKey}, "biz_no": {bizRegNo.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, companyResponse{}, providers.NewProviderError(providers.ErrorInternal, providers.NameOpenDART, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := providers.Do(ctx, p.cfg, providers.NameOpenDART, req)
	if err != nil {
		return nil, companyResponse{}, err
	}

	var resp companyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, companyResponse{}, providers.BadData(providers.NameOpenDART, err)
	}
	return body, resp, nil
}

// Normalize maps a corp_cls code: Y (KOSPI) and K (KOSDAQ) are listed.
func Normalize(corpCls, corpCode string, checkedAt time.Time) providers.OpenDARTNormalized {
	listing := providers.Unlisted
	if corpCls == "Y" || corpCls == "K" {
		listing = providers.Listed
	}
	return providers.OpenDARTNormalized{
		IsListed:      listing,
		CorpCode:      corpCode,
		LastCheckedAt: checkedAt,
	}
}
