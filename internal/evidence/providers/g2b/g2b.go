// Package g2b normalizes the public procurement (G2B) sanction lookup.
package g2b

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/requestcontext"
)

const DefaultEndpoint = "https://api.odcloud.kr/api/15077586/v1/uddi:7dd8b4b1-6b0a-4f07-9a02-7f6c1d7a9f3a"

const (
	msgMissingKey = "G2B_API_KEY missing"
	msgFailed     = "G2B lookup failed"
)

type item map[string]any

// sanctionResponse covers both the odcloud shape (data[]) and the
// data.go.kr envelope (response.body.items.item as object or array).
type sanctionResponse struct {
	Data     []item `json:"data"`
	Response *struct {
		Body *struct {
			Items *struct {
				Item json.RawMessage `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

func (r sanctionResponse) first() (item, error) {
	if len(r.Data) > 0 {
		return r.Data[0], nil
	}
	if r.Response == nil || r.Response.Body == nil || r.Response.Body.Items == nil {
		return nil, nil
	}
	raw := r.Response.Body.Items.Item
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '[' {
		var items []item
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, nil
		}
		return items[0], nil
	}
	var single item
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	return single, nil
}

// lookup returns the first present key in order.
func (it item) lookup(keys ...string) any {
	for _, k := range keys {
		if v, ok := it[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// Provider looks up procurement sanctions by registration number.
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

func (p *Provider) Name() providers.Name { return providers.NameG2B }

// Fetch never fails. Missing fields are reported as unknown.
func (p *Provider) Fetch(ctx context.Context, bizRegNo domain.BizRegNo) providers.Result {
	checkedAt := requestcontext.Now(ctx)
	if !p.cfg.Enabled() {
		return providers.Disabled(providers.Fallback(providers.NameG2B, checkedAt), msgMissingKey)
	}

	body, normalized, err := p.lookup(ctx, bizRegNo, checkedAt)
	if err != nil {
		p.logger.WarnContext(ctx, "g2b lookup failed",
			"provider", providers.NameG2B,
			"category", providers.GetCategory(err),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		return providers.Failed(providers.NameG2B, checkedAt, err, msgFailed)
	}
	return providers.Parsed(normalized, body, providers.StatusOK, "")
}

func (p *Provider) lookup(ctx context.Context, bizRegNo domain.BizRegNo, checkedAt time.Time) ([]byte, providers.G2BNormalized, error) {
	q := url.Values{"serviceKey": {p.cfg.APIKey}, "bizRegNo": {bizRegNo.String()}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.Endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, providers.G2BNormalized{}, providers.NewProviderError(providers.ErrorInternal, providers.NameG2B, "build request", err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := providers.Do(ctx, p.cfg, providers.NameG2B, req)
	if err != nil {
		return nil, providers.G2BNormalized{}, err
	}

	var resp sanctionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, providers.G2BNormalized{}, providers.BadData(providers.NameG2B, err)
	}
	it, err := resp.first()
	if err != nil {
		return nil, providers.G2BNormalized{}, providers.BadData(providers.NameG2B, err)
	}

	return body, providers.G2BNormalized{
		HasSanction:   ParseFlag(it.lookup("sanction_yn", "sanc_yn")),
		SanctionValid: ParseFlag(it.lookup("sanction_valid", "sanc_valid")),
		LastCheckedAt: checkedAt,
	}, nil
}

// ParseFlag reads the textual boolean encodings used by the upstream:
// y/yes/true/1 and n/no/false/0. Everything else is unknown.
func ParseFlag(v any) providers.Tristate {
	var s string
	switch t := v.(type) {
	case nil:
		return providers.Unknown
	case bool:
		return providers.TristateOf(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		s = t
	default:
		s = fmt.Sprint(t)
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1":
		return providers.True
	case "n", "no", "false", "0":
		return providers.False
	default:
		return providers.Unknown
	}
}
