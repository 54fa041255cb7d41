package nts

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/evidence/providers/contract"
	"vendorscreen/pkg/requestcontext"
)

func newUpstream(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("serviceKey"))

		var payload map[string][]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, []string{"1234567890"}, payload["b_no"])

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch(t *testing.T) {
	checkedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), checkedAt)

	t.Run("normalizes upstream response", func(t *testing.T) {
		srv := newUpstream(t, http.StatusOK, `{"data":[{"b_stt":"계속사업자","tax_type":"일반"}]}`)
		p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL})

		result := p.Fetch(ctx, "1234567890")

		require.Equal(t, providers.StatusOK, result.Status)
		n := result.Normalized.(providers.NTSNormalized)
		assert.Equal(t, providers.BusinessActive, n.Status)
		assert.Equal(t, "일반", n.TaxableType)
		assert.Equal(t, checkedAt, result.CheckedAt)
		assert.Equal(t, providers.HashRaw([]byte(`{"data":[{"b_stt":"계속사업자","tax_type":"일반"}]}`)), result.RawHash)
	})

	t.Run("empty data is unknown but ok", func(t *testing.T) {
		srv := newUpstream(t, http.StatusOK, `{"data":[]}`)
		p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL})

		result := p.Fetch(ctx, "1234567890")

		assert.Equal(t, providers.StatusOK, result.Status)
		assert.Equal(t, providers.BusinessUnknown, result.Normalized.(providers.NTSNormalized).Status)
	})

	t.Run("non-2xx degrades to error fallback", func(t *testing.T) {
		srv := newUpstream(t, http.StatusBadGateway, `upstream down`)
		p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL})

		result := p.Fetch(ctx, "1234567890")

		assert.Equal(t, providers.StatusError, result.Status)
		assert.Equal(t, msgFailed, result.Message)
		assert.Equal(t, providers.NTSNormalized{Status: providers.BusinessUnknown, LastCheckedAt: checkedAt}, result.Normalized)
	})

	t.Run("malformed json degrades to error fallback", func(t *testing.T) {
		srv := newUpstream(t, http.StatusOK, `{"data":`)
		p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL})

		result := p.Fetch(ctx, "1234567890")

		assert.Equal(t, providers.StatusError, result.Status)
	})

	t.Run("slow upstream times out as error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)
		p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL, Timeout: 50 * time.Millisecond})

		result := p.Fetch(ctx, "1234567890")

		assert.Equal(t, providers.StatusError, result.Status)
	})

	t.Run("missing key returns mock data", func(t *testing.T) {
		result := New(providers.Config{}).Fetch(ctx, "1234567890")

		assert.Equal(t, providers.StatusDisabled, result.Status)
		assert.Equal(t, msgMissingKey, result.Message)
		n := result.Normalized.(providers.NTSNormalized)
		assert.Equal(t, providers.BusinessActive, n.Status)
		assert.Equal(t, "general", n.TaxableType)
		assert.Equal(t, providers.HashJSON(n), result.RawHash)
	})
}

func TestFetchLogsFailureCategory(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		category  string
		retryable bool
	}{
		{"outage is retryable", http.StatusBadGateway, `upstream down`, "provider_outage", true},
		{"bad data is not", http.StatusOK, `{"data":`, "bad_data", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))
			srv := newUpstream(t, tc.status, tc.body)
			p := New(providers.Config{APIKey: "test-key", Endpoint: srv.URL}, WithLogger(logger))

			p.Fetch(context.Background(), "1234567890")

			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, "nts lookup failed", line["msg"])
			assert.Equal(t, tc.category, line["category"])
			assert.Equal(t, tc.retryable, line["retryable"])
		})
	}
}

func TestMapStatus(t *testing.T) {
	cases := map[string]providers.BusinessStatus{
		"계속사업자":            providers.BusinessActive,
		"휴업자":              providers.BusinessSuspended,
		"폐업자":              providers.BusinessClosed,
		"Active":           providers.BusinessActive,
		"SUSPENDED":        providers.BusinessSuspended,
		"closed":           providers.BusinessClosed,
		"closed (suspend)": providers.BusinessClosed,
		"":                 providers.BusinessUnknown,
		"registered":       providers.BusinessUnknown,
	}
	for input, want := range cases {
		assert.Equal(t, want, MapStatus(input), input)
	}
}

func TestContract(t *testing.T) {
	srv := newUpstream(t, http.StatusOK, `{"data":[{"b_stt":"폐업자"}]}`)

	suite := &contract.ContractSuite{
		Provider: providers.NameNTS,
		Tests: []contract.ContractTest{
			{
				Name:           "live lookup",
				Normalizer:     New(providers.Config{APIKey: "test-key", Endpoint: srv.URL}),
				BizRegNo:       "1234567890",
				ExpectedStatus: providers.StatusOK,
				ValidateFunc: func(t *testing.T, r providers.Result) {
					assert.Equal(t, providers.BusinessClosed, r.Normalized.(providers.NTSNormalized).Status)
				},
			},
			{
				Name:           "disabled",
				Normalizer:     New(providers.Config{}),
				BizRegNo:       "1234567890",
				ExpectedStatus: providers.StatusDisabled,
			},
			{
				Name:           "unreachable upstream",
				Normalizer:     New(providers.Config{APIKey: "test-key", Endpoint: "http://127.0.0.1:1", Timeout: time.Second}),
				BizRegNo:       "1234567890",
				ExpectedStatus: providers.StatusError,
			},
		},
	}
	suite.Run(t)
}
