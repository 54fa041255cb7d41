package opendart

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/evidence/providers/contract"
	"vendorscreen/pkg/requestcontext"
)

type OpenDARTSuite struct {
	suite.Suite
	ctx       context.Context
	checkedAt time.Time
	body      string
	status    int
	srv       *httptest.Server
}

func TestOpenDARTSuite(t *testing.T) {
	suite.Run(t, new(OpenDARTSuite))
}

func (s *OpenDARTSuite) SetupTest() {
	s.checkedAt = time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.checkedAt)
	s.status = http.StatusOK
	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal("dart-key", r.URL.Query().Get("crtfc_key"))
		s.Equal("1234567890", r.URL.Query().Get("biz_no"))
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(s.body))
	}))
}

func (s *OpenDARTSuite) TearDownTest() {
	s.srv.Close()
}

func (s *OpenDARTSuite) provider() *Provider {
	return New(providers.Config{APIKey: "dart-key", Endpoint: s.srv.URL})
}

func (s *OpenDARTSuite) TestListedCompany() {
	for _, cls := range []string{"Y", "K"} {
		s.Run("corp_cls "+cls, func() {
			s.body = `{"status":"000","message":"정상","corp_code":"00126380","corp_cls":"` + cls + `"}`

			result := s.provider().Fetch(s.ctx, "1234567890")

			s.Require().Equal(providers.StatusOK, result.Status)
			n := result.Normalized.(providers.OpenDARTNormalized)
			s.Equal(providers.Listed, n.IsListed)
			s.Equal("00126380", n.CorpCode)
		})
	}
}

func (s *OpenDARTSuite) TestUnlistedCompany() {
	s.body = `{"status":"000","corp_code":"00999999","corp_cls":"E"}`

	result := s.provider().Fetch(s.ctx, "1234567890")

	s.Equal(providers.StatusOK, result.Status)
	s.Equal(providers.Unlisted, result.Normalized.(providers.OpenDARTNormalized).IsListed)
}

func (s *OpenDARTSuite) TestUpstreamNonSuccessStatus() {
	s.body = `{"status":"013","message":"조회된 데이타가 없습니다."}`

	result := s.provider().Fetch(s.ctx, "1234567890")

	s.Equal(providers.StatusNotApplicable, result.Status)
	s.Equal("조회된 데이타가 없습니다.", result.Message)
	s.Equal(providers.ListingNotApplicable, result.Normalized.(providers.OpenDARTNormalized).IsListed)
	s.Equal(providers.HashRaw([]byte(s.body)), result.RawHash)
}

func (s *OpenDARTSuite) TestFailures() {
	s.Run("server error", func() {
		s.status = http.StatusInternalServerError
		s.body = `oops`

		result := s.provider().Fetch(s.ctx, "1234567890")

		s.Equal(providers.StatusError, result.Status)
		s.Equal(msgFailed, result.Message)
		s.Equal(providers.ListingNotApplicable, result.Normalized.(providers.OpenDARTNormalized).IsListed)
	})

	s.Run("malformed body", func() {
		s.status = http.StatusOK
		s.body = `<html>`

		result := s.provider().Fetch(s.ctx, "1234567890")

		s.Equal(providers.StatusError, result.Status)
	})
}

func (s *OpenDARTSuite) TestMissingKey() {
	result := New(providers.Config{}).Fetch(s.ctx, "1234567890")

	s.Equal(providers.StatusDisabled, result.Status)
	s.Equal(msgMissingKey, result.Message)
	s.Equal(providers.ListingNotApplicable, result.Normalized.(providers.OpenDARTNormalized).IsListed)
}

func TestNormalize(t *testing.T) {
	at := time.Now()
	require.Equal(t, providers.Listed, Normalize("Y", "", at).IsListed)
	assert.Equal(t, providers.Listed, Normalize("K", "", at).IsListed)
	assert.Equal(t, providers.Unlisted, Normalize("N", "", at).IsListed)
	assert.Equal(t, providers.Unlisted, Normalize("", "", at).IsListed)
}

func TestContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"000","corp_cls":"Y","corp_code":"00126380"}`))
	}))
	defer srv.Close()

	suite := &contract.ContractSuite{
		Provider: providers.NameOpenDART,
		Tests: []contract.ContractTest{
			{Name: "live lookup", Normalizer: New(providers.Config{APIKey: "k", Endpoint: srv.URL}), BizRegNo: "1234567890", ExpectedStatus: providers.StatusOK},
			{Name: "disabled", Normalizer: New(providers.Config{}), BizRegNo: "1234567890", ExpectedStatus: providers.StatusDisabled},
		},
	}
	suite.Run(t)
}
