package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vendorscreen/internal/audit"
	"vendorscreen/internal/evidence/providers"
	providermocks "vendorscreen/internal/evidence/providers/mocks"
	"vendorscreen/internal/scoring"
	"vendorscreen/internal/screening/models"
	"vendorscreen/internal/screening/service/mocks"
	vendormodels "vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	dErrors "vendorscreen/pkg/domain-errors"
	"vendorscreen/pkg/platform/sentinel"
	"vendorscreen/pkg/requestcontext"
)

type ScreeningServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	ctx       context.Context
	now       time.Time
	vendor    *vendormodels.Vendor
	vendors   *mocks.MockVendorStore
	store     *mocks.MockStore
	cache     *mocks.MockEvidenceCache
	audit     *mocks.MockAuditPublisher
	nts       *providermocks.MockNormalizer
	opendart  *providermocks.MockNormalizer
	g2b       *providermocks.MockNormalizer
	registry  *providers.Registry
	service   *Service
}

func TestScreeningServiceSuite(t *testing.T) {
	suite.Run(t, new(ScreeningServiceSuite))
}

func (s *ScreeningServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.now = time.Date(2025, 1, 31, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.ctx = requestcontext.WithClientMetadata(s.ctx, "203.0.113.7", "vendorctl/1.0")
	s.vendor = &vendormodels.Vendor{
		ID:                  domain.NewVendorID(),
		Name:                "Seoul Logistics Co.",
		BizRegNo:            "1234567890",
		Type:                vendormodels.VendorTypeLogistics,
		ExpectedAnnualSpend: decimal.NewNullDecimal(decimal.NewFromInt(120_000_000)),
		AdvancePayment:      true,
		PIIAccessLevel:      vendormodels.PIIAccessLimited,
		CreatedAt:           s.now.Add(-time.Hour),
	}

	s.vendors = mocks.NewMockVendorStore(s.ctrl)
	s.store = mocks.NewMockStore(s.ctrl)
	s.cache = mocks.NewMockEvidenceCache(s.ctrl)
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.nts = s.normalizer(providers.NameNTS)
	s.opendart = s.normalizer(providers.NameOpenDART)
	s.g2b = s.normalizer(providers.NameG2B)

	var err error
	s.registry, err = providers.NewRegistry(s.nts, s.opendart, s.g2b)
	s.Require().NoError(err)
	s.service = New(s.vendors, s.store, s.cache, s.registry, s.audit)
}

func (s *ScreeningServiceSuite) normalizer(name providers.Name) *providermocks.MockNormalizer {
	n := providermocks.NewMockNormalizer(s.ctrl)
	n.EXPECT().Name().Return(name).AnyTimes()
	return n
}

func (s *ScreeningServiceSuite) liveResults() (providers.Result, providers.Result, providers.Result) {
	nts := providers.Parsed(providers.NTSNormalized{Status: providers.BusinessActive, TaxableType: "general", LastCheckedAt: s.now}, []byte(`{"data":[{"b_stt":"active"}]}`), providers.StatusOK, "")
	dart := providers.Parsed(providers.OpenDARTNormalized{IsListed: providers.Unlisted, CorpCode: "00126380", LastCheckedAt: s.now}, []byte(`{"status":"000"}`), providers.StatusOK, "")
	g2b := providers.Parsed(providers.G2BNormalized{HasSanction: providers.False, SanctionValid: providers.False, LastCheckedAt: s.now}, []byte(`{"data":[]}`), providers.StatusOK, "")
	return nts, dart, g2b
}

func (s *ScreeningServiceSuite) expectCacheMisses() {
	gomock.InOrder(
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameNTS).Return(providers.Result{}, false, nil),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameOpenDART).Return(providers.Result{}, false, nil),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameG2B).Return(providers.Result{}, false, nil),
	)
}

func (s *ScreeningServiceSuite) expectLiveFetches() {
	nts, dart, g2b := s.liveResults()
	gomock.InOrder(
		s.nts.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(nts),
		s.opendart.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(dart),
		s.g2b.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(g2b),
	)
}

func (s *ScreeningServiceSuite) expectWrites() (*models.ScreeningRun, *[]*models.EvidenceSnapshot, *audit.Entry) {
	var (
		run   models.ScreeningRun
		snaps []*models.EvidenceSnapshot
		entry audit.Entry
	)
	gomock.InOrder(
		s.store.EXPECT().CreateRun(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.ScreeningRun) error {
			run = *r
			return nil
		}),
		s.store.EXPECT().CreateSnapshots(gomock.Any(), gomock.Len(3)).DoAndReturn(func(_ context.Context, in []*models.EvidenceSnapshot) error {
			snaps = in
			return nil
		}),
		s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *audit.Entry) error {
			entry = *e
			return nil
		}),
		s.cache.EXPECT().Remember(gomock.Any(), gomock.Len(3)),
		s.audit.EXPECT().Forward(gomock.Any(), gomock.Any()),
	)
	return &run, &snaps, &entry
}

func (s *ScreeningServiceSuite) TestRunWithLiveLookups() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.expectCacheMisses()
	s.expectLiveFetches()
	run, snaps, entry := s.expectWrites()

	outcome, err := s.service.Run(s.ctx, s.vendor.ID, "reviewer@example.com")

	s.Require().NoError(err)
	// logistics 6 + limited PII 8 + advance 8 + spend tier 3 = 25; advance with spend over 50M = 6.
	s.Equal(scoring.Breakdown{Inherent: 25, External: 0, ControlGap: 6}, outcome.Result.Breakdown)
	s.Equal(31, outcome.Result.ScoreTotal)
	s.Equal(scoring.GradeMedium, outcome.Result.Grade)
	s.Equal(scoring.RecommendationConditionalGo, outcome.Result.Recommendation)

	s.Equal(outcome.Run.ID, run.ID)
	s.Equal("reviewer@example.com", run.RunBy)
	s.Equal(s.now, run.RunAt)
	s.Equal(time.Date(2025, 7, 31, 9, 30, 0, 0, time.UTC), run.NextReviewAt)

	s.Require().Len(*snaps, 3)
	for i, name := range providers.Order {
		s.Equal(name, (*snaps)[i].ProviderName)
		s.Equal(run.ID, (*snaps)[i].RunID)
		s.Equal(s.vendor.ID, (*snaps)[i].VendorID)
		s.Len((*snaps)[i].RawHash, 64)
	}

	s.Equal(audit.ActionScreeningRun, entry.Action)
	s.Equal(audit.EntityScreeningRun, entry.EntityType)
	s.Equal(run.ID.String(), entry.EntityID)
	s.Equal("reviewer@example.com", entry.Actor)
	s.Equal(s.vendor.ID.String(), entry.Metadata["vendor_id"])
	s.Equal("Seoul Logistics Co.", entry.Metadata["vendor_name"])
	s.Equal("203.0.113.7", entry.Metadata["client_ip"])
}

func (s *ScreeningServiceSuite) TestRunDefaultsActorFromContext() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.expectCacheMisses()
	s.expectLiveFetches()
	run, _, _ := s.expectWrites()

	_, err := s.service.Run(requestcontext.WithActor(s.ctx, "bob"), s.vendor.ID, "")

	s.Require().NoError(err)
	s.Equal("bob", run.RunBy)
}

func (s *ScreeningServiceSuite) TestRunVendorNotFound() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(nil, sentinel.ErrNotFound)

	outcome, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Nil(outcome)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	s.Equal("vendor not found", dErrors.MessageOf(err))
}

func (s *ScreeningServiceSuite) TestRunReusesFreshEvidence() {
	nts, dart, g2b := s.liveResults()
	for _, res := range []*providers.Result{&nts, &dart, &g2b} {
		res.Message = providers.CacheHitMessage
		res.CheckedAt = s.now.Add(-3 * time.Hour)
	}
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	gomock.InOrder(
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameNTS).Return(nts, true, nil),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameOpenDART).Return(dart, true, nil),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameG2B).Return(g2b, true, nil),
	)
	_, snaps, _ := s.expectWrites()

	_, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Require().NoError(err)
	for _, snap := range *snaps {
		s.Equal(providers.CacheHitMessage, snap.Message)
		s.Equal(s.now.Add(-3*time.Hour), snap.CheckedAt)
	}
}

func (s *ScreeningServiceSuite) TestRunMixesCachedAndLiveEvidence() {
	nts, dart, g2b := s.liveResults()
	nts.Normalized = providers.NTSNormalized{Status: providers.BusinessClosed, LastCheckedAt: s.now.Add(-time.Hour)}
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	gomock.InOrder(
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameNTS).Return(nts, true, nil),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameOpenDART).Return(providers.Result{}, false, nil),
		s.opendart.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(dart),
		s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameG2B).Return(providers.Result{}, false, nil),
		s.g2b.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(g2b),
	)
	s.expectWrites()

	outcome, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Require().NoError(err)
	s.Equal(scoring.RecommendationNoGo, outcome.Result.Recommendation)
	s.Require().Len(outcome.Result.RedFlags, 1)
	s.Equal(scoring.RedFlagNTSClosed, outcome.Result.RedFlags[0].Code)
}

func (s *ScreeningServiceSuite) TestDegradedProviderDoesNotBlockRun() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.expectCacheMisses()
	nts, dart, _ := s.liveResults()
	gomock.InOrder(
		s.nts.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(nts),
		s.opendart.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).Return(dart),
		s.g2b.EXPECT().Fetch(gomock.Any(), s.vendor.BizRegNo).
			Return(providers.Failed(providers.NameG2B, s.now, errors.New("timeout"), "G2B lookup failed")),
	)
	_, snaps, _ := s.expectWrites()

	outcome, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Require().NoError(err)
	s.Equal(2, outcome.Result.Breakdown.External)
	s.Equal(providers.StatusError, (*snaps)[2].Status)
	s.Equal("G2B lookup failed", (*snaps)[2].Message)
}

func (s *ScreeningServiceSuite) TestCacheReadFailureAbortsBeforeWrites() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.cache.EXPECT().Lookup(gomock.Any(), s.vendor.ID, providers.NameNTS).Return(providers.Result{}, false, errors.New("db down"))

	_, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ScreeningServiceSuite) TestPersistenceFailureFailsRun() {
	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.expectCacheMisses()
	s.expectLiveFetches()
	s.store.EXPECT().CreateRun(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	outcome, err := s.service.Run(s.ctx, s.vendor.ID, "alice")

	s.Nil(outcome)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	s.Equal("failed to persist screening run", dErrors.MessageOf(err))
}

func (s *ScreeningServiceSuite) TestWritesRunInsideUnitOfWork() {
	tx := mocks.NewMockTxRunner(s.ctrl)
	service := New(s.vendors, s.store, s.cache, s.registry, s.audit, WithTxRunner(tx))
	type marker struct{}

	s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
	s.expectCacheMisses()
	s.expectLiveFetches()
	tx.EXPECT().RunInTx(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
		return fn(context.WithValue(ctx, marker{}, true))
	})
	inTx := func(ctx context.Context) bool { v, _ := ctx.Value(marker{}).(bool); return v }
	gomock.InOrder(
		s.store.EXPECT().CreateRun(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *models.ScreeningRun) error {
			s.True(inTx(ctx))
			return nil
		}),
		s.store.EXPECT().CreateSnapshots(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ []*models.EvidenceSnapshot) error {
			s.True(inTx(ctx))
			return nil
		}),
		s.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ *audit.Entry) error {
			s.True(inTx(ctx))
			return errors.New("audit insert failed")
		}),
	)

	_, err := service.Run(s.ctx, s.vendor.ID, "alice")

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ScreeningServiceSuite) TestGetRun() {
	runID := domain.NewScreeningRunID()
	run := &models.ScreeningRun{ID: runID, VendorID: s.vendor.ID}

	s.Run("orders snapshots by provider", func() {
		snaps := []*models.EvidenceSnapshot{
			{ProviderName: providers.NameG2B},
			{ProviderName: providers.NameNTS},
			{ProviderName: providers.NameOpenDART},
		}
		s.store.EXPECT().FindRun(gomock.Any(), runID).Return(run, nil)
		s.vendors.EXPECT().FindByID(gomock.Any(), s.vendor.ID).Return(s.vendor, nil)
		s.store.EXPECT().ListSnapshotsByRun(gomock.Any(), runID).Return(snaps, nil)

		detail, err := s.service.GetRun(s.ctx, runID)

		s.Require().NoError(err)
		s.Equal(s.vendor, detail.Vendor)
		s.Require().Len(detail.Snapshots, 3)
		s.Equal(providers.NameNTS, detail.Snapshots[0].ProviderName)
		s.Equal(providers.NameOpenDART, detail.Snapshots[1].ProviderName)
		s.Equal(providers.NameG2B, detail.Snapshots[2].ProviderName)
	})

	s.Run("missing run", func() {
		s.store.EXPECT().FindRun(gomock.Any(), runID).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.GetRun(s.ctx, runID)

		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ScreeningServiceSuite) TestListAudit() {
	entries := []*audit.Entry{{Action: audit.ActionScreeningRun, EntityID: "run-1"}}
	s.audit.EXPECT().List(gomock.Any(), "run-1").Return(entries, nil)

	got, err := s.service.ListAudit(s.ctx, "run-1")

	s.Require().NoError(err)
	s.Equal(entries, got)
}
