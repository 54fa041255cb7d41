package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"vendorscreen/internal/evidence/providers"
	"vendorscreen/internal/scoring"
	"vendorscreen/internal/screening/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
	txcontext "vendorscreen/pkg/platform/tx"
)

// PostgresStore persists runs and snapshots. Writes join the transaction
// carried by the context when there is one.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const runColumns = `id, vendor_id, run_by, run_at, overall_grade, recommendation, score_total,
	score_breakdown, red_flags, recommended_actions, next_review_months, next_review_at`

const snapshotColumns = `id, screening_run_id, vendor_id, provider_name, status, message,
	normalized, raw_hash_sha256, checked_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *models.ScreeningRun) error {
	breakdown, err := json.Marshal(run.Breakdown)
	if err != nil {
		return fmt.Errorf("marshal score breakdown: %w", err)
	}
	redFlags, err := json.Marshal(run.RedFlags)
	if err != nil {
		return fmt.Errorf("marshal red flags: %w", err)
	}
	actions, err := json.Marshal(run.RecommendedActions)
	if err != nil {
		return fmt.Errorf("marshal recommended actions: %w", err)
	}
	query := `INSERT INTO screening_runs (` + runColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		run.ID,
		run.VendorID,
		run.RunBy,
		run.RunAt,
		string(run.Grade),
		string(run.Recommendation),
		run.ScoreTotal,
		breakdown,
		redFlags,
		actions,
		run.NextReviewMonths,
		run.NextReviewAt,
	)
	if err != nil {
		return fmt.Errorf("insert screening run: %w", err)
	}
	return nil
}

func (s *PostgresStore) CreateSnapshots(ctx context.Context, snaps []*models.EvidenceSnapshot) error {
	query := `INSERT INTO evidence_snapshots (` + snapshotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	exec := txcontext.Executor(ctx, s.db)
	for _, snap := range snaps {
		_, err := exec.ExecContext(ctx, query,
			snap.ID,
			snap.RunID,
			snap.VendorID,
			string(snap.ProviderName),
			string(snap.Status),
			nullString(snap.Message),
			[]byte(snap.Normalized),
			snap.RawHash,
			snap.CheckedAt,
		)
		if err != nil {
			return fmt.Errorf("insert %s snapshot: %w", snap.ProviderName, err)
		}
	}
	return nil
}

func (s *PostgresStore) FindRun(ctx context.Context, id domain.ScreeningRunID) (*models.ScreeningRun, error) {
	query := `SELECT ` + runColumns + ` FROM screening_runs WHERE id = $1`
	run, err := scanRun(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find screening run: %w", err)
	}
	return run, nil
}

func (s *PostgresStore) ListRunsByVendor(ctx context.Context, vendorID domain.VendorID) ([]*models.ScreeningRun, error) {
	query := `SELECT ` + runColumns + ` FROM screening_runs WHERE vendor_id = $1 ORDER BY run_at DESC`
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list screening runs: %w", err)
	}
	defer rows.Close()

	runs := make([]*models.ScreeningRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan screening run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate screening runs: %w", err)
	}
	return runs, nil
}

func (s *PostgresStore) ListSnapshotsByRun(ctx context.Context, runID domain.ScreeningRunID) ([]*models.EvidenceSnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM evidence_snapshots WHERE screening_run_id = $1`
	return s.querySnapshots(ctx, query, runID)
}

// LatestSnapshot returns the most recently checked snapshot for the vendor and
// provider across all of the vendor's runs.
func (s *PostgresStore) LatestSnapshot(ctx context.Context, vendorID domain.VendorID, provider providers.Name) (*models.EvidenceSnapshot, error) {
	snaps, err := s.LatestSnapshots(ctx, vendorID, provider)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return snaps[0], nil
}

// LatestSnapshots returns the most recent snapshot per requested provider,
// in provider order.
func (s *PostgresStore) LatestSnapshots(ctx context.Context, vendorID domain.VendorID, names ...providers.Name) ([]*models.EvidenceSnapshot, error) {
	if len(names) == 0 {
		names = providers.Order
	}
	wanted := make([]string, len(names))
	for i, n := range names {
		wanted[i] = string(n)
	}
	query := `SELECT DISTINCT ON (provider_name) ` + snapshotColumns + `
		FROM evidence_snapshots
		WHERE vendor_id = $1 AND provider_name = ANY($2)
		ORDER BY provider_name, checked_at DESC`
	snaps, err := s.querySnapshots(ctx, query, vendorID, pq.Array(wanted))
	if err != nil {
		return nil, err
	}
	return models.OrderSnapshots(snaps), nil
}

func (s *PostgresStore) querySnapshots(ctx context.Context, query string, args ...any) ([]*models.EvidenceSnapshot, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence snapshots: %w", err)
	}
	defer rows.Close()

	snaps := make([]*models.EvidenceSnapshot, 0, len(providers.Order))
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evidence snapshots: %w", err)
	}
	return models.OrderSnapshots(snaps), nil
}

func scanRun(row rowScanner) (*models.ScreeningRun, error) {
	var (
		run                         models.ScreeningRun
		grade, recommendation       string
		breakdown, redFlags, action []byte
	)
	if err := row.Scan(
		&run.ID,
		&run.VendorID,
		&run.RunBy,
		&run.RunAt,
		&grade,
		&recommendation,
		&run.ScoreTotal,
		&breakdown,
		&redFlags,
		&action,
		&run.NextReviewMonths,
		&run.NextReviewAt,
	); err != nil {
		return nil, err
	}
	run.Grade = scoring.Grade(grade)
	run.Recommendation = scoring.Recommendation(recommendation)
	if err := json.Unmarshal(breakdown, &run.Breakdown); err != nil {
		return nil, fmt.Errorf("decode score breakdown: %w", err)
	}
	if err := json.Unmarshal(redFlags, &run.RedFlags); err != nil {
		return nil, fmt.Errorf("decode red flags: %w", err)
	}
	if err := json.Unmarshal(action, &run.RecommendedActions); err != nil {
		return nil, fmt.Errorf("decode recommended actions: %w", err)
	}
	if run.RedFlags == nil {
		run.RedFlags = []scoring.RedFlag{}
	}
	return &run, nil
}

func scanSnapshot(row rowScanner) (*models.EvidenceSnapshot, error) {
	var (
		snap             models.EvidenceSnapshot
		provider, status string
		message          sql.NullString
		normalized       []byte
	)
	if err := row.Scan(
		&snap.ID,
		&snap.RunID,
		&snap.VendorID,
		&provider,
		&status,
		&message,
		&normalized,
		&snap.RawHash,
		&snap.CheckedAt,
	); err != nil {
		return nil, err
	}
	snap.ProviderName = providers.Name(provider)
	snap.Status = providers.Status(status)
	snap.Message = message.String
	snap.Normalized = json.RawMessage(normalized)
	return &snap, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
