package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"vendorscreen/internal/platform/postgres"
	"vendorscreen/internal/vendors/models"
	"vendorscreen/pkg/domain"
	"vendorscreen/pkg/platform/sentinel"
	txcontext "vendorscreen/pkg/platform/tx"
)

// Postgres persists vendors in the vendors table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const vendorColumns = `id, vendor_name, biz_reg_no, vendor_type, expected_annual_spend, advance_payment,
	pii_access_level, public_procurement_related, notes, created_at`

func (s *Postgres) Create(ctx context.Context, v *models.Vendor) error {
	query := `INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := txcontext.Executor(ctx, s.db).ExecContext(ctx, query,
		v.ID,
		v.Name,
		v.BizRegNo.String(),
		string(v.Type),
		v.ExpectedAnnualSpend,
		v.AdvancePayment,
		string(v.PIIAccessLevel),
		v.PublicProcurementRelated,
		sql.NullString{String: v.Notes, Valid: v.Notes != ""},
		v.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, id domain.VendorID) (*models.Vendor, error) {
	return s.findOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id)
}

func (s *Postgres) FindByBizRegNo(ctx context.Context, bizRegNo domain.BizRegNo) (*models.Vendor, error) {
	return s.findOne(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE biz_reg_no = $1`, bizRegNo.String())
}

func (s *Postgres) findOne(ctx context.Context, query string, arg any) (*models.Vendor, error) {
	v, err := scanVendor(txcontext.Executor(ctx, s.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return v, nil
}

// List returns vendors newest first.
func (s *Postgres) List(ctx context.Context) ([]*models.Vendor, error) {
	rows, err := txcontext.Executor(ctx, s.db).QueryContext(ctx, `SELECT `+vendorColumns+` FROM vendors ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	vendors := make([]*models.Vendor, 0)
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vendors: %w", err)
	}
	return vendors, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVendor(row rowScanner) (*models.Vendor, error) {
	var (
		v                   models.Vendor
		bizRegNo, vendorTyp string
		pii                 string
		spend               decimal.NullDecimal
		notes               sql.NullString
	)
	if err := row.Scan(
		&v.ID,
		&v.Name,
		&bizRegNo,
		&vendorTyp,
		&spend,
		&v.AdvancePayment,
		&pii,
		&v.PublicProcurementRelated,
		&notes,
		&v.CreatedAt,
	); err != nil {
		return nil, err
	}
	v.BizRegNo = domain.BizRegNo(bizRegNo)
	v.Type = models.VendorType(vendorTyp)
	v.PIIAccessLevel = models.PIIAccessLevel(pii)
	v.ExpectedAnnualSpend = spend
	v.Notes = notes.String
	return &v, nil
}
