// Package domain holds the domain primitives shared across bounded contexts:
// typed identifiers and the business registration number.
//
// Construct values through the Parse functions at trust boundaries; direct
// conversion bypasses validation.
package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"

	dErrors "vendorscreen/pkg/domain-errors"
)

type (
	VendorID       uuid.UUID
	ScreeningRunID uuid.UUID
	SnapshotID     uuid.UUID
	AuditEntryID   uuid.UUID
)

func parseUUID(kind, s string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be nil")
	}
	return u, nil
}

func scanUUID(dst *uuid.UUID, src any) error {
	switch v := src.(type) {
	case string:
		u, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*dst = u
	case []byte:
		u, err := uuid.ParseBytes(v)
		if err != nil {
			return err
		}
		*dst = u
	default:
		return fmt.Errorf("unsupported uuid source %T", src)
	}
	return nil
}

func ParseVendorID(s string) (VendorID, error) {
	u, err := parseUUID("vendor id", s)
	return VendorID(u), err
}

func ParseScreeningRunID(s string) (ScreeningRunID, error) {
	u, err := parseUUID("screening run id", s)
	return ScreeningRunID(u), err
}

func ParseSnapshotID(s string) (SnapshotID, error) {
	u, err := parseUUID("snapshot id", s)
	return SnapshotID(u), err
}

func ParseAuditEntryID(s string) (AuditEntryID, error) {
	u, err := parseUUID("audit entry id", s)
	return AuditEntryID(u), err
}

func NewVendorID() VendorID             { return VendorID(uuid.New()) }
func NewScreeningRunID() ScreeningRunID { return ScreeningRunID(uuid.New()) }
func NewSnapshotID() SnapshotID         { return SnapshotID(uuid.New()) }
func NewAuditEntryID() AuditEntryID     { return AuditEntryID(uuid.New()) }

func (id VendorID) String() string { return uuid.UUID(id).String() }
func (id VendorID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id VendorID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *VendorID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id VendorID) Value() (driver.Value, error) { return id.String(), nil }
func (id *VendorID) Scan(src any) error          { return scanUUID((*uuid.UUID)(id), src) }

func (id ScreeningRunID) String() string { return uuid.UUID(id).String() }
func (id ScreeningRunID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id ScreeningRunID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *ScreeningRunID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id ScreeningRunID) Value() (driver.Value, error) { return id.String(), nil }
func (id *ScreeningRunID) Scan(src any) error          { return scanUUID((*uuid.UUID)(id), src) }

func (id SnapshotID) String() string { return uuid.UUID(id).String() }
func (id SnapshotID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *SnapshotID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id SnapshotID) Value() (driver.Value, error) { return id.String(), nil }
func (id *SnapshotID) Scan(src any) error          { return scanUUID((*uuid.UUID)(id), src) }

func (id AuditEntryID) String() string { return uuid.UUID(id).String() }
func (id AuditEntryID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id *AuditEntryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
func (id AuditEntryID) Value() (driver.Value, error) { return id.String(), nil }
func (id *AuditEntryID) Scan(src any) error          { return scanUUID((*uuid.UUID)(id), src) }
