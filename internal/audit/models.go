package audit

import (
	"time"

	"vendorscreen/pkg/domain"
)

// Action names the audited operation.
type Action string

const (
	ActionScreeningRun     Action = "screening_run"
	ActionVendorRegistered Action = "vendor_registered"
)

// Entity types referenced by audit entries.
const (
	EntityScreeningRun = "ScreeningRun"
	EntityVendor       = "Vendor"
)

// Entry is an append-only audit record. Entries are never mutated or
// deleted once written.
type Entry struct {
	ID         domain.AuditEntryID `json:"id"`
	Actor      string              `json:"actor"`
	Action     Action              `json:"action"`
	EntityType string              `json:"entity_type"`
	EntityID   string              `json:"entity_id"`
	Metadata   map[string]string   `json:"metadata,omitempty"`
	At         time.Time           `json:"at"`
}
