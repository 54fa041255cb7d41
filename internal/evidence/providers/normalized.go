package providers

import (
	"encoding/json"
	"fmt"
	"time"
)

// Normalized is the closed set of provider payload shapes. Only NTSNormalized,
// OpenDARTNormalized and G2BNormalized implement it.
type Normalized interface {
	Provider() Name
	CheckedAt() time.Time
	isNormalized()
}

// BusinessStatus is the NTS business registration status.
type BusinessStatus string

const (
	BusinessActive    BusinessStatus = "active"
	BusinessClosed    BusinessStatus = "closed"
	BusinessSuspended BusinessStatus = "suspended"
	BusinessUnknown   BusinessStatus = "unknown"
)

// Tristate is a boolean that may also be unknown. It encodes as true, false
// or the string "unknown".
type Tristate int

const (
	Unknown Tristate = iota
	True
	False
)

// TristateOf lifts a plain bool.
func TristateOf(b bool) Tristate {
	if b {
		return True
	}
	return False
}

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

func (t Tristate) MarshalJSON() ([]byte, error) {
	switch t {
	case True:
		return []byte("true"), nil
	case False:
		return []byte("false"), nil
	default:
		return []byte(`"unknown"`), nil
	}
}

func (t *Tristate) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true":
		*t = True
	case "false":
		*t = False
	case `"unknown"`, "null":
		*t = Unknown
	default:
		return fmt.Errorf("invalid tristate %s", b)
	}
	return nil
}

// Listing is the OpenDART listing status. It encodes as true, false or the
// string "not_applicable".
type Listing int

const (
	ListingNotApplicable Listing = iota
	Listed
	Unlisted
)

func (l Listing) String() string {
	switch l {
	case Listed:
		return "true"
	case Unlisted:
		return "false"
	default:
		return "not_applicable"
	}
}

func (l Listing) MarshalJSON() ([]byte, error) {
	switch l {
	case Listed:
		return []byte("true"), nil
	case Unlisted:
		return []byte("false"), nil
	default:
		return []byte(`"not_applicable"`), nil
	}
}

func (l *Listing) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case "true":
		*l = Listed
	case "false":
		*l = Unlisted
	case `"not_applicable"`, "null":
		*l = ListingNotApplicable
	default:
		return fmt.Errorf("invalid listing %s", b)
	}
	return nil
}

type NTSNormalized struct {
	Status        BusinessStatus `json:"status"`
	TaxableType   string         `json:"taxable_type,omitempty"`
	LastCheckedAt time.Time      `json:"last_checked_at"`
}

type OpenDARTNormalized struct {
	IsListed           Listing   `json:"is_listed"`
	CorpCode           string    `json:"corp_code,omitempty"`
	LastDisclosureDate string    `json:"last_disclosure_date,omitempty"`
	LastCheckedAt      time.Time `json:"last_checked_at"`
}

type G2BNormalized struct {
	HasSanction   Tristate  `json:"has_sanction"`
	SanctionValid Tristate  `json:"sanction_valid"`
	LastCheckedAt time.Time `json:"last_checked_at"`
}

func (NTSNormalized) Provider() Name      { return NameNTS }
func (OpenDARTNormalized) Provider() Name { return NameOpenDART }
func (G2BNormalized) Provider() Name      { return NameG2B }

func (n NTSNormalized) CheckedAt() time.Time      { return n.LastCheckedAt }
func (n OpenDARTNormalized) CheckedAt() time.Time { return n.LastCheckedAt }
func (n G2BNormalized) CheckedAt() time.Time      { return n.LastCheckedAt }

func (NTSNormalized) isNormalized()      {}
func (OpenDARTNormalized) isNormalized() {}
func (G2BNormalized) isNormalized()      {}

// Fallback returns the safe payload a provider reports when no data is available.
func Fallback(name Name, at time.Time) Normalized {
	switch name {
	case NameNTS:
		return NTSNormalized{Status: BusinessUnknown, LastCheckedAt: at}
	case NameOpenDART:
		return OpenDARTNormalized{IsListed: ListingNotApplicable, LastCheckedAt: at}
	default:
		return G2BNormalized{HasSanction: Unknown, SanctionValid: Unknown, LastCheckedAt: at}
	}
}

// DecodeNormalized restores a stored payload into the variant for name.
func DecodeNormalized(name Name, data []byte) (Normalized, error) {
	switch name {
	case NameNTS:
		var n NTSNormalized
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", name, err)
		}
		return n, nil
	case NameOpenDART:
		var n OpenDARTNormalized
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", name, err)
		}
		return n, nil
	case NameG2B:
		var n G2BNormalized
		if err := json.Unmarshal(data, &n); err != nil {
			return nil, fmt.Errorf("decode %s payload: %w", name, err)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
