package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vendorscreen/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseVendorID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseVendorID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseVendorID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseVendorID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, VendorID(validUUID), id)
	})
}

func TestParseID_HostileInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"SQL injection attempt", "'; DROP TABLE vendors;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScreeningRunID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errVendor := ParseVendorID(validUUID)
		_, errRun := ParseScreeningRunID(validUUID)
		_, errSnapshot := ParseSnapshotID(validUUID)
		_, errAudit := ParseAuditEntryID(validUUID)

		require.NoError(t, errVendor)
		require.NoError(t, errRun)
		require.NoError(t, errSnapshot)
		require.NoError(t, errAudit)
	})

	for _, input := range []string{"", "invalid", uuid.Nil.String()} {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errVendor := ParseVendorID(input)
			_, errRun := ParseScreeningRunID(input)
			_, errSnapshot := ParseSnapshotID(input)
			_, errAudit := ParseAuditEntryID(input)

			require.Error(t, errVendor)
			require.Error(t, errRun)
			require.Error(t, errSnapshot)
			require.Error(t, errAudit)
		})
	}
}

func TestIDEncoding(t *testing.T) {
	id := NewVendorID()

	t.Run("json round trip uses string form", func(t *testing.T) {
		payload, err := json.Marshal(map[string]VendorID{"vendor_id": id})
		require.NoError(t, err)
		assert.JSONEq(t, `{"vendor_id":"`+id.String()+`"}`, string(payload))

		var decoded map[string]VendorID
		require.NoError(t, json.Unmarshal(payload, &decoded))
		assert.Equal(t, id, decoded["vendor_id"])
	})

	t.Run("sql scan accepts string and bytes", func(t *testing.T) {
		var fromString, fromBytes VendorID
		require.NoError(t, fromString.Scan(id.String()))
		require.NoError(t, fromBytes.Scan([]byte(id.String())))
		assert.Equal(t, id, fromString)
		assert.Equal(t, id, fromBytes)
		assert.Error(t, fromString.Scan(42))
	})
}

func TestParseBizRegNo(t *testing.T) {
	t.Run("accepts ten digits and trims", func(t *testing.T) {
		b, err := ParseBizRegNo(" 1234567890 ")
		require.NoError(t, err)
		assert.Equal(t, BizRegNo("1234567890"), b)
	})

	for _, input := range []string{"", "123456789", "12345678901", "123-45-6789", "12345abcde", "١٢٣٤٥٦٧٨٩٠"} {
		t.Run("rejects "+input, func(t *testing.T) {
			_, err := ParseBizRegNo(input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}
