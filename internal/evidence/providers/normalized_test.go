package providers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTristateJSON(t *testing.T) {
	cases := []struct {
		value Tristate
		wire  string
	}{
		{True, "true"},
		{False, "false"},
		{Unknown, `"unknown"`},
	}
	for _, tc := range cases {
		b, err := json.Marshal(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.wire, string(b))

		var decoded Tristate
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, tc.value, decoded)
	}

	var bad Tristate
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &bad))
}

func TestListingJSON(t *testing.T) {
	for _, l := range []Listing{Listed, Unlisted, ListingNotApplicable} {
		b, err := json.Marshal(l)
		require.NoError(t, err)
		var decoded Listing
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.Equal(t, l, decoded)
	}
	b, _ := json.Marshal(ListingNotApplicable)
	assert.Equal(t, `"not_applicable"`, string(b))
}

func TestDecodeNormalized(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("restores each variant", func(t *testing.T) {
		for _, n := range []Normalized{
			NTSNormalized{Status: BusinessClosed, TaxableType: "general", LastCheckedAt: at},
			OpenDARTNormalized{IsListed: Listed, CorpCode: "00126380", LastCheckedAt: at},
			G2BNormalized{HasSanction: True, SanctionValid: Unknown, LastCheckedAt: at},
		} {
			payload, err := json.Marshal(n)
			require.NoError(t, err)

			decoded, err := DecodeNormalized(n.Provider(), payload)
			require.NoError(t, err)
			assert.Equal(t, n, decoded)
		}
	})

	t.Run("decodes payloads written with plain booleans", func(t *testing.T) {
		decoded, err := DecodeNormalized(NameG2B, []byte(`{"has_sanction":false,"sanction_valid":"unknown","last_checked_at":"2025-01-02T03:04:05Z"}`))
		require.NoError(t, err)
		g2b := decoded.(G2BNormalized)
		assert.Equal(t, False, g2b.HasSanction)
		assert.Equal(t, Unknown, g2b.SanctionValid)
	})

	t.Run("rejects unknown provider", func(t *testing.T) {
		_, err := DecodeNormalized(Name("KRX"), []byte(`{}`))
		assert.Error(t, err)
	})
}

func TestFallback(t *testing.T) {
	at := time.Now()
	assert.Equal(t, NTSNormalized{Status: BusinessUnknown, LastCheckedAt: at}, Fallback(NameNTS, at))
	assert.Equal(t, OpenDARTNormalized{IsListed: ListingNotApplicable, LastCheckedAt: at}, Fallback(NameOpenDART, at))
	assert.Equal(t, G2BNormalized{HasSanction: Unknown, SanctionValid: Unknown, LastCheckedAt: at}, Fallback(NameG2B, at))
}

func TestHashing(t *testing.T) {
	t.Run("raw hash ignores formatting", func(t *testing.T) {
		assert.Equal(t, HashRaw([]byte(`{"a": 1, "b": [1, 2]}`)), HashRaw([]byte(`{"a":1,"b":[1,2]}`)))
	})

	t.Run("failed result hashes the error and uses fallback", func(t *testing.T) {
		at := time.Now()
		r := Failed(NameNTS, at, assert.AnError, "Failed to fetch NTS status")
		assert.Equal(t, StatusError, r.Status)
		assert.Equal(t, HashJSON(map[string]string{"error": assert.AnError.Error()}), r.RawHash)
		assert.Equal(t, Fallback(NameNTS, at), r.Normalized)
	})

	t.Run("disabled result hashes the normalized payload", func(t *testing.T) {
		n := NTSNormalized{Status: BusinessActive, TaxableType: "general", LastCheckedAt: time.Now()}
		r := Disabled(n, "missing key")
		assert.Equal(t, HashJSON(n), r.RawHash)
		assert.Len(t, r.RawHash, 64)
	})
}
