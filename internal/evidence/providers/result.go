package providers

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// CacheHitMessage is reported for cached results that carried no message.
const CacheHitMessage = "cache hit"

// Result wraps a normalized payload with its provenance.
type Result struct {
	Provider   Name
	Normalized Normalized
	RawHash    string
	CheckedAt  time.Time
	Status     Status
	Message    string
}

// HashJSON returns the hex SHA-256 of v's JSON encoding.
func HashJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b = []byte(err.Error())
	}
	return HashBytes(b)
}

// HashRaw hashes an upstream body in compact JSON form so formatting
// differences do not change the digest. Non-JSON bodies are hashed as-is.
func HashRaw(body []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err == nil {
		return HashBytes(buf.Bytes())
	}
	return HashBytes(body)
}

func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Disabled builds the result for a provider without credentials. The hash
// covers the normalized payload since there is no raw response.
func Disabled(n Normalized, message string) Result {
	return Result{
		Provider:   n.Provider(),
		Normalized: n,
		RawHash:    HashJSON(n),
		CheckedAt:  n.CheckedAt(),
		Status:     StatusDisabled,
		Message:    message,
	}
}

// Failed builds the fallback result for a failed lookup. The hash covers the
// error text.
func Failed(name Name, at time.Time, err error, message string) Result {
	return Result{
		Provider:   name,
		Normalized: Fallback(name, at),
		RawHash:    HashJSON(map[string]string{"error": err.Error()}),
		CheckedAt:  at,
		Status:     StatusError,
		Message:    message,
	}
}

// Parsed builds the result for a well-formed upstream response.
func Parsed(n Normalized, body []byte, status Status, message string) Result {
	return Result{
		Provider:   n.Provider(),
		Normalized: n,
		RawHash:    HashRaw(body),
		CheckedAt:  n.CheckedAt(),
		Status:     status,
		Message:    message,
	}
}
