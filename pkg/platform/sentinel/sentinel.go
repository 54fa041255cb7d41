// Package sentinel holds the infrastructure facts stores report. Services
// match them with errors.Is and translate them into domain errors; input
// validation uses pkg/domain-errors directly.
package sentinel

import "errors"

var (
	// ErrNotFound means no vendor, run or snapshot matched the lookup.
	ErrNotFound = errors.New("not found")
	// ErrConflict means a unique constraint rejected the write, such as a
	// second vendor with the same registration number.
	ErrConflict = errors.New("conflict")
)
