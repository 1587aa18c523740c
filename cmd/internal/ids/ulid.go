// Package ids provides request identifiers.
//
// Request ids are ULIDs: 26 Crockford base32 characters that sort by creation time,
// so log lines for one process can be ordered by id alone.
package ids

import "github.com/oklog/ulid/v2"

// NewRequestID returns a fresh ULID. Ids minted within the same millisecond
// still increase monotonically.
func NewRequestID() string {
	return ulid.Make().String()
}

// Valid reports whether s is a well-formed request id.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
