// Package id mints identifiers for validation runs.
package id

import (
	"github.com/oklog/ulid/v2"
)

// New returns a ULID string. Run ids sort lexicographically by creation
// time, so journal listings and SQLite indexes stay chronological with no
// extra bookkeeping. The default entropy source is monotonic within a
// millisecond and safe for concurrent use.
func New() string {
	return ulid.Make().String()
}
