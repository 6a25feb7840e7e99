// Package uuid generates identifiers for records whose id the caller omitted.
package uuid

import (
	"strings"

	googleuuid "github.com/google/uuid"
)

// New returns a time-ordered UUIDv7 string. Ids generated later sort after
// ids generated earlier, which keeps them stable as list tie-breakers.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		return googleuuid.New().String()
	}
	return id.String()
}

// OrNew returns id trimmed, or a fresh UUIDv7 when id is blank.
func OrNew(id string) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return New()
}
