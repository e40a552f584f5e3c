package domain

import "time"

// RegistryEntry is the persisted integrity baseline for one component
// path. Entries are created on first validation and only ever replaced
// through an explicit registry update.
type RegistryEntry struct {
	Path            string    `json:"path"`
	Hash            string    `json:"hash"`
	Version         string    `json:"version,omitempty"`
	LastValidatedAt time.Time `json:"last_validated_at"`
}
