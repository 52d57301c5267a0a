package usecase

import "time"

// CheckVersion is the optimistic-concurrency gate. The client echoes
// back the updatedAt it last saw; any mismatch with the stored value
// means someone else committed in between and the caller must reload.
//
// A nil token skips the check entirely (force update). Quick partial
// edits, like flipping just the status, do not carry the full record.
// That skip is a known lost-update hazard for any field, kept on
// purpose for compatibility with the existing clients.
func CheckVersion(stored time.Time, clientToken *time.Time) error {
	if clientToken == nil {
		return nil
	}
	// Millisecond resolution: tokens round-trip through JSON, which
	// drops sub-millisecond precision.
	if stored.UnixMilli() != clientToken.UnixMilli() {
		return NewConflict()
	}
	return nil
}
