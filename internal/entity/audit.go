package entity

import (
	"time"
)

// FieldChange is one side-by-side value pair inside an audit diff.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// AuditEntry records a single accepted mutation of a lead. Entries are
// immutable once written and are removed only by the cascade when the
// owning lead is deleted.
type AuditEntry struct {
	ID        string                 `json:"id"`
	LeadID    string                 `json:"leadId"`
	ChangedBy string                 `json:"changedBy"`
	ChangedAt time.Time              `json:"changedAt"`
	Diff      map[string]FieldChange `json:"diff"`
}
