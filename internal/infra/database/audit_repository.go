package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/brickmint/lead-intake/internal/entity"
)

type AuditRepository struct {
	DB *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{DB: db}
}

// ListByLeadID returns the lead's history oldest first, the order the
// detail page shows it in.
func (r *AuditRepository) ListByLeadID(ctx context.Context, leadID string) ([]entity.AuditEntry, error) {
	query := `
		SELECT id, buyer_id, changed_by, changed_at, diff
		FROM buyer_history
		WHERE buyer_id = $1
		ORDER BY changed_at ASC
	`

	rows, err := r.DB.QueryContext(ctx, query, leadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []entity.AuditEntry{}
	for rows.Next() {
		var e entity.AuditEntry
		var diff []byte
		if err := rows.Scan(&e.ID, &e.LeadID, &e.ChangedBy, &e.ChangedAt, &diff); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(diff, &e.Diff); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
