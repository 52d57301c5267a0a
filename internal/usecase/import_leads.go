package usecase

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/queue"
)

// MaxImportRows caps one import batch. Bigger files are rejected whole
// before any row is looked at.
const MaxImportRows = 200

type ImportLeadsUseCase struct {
	Repo     LeadRepositoryInterface
	Producer QueueProducerInterface
}

func NewImportLeadsUseCase(repo LeadRepositoryInterface, producer QueueProducerInterface) *ImportLeadsUseCase {
	return &ImportLeadsUseCase{Repo: repo, Producer: producer}
}

// Execute validates every row, then commits all valid ones as new leads
// in a single transaction, each with a synthesized creation audit entry
// mapping every supplied field to {old: nil, new: value}. Rows that
// fail are reported with their 1-based index and never retried. Import
// only ever creates records; it never touches an existing one, even
// when a row duplicates a stored phone or email.
func (uc *ImportLeadsUseCase) Execute(ctx context.Context, rows []map[string]string, actorID string) (*ImportReport, error) {
	if len(rows) > MaxImportRows {
		return nil, NewBatchTooLarge()
	}

	report := &ImportReport{Errors: []RowError{}}

	type pending struct {
		lead *entity.Lead
		diff map[string]entity.FieldChange
	}
	var accepted []pending

	now := time.Now().UTC()
	for i, row := range rows {
		candidate := parseImportRow(row)
		errs := ValidateLead(candidate, ModeImportRow)
		if len(errs) > 0 {
			messages := make([]string, 0, len(errs))
			for _, e := range errs {
				messages = append(messages, e.Error())
			}
			report.Errors = append(report.Errors, RowError{Row: i + 1, Errors: messages})
			continue
		}

		lead := &entity.Lead{
			ID:        uuid.NewString(),
			Status:    entity.StatusDefault,
			Tags:      []string{},
			OwnerID:   actorID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		candidate.ApplyTo(lead)

		accepted = append(accepted, pending{lead: lead, diff: creationDiff(candidate)})
	}

	if len(accepted) == 0 {
		// The report still travels with the error so callers can show
		// what was wrong with every row.
		return report, NewNoValidRows()
	}

	err := uc.Repo.RunAtomic(ctx, func(tx LeadTx) error {
		for _, p := range accepted {
			if err := tx.Insert(ctx, p.lead); err != nil {
				return err
			}
			if err := tx.InsertAuditEntry(ctx, &entity.AuditEntry{
				ID:        uuid.NewString(),
				LeadID:    p.lead.ID,
				ChangedBy: actorID,
				ChangedAt: now,
				Diff:      p.diff,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to persist import batch", Err: err}
	}

	if uc.Producer != nil {
		for _, p := range accepted {
			if err := uc.Producer.PublishLeadCaptured(ctx, queue.LeadCapturedPayload{
				LeadID:   p.lead.ID,
				OwnerID:  p.lead.OwnerID,
				FullName: p.lead.FullName,
				Phone:    p.lead.Phone,
				Email:    p.lead.Email,
				City:     p.lead.City,
				Origin:   "import",
			}); err != nil {
				log.Printf("⚠️ failed to publish lead.captured for %s: %v", p.lead.ID, err)
			}
		}
	}

	report.ImportedCount = len(accepted)
	return report, nil
}

// parseImportRow lifts one tokenized CSV row into a candidate. Blank
// cells become nil so the validator can tell "missing" from "present
// but wrong". Budgets are the only typed columns; anything that does
// not parse as a number is left for the validator to reject.
func parseImportRow(row map[string]string) *LeadCandidate {
	c := &LeadCandidate{
		FullName:     cell(row, "fullName"),
		Email:        cell(row, "email"),
		Phone:        cell(row, "phone"),
		City:         cell(row, "city"),
		PropertyType: cell(row, "propertyType"),
		Bhk:          cell(row, "bhk"),
		Purpose:      cell(row, "purpose"),
		Timeline:     cell(row, "timeline"),
		Source:       cell(row, "source"),
		Status:       cell(row, "status"),
		Notes:        cell(row, "notes"),
		Tags:         cell(row, "tags"),
	}
	c.BudgetMin = budgetCell(row, "budgetMin")
	c.BudgetMax = budgetCell(row, "budgetMax")
	return c
}

func cell(row map[string]string, key string) *string {
	v := strings.TrimSpace(row[key])
	if v == "" {
		return nil
	}
	return &v
}

func budgetCell(row map[string]string, key string) *int {
	raw := strings.TrimSpace(row[key])
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		// Force a validation error on this field.
		invalid := -1
		return &invalid
	}
	return &n
}

// creationDiff maps every supplied field to {old: nil, new: value} so
// an imported lead's history starts with how it arrived.
func creationDiff(c *LeadCandidate) map[string]entity.FieldChange {
	diff := map[string]entity.FieldChange{}
	if c.FullName != nil {
		diff["fullName"] = entity.FieldChange{New: *c.FullName}
	}
	if c.Email != nil {
		diff["email"] = entity.FieldChange{New: *c.Email}
	}
	if c.Phone != nil {
		diff["phone"] = entity.FieldChange{New: *c.Phone}
	}
	if c.City != nil {
		diff["city"] = entity.FieldChange{New: *c.City}
	}
	if c.PropertyType != nil {
		diff["propertyType"] = entity.FieldChange{New: *c.PropertyType}
	}
	if c.Bhk != nil {
		diff["bhk"] = entity.FieldChange{New: *c.Bhk}
	}
	if c.Purpose != nil {
		diff["purpose"] = entity.FieldChange{New: *c.Purpose}
	}
	if c.BudgetMin != nil {
		diff["budgetMin"] = entity.FieldChange{New: *c.BudgetMin}
	}
	if c.BudgetMax != nil {
		diff["budgetMax"] = entity.FieldChange{New: *c.BudgetMax}
	}
	if c.Timeline != nil {
		diff["timeline"] = entity.FieldChange{New: *c.Timeline}
	}
	if c.Source != nil {
		diff["source"] = entity.FieldChange{New: *c.Source}
	}
	if c.Status != nil {
		diff["status"] = entity.FieldChange{New: *c.Status}
	}
	if c.Notes != nil {
		diff["notes"] = entity.FieldChange{New: *c.Notes}
	}
	if c.Tags != nil {
		diff["tags"] = entity.FieldChange{New: c.TagList()}
	}
	return diff
}
