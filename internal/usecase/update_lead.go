package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brickmint/lead-intake/internal/entity"
)

type UpdateLeadUseCase struct {
	Repo LeadRepositoryInterface
}

func NewUpdateLeadUseCase(repo LeadRepositoryInterface) *UpdateLeadUseCase {
	return &UpdateLeadUseCase{Repo: repo}
}

// Execute runs one record mutation end to end: load, ownership check,
// version check, partial validation, diff, then record + audit entry in
// a single transaction. The ownership check comes first on purpose: a
// non-owner learns nothing about the record's contents, not even that
// their payload would have failed validation.
func (uc *UpdateLeadUseCase) Execute(
	ctx context.Context,
	id string,
	actorID string,
	input LeadCandidate,
	versionToken *time.Time,
) (*entity.Lead, error) {
	stored, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to load lead", Err: err}
	}
	if stored == nil {
		return nil, NewNotFound()
	}

	if stored.OwnerID != actorID {
		return nil, NewAccessDenied()
	}

	if err := CheckVersion(stored.UpdatedAt, versionToken); err != nil {
		return nil, err
	}

	if errs := ValidateLead(&input, ModeUpdatePartial); len(errs) > 0 {
		return nil, NewValidationFailed(errs)
	}

	updated := *stored
	input.ApplyTo(&updated)

	// A partial payload can look fine on its own yet break the budget
	// ordering once merged (raising budgetMin past a stored budgetMax).
	if updated.BudgetMin != nil && updated.BudgetMax != nil && *updated.BudgetMin >= *updated.BudgetMax {
		return nil, NewValidationFailed([]ValidationError{
			{"budgetMax", "Maximum budget must be greater than minimum budget"},
		})
	}

	diff := ComputeDiff(stored, &input)
	updated.UpdatedAt = time.Now().UTC()

	// The write is a compare-and-swap against the updated_at we loaded:
	// CheckVersion above only screens the client's token, it cannot see
	// a writer that commits between our load and our commit.
	err = uc.Repo.RunAtomic(ctx, func(tx LeadTx) error {
		if err := tx.Update(ctx, &updated, stored.UpdatedAt); err != nil {
			return err
		}
		// No-op updates leave no trace in the history.
		if len(diff) == 0 {
			return nil
		}
		return tx.InsertAuditEntry(ctx, &entity.AuditEntry{
			ID:        uuid.NewString(),
			LeadID:    updated.ID,
			ChangedBy: actorID,
			ChangedAt: updated.UpdatedAt,
			Diff:      diff,
		})
	})
	if err != nil {
		if _, ok := AsDomainError(err); ok {
			return nil, err
		}
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to persist update", Err: err}
	}

	return &updated, nil
}
