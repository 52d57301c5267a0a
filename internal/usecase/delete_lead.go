package usecase

import (
	"context"
)

type DeleteLeadUseCase struct {
	Repo LeadRepositoryInterface
}

func NewDeleteLeadUseCase(repo LeadRepositoryInterface) *DeleteLeadUseCase {
	return &DeleteLeadUseCase{Repo: repo}
}

// Execute removes a lead after the same NotFound/AccessDenied gate as
// update. The audit entries go with it via the foreign-key cascade,
// not as an application-level step.
func (uc *DeleteLeadUseCase) Execute(ctx context.Context, id, actorID string) error {
	stored, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return &TechnicalError{Code: "DB_ERROR", Message: "failed to load lead", Err: err}
	}
	if stored == nil {
		return NewNotFound()
	}
	if stored.OwnerID != actorID {
		return NewAccessDenied()
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		return &TechnicalError{Code: "DB_ERROR", Message: "failed to delete lead", Err: err}
	}
	return nil
}
