package usecase

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/queue"
)

type CreateLeadUseCase struct {
	Repo     LeadRepositoryInterface
	Producer QueueProducerInterface
}

func NewCreateLeadUseCase(repo LeadRepositoryInterface, producer QueueProducerInterface) *CreateLeadUseCase {
	return &CreateLeadUseCase{Repo: repo, Producer: producer}
}

// Execute validates a full candidate and inserts a new lead owned by
// the acting user. Single create writes no audit entry; the record's
// history starts with its first update.
func (uc *CreateLeadUseCase) Execute(ctx context.Context, actorID string, input LeadCandidate) (*entity.Lead, error) {
	if errs := ValidateLead(&input, ModeCreate); len(errs) > 0 {
		return nil, NewValidationFailed(errs)
	}

	now := time.Now().UTC()
	lead := &entity.Lead{
		ID:        uuid.NewString(),
		Status:    entity.StatusDefault,
		Tags:      []string{},
		OwnerID:   actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	input.ApplyTo(lead)

	err := uc.Repo.RunAtomic(ctx, func(tx LeadTx) error {
		return tx.Insert(ctx, lead)
	})
	if err != nil {
		return nil, &TechnicalError{Code: "DB_ERROR", Message: "failed to persist lead", Err: err}
	}

	uc.notify(ctx, lead, "api")

	return lead, nil
}

// notify is best effort: a broker outage must not fail the write that
// already committed.
func (uc *CreateLeadUseCase) notify(ctx context.Context, lead *entity.Lead, origin string) {
	if uc.Producer == nil {
		return
	}
	payload := queue.LeadCapturedPayload{
		LeadID:   lead.ID,
		OwnerID:  lead.OwnerID,
		FullName: lead.FullName,
		Phone:    lead.Phone,
		Email:    lead.Email,
		City:     lead.City,
		Origin:   origin,
	}
	if err := uc.Producer.PublishLeadCaptured(ctx, payload); err != nil {
		log.Printf("⚠️ failed to publish lead.captured for %s: %v", lead.ID, err)
	}
}
