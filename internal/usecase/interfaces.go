package usecase

import (
	"context"
	"time"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/queue"
)

// LeadTx is the transactional scope handed to RunAtomic. Everything
// done through it commits together or not at all.
type LeadTx interface {
	Insert(ctx context.Context, lead *entity.Lead) error
	// Update writes the lead only if its stored updated_at still equals
	// expected, and reports a conflict otherwise. The compare-and-swap
	// is what keeps two interleaved mutations from both committing.
	Update(ctx context.Context, lead *entity.Lead, expected time.Time) error
	InsertAuditEntry(ctx context.Context, e *entity.AuditEntry) error
}

type LeadRepositoryInterface interface {
	// FindByID returns (nil, nil) when no lead exists with that id.
	FindByID(ctx context.Context, id string) (*entity.Lead, error)
	Delete(ctx context.Context, id string) error
	RunAtomic(ctx context.Context, fn func(tx LeadTx) error) error
}

type AuditRepositoryInterface interface {
	// ListByLeadID returns entries ascending by change time.
	ListByLeadID(ctx context.Context, leadID string) ([]entity.AuditEntry, error)
}

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
