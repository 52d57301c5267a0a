package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/brickmint/lead-intake/internal/entity"
	"github.com/brickmint/lead-intake/internal/infra/queue"
)

// MockLeadTx
type MockLeadTx struct {
	mock.Mock
}

func (m *MockLeadTx) Insert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadTx) Update(ctx context.Context, lead *entity.Lead, expected time.Time) error {
	args := m.Called(ctx, lead, expected)
	return args.Error(0)
}

func (m *MockLeadTx) InsertAuditEntry(ctx context.Context, e *entity.AuditEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

// MockLeadRepository runs RunAtomic callbacks against Tx so tests can
// assert exactly what would have been committed.
type MockLeadRepository struct {
	mock.Mock
	Tx *MockLeadTx
}

func NewMockLeadRepository() *MockLeadRepository {
	return &MockLeadRepository{Tx: new(MockLeadTx)}
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) RunAtomic(ctx context.Context, fn func(tx LeadTx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// helpers

func str(s string) *string { return &s }

func num(n int) *int { return &n }
