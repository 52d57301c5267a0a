package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/brickmint/lead-intake/internal/entity"
)

func importRow(fullName, phone string) map[string]string {
	return map[string]string{
		"fullName":     fullName,
		"email":        "",
		"phone":        phone,
		"city":         "Mohali",
		"propertyType": "Plot",
		"bhk":          "",
		"purpose":      "Buy",
		"budgetMin":    "500000",
		"budgetMax":    "900000",
		"timeline":     "3-6m",
		"source":       "Referral",
		"notes":        "",
		"tags":         "walk-in, urgent",
		"status":       "",
	}
}

func TestImportBatchTooLarge(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	uc := NewImportLeadsUseCase(repo, nil)

	rows := make([]map[string]string, MaxImportRows+1)
	for i := range rows {
		rows[i] = importRow(fmt.Sprintf("Lead %d", i), "9876543210")
	}

	report, err := uc.Execute(ctx, rows, "user-demo-1")

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeBatchTooLarge, de.Code)
	assert.Nil(t, report)
	// Hard rejection: zero writes, zero row processing.
	repo.AssertNotCalled(t, "RunAtomic", mock.Anything)
}

func TestImportPartialFailure(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	repo.On("RunAtomic", ctx).Return(nil)
	repo.Tx.On("Insert", ctx, mock.Anything).Return(nil)
	repo.Tx.On("InsertAuditEntry", ctx, mock.Anything).Return(nil)

	uc := NewImportLeadsUseCase(repo, nil)

	rows := []map[string]string{
		importRow("Asha Verma", "9876543210"),
		importRow("Broken Row", "abc"),
		importRow("Karan Singh", "9988776655"),
	}

	report, err := uc.Execute(ctx, rows, "user-demo-1")

	assert.NoError(t, err)
	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, []RowError{
		{Row: 2, Errors: []string{"phone: Invalid phone format"}},
	}, report.Errors)

	repo.Tx.AssertNumberOfCalls(t, "Insert", 2)
	repo.Tx.AssertNumberOfCalls(t, "InsertAuditEntry", 2)
}

func TestImportNoValidRowsKeepsReport(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	uc := NewImportLeadsUseCase(repo, nil)

	rows := []map[string]string{
		importRow("A", "abc"),
		importRow("B", "xyz"),
	}

	report, err := uc.Execute(ctx, rows, "user-demo-1")

	de, ok := AsDomainError(err)
	assert.True(t, ok)
	assert.Equal(t, CodeNoValidRows, de.Code)
	// Diagnostics still come back for every failed row.
	assert.Len(t, report.Errors, 2)
	assert.Equal(t, 2, report.Errors[1].Row)
	repo.AssertNotCalled(t, "RunAtomic", mock.Anything)
}

func TestImportDefaultsStatusAndOwnership(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	repo.On("RunAtomic", ctx).Return(nil)

	var inserted []*entity.Lead
	repo.Tx.On("Insert", ctx, mock.Anything).Run(func(args mock.Arguments) {
		inserted = append(inserted, args.Get(1).(*entity.Lead))
	}).Return(nil)
	repo.Tx.On("InsertAuditEntry", ctx, mock.Anything).Return(nil)

	uc := NewImportLeadsUseCase(repo, nil)

	row := importRow("Asha Verma", "9876543210")
	withStatus := importRow("Karan Singh", "9988776655")
	withStatus["status"] = "Contacted"

	report, err := uc.Execute(ctx, []map[string]string{row, withStatus}, "agent-7")

	assert.NoError(t, err)
	assert.Equal(t, 2, report.ImportedCount)
	assert.Equal(t, "New", inserted[0].Status)
	assert.Equal(t, "Contacted", inserted[1].Status)
	assert.Equal(t, "agent-7", inserted[0].OwnerID)
	assert.Equal(t, []string{"walk-in", "urgent"}, inserted[0].Tags)
	assert.NotEmpty(t, inserted[0].ID)
	assert.NotEqual(t, inserted[0].ID, inserted[1].ID)
}

func TestImportCreationAuditDiff(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	repo.On("RunAtomic", ctx).Return(nil)
	repo.Tx.On("Insert", ctx, mock.Anything).Return(nil)

	var entries []*entity.AuditEntry
	repo.Tx.On("InsertAuditEntry", ctx, mock.Anything).Run(func(args mock.Arguments) {
		entries = append(entries, args.Get(1).(*entity.AuditEntry))
	}).Return(nil)

	uc := NewImportLeadsUseCase(repo, nil)

	_, err := uc.Execute(ctx, []map[string]string{importRow("Asha Verma", "9876543210")}, "agent-7")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "agent-7", e.ChangedBy)

	// Every supplied field maps to {old: nil, new: value}; blank cells
	// were never supplied.
	assert.Equal(t, entity.FieldChange{Old: nil, New: "Asha Verma"}, e.Diff["fullName"])
	assert.Equal(t, entity.FieldChange{Old: nil, New: 500000}, e.Diff["budgetMin"])
	assert.Equal(t, entity.FieldChange{Old: nil, New: []string{"walk-in", "urgent"}}, e.Diff["tags"])
	assert.NotContains(t, e.Diff, "email")
	assert.NotContains(t, e.Diff, "status")
}

func TestImportPublishesCapturedEvents(t *testing.T) {
	ctx := context.Background()
	repo := NewMockLeadRepository()
	repo.On("RunAtomic", ctx).Return(nil)
	repo.Tx.On("Insert", ctx, mock.Anything).Return(nil)
	repo.Tx.On("InsertAuditEntry", ctx, mock.Anything).Return(nil)

	producer := new(MockQueueProducer)
	producer.On("PublishLeadCaptured", ctx, mock.Anything).Return(nil)

	uc := NewImportLeadsUseCase(repo, producer)

	_, err := uc.Execute(ctx, []map[string]string{
		importRow("Asha Verma", "9876543210"),
		importRow("Karan Singh", "9988776655"),
	}, "agent-7")

	assert.NoError(t, err)
	producer.AssertNumberOfCalls(t, "PublishLeadCaptured", 2)
}
