package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brickmint/lead-intake/internal/entity"
)

func storedLead() *entity.Lead {
	return &entity.Lead{
		ID:           "lead-1",
		FullName:     "Ravi Sharma",
		Email:        "ravi@example.com",
		Phone:        "9876543210",
		City:         "Chandigarh",
		PropertyType: "Apartment",
		Bhk:          "2",
		Purpose:      "Buy",
		BudgetMin:    num(1000000),
		BudgetMax:    num(2000000),
		Timeline:     "0-3m",
		Source:       "Website",
		Status:       "New",
		Tags:         []string{"hot", "nri"},
		OwnerID:      "user-demo-1",
		UpdatedAt:    time.Now(),
	}
}

func TestComputeDiffEmptyProposal(t *testing.T) {
	diff := ComputeDiff(storedLead(), &LeadCandidate{})
	assert.Empty(t, diff)
}

func TestComputeDiffNoOpProposal(t *testing.T) {
	c := LeadCandidate{
		FullName: str("Ravi Sharma"),
		Status:   str("New"),
		Phone:    str("9876543210"),
	}
	assert.Empty(t, ComputeDiff(storedLead(), &c))
}

func TestComputeDiffScalarChange(t *testing.T) {
	c := LeadCandidate{Status: str("Qualified")}

	diff := ComputeDiff(storedLead(), &c)
	assert.Len(t, diff, 1)
	assert.Equal(t, entity.FieldChange{Old: "New", New: "Qualified"}, diff["status"])
}

func TestComputeDiffBudgetChange(t *testing.T) {
	old := storedLead()
	old.BudgetMax = nil

	c := LeadCandidate{BudgetMax: num(3000000)}
	diff := ComputeDiff(old, &c)

	// No stored value: old side stays nil.
	assert.Equal(t, entity.FieldChange{Old: nil, New: 3000000}, diff["budgetMax"])

	c.BudgetMax = num(2000000)
	diff = ComputeDiff(storedLead(), &c)
	assert.Empty(t, diff)
}

func TestComputeDiffTagsOrderInsensitive(t *testing.T) {
	// A reordering of the same tags is not a change.
	c := LeadCandidate{Tags: str("nri, hot")}
	assert.Empty(t, ComputeDiff(storedLead(), &c))

	// A genuinely new tag is, and the recorded lists keep their
	// original order.
	c.Tags = str("hot, nri, urgent")
	diff := ComputeDiff(storedLead(), &c)
	assert.Equal(t, entity.FieldChange{
		Old: []string{"hot", "nri"},
		New: []string{"hot", "nri", "urgent"},
	}, diff["tags"])
}

func TestComputeDiffTagsDuplicatesCount(t *testing.T) {
	old := storedLead()
	old.Tags = []string{"a", "a", "b"}

	c := LeadCandidate{Tags: str("a, b, b")}
	diff := ComputeDiff(old, &c)
	assert.Contains(t, diff, "tags")
}
