package usecase

import (
	"sort"

	"github.com/brickmint/lead-intake/internal/entity"
)

// ComputeDiff compares the supplied candidate fields against the stored
// lead and returns the minimal changed-field delta. Fields the
// candidate leaves nil are never compared. An empty result means the
// update was a no-op and no audit entry should be written.
func ComputeDiff(old *entity.Lead, c *LeadCandidate) map[string]entity.FieldChange {
	diff := map[string]entity.FieldChange{}

	diffString(diff, "fullName", old.FullName, c.FullName)
	diffString(diff, "email", old.Email, c.Email)
	diffString(diff, "phone", old.Phone, c.Phone)
	diffString(diff, "city", old.City, c.City)
	diffString(diff, "propertyType", old.PropertyType, c.PropertyType)
	diffString(diff, "bhk", old.Bhk, c.Bhk)
	diffString(diff, "purpose", old.Purpose, c.Purpose)
	diffString(diff, "timeline", old.Timeline, c.Timeline)
	diffString(diff, "source", old.Source, c.Source)
	diffString(diff, "status", old.Status, c.Status)
	diffString(diff, "notes", old.Notes, c.Notes)

	diffBudget(diff, "budgetMin", old.BudgetMin, c.BudgetMin)
	diffBudget(diff, "budgetMax", old.BudgetMax, c.BudgetMax)

	if c.Tags != nil {
		newTags := c.TagList()
		if !sameTagSet(old.Tags, newTags) {
			// Record the lists as supplied, not the sorted copies.
			diff["tags"] = entity.FieldChange{Old: old.Tags, New: newTags}
		}
	}

	return diff
}

func diffString(diff map[string]entity.FieldChange, field, old string, proposed *string) {
	if proposed == nil || *proposed == old {
		return
	}
	diff[field] = entity.FieldChange{Old: old, New: *proposed}
}

func diffBudget(diff map[string]entity.FieldChange, field string, old, proposed *int) {
	if proposed == nil {
		return
	}
	if old != nil && *old == *proposed {
		return
	}
	change := entity.FieldChange{New: *proposed}
	if old != nil {
		change.Old = *old
	}
	diff[field] = change
}

// sameTagSet compares tag lists order-insensitively. Duplicates still
// count, so {a,a,b} differs from {a,b,b}.
func sameTagSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
