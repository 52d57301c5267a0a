package usecase

import (
	"strings"

	"github.com/brickmint/lead-intake/internal/entity"
)

// LeadCandidate carries a proposed lead, either a full record (create,
// import) or a partial one (update). Nil means "not supplied": the
// validator skips the field in partial mode and the diff engine keeps
// the stored value.
type LeadCandidate struct {
	FullName     *string `json:"fullName,omitempty"`
	Email        *string `json:"email,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	City         *string `json:"city,omitempty"`
	PropertyType *string `json:"propertyType,omitempty"`
	Bhk          *string `json:"bhk,omitempty"`
	Purpose      *string `json:"purpose,omitempty"`
	BudgetMin    *int    `json:"budgetMin,omitempty"`
	BudgetMax    *int    `json:"budgetMax,omitempty"`
	Timeline     *string `json:"timeline,omitempty"`
	Source       *string `json:"source,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	// Tags arrives as free text ("a, b, c") the way the intake form and
	// the CSV column supply it. TagList gives the normalized form.
	Tags *string `json:"tags,omitempty"`
}

// TagList splits the raw tags text on commas, trims each segment and
// drops empty ones. Order is preserved and duplicates are allowed.
func (c *LeadCandidate) TagList() []string {
	if c.Tags == nil {
		return nil
	}
	return SplitTags(*c.Tags)
}

func SplitTags(raw string) []string {
	out := []string{}
	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

// ApplyTo merges the supplied fields onto an existing lead. Nil fields
// leave the stored value untouched.
func (c *LeadCandidate) ApplyTo(l *entity.Lead) {
	if c.FullName != nil {
		l.FullName = *c.FullName
	}
	if c.Email != nil {
		l.Email = *c.Email
	}
	if c.Phone != nil {
		l.Phone = *c.Phone
	}
	if c.City != nil {
		l.City = *c.City
	}
	if c.PropertyType != nil {
		l.PropertyType = *c.PropertyType
	}
	if c.Bhk != nil {
		l.Bhk = *c.Bhk
	}
	if c.Purpose != nil {
		l.Purpose = *c.Purpose
	}
	if c.BudgetMin != nil {
		v := *c.BudgetMin
		l.BudgetMin = &v
	}
	if c.BudgetMax != nil {
		v := *c.BudgetMax
		l.BudgetMax = &v
	}
	if c.Timeline != nil {
		l.Timeline = *c.Timeline
	}
	if c.Source != nil {
		l.Source = *c.Source
	}
	if c.Status != nil {
		l.Status = *c.Status
	}
	if c.Notes != nil {
		l.Notes = *c.Notes
	}
	if c.Tags != nil {
		l.Tags = c.TagList()
	}
}

// RowError reports the validation failures of one import row. Row is
// 1-based, matching how spreadsheets number their lines.
type RowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportReport summarizes a bulk import: how many rows were committed
// and what was wrong with the rest.
type ImportReport struct {
	ImportedCount int        `json:"importedCount"`
	Errors        []RowError `json:"errors"`
}
