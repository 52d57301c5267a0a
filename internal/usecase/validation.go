package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/brickmint/lead-intake/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationMode selects how strict the validator is about missing
// fields. The checks themselves never change between modes, which is
// what keeps the cross-field rules from drifting apart.
type ValidationMode int

const (
	// ModeCreate requires every mandatory field.
	ModeCreate ValidationMode = iota
	// ModeUpdatePartial checks only the fields that were supplied;
	// everything else defers to the stored record.
	ModeUpdatePartial
	// ModeImportRow is ModeCreate for rows that came in as raw text
	// (enum membership is the real gate, there is no typed input).
	ModeImportRow
)

var phoneRegex = regexp.MustCompile(`^\d{10,15}$`)

// ValidateLead checks a candidate against the field rules and the
// cross-field rules, accumulating every violation instead of stopping
// at the first one. Bulk import needs the complete set per row.
func ValidateLead(c *LeadCandidate, mode ValidationMode) []ValidationError {
	var errs []ValidationError

	requireAll := mode == ModeCreate || mode == ModeImportRow

	if c.FullName == nil {
		if requireAll {
			errs = append(errs, ValidationError{"fullName", "is required"})
		}
	} else if n := utf8.RuneCountInString(strings.TrimSpace(*c.FullName)); n < 2 {
		errs = append(errs, ValidationError{"fullName", "must be at least 2 characters"})
	} else if n > 80 {
		errs = append(errs, ValidationError{"fullName", "must be at most 80 characters"})
	}

	if c.Phone == nil {
		if requireAll {
			errs = append(errs, ValidationError{"phone", "is required"})
		}
	} else if !phoneRegex.MatchString(*c.Phone) {
		errs = append(errs, ValidationError{"phone", "Invalid phone format"})
	}

	// Empty email means "not provided", never an error.
	if c.Email != nil && *c.Email != "" {
		if _, err := mail.ParseAddress(*c.Email); err != nil {
			errs = append(errs, ValidationError{"email", "Invalid email"})
		}
	}

	errs = append(errs, checkEnum(c.City, requireAll, "city", "Invalid city", entity.Cities)...)
	errs = append(errs, checkEnum(c.PropertyType, requireAll, "propertyType", "Invalid property type", entity.PropertyTypes)...)
	errs = append(errs, checkEnum(c.Purpose, requireAll, "purpose", "Invalid purpose", entity.Purposes)...)
	errs = append(errs, checkEnum(c.Timeline, requireAll, "timeline", "Invalid timeline", entity.Timelines)...)
	errs = append(errs, checkEnum(c.Source, requireAll, "source", "Invalid source", entity.Sources)...)

	// bhk and status are optional in every mode, but must be valid when present.
	if c.Bhk != nil && *c.Bhk != "" && !entity.IsValidEnum(*c.Bhk, entity.Bhks) {
		errs = append(errs, ValidationError{"bhk", "Invalid BHK"})
	}
	if c.Status != nil && *c.Status != "" && !entity.IsValidEnum(*c.Status, entity.Statuses) {
		errs = append(errs, ValidationError{"status", "Invalid status"})
	}

	if c.BudgetMin != nil && *c.BudgetMin <= 0 {
		errs = append(errs, ValidationError{"budgetMin", "must be a positive integer"})
	}
	if c.BudgetMax != nil && *c.BudgetMax <= 0 {
		errs = append(errs, ValidationError{"budgetMax", "must be a positive integer"})
	}

	if c.Notes != nil && utf8.RuneCountInString(*c.Notes) > 1000 {
		errs = append(errs, ValidationError{"notes", "must be at most 1000 characters"})
	}

	// Cross-field rules run after the per-field ones so both kinds can
	// show up in the same response.
	if c.BudgetMin != nil && c.BudgetMax != nil &&
		*c.BudgetMin > 0 && *c.BudgetMax > 0 && *c.BudgetMin >= *c.BudgetMax {
		errs = append(errs, ValidationError{"budgetMax", "Maximum budget must be greater than minimum budget"})
	}

	if c.PropertyType != nil && entity.BhkRequired(*c.PropertyType) && (c.Bhk == nil || *c.Bhk == "") {
		errs = append(errs, ValidationError{"bhk", "BHK is required for Apartment or Villa"})
	}

	return errs
}

func checkEnum(v *string, required bool, field, invalidMsg string, allowed []string) []ValidationError {
	if v == nil {
		if required {
			return []ValidationError{{field, "is required"}}
		}
		return nil
	}
	if *v == "" {
		// A blank cell on a required column reads better as "missing"
		// than as "not in the enum".
		if required {
			return []ValidationError{{field, "is required"}}
		}
		return []ValidationError{{field, invalidMsg}}
	}
	if !entity.IsValidEnum(*v, allowed) {
		return []ValidationError{{field, invalidMsg}}
	}
	return nil
}
