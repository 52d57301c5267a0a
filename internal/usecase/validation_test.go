package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCandidate() LeadCandidate {
	return LeadCandidate{
		FullName:     str("Ravi Sharma"),
		Email:        str("ravi@example.com"),
		Phone:        str("9876543210"),
		City:         str("Chandigarh"),
		PropertyType: str("Apartment"),
		Bhk:          str("2"),
		Purpose:      str("Buy"),
		BudgetMin:    num(1000000),
		BudgetMax:    num(2000000),
		Timeline:     str("0-3m"),
		Source:       str("Website"),
	}
}

func fieldsOf(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidateCreateHappyPath(t *testing.T) {
	c := validCandidate()
	errs := ValidateLead(&c, ModeCreate)
	assert.Empty(t, errs)
}

func TestValidateCreateMissingRequiredFields(t *testing.T) {
	c := LeadCandidate{}
	errs := ValidateLead(&c, ModeCreate)

	fields := fieldsOf(errs)
	for _, want := range []string{"fullName", "phone", "city", "propertyType", "purpose", "timeline", "source"} {
		assert.Contains(t, fields, want)
	}
	// Optional fields never complain about being absent.
	assert.NotContains(t, fields, "email")
	assert.NotContains(t, fields, "notes")
	assert.NotContains(t, fields, "status")
}

func TestValidateFullNameBounds(t *testing.T) {
	c := validCandidate()

	c.FullName = str("R")
	errs := ValidateLead(&c, ModeCreate)
	assert.Equal(t, []string{"fullName"}, fieldsOf(errs))

	c.FullName = str(strings.Repeat("a", 81))
	errs = ValidateLead(&c, ModeCreate)
	assert.Equal(t, []string{"fullName"}, fieldsOf(errs))

	c.FullName = str(strings.Repeat("a", 80))
	assert.Empty(t, ValidateLead(&c, ModeCreate))
}

func TestValidateLengthsCountCharactersNotBytes(t *testing.T) {
	c := validCandidate()

	// 80 accented characters is 160 bytes but still within bounds.
	c.FullName = str(strings.Repeat("é", 80))
	assert.Empty(t, ValidateLead(&c, ModeCreate))

	c.FullName = str(strings.Repeat("é", 81))
	errs := ValidateLead(&c, ModeCreate)
	assert.Equal(t, []string{"fullName"}, fieldsOf(errs))

	c = validCandidate()
	c.Notes = str(strings.Repeat("ज", 1000))
	assert.Empty(t, ValidateLead(&c, ModeCreate))

	c.Notes = str(strings.Repeat("ज", 1001))
	errs = ValidateLead(&c, ModeCreate)
	assert.Equal(t, []string{"notes"}, fieldsOf(errs))
}

func TestValidatePhoneFormat(t *testing.T) {
	c := validCandidate()

	for _, bad := range []string{"abc", "12345", "98765432109876543", "98765-43210"} {
		c.Phone = str(bad)
		errs := ValidateLead(&c, ModeCreate)
		assert.Len(t, errs, 1)
		assert.Equal(t, "phone", errs[0].Field)
		assert.Equal(t, "Invalid phone format", errs[0].Message)
	}

	for _, good := range []string{"9876543210", "919876543210123"} {
		c.Phone = str(good)
		assert.Empty(t, ValidateLead(&c, ModeCreate))
	}
}

func TestValidateEmailEmptyIsNotProvided(t *testing.T) {
	c := validCandidate()

	c.Email = str("")
	assert.Empty(t, ValidateLead(&c, ModeCreate))

	c.Email = str("not-an-email")
	errs := ValidateLead(&c, ModeCreate)
	assert.Equal(t, []string{"email"}, fieldsOf(errs))
}

func TestValidateEnumMembership(t *testing.T) {
	c := validCandidate()
	c.City = str("Gotham")
	c.Source = str("Carrier pigeon")

	fields := fieldsOf(ValidateLead(&c, ModeImportRow))
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "source")
}

func TestValidateBudgetOrdering(t *testing.T) {
	c := validCandidate()

	c.BudgetMin = num(2000000)
	c.BudgetMax = num(1000000)
	errs := ValidateLead(&c, ModeCreate)
	assert.Len(t, errs, 1)
	assert.Equal(t, "budgetMax", errs[0].Field)
	assert.Contains(t, errs[0].Message, "greater than minimum")

	// Equal budgets violate the strict ordering too.
	c.BudgetMin = num(1000000)
	c.BudgetMax = num(1000000)
	assert.Equal(t, []string{"budgetMax"}, fieldsOf(ValidateLead(&c, ModeCreate)))

	// A single budget has nothing to be ordered against.
	c.BudgetMax = nil
	assert.Empty(t, ValidateLead(&c, ModeCreate))
}

func TestValidateBudgetsMustBePositive(t *testing.T) {
	c := validCandidate()
	c.BudgetMin = num(0)
	c.BudgetMax = num(-5)

	fields := fieldsOf(ValidateLead(&c, ModeCreate))
	assert.Contains(t, fields, "budgetMin")
	assert.Contains(t, fields, "budgetMax")
}

func TestValidateBhkRequiredForResidential(t *testing.T) {
	for _, pt := range []string{"Apartment", "Villa"} {
		c := validCandidate()
		c.PropertyType = str(pt)
		c.Bhk = nil
		errs := ValidateLead(&c, ModeCreate)
		assert.Equal(t, []string{"bhk"}, fieldsOf(errs), pt)

		c.Bhk = str("")
		assert.Equal(t, []string{"bhk"}, fieldsOf(ValidateLead(&c, ModeCreate)), pt)
	}

	for _, pt := range []string{"Plot", "Office", "Retail"} {
		c := validCandidate()
		c.PropertyType = str(pt)
		c.Bhk = nil
		assert.Empty(t, ValidateLead(&c, ModeCreate), pt)
	}
}

func TestValidateNotesLength(t *testing.T) {
	c := validCandidate()
	c.Notes = str(strings.Repeat("x", 1001))
	assert.Equal(t, []string{"notes"}, fieldsOf(ValidateLead(&c, ModeCreate)))

	c.Notes = str(strings.Repeat("x", 1000))
	assert.Empty(t, ValidateLead(&c, ModeCreate))
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	c := LeadCandidate{
		FullName:     str("X"),
		Phone:        str("abc"),
		City:         str("Gotham"),
		PropertyType: str("Apartment"),
		Purpose:      str("Buy"),
		Timeline:     str("0-3m"),
		Source:       str("Website"),
		BudgetMin:    num(500),
		BudgetMax:    num(100),
	}

	fields := fieldsOf(ValidateLead(&c, ModeImportRow))
	// Per-field and cross-field failures show up together, in one pass.
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "phone")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "budgetMax")
	assert.Contains(t, fields, "bhk")
}

func TestValidateUpdatePartialSkipsAbsentFields(t *testing.T) {
	// A status-only edit must not trip required-field checks.
	c := LeadCandidate{Status: str("Qualified")}
	assert.Empty(t, ValidateLead(&c, ModeUpdatePartial))

	c.Status = str("Bogus")
	assert.Equal(t, []string{"status"}, fieldsOf(ValidateLead(&c, ModeUpdatePartial)))
}

func TestValidateUpdatePartialStillChecksSuppliedFields(t *testing.T) {
	c := LeadCandidate{Phone: str("abc")}
	errs := ValidateLead(&c, ModeUpdatePartial)
	assert.Equal(t, []string{"phone"}, fieldsOf(errs))
}

func TestValidateUpdatePartialCrossFieldOnSuppliedBhk(t *testing.T) {
	// Switching to Apartment without carrying a bhk is an error even in
	// partial mode: the rule runs on the supplied payload.
	c := LeadCandidate{PropertyType: str("Apartment")}
	assert.Equal(t, []string{"bhk"}, fieldsOf(ValidateLead(&c, ModeUpdatePartial)))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"hot", "nri", "hot"}, SplitTags(" hot , nri ,, hot ,"))
	assert.Equal(t, []string{}, SplitTags("  ,  ,"))
	assert.Equal(t, []string{}, SplitTags(""))
}
