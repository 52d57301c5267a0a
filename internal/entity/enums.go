package entity

// Fixed vocabularies for lead fields. These are the single source of
// truth: the validator, the CSV import and the export all read from here.
var (
	Cities        = []string{"Chandigarh", "Mohali", "Zirakpur", "Panchkula", "Other"}
	PropertyTypes = []string{"Apartment", "Villa", "Plot", "Office", "Retail"}
	Bhks          = []string{"1", "2", "3", "4", "Studio"}
	Purposes      = []string{"Buy", "Rent"}
	Timelines     = []string{"0-3m", "3-6m", ">6m", "Exploring"}
	Sources       = []string{"Website", "Referral", "Walk-in", "Call", "Other"}
	Statuses      = []string{"New", "Qualified", "Contacted", "Visited", "Negotiation", "Converted", "Dropped"}
)

const StatusDefault = "New"

// BhkRequired reports whether the property type demands a BHK value.
func BhkRequired(propertyType string) bool {
	return propertyType == "Apartment" || propertyType == "Villa"
}

func IsValidEnum(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
