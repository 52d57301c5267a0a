package entity

import (
	"time"
)

// Lead is a prospective buyer: contact info plus the property
// requirement profile captured at intake.
type Lead struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone"`
	City         string    `json:"city"`
	PropertyType string    `json:"propertyType"`
	Bhk          string    `json:"bhk,omitempty"`
	Purpose      string    `json:"purpose"`
	BudgetMin    *int      `json:"budgetMin,omitempty"`
	BudgetMax    *int      `json:"budgetMax,omitempty"`
	Timeline     string    `json:"timeline"`
	Source       string    `json:"source"`
	Status       string    `json:"status"` // StatusDefault unless set
	Notes        string    `json:"notes,omitempty"`
	Tags         []string  `json:"tags"`
	OwnerID      string    `json:"ownerId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
