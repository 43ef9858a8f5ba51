package models

import "time"

// Lead is a prospect captured from the calculator funnel.
type Lead struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Company      string    `json:"company"`
	Phone        string    `json:"phone,omitempty"`
	Country      string    `json:"country,omitempty"`
	PostalCode   string    `json:"postalCode,omitempty"`
	LeadSource   string    `json:"leadSource,omitempty"`
	PlanInterest PlanID    `json:"planInterest,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
