package models

import "time"

// Customer is the normalized projection of an upstream commerce API customer.
// CreatedAt drives the new-vs-returning classification.
type Customer struct {
	ID        string    `json:"id"`
	Email     string    `json:"email,omitempty"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
