package domain

import "time"

// Enquiry is a lead submitted through the contact form. Message is optional.
// The max lengths follow the enquiries table columns.
type Enquiry struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name" validate:"required,max=255"`
	Email     string    `json:"email" validate:"required,max=320,email"`
	Phone     string    `json:"phone" validate:"required,max=64"`
	City      string    `json:"city" validate:"required,max=255"`
	Service   string    `json:"service" validate:"required,max=255"`
	Message   string    `json:"message" validate:"max=5000"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// FieldErrors maps a JSON field name to a human readable problem.
type FieldErrors map[string]string
