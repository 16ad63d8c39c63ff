package model

import (
	"time"

	"github.com/google/uuid"
)

// Address is a shipping address snapshot persisted with each order.
type Address struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"userId" db:"user_id"`
	Title      string    `json:"title" db:"title"`
	FirstName  string    `json:"firstName" db:"first_name"`
	LastName   string    `json:"lastName" db:"last_name"`
	Phone      string    `json:"phone" db:"phone"`
	Address    string    `json:"address" db:"address"`
	City       string    `json:"city" db:"city"`
	District   string    `json:"district" db:"district"`
	PostalCode string    `json:"postalCode" db:"postal_code"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// AddressRequest represents the shipping address payload submitted at
// checkout. Phone must be a Turkish mobile number, postal code exactly
// five digits.
type AddressRequest struct {
	Title      string `json:"title" validate:"required"`
	FirstName  string `json:"firstName" validate:"required,min=2"`
	LastName   string `json:"lastName" validate:"required,min=2"`
	Phone      string `json:"phone" validate:"required,trphone"`
	Address    string `json:"address" validate:"required,min=10"`
	City       string `json:"city" validate:"required,min=2"`
	District   string `json:"district" validate:"required,min=2"`
	PostalCode string `json:"postalCode" validate:"required,len=5,numeric"`
}
