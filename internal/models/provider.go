package models

import (
	"time"

	"github.com/google/uuid"
)

// RentalCarProvider represents a rental car provider tenant.
// Each provider record is linked to exactly one provider-role user.
type RentalCarProvider struct {
	ID         uuid.UUID `json:"_id" db:"id"`
	UserID     uuid.UUID `json:"user" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Address    string    `json:"address" db:"address"`
	District   string    `json:"district" db:"district"`
	Province   string    `json:"province" db:"province"`
	PostalCode string    `json:"postalcode" db:"postal_code"`
	Tel        string    `json:"tel" db:"tel"`
	Region     string    `json:"region" db:"region"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
