package models

import (
	"time"

	"github.com/google/uuid"
)

// Car represents a rental vehicle in a provider's fleet
type Car struct {
	ID              uuid.UUID `json:"_id" db:"id"`
	ProviderID      uuid.UUID `json:"provider" db:"provider_id"`
	Brand           string    `json:"brand" db:"brand"`
	Model           string    `json:"model" db:"model"`
	Type            string    `json:"type" db:"type"`
	TopSpeed        int       `json:"topSpeed" db:"top_speed"`
	Year            int       `json:"year" db:"year"`
	FuelType        string    `json:"fuelType" db:"fuel_type"`
	SeatingCapacity int       `json:"seatingCapacity" db:"seating_capacity"`
	PricePerDay     float64   `json:"pricePerDay" db:"price_per_day"`
	CarDescription  string    `json:"carDescription,omitempty" db:"car_description"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}
