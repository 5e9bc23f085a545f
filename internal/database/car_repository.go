package database

import (
	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// CarRepository handles database operations for the cars table
type CarRepository struct {
	db DB
}

// NewCarRepository creates a new CarRepository
func NewCarRepository(db DB) *CarRepository {
	return &CarRepository{db: db}
}

const carColumns = `id, provider_id, brand, model, type, top_speed, year, fuel_type, seating_capacity, price_per_day, car_description, created_at`

// GetByID retrieves a car by ID
func (r *CarRepository) GetByID(carID uuid.UUID) (*models.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = $1`

	car := &models.Car{}
	err := r.db.QueryRow(query, carID).Scan(
		&car.ID, &car.ProviderID, &car.Brand, &car.Model, &car.Type,
		&car.TopSpeed, &car.Year, &car.FuelType, &car.SeatingCapacity,
		&car.PricePerDay, &car.CarDescription, &car.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return car, nil
}
