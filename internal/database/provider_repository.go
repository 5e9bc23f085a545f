package database

import (
	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// ProviderRepository handles database operations for the rental_car_providers table
type ProviderRepository struct {
	db DB
}

// NewProviderRepository creates a new ProviderRepository
func NewProviderRepository(db DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

const providerColumns = `id, user_id, name, address, district, province, postal_code, tel, region, created_at`

// GetByID retrieves a provider by ID
func (r *ProviderRepository) GetByID(providerID uuid.UUID) (*models.RentalCarProvider, error) {
	query := `SELECT ` + providerColumns + ` FROM rental_car_providers WHERE id = $1`
	return scanProvider(r.db.QueryRow(query, providerID))
}

// GetByUserID retrieves the provider record linked to a provider-role user
func (r *ProviderRepository) GetByUserID(userID uuid.UUID) (*models.RentalCarProvider, error) {
	query := `SELECT ` + providerColumns + ` FROM rental_car_providers WHERE user_id = $1`
	return scanProvider(r.db.QueryRow(query, userID))
}

func scanProvider(row scanner) (*models.RentalCarProvider, error) {
	provider := &models.RentalCarProvider{}
	err := row.Scan(
		&provider.ID, &provider.UserID, &provider.Name, &provider.Address,
		&provider.District, &provider.Province, &provider.PostalCode,
		&provider.Tel, &provider.Region, &provider.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return provider, nil
}
