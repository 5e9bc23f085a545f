package services

import (
	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// BookingStore persists bookings. Implementations return sql.ErrNoRows (or an
// error wrapping it) when a booking is absent. Create and Update take an
// optional promotion ID whose remaining usage must be decremented in the same
// atomic unit as the booking write.
type BookingStore interface {
	Create(booking *models.Booking, promotionID *uuid.UUID) error
	Update(booking *models.Booking, promotionID *uuid.UUID) error
	GetByID(bookingID uuid.UUID) (*models.Booking, error)
	List() ([]models.Booking, error)
	ListByUserID(userID uuid.UUID) ([]models.Booking, error)
	ListByCarID(carID uuid.UUID) ([]models.Booking, error)
	ListActiveByCarID(carID uuid.UUID) ([]models.Booking, error)
	ListByProviderID(providerID uuid.UUID) ([]models.Booking, error)
	CountActive(userID uuid.UUID) (int, error)
	Delete(bookingID uuid.UUID) error
}

// CarStore resolves cars from the vehicle catalog
type CarStore interface {
	GetByID(carID uuid.UUID) (*models.Car, error)
}

// ProviderStore resolves rental car provider records
type ProviderStore interface {
	GetByID(providerID uuid.UUID) (*models.RentalCarProvider, error)
	GetByUserID(userID uuid.UUID) (*models.RentalCarProvider, error)
}

// PromotionStore resolves promotions from the promotion catalog
type PromotionStore interface {
	GetByID(promotionID uuid.UUID) (*models.Promotion, error)
}
