package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is a known booking status
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking represents a car reservation for a date range
type Booking struct {
	ID          uuid.UUID     `json:"_id" db:"id"`
	CarID       uuid.UUID     `json:"car" db:"car_id"`
	UserID      uuid.UUID     `json:"user" db:"user_id"`
	StartDate   time.Time     `json:"start_date" db:"start_date"`
	EndDate     time.Time     `json:"end_date" db:"end_date"`
	Status      BookingStatus `json:"status" db:"status"`
	TotalPrice  float64       `json:"totalprice" db:"total_price"`
	PromotionID *uuid.UUID    `json:"promotion,omitempty" db:"promotion_id"`
	CreatedAt   time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time     `json:"-" db:"updated_at"`
}

// IsActive reports whether the booking counts toward the per-user quota.
// Only pending and confirmed bookings are active; completed and cancelled
// bookings do not occupy a slot.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// Overlaps reports whether the booking's [start, end) range overlaps the
// given range under half-open interval semantics.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && start.Before(b.EndDate)
}

// CreateBookingRequest represents the request to book a car
type CreateBookingRequest struct {
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	PromoID   *uuid.UUID `json:"promoId"`
}

// UpdateBookingRequest represents the request to update a booking.
// StatusUpdateOnly selects the status-only path: the status is applied
// without re-validating dates, availability, or pricing.
type UpdateBookingRequest struct {
	StartDate        *time.Time    `json:"start_date"`
	EndDate          *time.Time    `json:"end_date"`
	PromoID          *uuid.UUID    `json:"promoId"`
	StatusUpdateOnly string        `json:"statusUpdateOnly"`
	Status           BookingStatus `json:"status"`
}

// Validate validates the status-only portion of the update request
func (r *UpdateBookingRequest) Validate() error {
	if r.StatusUpdateOnly != "" && !r.Status.Valid() {
		return errors.New("status must be one of pending, confirmed, completed, cancelled")
	}
	return nil
}
