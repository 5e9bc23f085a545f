package services

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityChecker detects date-range conflicts for a car. Two ranges
// [a1,a2) and [b1,b2) conflict iff a1 < b2 && b1 < a2; cancelled bookings
// never conflict.
type AvailabilityChecker struct {
	bookings BookingStore
}

// NewAvailabilityChecker creates a new AvailabilityChecker
func NewAvailabilityChecker(bookings BookingStore) *AvailabilityChecker {
	return &AvailabilityChecker{bookings: bookings}
}

// HasConflict reports whether any non-cancelled booking for the car overlaps
// [start, end). The booking identified by exclude is skipped, so an update
// never conflicts with the booking's own prior reservation.
func (c *AvailabilityChecker) HasConflict(carID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	active, err := c.bookings.ListActiveByCarID(carID)
	if err != nil {
		return false, err
	}

	for i := range active {
		if exclude != nil && active[i].ID == *exclude {
			continue
		}
		if active[i].Overlaps(start, end) {
			return true, nil
		}
	}

	return false, nil
}
