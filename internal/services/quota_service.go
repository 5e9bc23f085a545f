package services

import (
	"github.com/google/uuid"
)

// ActiveBookingLimit caps the number of pending or confirmed bookings a user
// may hold system-wide.
const ActiveBookingLimit = 3

// QuotaEnforcer rejects new bookings for users at the active-booking limit.
// The quota applies to creation only; updates never re-check it.
type QuotaEnforcer struct {
	bookings BookingStore
	limit    int
}

// NewQuotaEnforcer creates a QuotaEnforcer with the default limit
func NewQuotaEnforcer(bookings BookingStore) *QuotaEnforcer {
	return &QuotaEnforcer{bookings: bookings, limit: ActiveBookingLimit}
}

// Check returns a validation error when the user already holds the maximum
// number of active bookings.
func (q *QuotaEnforcer) Check(userID uuid.UUID) error {
	count, err := q.bookings.CountActive(userID)
	if err != nil {
		return err
	}

	if count >= q.limit {
		return validationf("The user with ID %s has already made %d bookings", userID, q.limit)
	}

	return nil
}
