package services

import (
	"math"
	"time"

	"github.com/rentalcars/booking-backend/internal/models"
)

// PricingEngine computes booking totals. The base price is the car's per-day
// rate times the rental day count; an optional promotion applies a percentage
// discount capped at the promotion's maximum discount amount.
type PricingEngine struct {
	clock Clock
}

// NewPricingEngine creates a new PricingEngine
func NewPricingEngine(clock Clock) *PricingEngine {
	return &PricingEngine{clock: clock}
}

// Price returns the total price for renting the car over [start, end),
// applying the promotion when one is supplied. Promotion failures are
// validation errors; how they surface to callers is the lifecycle manager's
// decision.
func (e *PricingEngine) Price(car *models.Car, start, end time.Time, promotion *models.Promotion) (float64, error) {
	base := car.PricePerDay * float64(rentalDays(start, end))
	if promotion == nil {
		return base, nil
	}

	if promotion.ProviderID != car.ProviderID {
		return 0, &ValidationError{Message: "Promotion provider does not match car provider"}
	}
	if !promotion.ActiveAt(e.clock.Now()) {
		return 0, validationf("Promotion %s is not active", promotion.ID)
	}
	if promotion.Amount <= 0 {
		return 0, validationf("Promotion %s has no remaining usage", promotion.ID)
	}
	if base < promotion.MinPurchaseAmount {
		return 0, validationf("Booking total %.2f is below the promotion minimum purchase amount", base)
	}

	discount := base * promotion.DiscountPercentage / 100
	if discount > promotion.MaxDiscountAmount {
		discount = promotion.MaxDiscountAmount
	}

	total := base - discount
	if total < 0 {
		total = 0
	}

	return total, nil
}

// rentalDays is the day count of the half-open interval [start, end),
// rounded up, never less than one.
func rentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}
