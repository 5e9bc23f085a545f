package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalcars/booking-backend/internal/models"
)

func testCar(providerID uuid.UUID, pricePerDay float64) *models.Car {
	return &models.Car{
		ID:          uuid.New(),
		ProviderID:  providerID,
		Brand:       "Toyota",
		Model:       "Corolla",
		PricePerDay: pricePerDay,
	}
}

func activePromotion(providerID uuid.UUID) *models.Promotion {
	return &models.Promotion{
		ID:                 uuid.New(),
		ProviderID:         providerID,
		Title:              "September special",
		DiscountPercentage: 10,
		MaxDiscountAmount:  500,
		MinPurchaseAmount:  1000,
		StartDate:          day(-7),
		EndDate:            day(7),
		Amount:             5,
	}
}

func TestPriceWithoutPromotion(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)

	total, err := engine.Price(car, day(1), day(3), nil)
	require.NoError(t, err)
	assert.Equal(t, 2400.0, total)
}

func TestPriceRoundsPartialDaysUp(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	car := testCar(uuid.New(), 1200)

	// 36 hours counts as 2 days
	total, err := engine.Price(car, day(1), day(1).Add(36*time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, 2400.0, total)
}

func TestPriceMinimumOneDay(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	car := testCar(uuid.New(), 1200)

	total, err := engine.Price(car, day(1), day(1).Add(2*time.Hour), nil)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, total)
}

func TestPriceWithPromotion(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)
	promotion := activePromotion(providerID)

	// 10% of 2400 is 240, under the 500 cap
	total, err := engine.Price(car, day(1), day(3), promotion)
	require.NoError(t, err)
	assert.Equal(t, 2160.0, total)
}

func TestPriceDiscountCappedAtMaxAmount(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)
	promotion := activePromotion(providerID)
	promotion.DiscountPercentage = 50

	// 50% of 2400 is 1200, capped at 500
	total, err := engine.Price(car, day(1), day(3), promotion)
	require.NoError(t, err)
	assert.Equal(t, 1900.0, total)
}

func TestPriceProviderMismatch(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	car := testCar(uuid.New(), 1200)
	promotion := activePromotion(uuid.New())

	_, err := engine.Price(car, day(1), day(3), promotion)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Promotion provider does not match car provider", ve.Message)
}

func TestPricePromotionOutsideWindow(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)

	promotion := activePromotion(providerID)
	promotion.StartDate = day(-14)
	promotion.EndDate = day(-7)

	_, err := engine.Price(car, day(1), day(3), promotion)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "is not active")
}

func TestPricePromotionExhausted(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)

	promotion := activePromotion(providerID)
	promotion.Amount = 0

	_, err := engine.Price(car, day(1), day(3), promotion)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "has no remaining usage")
}

func TestPriceBelowMinimumPurchase(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 400)

	promotion := activePromotion(providerID)
	promotion.MinPurchaseAmount = 1000

	// 2 days at 400 is 800, below the 1000 minimum
	_, err := engine.Price(car, day(1), day(3), promotion)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "below the promotion minimum purchase amount")
}

func TestPriceNeverNegative(t *testing.T) {
	engine := NewPricingEngine(fakeClock{now: testNow})
	providerID := uuid.New()
	car := testCar(providerID, 1200)

	promotion := activePromotion(providerID)
	promotion.DiscountPercentage = 100
	promotion.MaxDiscountAmount = 100000
	promotion.MinPurchaseAmount = 0

	total, err := engine.Price(car, day(1), day(3), promotion)
	require.NoError(t, err)
	assert.Equal(t, 0.0, total)
}
