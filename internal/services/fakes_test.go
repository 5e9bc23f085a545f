package services

import (
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// fakeClock returns a fixed instant
type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

// testNow is the reference instant used across the engine tests
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

// day returns testNow shifted by whole days
func day(n int) time.Time {
	return testNow.AddDate(0, 0, n)
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
	// carProviders maps car IDs to provider IDs for ListByProviderID
	carProviders map[uuid.UUID]uuid.UUID
	// consumed records every promotion usage a Create or Update spent
	consumed []uuid.UUID
	err      error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings:     make(map[uuid.UUID]*models.Booking),
		carProviders: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *fakeBookingStore) add(booking models.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := booking
	s.bookings[booking.ID] = &copied
}

func (s *fakeBookingStore) Create(booking *models.Booking, promotionID *uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *booking
	s.bookings[booking.ID] = &copied
	s.recordConsumption(promotionID)
	return nil
}

func (s *fakeBookingStore) Update(booking *models.Booking, promotionID *uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[booking.ID]; !ok {
		return sql.ErrNoRows
	}
	copied := *booking
	s.bookings[booking.ID] = &copied
	s.recordConsumption(promotionID)
	return nil
}

// recordConsumption expects the caller to hold s.mu
func (s *fakeBookingStore) recordConsumption(promotionID *uuid.UUID) {
	if promotionID != nil {
		s.consumed = append(s.consumed, *promotionID)
	}
}

func (s *fakeBookingStore) consumptions(promotionID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, id := range s.consumed {
		if id == promotionID {
			n++
		}
	}
	return n
}

func (s *fakeBookingStore) GetByID(bookingID uuid.UUID) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	booking, ok := s.bookings[bookingID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeBookingStore) List() ([]models.Booking, error) {
	return s.filter(func(*models.Booking) bool { return true })
}

func (s *fakeBookingStore) ListByUserID(userID uuid.UUID) ([]models.Booking, error) {
	return s.filter(func(b *models.Booking) bool { return b.UserID == userID })
}

func (s *fakeBookingStore) ListByCarID(carID uuid.UUID) ([]models.Booking, error) {
	return s.filter(func(b *models.Booking) bool { return b.CarID == carID })
}

func (s *fakeBookingStore) ListActiveByCarID(carID uuid.UUID) ([]models.Booking, error) {
	return s.filter(func(b *models.Booking) bool {
		return b.CarID == carID && b.Status != models.BookingStatusCancelled
	})
}

func (s *fakeBookingStore) ListByProviderID(providerID uuid.UUID) ([]models.Booking, error) {
	return s.filter(func(b *models.Booking) bool {
		return s.carProviders[b.CarID] == providerID
	})
}

func (s *fakeBookingStore) CountActive(userID uuid.UUID) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	active, err := s.filter(func(b *models.Booking) bool {
		return b.UserID == userID && b.IsActive()
	})
	if err != nil {
		return 0, err
	}
	return len(active), nil
}

func (s *fakeBookingStore) Delete(bookingID uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[bookingID]; !ok {
		return sql.ErrNoRows
	}
	delete(s.bookings, bookingID)
	return nil
}

func (s *fakeBookingStore) filter(keep func(*models.Booking) bool) ([]models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []models.Booking{}
	for _, booking := range s.bookings {
		if keep(booking) {
			result = append(result, *booking)
		}
	}
	return result, nil
}

type fakeCarStore struct {
	cars map[uuid.UUID]*models.Car
}

func newFakeCarStore(cars ...*models.Car) *fakeCarStore {
	store := &fakeCarStore{cars: make(map[uuid.UUID]*models.Car)}
	for _, car := range cars {
		store.cars[car.ID] = car
	}
	return store
}

func (s *fakeCarStore) GetByID(carID uuid.UUID) (*models.Car, error) {
	car, ok := s.cars[carID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return car, nil
}

type fakeProviderStore struct {
	providers map[uuid.UUID]*models.RentalCarProvider
}

func newFakeProviderStore(providers ...*models.RentalCarProvider) *fakeProviderStore {
	store := &fakeProviderStore{providers: make(map[uuid.UUID]*models.RentalCarProvider)}
	for _, provider := range providers {
		store.providers[provider.ID] = provider
	}
	return store
}

func (s *fakeProviderStore) GetByID(providerID uuid.UUID) (*models.RentalCarProvider, error) {
	provider, ok := s.providers[providerID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return provider, nil
}

func (s *fakeProviderStore) GetByUserID(userID uuid.UUID) (*models.RentalCarProvider, error) {
	for _, provider := range s.providers {
		if provider.UserID == userID {
			return provider, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakePromotionStore struct {
	promotions map[uuid.UUID]*models.Promotion
}

func newFakePromotionStore(promotions ...*models.Promotion) *fakePromotionStore {
	store := &fakePromotionStore{promotions: make(map[uuid.UUID]*models.Promotion)}
	for _, promotion := range promotions {
		store.promotions[promotion.ID] = promotion
	}
	return store
}

func (s *fakePromotionStore) GetByID(promotionID uuid.UUID) (*models.Promotion, error) {
	promotion, ok := s.promotions[promotionID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return promotion, nil
}
