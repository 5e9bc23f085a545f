package services

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/rentalcars/booking-backend/internal/models"
)

// BookingService orchestrates booking creation, listing, updates and
// deletion. It is the single entry point for the transport layer: it resolves
// collaborators, consults the authorization policy, the availability checker,
// the quota enforcer and the pricing engine in order, and normalizes every
// collaborator fault to UnexpectedError so internal detail never reaches the
// caller.
type BookingService struct {
	bookings     BookingStore
	cars         CarStore
	providers    ProviderStore
	promotions   PromotionStore
	policy       *AuthorizationPolicy
	availability *AvailabilityChecker
	quota        *QuotaEnforcer
	pricing      *PricingEngine
	clock        Clock
	carLocks     keyedLocks
	userLocks    keyedLocks
	log          *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	bookings BookingStore,
	cars CarStore,
	providers ProviderStore,
	promotions PromotionStore,
	clock Clock,
	log *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		cars:         cars,
		providers:    providers,
		promotions:   promotions,
		policy:       NewAuthorizationPolicy(cars, providers),
		availability: NewAvailabilityChecker(bookings),
		quota:        NewQuotaEnforcer(bookings),
		pricing:      NewPricingEngine(clock),
		clock:        clock,
		log:          log,
	}
}

// Create books a car for the actor over the requested date range. Validation
// order: car exists, dates present, start not in the past, start before end,
// provider-scope authorization, quota, availability, pricing. The quota check
// and the commit run under the actor's lock, and the availability check and
// the commit under the car's lock, so two concurrent requests cannot both
// pass either check.
//
// Promotion resolution or validation failures on create surface as
// UnexpectedError, matching the API this engine replaced; update reports the
// provider mismatch as a validation failure instead (see Update).
func (s *BookingService) Create(actor models.Actor, carID uuid.UUID, req *models.CreateBookingRequest) (*models.Booking, error) {
	car, err := s.cars.GetByID(carID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("No rental car provider with the id of %s", carID)
	}
	if err != nil {
		return nil, s.unexpected("create", err)
	}

	if req.StartDate == nil || req.EndDate == nil {
		return nil, &ValidationError{Message: "startDate and endDate are required"}
	}
	start, end := *req.StartDate, *req.EndDate

	if start.Before(s.clock.Now()) {
		return nil, &ValidationError{Message: "Can't Make Reservation in Past"}
	}
	if !start.Before(end) {
		return nil, &ValidationError{Message: "Start date must be before end date."}
	}

	if err := s.policy.AuthorizeCreate(actor, car); err != nil {
		return nil, s.normalize("create", err)
	}
	// User lock before car lock, always in that order.
	unlockUser := s.userLocks.lock(actor.ID)
	defer unlockUser()

	if err := s.quota.Check(actor.ID); err != nil {
		return nil, s.normalize("create", err)
	}

	unlockCar := s.carLocks.lock(carID)
	defer unlockCar()

	conflict, err := s.availability.HasConflict(carID, start, end, nil)
	if err != nil {
		return nil, s.unexpected("create", err)
	}
	if conflict {
		return nil, &ValidationError{Message: "The car is already booked for the selected dates"}
	}

	var promotion *models.Promotion
	if req.PromoID != nil {
		promotion, err = s.promotions.GetByID(*req.PromoID)
		if err != nil {
			return nil, s.unexpected("create", err)
		}
	}

	total, err := s.pricing.Price(car, start, end, promotion)
	if err != nil {
		return nil, s.unexpected("create", err)
	}

	booking := &models.Booking{
		ID:          uuid.New(),
		CarID:       carID,
		UserID:      actor.ID,
		StartDate:   start,
		EndDate:     end,
		Status:      models.BookingStatusPending,
		TotalPrice:  total,
		PromotionID: req.PromoID,
	}

	if err := s.bookings.Create(booking, req.PromoID); err != nil {
		return nil, s.unexpected("create", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"car_id":     carID,
		"user_id":    actor.ID,
		"total":      total,
	}).Info("Booking created")

	return booking, nil
}

// List returns the bookings the actor may see: all bookings for an admin, the
// bookings on the provider's own cars for a provider, and the actor's own
// bookings otherwise.
func (s *BookingService) List(actor models.Actor) ([]models.Booking, error) {
	switch actor.Role {
	case models.RoleAdmin:
		bookings, err := s.bookings.List()
		if err != nil {
			return nil, s.unexpected("list", err)
		}
		return bookings, nil
	case models.RoleProvider:
		provider, err := s.providers.GetByUserID(actor.ID)
		if errors.Is(err, sql.ErrNoRows) {
			// Provider account without a provider record: fall back to the
			// bookings they made themselves.
			bookings, err := s.bookings.ListByUserID(actor.ID)
			if err != nil {
				return nil, s.unexpected("list", err)
			}
			return bookings, nil
		}
		if err != nil {
			return nil, s.unexpected("list", err)
		}
		bookings, err := s.bookings.ListByProviderID(provider.ID)
		if err != nil {
			return nil, s.unexpected("list", err)
		}
		return bookings, nil
	default:
		bookings, err := s.bookings.ListByUserID(actor.ID)
		if err != nil {
			return nil, s.unexpected("list", err)
		}
		return bookings, nil
	}
}

// ListForCar returns the bookings for one car, scoped by role: admins and the
// owning provider see every booking, regular users only their own; a provider
// that does not own the car is denied.
func (s *BookingService) ListForCar(actor models.Actor, carID uuid.UUID) ([]models.Booking, error) {
	car, err := s.cars.GetByID(carID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("No rental car provider with the id of %s", carID)
	}
	if err != nil {
		return nil, s.unexpected("list", err)
	}

	ownOnly, err := s.policy.AuthorizeCarListing(actor, car)
	if err != nil {
		return nil, s.normalize("list", err)
	}

	bookings, err := s.bookings.ListByCarID(carID)
	if err != nil {
		return nil, s.unexpected("list", err)
	}

	if !ownOnly {
		return bookings, nil
	}

	own := []models.Booking{}
	for i := range bookings {
		if bookings[i].UserID == actor.ID {
			own = append(own, bookings[i])
		}
	}
	return own, nil
}

// Get returns a booking the actor is authorized to view
func (s *BookingService) Get(actor models.Actor, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("No booking found with id of %s", bookingID)
	}
	if err != nil {
		return nil, s.unexpected("get", err)
	}

	if err := s.policy.AuthorizeBooking(actor, actionView, booking); err != nil {
		return nil, s.normalize("get", err)
	}

	return booking, nil
}

// Update mutates a booking. The status-only path applies the requested status
// without re-validating dates, availability or pricing, but cancelled and
// completed are terminal: once a booking leaves its slot, reviving it would
// skip the availability check. Otherwise the date invariants are re-checked,
// availability is re-checked excluding the booking's own prior range, and the
// price is recomputed; supplying a promotion ID attaches that promotion
// (consuming a usage only when it differs from the one already attached),
// while a date change without one reprices at the base rate and drops any
// prior promotion reference.
func (s *BookingService) Update(actor models.Actor, bookingID uuid.UUID, req *models.UpdateBookingRequest) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundf("No booking with the id of %s", bookingID)
	}
	if err != nil {
		return nil, s.unexpected("update", err)
	}

	if err := s.policy.AuthorizeBooking(actor, actionUpdate, booking); err != nil {
		return nil, s.normalize("update", err)
	}

	if req.StatusUpdateOnly != "" {
		if err := req.Validate(); err != nil {
			return nil, &ValidationError{Message: err.Error()}
		}
		if req.Status != booking.Status &&
			(booking.Status == models.BookingStatusCancelled || booking.Status == models.BookingStatusCompleted) {
			return nil, &ValidationError{Message: fmt.Sprintf("Cannot change status of a %s booking", booking.Status)}
		}
		booking.Status = req.Status
		if err := s.bookings.Update(booking, nil); err != nil {
			return nil, s.unexpected("update", err)
		}
		s.log.WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"status":     booking.Status,
		}).Info("Booking status updated")
		return booking, nil
	}

	start, end := booking.StartDate, booking.EndDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if req.EndDate != nil {
		end = *req.EndDate
	}

	if !start.Before(end) {
		return nil, &ValidationError{Message: "Start date must be before end date."}
	}
	if start.Before(s.clock.Now()) {
		return nil, &ValidationError{Message: "Can't Make Reservation in Past"}
	}

	unlock := s.carLocks.lock(booking.CarID)
	defer unlock()

	conflict, err := s.availability.HasConflict(booking.CarID, start, end, &booking.ID)
	if err != nil {
		return nil, s.unexpected("update", err)
	}
	if conflict {
		return nil, &ValidationError{Message: "The car is already booked for the selected dates"}
	}

	car, err := s.cars.GetByID(booking.CarID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &NotFoundError{Message: "Car not found"}
	}
	if err != nil {
		return nil, s.unexpected("update", err)
	}

	var promotion *models.Promotion
	if req.PromoID != nil {
		promotion, err = s.promotions.GetByID(*req.PromoID)
		if err != nil {
			return nil, s.unexpected("update", err)
		}
	}

	total, err := s.pricing.Price(car, start, end, promotion)
	if err != nil {
		// Unlike create, promotion rule violations on update are reported as
		// validation failures.
		return nil, s.normalize("update", err)
	}

	// Re-sending the promotion already attached to the booking must not
	// consume another usage.
	consume := req.PromoID
	if req.PromoID != nil && booking.PromotionID != nil && *req.PromoID == *booking.PromotionID {
		consume = nil
	}

	booking.StartDate = start
	booking.EndDate = end
	booking.TotalPrice = total
	booking.PromotionID = req.PromoID

	if err := s.bookings.Update(booking, consume); err != nil {
		return nil, s.unexpected("update", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"total":      total,
	}).Info("Booking updated")

	return booking, nil
}

// Delete removes a booking the actor is authorized to delete
func (s *BookingService) Delete(actor models.Actor, bookingID uuid.UUID) error {
	booking, err := s.bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundf("No booking with the id of %s", bookingID)
	}
	if err != nil {
		return s.unexpected("delete", err)
	}

	if err := s.policy.AuthorizeBooking(actor, actionDelete, booking); err != nil {
		return s.normalize("delete", err)
	}

	if err := s.bookings.Delete(booking.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundf("No booking with the id of %s", bookingID)
		}
		return s.unexpected("delete", err)
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"actor_id":   actor.ID,
	}).Info("Booking deleted")

	return nil
}

// normalize passes engine errors through and wraps anything else as an
// unexpected fault.
func (s *BookingService) normalize(op string, err error) error {
	var ve *ValidationError
	var nfe *NotFoundError
	var ae *AuthorizationError
	var ue *UnexpectedError
	if errors.As(err, &ve) || errors.As(err, &nfe) || errors.As(err, &ae) || errors.As(err, &ue) {
		return err
	}
	return s.unexpected(op, err)
}

// unexpected logs a collaborator fault and wraps it with the generic message
func (s *BookingService) unexpected(op string, err error) error {
	s.log.WithFields(logrus.Fields{"op": op}).WithError(err).Error("Booking operation failed")
	return &UnexpectedError{Err: err}
}

// keyedLocks serializes a check-and-commit sequence per key, closing the
// window where two concurrent requests both observe the same state. One
// instance guards availability per car, another guards the quota per user.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func (l *keyedLocks) lock(key uuid.UUID) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[uuid.UUID]*sync.Mutex)
	}
	m := l.locks[key]
	if m == nil {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
