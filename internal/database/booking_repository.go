package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/models"
)

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, car_id, user_id, start_date, end_date, status, total_price, promotion_id, created_at, updated_at`

// Create inserts a new booking. When promotionID is set, the insert and the
// promotion usage decrement run in a single transaction; the decrement is
// guarded by amount > 0 so a promotion cannot be oversold under concurrent
// bookings.
func (r *BookingRepository) Create(booking *models.Booking, promotionID *uuid.UUID) error {
	query := `
		INSERT INTO bookings (
			id, car_id, user_id, start_date, end_date,
			status, total_price, promotion_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	if promotionID == nil {
		return r.db.QueryRow(
			query,
			booking.ID, booking.CarID, booking.UserID, booking.StartDate, booking.EndDate,
			booking.Status, booking.TotalPrice, nullUUID(booking.PromotionID),
		).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := decrementPromotion(tx, *promotionID); err != nil {
		return err
	}

	err = tx.QueryRow(
		query,
		booking.ID, booking.CarID, booking.UserID, booking.StartDate, booking.EndDate,
		booking.Status, booking.TotalPrice, nullUUID(booking.PromotionID),
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Update persists changes to a booking's dates, status, price and promotion
// reference. When promotionID is set the promotion usage decrement joins the
// same transaction.
func (r *BookingRepository) Update(booking *models.Booking, promotionID *uuid.UUID) error {
	query := `
		UPDATE bookings
		SET start_date = $2, end_date = $3, status = $4,
			total_price = $5, promotion_id = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	if promotionID == nil {
		return r.db.QueryRow(
			query,
			booking.ID, booking.StartDate, booking.EndDate, booking.Status,
			booking.TotalPrice, nullUUID(booking.PromotionID),
		).Scan(&booking.UpdatedAt)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := decrementPromotion(tx, *promotionID); err != nil {
		return err
	}

	err = tx.QueryRow(
		query,
		booking.ID, booking.StartDate, booking.EndDate, booking.Status,
		booking.TotalPrice, nullUUID(booking.PromotionID),
	).Scan(&booking.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// decrementPromotion consumes one usage of a promotion inside tx
func decrementPromotion(tx *sql.Tx, promotionID uuid.UUID) error {
	result, err := tx.Exec(
		`UPDATE promotions SET amount = amount - 1 WHERE id = $1 AND amount > 0`,
		promotionID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("promotion %s has no remaining usage", promotionID)
	}

	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepository) GetByID(bookingID uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRow(query, bookingID))
}

// List retrieves all bookings
func (r *BookingRepository) List() ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByUserID retrieves all bookings made by a user
func (r *BookingRepository) ListByUserID(userID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByCarID retrieves all bookings for a car
func (r *BookingRepository) ListByCarID(carID uuid.UUID) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE car_id = $1 ORDER BY start_date`

	rows, err := r.db.Query(query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByCarID retrieves the non-cancelled bookings for a car. These are
// the ranges the availability check must not overlap.
func (r *BookingRepository) ListActiveByCarID(carID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE car_id = $1
		  AND status != 'cancelled'
		ORDER BY start_date
	`

	rows, err := r.db.Query(query, carID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByProviderID retrieves all bookings on cars owned by a provider
func (r *BookingRepository) ListByProviderID(providerID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT b.id, b.car_id, b.user_id, b.start_date, b.end_date, b.status,
			   b.total_price, b.promotion_id, b.created_at, b.updated_at
		FROM bookings b
		JOIN cars c ON c.id = b.car_id
		WHERE c.provider_id = $1
		ORDER BY b.created_at DESC
	`

	rows, err := r.db.Query(query, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActive returns the number of pending or confirmed bookings a user holds
func (r *BookingRepository) CountActive(userID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE user_id = $1
		  AND status IN ('pending', 'confirmed')
	`

	var count int
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

// Delete removes a booking
func (r *BookingRepository) Delete(bookingID uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// nullUUID converts an optional uuid for insertion
func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

// scanBooking scans a single booking
func scanBooking(row scanner) (*models.Booking, error) {
	booking := &models.Booking{}
	var promotionID uuid.NullUUID

	err := row.Scan(
		&booking.ID, &booking.CarID, &booking.UserID, &booking.StartDate, &booking.EndDate,
		&booking.Status, &booking.TotalPrice, &promotionID, &booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if promotionID.Valid {
		booking.PromotionID = &promotionID.UUID
	}

	return booking, nil
}

// scanBookings scans multiple bookings from rows
func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	bookings := []models.Booking{}

	for rows.Next() {
		var booking models.Booking
		var promotionID uuid.NullUUID

		err := rows.Scan(
			&booking.ID, &booking.CarID, &booking.UserID, &booking.StartDate, &booking.EndDate,
			&booking.Status, &booking.TotalPrice, &promotionID, &booking.CreatedAt, &booking.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if promotionID.Valid {
			booking.PromotionID = &promotionID.UUID
		}

		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}
