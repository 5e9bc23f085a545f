package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentalcars/booking-backend/internal/database"
	"github.com/rentalcars/booking-backend/internal/middleware"
	"github.com/rentalcars/booking-backend/internal/models"
	"github.com/rentalcars/booking-backend/internal/services"
)

// setupTestDB creates a mock database for testing
func setupTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return &database.PostgresDB{DB: sqlxDB}, mock
}

// setupBookingRouter builds a router with an auth stub injecting the actor
func setupBookingRouter(db database.DB, actor models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := services.NewBookingService(
		database.NewBookingRepository(db),
		database.NewCarRepository(db),
		database.NewProviderRepository(db),
		database.NewPromotionRepository(db),
		services.SystemClock{},
		logger,
	)
	handler := NewBookingHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ActorContextKey, actor)
		c.Next()
	})

	router.POST("/api/v1/cars/:carId/bookings", handler.Create)
	router.GET("/api/v1/cars/:carId/bookings", handler.ListForCar)
	router.GET("/api/v1/bookings", handler.List)
	router.GET("/api/v1/bookings/:bookingId", handler.Get)
	router.PUT("/api/v1/bookings/:bookingId", handler.Update)
	router.DELETE("/api/v1/bookings/:bookingId", handler.Delete)
	return router
}

func carRow(carID, providerID uuid.UUID, pricePerDay float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "provider_id", "brand", "model", "type", "top_speed", "year",
		"fuel_type", "seating_capacity", "price_per_day", "car_description", "created_at",
	}).AddRow(
		carID.String(), providerID.String(), "Toyota", "Corolla", "sedan", 180, 2024,
		"petrol", 5, pricePerDay, "Compact sedan", time.Now(),
	)
}

func bookingRow(booking *models.Booking) *sqlmock.Rows {
	var promotionID interface{}
	if booking.PromotionID != nil {
		promotionID = booking.PromotionID.String()
	}
	return sqlmock.NewRows([]string{
		"id", "car_id", "user_id", "start_date", "end_date",
		"status", "total_price", "promotion_id", "created_at", "updated_at",
	}).AddRow(
		booking.ID.String(), booking.CarID.String(), booking.UserID.String(),
		booking.StartDate, booking.EndDate, string(booking.Status),
		booking.TotalPrice, promotionID, time.Now(), time.Now(),
	)
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateBookingEndpoint(t *testing.T) {
	db, mock := setupTestDB(t)
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	router := setupBookingRouter(db, actor)

	carID := uuid.New()
	providerID := uuid.New()
	start := time.Now().AddDate(0, 0, 7).Truncate(time.Hour)
	end := start.AddDate(0, 0, 2)

	mock.ExpectQuery("SELECT (.+) FROM cars WHERE id").
		WithArgs(carID).
		WillReturnRows(carRow(carID, providerID, 1200))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(actor.ID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(carID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "car_id", "user_id", "start_date", "end_date",
			"status", "total_price", "promotion_id", "created_at", "updated_at",
		}))
	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
			AddRow(time.Now(), time.Now()))

	w := performJSON(router, http.MethodPost, "/api/v1/cars/"+carID.String()+"/bookings", gin.H{
		"start_date": start.Format(time.RFC3339),
		"end_date":   end.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, 2400.0, data["totalprice"])
	assert.Equal(t, "pending", data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingEndpointMalformedCarID(t *testing.T) {
	db, _ := setupTestDB(t)
	router := setupBookingRouter(db, models.Actor{ID: uuid.New(), Role: models.RoleUser})

	w := performJSON(router, http.MethodPost, "/api/v1/cars/123456789012345678901234/bookings", gin.H{})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No rental car provider with the id of 123456789012345678901234", body["message"])
}

func TestCreateBookingEndpointMissingDates(t *testing.T) {
	db, mock := setupTestDB(t)
	router := setupBookingRouter(db, models.Actor{ID: uuid.New(), Role: models.RoleUser})

	carID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE id").
		WithArgs(carID).
		WillReturnRows(carRow(carID, uuid.New(), 1200))

	w := performJSON(router, http.MethodPost, "/api/v1/cars/"+carID.String()+"/bookings", gin.H{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "startDate and endDate are required", body["message"])
}

func TestCreateBookingEndpointPastDates(t *testing.T) {
	db, mock := setupTestDB(t)
	router := setupBookingRouter(db, models.Actor{ID: uuid.New(), Role: models.RoleUser})

	carID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM cars WHERE id").
		WithArgs(carID).
		WillReturnRows(carRow(carID, uuid.New(), 1200))

	start := time.Now().AddDate(0, 0, -7)
	end := start.AddDate(0, 0, 2)
	w := performJSON(router, http.MethodPost, "/api/v1/cars/"+carID.String()+"/bookings", gin.H{
		"start_date": start.Format(time.RFC3339),
		"end_date":   end.Format(time.RFC3339),
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Can't Make Reservation in Past", body["message"])
}

func TestGetBookingEndpointUnauthorized(t *testing.T) {
	db, mock := setupTestDB(t)
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	router := setupBookingRouter(db, actor)

	booking := &models.Booking{
		ID:        uuid.New(),
		CarID:     uuid.New(),
		UserID:    uuid.New(), // someone else's booking
		StartDate: time.Now().AddDate(0, 0, 7),
		EndDate:   time.Now().AddDate(0, 0, 9),
		Status:    models.BookingStatusPending,
	}

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(booking.ID).
		WillReturnRows(bookingRow(booking))

	w := performJSON(router, http.MethodGet, "/api/v1/bookings/"+booking.ID.String(), nil)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, fmt.Sprintf("User %s is not authorized to view this booking", actor.ID), body["message"])
}

func TestGetBookingEndpointNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	router := setupBookingRouter(db, models.Actor{ID: uuid.New(), Role: models.RoleUser})

	bookingID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(bookingID).
		WillReturnError(sql.ErrNoRows)

	w := performJSON(router, http.MethodGet, "/api/v1/bookings/"+bookingID.String(), nil)

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, fmt.Sprintf("No booking found with id of %s", bookingID), body["message"])
}

func TestListBookingsEndpoint(t *testing.T) {
	db, mock := setupTestDB(t)
	actor := models.Actor{ID: uuid.New(), Role: models.RoleAdmin}
	router := setupBookingRouter(db, actor)

	booking := &models.Booking{
		ID:        uuid.New(),
		CarID:     uuid.New(),
		UserID:    uuid.New(),
		StartDate: time.Now().AddDate(0, 0, 7),
		EndDate:   time.Now().AddDate(0, 0, 9),
		Status:    models.BookingStatusConfirmed,
		TotalPrice: 2400,
	}

	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WillReturnRows(bookingRow(booking))

	w := performJSON(router, http.MethodGet, "/api/v1/bookings", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1.0, body["count"])
}

func TestDeleteBookingEndpoint(t *testing.T) {
	db, mock := setupTestDB(t)
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	router := setupBookingRouter(db, actor)

	booking := &models.Booking{
		ID:        uuid.New(),
		CarID:     uuid.New(),
		UserID:    actor.ID,
		StartDate: time.Now().AddDate(0, 0, 7),
		EndDate:   time.Now().AddDate(0, 0, 9),
		Status:    models.BookingStatusPending,
	}

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(booking.ID).
		WillReturnRows(bookingRow(booking))
	mock.ExpectExec("DELETE FROM bookings").
		WithArgs(booking.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := performJSON(router, http.MethodDelete, "/api/v1/bookings/"+booking.ID.String(), nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateBookingEndpointStatusOnly(t *testing.T) {
	db, mock := setupTestDB(t)
	actor := models.Actor{ID: uuid.New(), Role: models.RoleUser}
	router := setupBookingRouter(db, actor)

	booking := &models.Booking{
		ID:         uuid.New(),
		CarID:      uuid.New(),
		UserID:     actor.ID,
		StartDate:  time.Now().AddDate(0, 0, 7),
		EndDate:    time.Now().AddDate(0, 0, 9),
		Status:     models.BookingStatusPending,
		TotalPrice: 2400,
	}

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id").
		WithArgs(booking.ID).
		WillReturnRows(bookingRow(booking))
	mock.ExpectQuery("UPDATE bookings").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

	w := performJSON(router, http.MethodPut, "/api/v1/bookings/"+booking.ID.String(), gin.H{
		"statusUpdateOnly": "true",
		"status":           "confirmed",
	})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
