package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentalcars/booking-backend/internal/middleware"
	"github.com/rentalcars/booking-backend/internal/models"
	"github.com/rentalcars/booking-backend/internal/services"
)

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService *services.BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /api/v1/cars/:carId/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	carIDParam := c.Param("carId")
	carID, err := uuid.Parse(carIDParam)
	if err != nil {
		// Malformed ids behave like ids that match nothing.
		respondError(c, http.StatusNotFound, "No rental car provider with the id of "+carIDParam)
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	booking, err := h.bookingService.Create(actor, carID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusCreated, booking)
}

// ListForCar handles GET /api/v1/cars/:carId/bookings
func (h *BookingHandler) ListForCar(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	carIDParam := c.Param("carId")
	carID, err := uuid.Parse(carIDParam)
	if err != nil {
		respondError(c, http.StatusNotFound, "No rental car provider with the id of "+carIDParam)
		return
	}

	bookings, err := h.bookingService.ListForCar(actor, carID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, bookings, len(bookings))
}

// List handles GET /api/v1/bookings
func (h *BookingHandler) List(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	bookings, err := h.bookingService.List(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondList(c, bookings, len(bookings))
}

// Get handles GET /api/v1/bookings/:bookingId
func (h *BookingHandler) Get(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	bookingIDParam := c.Param("bookingId")
	bookingID, err := uuid.Parse(bookingIDParam)
	if err != nil {
		respondError(c, http.StatusNotFound, "No booking found with id of "+bookingIDParam)
		return
	}

	booking, err := h.bookingService.Get(actor, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, booking)
}

// Update handles PUT /api/v1/bookings/:bookingId
func (h *BookingHandler) Update(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	bookingIDParam := c.Param("bookingId")
	bookingID, err := uuid.Parse(bookingIDParam)
	if err != nil {
		respondError(c, http.StatusNotFound, "No booking with the id of "+bookingIDParam)
		return
	}

	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	booking, err := h.bookingService.Update(actor, bookingID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, booking)
}

// Delete handles DELETE /api/v1/bookings/:bookingId
func (h *BookingHandler) Delete(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	bookingIDParam := c.Param("bookingId")
	bookingID, err := uuid.Parse(bookingIDParam)
	if err != nil {
		respondError(c, http.StatusNotFound, "No booking with the id of "+bookingIDParam)
		return
	}

	if err := h.bookingService.Delete(actor, bookingID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{})
}
