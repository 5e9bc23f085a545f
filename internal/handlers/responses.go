package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rentalcars/booking-backend/internal/services"
)

// respondError writes the failure envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// respondData writes the success envelope
func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondList writes the success envelope for collections, including a count
func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// respondServiceError maps an engine error to its HTTP status and message.
// Unknown error types fall through to 500 with the generic message.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		respondError(c, http.StatusBadRequest, ve.Message)
		return
	}

	var nfe *services.NotFoundError
	if errors.As(err, &nfe) {
		respondError(c, http.StatusNotFound, nfe.Message)
		return
	}

	var ae *services.AuthorizationError
	if errors.As(err, &ae) {
		status := http.StatusUnauthorized
		if ae.CrossTenant {
			status = http.StatusForbidden
		}
		respondError(c, status, ae.Message)
		return
	}

	respondError(c, http.StatusInternalServerError, "Unexpected Error")
}
