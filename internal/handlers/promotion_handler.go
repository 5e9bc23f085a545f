package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rentalcars/booking-backend/internal/database"
	"github.com/rentalcars/booking-backend/internal/middleware"
	"github.com/rentalcars/booking-backend/internal/models"
)

// PromotionHandler handles promotion catalog HTTP requests
type PromotionHandler struct {
	promotionRepository *database.PromotionRepository
	providerRepository  *database.ProviderRepository
	log                 *logrus.Logger
}

// NewPromotionHandler creates a new promotion handler
func NewPromotionHandler(
	promotionRepository *database.PromotionRepository,
	providerRepository *database.ProviderRepository,
	log *logrus.Logger,
) *PromotionHandler {
	return &PromotionHandler{
		promotionRepository: promotionRepository,
		providerRepository:  providerRepository,
		log:                 log,
	}
}

// Create handles POST /api/v1/promotions. A provider actor always creates
// promotions under their own provider record; an admin supplies the provider
// in the request body.
func (h *PromotionHandler) Create(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	var req struct {
		models.CreatePromotionRequest
		Provider *uuid.UUID `json:"provider"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	var providerID uuid.UUID
	switch actor.Role {
	case models.RoleAdmin:
		if req.Provider == nil {
			respondError(c, http.StatusBadRequest, "Missing required fields")
			return
		}
		providerID = *req.Provider
	default:
		provider, err := h.providerRepository.GetByUserID(actor.ID)
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusBadRequest, "No provider record found for this account")
			return
		}
		if err != nil {
			respondError(c, http.StatusInternalServerError, "Unexpected Error")
			return
		}
		providerID = provider.ID
	}

	promotion := &models.Promotion{
		ID:                 uuid.New(),
		ProviderID:         providerID,
		Title:              req.Title,
		Description:        req.Description,
		DiscountPercentage: req.DiscountPercentage,
		MaxDiscountAmount:  req.MaxDiscountAmount,
		MinPurchaseAmount:  req.MinPurchaseAmount,
		StartDate:          *req.StartDate,
		EndDate:            *req.EndDate,
		Amount:             req.Amount,
	}

	if err := h.promotionRepository.Create(promotion); err != nil {
		h.log.WithError(err).Error("Failed to create promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	respondData(c, http.StatusCreated, promotion)
}

// List handles GET /api/v1/promotions
func (h *PromotionHandler) List(c *gin.Context) {
	promotions, err := h.promotionRepository.List()
	if err != nil {
		h.log.WithError(err).Error("Failed to list promotions")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	respondList(c, promotions, len(promotions))
}

// Get handles GET /api/v1/promotions/:promotionId
func (h *PromotionHandler) Get(c *gin.Context) {
	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}

	promotion, err := h.promotionRepository.GetByID(promotionID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Failed to look up promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	respondData(c, http.StatusOK, promotion)
}

// Update handles PUT /api/v1/promotions/:promotionId. Providers may only
// update their own promotions; admins may update any.
func (h *PromotionHandler) Update(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}

	promotion, err := h.promotionRepository.GetByID(promotionID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Failed to look up promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	if !h.canManage(actor, promotion) {
		respondError(c, http.StatusForbidden, "You are not authorized to update this promotion")
		return
	}

	var req models.UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	applyPromotionUpdate(promotion, &req)

	if err := h.promotionRepository.Update(promotion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Promotion not found")
			return
		}
		h.log.WithError(err).Error("Failed to update promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	respondData(c, http.StatusOK, promotion)
}

// Delete handles DELETE /api/v1/promotions/:promotionId
func (h *PromotionHandler) Delete(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	promotionID, err := uuid.Parse(c.Param("promotionId"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}

	promotion, err := h.promotionRepository.GetByID(promotionID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "Promotion not found")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Failed to look up promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	if !h.canManage(actor, promotion) {
		respondError(c, http.StatusForbidden, "You are not authorized to delete this promotion")
		return
	}

	if err := h.promotionRepository.Delete(promotionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(c, http.StatusNotFound, "Promotion not found")
			return
		}
		h.log.WithError(err).Error("Failed to delete promotion")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Promotion deleted",
	})
}

// canManage reports whether the actor may update or delete the promotion
func (h *PromotionHandler) canManage(actor models.Actor, promotion *models.Promotion) bool {
	if actor.Role == models.RoleAdmin {
		return true
	}
	if actor.Role != models.RoleProvider {
		return false
	}
	provider, err := h.providerRepository.GetByUserID(actor.ID)
	if err != nil {
		return false
	}
	return provider.ID == promotion.ProviderID
}

func applyPromotionUpdate(promotion *models.Promotion, req *models.UpdatePromotionRequest) {
	if req.Title != nil {
		promotion.Title = *req.Title
	}
	if req.Description != nil {
		promotion.Description = *req.Description
	}
	if req.DiscountPercentage != nil {
		promotion.DiscountPercentage = *req.DiscountPercentage
	}
	if req.MaxDiscountAmount != nil {
		promotion.MaxDiscountAmount = *req.MaxDiscountAmount
	}
	if req.MinPurchaseAmount != nil {
		promotion.MinPurchaseAmount = *req.MinPurchaseAmount
	}
	if req.StartDate != nil {
		promotion.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		promotion.EndDate = *req.EndDate
	}
	if req.Amount != nil {
		promotion.Amount = *req.Amount
	}
}
