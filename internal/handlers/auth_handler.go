package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentalcars/booking-backend/internal/config"
	"github.com/rentalcars/booking-backend/internal/database"
	"github.com/rentalcars/booking-backend/internal/middleware"
	"github.com/rentalcars/booking-backend/internal/models"
	"github.com/rentalcars/booking-backend/internal/utils"
	"github.com/rentalcars/booking-backend/pkg/jwt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	jwtService     *jwt.Service
	userRepository *database.UserRepository
	config         *config.Config
	log            *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	jwtService *jwt.Service,
	userRepository *database.UserRepository,
	cfg *config.Config,
	log *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		jwtService:     jwtService,
		userRepository: userRepository,
		config:         cfg,
		log:            log,
	}
}

// TokenResponse represents the response after a successful register or login
type TokenResponse struct {
	Success      bool   `json:"success"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.userRepository.GetByEmail(req.Email); err == nil {
		respondError(c, http.StatusBadRequest, "Duplicate field value entered")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.config.Security.BcryptCost)
	if err != nil {
		h.log.WithError(err).Error("Failed to hash password")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	user := &models.User{
		ID:              uuid.New(),
		Name:            req.Name,
		TelephoneNumber: req.TelephoneNumber,
		Email:           req.Email,
		Password:        string(hash),
		Role:            req.EffectiveRole(),
	}

	if err := h.userRepository.Create(user); err != nil {
		h.log.WithError(err).Error("Failed to create user")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	h.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User registered")

	h.sendTokenResponse(c, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide an email and password")
		return
	}

	user, err := h.userRepository.GetByEmail(req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Failed to look up user")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	device := utils.ParseUserAgent(utils.GetUserAgent(c))
	h.log.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"ip":          utils.GetRealIP(c),
		"device_type": device.DeviceType,
		"os":          device.OS,
		"browser":     device.Browser,
	}).Info("User logged in")

	h.sendTokenResponse(c, user)
}

// GetMe handles GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	actor := middleware.MustGetActor(c)

	user, err := h.userRepository.GetByID(actor.ID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(c, http.StatusNotFound, "No user found with id of "+actor.ID.String())
		return
	}
	if err != nil {
		h.log.WithError(err).Error("Failed to look up user")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	respondData(c, http.StatusOK, user)
}

// sendTokenResponse issues the access and refresh token pair
func (h *AuthHandler) sendTokenResponse(c *gin.Context, user *models.User) {
	accessToken, err := h.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		h.log.WithError(err).Error("Failed to generate access token")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		h.log.WithError(err).Error("Failed to generate refresh token")
		respondError(c, http.StatusInternalServerError, "Unexpected Error")
		return
	}

	c.JSON(http.StatusOK, TokenResponse{
		Success:      true,
		Token:        accessToken,
		RefreshToken: refreshToken,
	})
}
