package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/middleware"
	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/internal/services"
	"github.com/moroccotransfers/booking-backend/internal/utils"
	"github.com/moroccotransfers/booking-backend/pkg/jwt"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles admin authentication
type AuthHandler struct {
	jwtService       *jwt.Service
	rateLimitService *services.RateLimitService
	adminRepo        *database.AdminUserRepository
	sessionRepo      *database.AdminSessionRepository
	logger           *logrus.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	jwtService *jwt.Service,
	rateLimitService *services.RateLimitService,
	adminRepo *database.AdminUserRepository,
	sessionRepo *database.AdminSessionRepository,
	logger *logrus.Logger,
) *AuthHandler {
	return &AuthHandler{
		jwtService:       jwtService,
		rateLimitService: rateLimitService,
		adminRepo:        adminRepo,
		sessionRepo:      sessionRepo,
		logger:           logger,
	}
}

// Login authenticates an admin and issues a token pair
// POST /api/v1/admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	ip := c.ClientIP()

	if err := h.rateLimitService.CheckLoginRateLimit(req.Username, ip); err != nil {
		var rateErr *services.RateLimitError
		if errors.As(err, &rateErr) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limited",
				"message":     rateErr.Message,
				"retry_after": rateErr.RetryAfter,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check rate limit"})
		return
	}

	admin, err := h.adminRepo.GetByUsername(req.Username)
	if err != nil {
		if err == sql.ErrNoRows {
			h.recordFailure(req.Username, ip)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load admin account"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		h.recordFailure(req.Username, ip)
		h.logger.WithFields(logrus.Fields{"username": req.Username, "ip": ip}).Warn("Failed admin login")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(admin.ID, admin.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	// Session audit is best-effort; a failed insert must not block login.
	device := utils.ParseUserAgent(c.Request.UserAgent())
	session := &models.AdminSession{
		AdminID:    admin.ID,
		IPAddress:  ip,
		DeviceType: device.DeviceType,
		OS:         device.OS,
		Browser:    device.Browser,
		UserAgent:  device.Raw,
	}
	if err := h.sessionRepo.Create(session); err != nil {
		h.logger.WithError(err).Warn("Failed to record admin session")
	}
	if err := h.adminRepo.UpdateLastLogin(admin.ID); err != nil {
		h.logger.WithError(err).Warn("Failed to update last login timestamp")
	}

	h.logger.WithFields(logrus.Fields{
		"username": admin.Username,
		"ip":       ip,
		"device":   device.DeviceType,
		"browser":  device.Browser,
	}).Info("Admin logged in")

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"username":      admin.Username,
	})
}

// Refresh exchanges a refresh token for a new token pair
// POST /api/v1/admin/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	accessToken, err := h.jwtService.GenerateAccessToken(claims.AdminID, claims.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	refreshToken, err := h.jwtService.GenerateRefreshToken(claims.AdminID, claims.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Sessions lists the authenticated admin's most recent logins with the
// device info captured at login time
// GET /api/v1/admin/sessions
func (h *AuthHandler) Sessions(c *gin.Context) {
	adminCtx, ok := middleware.GetAdminContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessions, err := h.sessionRepo.GetRecentByAdmin(adminCtx.AdminID, 20)
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch admin sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *AuthHandler) recordFailure(username, ip string) {
	if err := h.rateLimitService.RecordFailedLogin(username, ip); err != nil {
		h.logger.WithError(err).Warn("Failed to record login attempt")
	}
}
