package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moroccotransfers/booking-backend/internal/database"
	"github.com/moroccotransfers/booking-backend/internal/models"
	"github.com/moroccotransfers/booking-backend/internal/services"
)

// SettingHandler handles admin settings management
type SettingHandler struct {
	settingRepo   *database.SettingRepository
	settingsCache *services.SettingsCache
}

// NewSettingHandler creates a new SettingHandler
func NewSettingHandler(settingRepo *database.SettingRepository, settingsCache *services.SettingsCache) *SettingHandler {
	return &SettingHandler{
		settingRepo:   settingRepo,
		settingsCache: settingsCache,
	}
}

// GetAll retrieves all settings
// GET /api/v1/admin/settings
func (h *SettingHandler) GetAll(c *gin.Context) {
	settings, err := h.settingRepo.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// GetByKey retrieves a specific setting by key
// GET /api/v1/admin/settings/:key
func (h *SettingHandler) GetByKey(c *gin.Context) {
	setting, err := h.settingRepo.GetByKey(c.Param("key"))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch setting"})
		return
	}

	c.JSON(http.StatusOK, setting)
}

// Update updates a setting's value and refreshes the in-process cache
// PUT /api/v1/admin/settings/:key
func (h *SettingHandler) Update(c *gin.Context) {
	key := c.Param("key")

	var req models.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := h.settingRepo.Update(key, req.Value); err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		return
	}

	if _, err := h.settingsCache.Refresh(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Setting updated but cache refresh failed"})
		return
	}

	setting, err := h.settingRepo.GetByKey(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch updated setting"})
		return
	}

	c.JSON(http.StatusOK, setting)
}
