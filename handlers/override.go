package handlers

import (
	"net/http"

	"gudbro-backend/models"
	"gudbro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OverrideHandler struct {
	DB *gorm.DB
}

type overrideRequest struct {
	LocationID        uuid.UUID  `json:"location_id" binding:"required"`
	OverrideType      string     `json:"override_type" binding:"required"`
	Name              string     `json:"name" binding:"required"`
	Description       string     `json:"description"`
	DateStart         string     `json:"date_start" binding:"required"`
	DateEnd           *string    `json:"date_end"`
	Recurrence        string     `json:"recurrence"`
	RecurrenceEndDate *string    `json:"recurrence_end_date"`
	IsClosed          bool       `json:"is_closed"`
	OpenTime          *string    `json:"open_time"`
	CloseTime         *string    `json:"close_time"`
	Color             *string    `json:"color"`
	EventID           *uuid.UUID `json:"event_id"`
	IsActive          *bool      `json:"is_active"`
}

func (r *overrideRequest) apply(o *models.ScheduleOverride) {
	o.LocationID = r.LocationID
	o.OverrideType = r.OverrideType
	o.Name = r.Name
	o.Description = r.Description
	o.DateStart = r.DateStart
	o.DateEnd = r.DateEnd
	o.Recurrence = r.Recurrence
	if o.Recurrence == "" {
		o.Recurrence = models.RecurrenceNone
	}
	o.RecurrenceEndDate = r.RecurrenceEndDate
	o.IsClosed = r.IsClosed
	o.OpenTime = r.OpenTime
	o.CloseTime = r.CloseTime
	o.Color = r.Color
	o.EventID = r.EventID
	if r.IsActive != nil {
		o.IsActive = *r.IsActive
	} else {
		o.IsActive = true
	}
}

func (h *OverrideHandler) GetOverrides(c *gin.Context) {
	locationID := c.Query("location_id")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id is required"})
		return
	}

	query := h.DB.Where("location_id = ?", locationID)
	if overrideType := c.Query("type"); overrideType != "" {
		query = query.Where("override_type = ?", overrideType)
	}
	if c.Query("active_only") == "true" {
		query = query.Where("is_active = ?", true)
	}

	var overrides []models.ScheduleOverride
	if err := query.Order("date_start").Find(&overrides).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule overrides"})
		return
	}
	c.JSON(http.StatusOK, overrides)
}

func (h *OverrideHandler) CreateOverride(c *gin.Context) {
	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var override models.ScheduleOverride
	req.apply(&override)

	if err := utils.ValidateOverride(&override); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Create(&override).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create schedule override"})
		return
	}
	c.JSON(http.StatusCreated, override)
}

func (h *OverrideHandler) UpdateOverride(c *gin.Context) {
	id := c.Param("id")
	var override models.ScheduleOverride
	if err := h.DB.Where("id = ?", id).First(&override).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule override not found"})
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	req.apply(&override)

	if err := utils.ValidateOverride(&override); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Save(&override).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update schedule override"})
		return
	}
	c.JSON(http.StatusOK, override)
}

func (h *OverrideHandler) DeleteOverride(c *gin.Context) {
	id := c.Param("id")
	var override models.ScheduleOverride
	if err := h.DB.Where("id = ?", id).First(&override).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule override not found"})
		return
	}

	if err := h.DB.Delete(&override).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete schedule override"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule override deleted successfully"})
}
