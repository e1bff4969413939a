package handlers

import (
	"fmt"
	"net/http"

	"gudbro-backend/models"
	"gudbro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LocationHandler struct {
	DB *gorm.DB
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := h.DB.Preload("OperatingHours").Where("is_active = ?", true).Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch locations"})
		return
	}
	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	id := c.Param("id")
	var location models.Location
	if err := h.DB.Preload("OperatingHours").Where("id = ? AND is_active = ?", id, true).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) GetLocationHours(c *gin.Context) {
	id := c.Param("id")

	var hours []models.OperatingHours
	if err := h.DB.Where("location_id = ?", id).Order("day_of_week").Find(&hours).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operating hours"})
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *LocationHandler) UpdateLocationHours(c *gin.Context) {
	id := c.Param("id")

	var location models.Location
	if err := h.DB.Where("id = ?", id).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var req []struct {
		DayOfWeek int    `json:"day_of_week"`
		OpenTime  string `json:"open_time" binding:"required"`
		CloseTime string `json:"close_time" binding:"required"`
		IsClosed  bool   `json:"is_closed"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	for _, day := range req {
		if day.DayOfWeek < 0 || day.DayOfWeek > 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("day_of_week %d is out of range", day.DayOfWeek)})
			return
		}
		if !utils.ValidClock(day.OpenTime) || !utils.ValidClock(day.CloseTime) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid times for day %d", day.DayOfWeek)})
			return
		}
		// Overnight base windows (close past midnight) are configured via
		// overrides, not weekly hours, so close must follow open here.
		if !day.IsClosed && day.CloseTime <= day.OpenTime {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Close time (%s) must be after open time (%s) for day %d", day.CloseTime, day.OpenTime, day.DayOfWeek),
			})
			return
		}
	}

	for _, day := range req {
		result := h.DB.Model(&models.OperatingHours{}).
			Where("location_id = ? AND day_of_week = ?", location.ID, day.DayOfWeek).
			Updates(map[string]interface{}{
				"open_time":  day.OpenTime,
				"close_time": day.CloseTime,
				"is_closed":  day.IsClosed,
			})
		if result.RowsAffected == 0 {
			h.DB.Create(&models.OperatingHours{
				LocationID: location.ID,
				DayOfWeek:  day.DayOfWeek,
				OpenTime:   day.OpenTime,
				CloseTime:  day.CloseTime,
				IsClosed:   day.IsClosed,
			})
		}
	}

	var hours []models.OperatingHours
	h.DB.Where("location_id = ?", location.ID).Order("day_of_week").Find(&hours)
	c.JSON(http.StatusOK, hours)
}
