package handlers

import (
	"net/http"

	"gudbro-backend/ical"
	"gudbro-backend/models"
	"gudbro-backend/schedule"
	"gudbro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventHandler struct {
	DB *gorm.DB
}

type eventRequest struct {
	LocationID          uuid.UUID `json:"location_id" binding:"required"`
	Title               string    `json:"title" binding:"required"`
	Description         string    `json:"description"`
	EventType           string    `json:"event_type"`
	EventCategory       string    `json:"event_category"`
	StartDate           string    `json:"start_date" binding:"required"`
	EndDate             *string   `json:"end_date"`
	StartTime           string    `json:"start_time" binding:"required"`
	EndTime             string    `json:"end_time" binding:"required"`
	RequiresReservation bool      `json:"requires_reservation"`
	EntranceFee         *float64  `json:"entrance_fee"`
	TicketURL           string    `json:"ticket_url"`
	ImageURL            string    `json:"image_url"`
	IsPublic            *bool     `json:"is_public"`
	IsFeatured          bool      `json:"is_featured"`
}

func (r *eventRequest) apply(e *models.Event) {
	e.LocationID = r.LocationID
	e.Title = r.Title
	e.Description = r.Description
	if r.EventType != "" {
		e.EventType = r.EventType
	}
	if r.EventCategory != "" {
		e.EventCategory = r.EventCategory
	}
	e.StartDate = r.StartDate
	e.EndDate = r.EndDate
	e.StartTime = r.StartTime
	e.EndTime = r.EndTime
	e.RequiresReservation = r.RequiresReservation
	e.EntranceFee = r.EntranceFee
	e.TicketURL = r.TicketURL
	e.ImageURL = r.ImageURL
	if r.IsPublic != nil {
		e.IsPublic = *r.IsPublic
	} else {
		e.IsPublic = true
	}
	e.IsFeatured = r.IsFeatured
}

// GetEvents is the public listing: published, public events only.
func (h *EventHandler) GetEvents(c *gin.Context) {
	locationID := c.Query("location_id")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id is required"})
		return
	}

	query := h.DB.Where("location_id = ? AND status = ? AND is_public = ?",
		locationID, models.EventStatusPublished, true)
	if from := c.Query("from"); from != "" {
		query = query.Where("start_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("start_date <= ?", to)
	}

	var events []models.Event
	if err := query.Order("start_date, start_time").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := h.DB.Where("id = ? AND status = ? AND is_public = ?",
		id, models.EventStatusPublished, true).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}
	c.JSON(http.StatusOK, event)
}

// GetEventCalendarLink returns the one-shot "add to Google Calendar" deep
// link for a single published event.
func (h *EventHandler) GetEventCalendarLink(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := h.DB.Where("id = ? AND status = ?", id, models.EventStatusPublished).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	venueName := ""
	var location models.Location
	if err := h.DB.Where("id = ?", event.LocationID).First(&location).Error; err == nil {
		venueName = location.Name
	}

	info := schedule.EventInfo{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		StartDate:   event.StartDate,
		EndDate:     event.EndDate,
		StartTime:   event.StartTime,
		EndTime:     event.EndTime,
	}

	c.JSON(http.StatusOK, gin.H{"url": ical.GoogleCalendarURL(info, venueName)})
}

// ListEvents is the admin listing: all statuses for a location.
func (h *EventHandler) ListEvents(c *gin.Context) {
	locationID := c.Query("location_id")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location_id is required"})
		return
	}

	query := h.DB.Where("location_id = ?", locationID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var events []models.Event
	if err := query.Order("start_date, start_time").Find(&events).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	var event models.Event
	req.apply(&event)
	event.Status = models.EventStatusDraft

	if err := utils.ValidateEvent(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Create(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := h.DB.Where("id = ?", id).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	req.apply(&event)

	if err := utils.ValidateEvent(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	var event models.Event
	if err := h.DB.Where("id = ?", id).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	if err := h.DB.Delete(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func (h *EventHandler) PublishEvent(c *gin.Context) {
	h.setEventStatus(c, models.EventStatusPublished)
}

func (h *EventHandler) CancelEvent(c *gin.Context) {
	h.setEventStatus(c, models.EventStatusCancelled)
}

func (h *EventHandler) setEventStatus(c *gin.Context, status string) {
	id := c.Param("id")
	var event models.Event
	if err := h.DB.Where("id = ?", id).First(&event).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	event.Status = status
	if err := h.DB.Save(&event).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event status"})
		return
	}
	c.JSON(http.StatusOK, event)
}
