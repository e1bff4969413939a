package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"gudbro-backend/config"
	"gudbro-backend/ical"
	"gudbro-backend/models"
	"gudbro-backend/schedule"
	"gudbro-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CalendarHandler serves the merged venue schedule, the "open now" badge
// data, and the iCalendar export/subscription endpoints. It only reads:
// every request re-fetches overrides and events and recomputes, so a stale
// "open" status is never served from a cache.
type CalendarHandler struct {
	DB *gorm.DB
}

// subscribeWindow is the rolling export range served to polling calendar
// clients: one month back, three months ahead.
const (
	subscribeMonthsBack  = 1
	subscribeMonthsAhead = 3
)

func (h *CalendarHandler) GetSchedule(c *gin.Context) {
	location, ok := h.loadLocation(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	days, ok := h.mergedSchedule(c, location, start, end)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *CalendarHandler) GetOpenNow(c *gin.Context) {
	location, ok := h.loadLocation(c)
	if !ok {
		return
	}

	loc, err := time.LoadLocation(location.Timezone)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)

	// Yesterday is needed for overnight windows, the week ahead for the
	// next opening time.
	start := now.AddDate(0, 0, -1)
	end := now.AddDate(0, 0, 7)

	days, ok := h.mergedSchedule(c, location, start, end)
	if !ok {
		return
	}
	if len(days) < 2 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute schedule"})
		return
	}

	yesterday, today := days[0], days[1]
	isOpen := schedule.IsOpenAt(today, &yesterday, now)

	response := gin.H{
		"is_open":           isOpen,
		"date":              today.Date,
		"windows":           today.Windows,
		"hours_unavailable": today.HoursUnavailable,
	}
	if today.OverrideReason != "" {
		response["reason"] = today.OverrideReason
	}

	if !isOpen {
		// NextOpening compares against a clock in the same frame as the
		// merged dates, which carry no zone.
		after := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), now.Minute(), 0, 0, time.UTC)
		if next, found := schedule.NextOpening(days[1:], after); found {
			response["next_open_time"] = next.Format("2006-01-02 15:04")
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *CalendarHandler) ExportICS(c *gin.Context) {
	location, ok := h.loadLocation(c)
	if !ok {
		return
	}

	start, end, ok := dateRangeParams(c)
	if !ok {
		return
	}

	h.serveICS(c, location, start, end, fmt.Sprintf("%s-calendar.ics", location.Slug))
}

// SubscribeICS serves the stable subscription feed. The URL never changes
// for a location; calendar clients poll it and always receive a fresh
// rolling window.
func (h *CalendarHandler) SubscribeICS(c *gin.Context) {
	location, ok := h.loadLocation(c)
	if !ok {
		return
	}

	now := time.Now().UTC()
	start := now.AddDate(0, -subscribeMonthsBack, 0)
	end := now.AddDate(0, subscribeMonthsAhead, 0)

	h.serveICS(c, location, start, end, fmt.Sprintf("%s-calendar.ics", location.Slug))
}

// GetCalendarLinks returns the stable subscribe URL and a one-shot download
// URL for the location's calendar.
func (h *CalendarHandler) GetCalendarLinks(c *gin.Context) {
	location, ok := h.loadLocation(c)
	if !ok {
		return
	}

	baseURL := config.GetEnv("PUBLIC_BASE_URL", "https://api.gudbro.com")
	now := time.Now().UTC()

	c.JSON(http.StatusOK, gin.H{
		"subscribe_url": ical.SubscribeURL(baseURL, location.ID.String()),
		"download_url": ical.DownloadURL(baseURL, location.ID.String(),
			now.AddDate(0, -subscribeMonthsBack, 0), now.AddDate(0, subscribeMonthsAhead, 0)),
	})
}

func (h *CalendarHandler) serveICS(c *gin.Context, location *models.Location, start, end time.Time, filename string) {
	days, ok := h.mergedSchedule(c, location, start, end)
	if !ok {
		return
	}

	venue := ical.Venue{
		ID:       location.ID.String(),
		Name:     location.Name,
		Slug:     location.Slug,
		Timezone: location.Timezone,
	}

	data, err := ical.Export(venue, start, end, days)
	if err != nil {
		switch {
		case errors.Is(err, ical.ErrInvalidRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		case errors.Is(err, ical.ErrUnserializable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Calendar data cannot be exported"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export calendar"})
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", data)
}

// mergedSchedule fetches the three upstream reads and merges them. The
// override and event reads are independent and run concurrently; the merge
// waits on both. On failure it writes the HTTP error and returns ok=false.
func (h *CalendarHandler) mergedSchedule(c *gin.Context, location *models.Location, start, end time.Time) ([]schedule.DaySchedule, bool) {
	weekly, err := h.fetchWeeklyHours(location.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch operating hours"})
		return nil, false
	}

	startStr := start.Format(schedule.DateLayout)
	endStr := end.Format(schedule.DateLayout)

	var (
		overrideRows []models.ScheduleOverride
		eventRows    []models.Event
		overrideErr  error
		eventErr     error
		wg           sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		overrideErr = h.DB.
			Where("location_id = ? AND is_active = ?", location.ID, true).
			Where("date_start <= ? OR recurrence <> 'none'", endStr).
			Order("created_at").
			Find(&overrideRows).Error
	}()
	go func() {
		defer wg.Done()
		eventErr = h.DB.
			Where("location_id = ? AND status = ?", location.ID, models.EventStatusPublished).
			Where("start_date <= ?", endStr).
			Where("(end_date IS NULL AND start_date >= ?) OR end_date >= ?", startStr, startStr).
			Order("start_date, start_time").
			Find(&eventRows).Error
	}()
	wg.Wait()

	if overrideErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule overrides"})
		return nil, false
	}
	if eventErr != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return nil, false
	}

	days, err := schedule.Merge(weekly, convertOverrides(overrideRows), convertEvents(eventRows), start, end)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute schedule"})
		}
		return nil, false
	}
	return days, true
}

func (h *CalendarHandler) fetchWeeklyHours(locationID string) (schedule.WeeklyHours, error) {
	var rows []models.OperatingHours
	if err := h.DB.Where("location_id = ?", locationID).Order("day_of_week").Find(&rows).Error; err != nil {
		return nil, err
	}

	weekly := schedule.WeeklyHours{}
	for _, row := range rows {
		if row.IsClosed {
			continue
		}
		weekly[time.Weekday(row.DayOfWeek)] = schedule.Window{Open: row.OpenTime, Close: row.CloseTime}
	}
	return weekly, nil
}

func (h *CalendarHandler) loadLocation(c *gin.Context) (*models.Location, bool) {
	id := c.Param("locationId")
	var location models.Location
	if err := h.DB.Where("id = ? AND is_active = ?", id, true).First(&location).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return nil, false
	}
	return &location, true
}

func dateRangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	start, err := time.Parse(schedule.DateLayout, c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start must be a valid YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(schedule.DateLayout, c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end must be a valid YYYY-MM-DD date"})
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// convertOverrides validates stored override records and converts them for
// schedule computation. A malformed record is kept as an unexpandable
// override rather than dropped: the affected dates then resolve as
// "hours unavailable" instead of silently falling back to base hours.
func convertOverrides(rows []models.ScheduleOverride) []schedule.Override {
	out := make([]schedule.Override, 0, len(rows))
	for i := range rows {
		o, err := convertOverride(rows[i])
		if err != nil {
			log.Printf("invalid schedule override %s: %v", rows[i].ID, err)
			o = schedule.Override{
				ID:         rows[i].ID.String(),
				Type:       rows[i].OverrideType,
				Name:       rows[i].Name,
				Recurrence: "invalid",
				CreatedAt:  rows[i].CreatedAt,
			}
		}
		out = append(out, o)
	}
	return out
}

func convertOverride(row models.ScheduleOverride) (schedule.Override, error) {
	if err := utils.ValidateOverride(&row); err != nil {
		return schedule.Override{}, err
	}

	dateStart, err := time.Parse(schedule.DateLayout, row.DateStart)
	if err != nil {
		return schedule.Override{}, err
	}

	o := schedule.Override{
		ID:          row.ID.String(),
		Type:        row.OverrideType,
		Name:        row.Name,
		Description: row.Description,
		DateStart:   dateStart,
		Recurrence:  row.Recurrence,
		IsClosed:    row.IsClosed,
		CreatedAt:   row.CreatedAt,
	}
	if row.DateEnd != nil {
		end, err := time.Parse(schedule.DateLayout, *row.DateEnd)
		if err != nil {
			return schedule.Override{}, err
		}
		o.DateEnd = &end
	}
	if row.RecurrenceEndDate != nil {
		recEnd, err := time.Parse(schedule.DateLayout, *row.RecurrenceEndDate)
		if err != nil {
			return schedule.Override{}, err
		}
		o.RecurrenceEnd = &recEnd
	}
	if row.OpenTime != nil && row.CloseTime != nil {
		o.Hours = &schedule.Window{Open: *row.OpenTime, Close: *row.CloseTime}
	}
	return o, nil
}

func convertEvents(rows []models.Event) []schedule.EventInfo {
	out := make([]schedule.EventInfo, 0, len(rows))
	for _, row := range rows {
		out = append(out, schedule.EventInfo{
			ID:          row.ID.String(),
			Title:       row.Title,
			Description: row.Description,
			StartDate:   row.StartDate,
			EndDate:     row.EndDate,
			StartTime:   row.StartTime,
			EndTime:     row.EndTime,
		})
	}
	return out
}
