package ical

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gudbro-backend/schedule"
)

// SubscribeURL returns the stable, venue-scoped URL calendar clients poll
// for refreshed schedule data. The URL never changes for a location;
// freshness comes from the client re-polling, so it is safe to paste into
// third-party calendar apps. The webcal scheme makes most clients offer
// "subscribe" instead of a one-time import.
func SubscribeURL(baseURL, locationID string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(baseURL, "https://"), "http://")
	return fmt.Sprintf("webcal://%s/api/calendar/%s/subscribe.ics", host, locationID)
}

// DownloadURL returns the one-shot export URL for an explicit date range.
func DownloadURL(baseURL, locationID string, start, end time.Time) string {
	return fmt.Sprintf("%s/api/calendar/%s/export.ics?start=%s&end=%s",
		strings.TrimSuffix(baseURL, "/"), locationID,
		start.Format(schedule.DateLayout), end.Format(schedule.DateLayout))
}

// GoogleCalendarURL builds the documented add-to-calendar deep link for a
// single event. It is a pure format adapter: no schedule or override data
// is consulted.
func GoogleCalendarURL(info schedule.EventInfo, venueName string) string {
	endDate := info.StartDate
	if info.EndDate != nil {
		endDate = *info.EndDate
	}

	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", info.Title)
	params.Set("dates", fmt.Sprintf("%s/%s",
		googleStamp(info.StartDate, info.StartTime),
		googleStamp(endDate, info.EndTime)))
	if info.Description != "" {
		params.Set("details", info.Description)
	}
	if venueName != "" {
		params.Set("location", venueName)
	}

	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

// googleStamp renders "YYYY-MM-DD" + "HH:MM" as Google's compact
// YYYYMMDDTHHMMSS form.
func googleStamp(date, clock string) string {
	return strings.ReplaceAll(date, "-", "") + "T" + strings.ReplaceAll(clock, ":", "") + "00"
}
