package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetLocations(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	seedLocation(db, "Venue A")
	seedLocation(db, "Venue B")
	inactive := seedLocation(db, "Closed Venue")
	db.Model(&inactive).Update("is_active", false)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/locations", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	locations := parseResponseArray(w)
	if len(locations) != 2 {
		t.Errorf("expected 2 active locations, got %d", len(locations))
	}
}

func TestGetLocation(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	seedOperatingHours(db, loc.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/locations/"+loc.ID.String(), nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := parseResponse(w)
	if resp["name"] != "Venue A" {
		t.Errorf("expected name Venue A, got %v", resp["name"])
	}
	hours, ok := resp["operating_hours"].([]interface{})
	if !ok || len(hours) != 7 {
		t.Errorf("expected 7 preloaded hour rows, got %v", resp["operating_hours"])
	}
}

func TestGetLocationNotFound(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/locations/00000000-0000-0000-0000-000000000000", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetLocationHours(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	seedOperatingHours(db, loc.ID)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/locations/"+loc.ID.String()+"/hours", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	hours := parseResponseArray(w)
	if len(hours) != 7 {
		t.Fatalf("expected 7 hour rows, got %d", len(hours))
	}
	sunday := hours[0].(map[string]interface{})
	if sunday["day_of_week"].(float64) != 0 {
		t.Errorf("expected rows ordered by day_of_week, got %v first", sunday["day_of_week"])
	}
	if sunday["is_closed"] != true {
		t.Errorf("expected Sunday closed, got %v", sunday["is_closed"])
	}
}

func TestUpdateLocationHours(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	seedOperatingHours(db, loc.ID)
	_, token := seedTestUser(db, "admin@test.com", "admin", nil)

	body := []map[string]interface{}{
		{"day_of_week": 1, "open_time": "10:00", "close_time": "20:00", "is_closed": false},
		{"day_of_week": 2, "open_time": "10:00", "close_time": "20:00", "is_closed": true},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/locations/"+loc.ID.String()+"/hours", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	hours := parseResponseArray(w)
	if len(hours) != 7 {
		t.Fatalf("expected 7 hour rows, got %d", len(hours))
	}
	monday := hours[1].(map[string]interface{})
	if monday["open_time"] != "10:00" || monday["close_time"] != "20:00" {
		t.Errorf("expected Monday 10:00-20:00, got %v-%v", monday["open_time"], monday["close_time"])
	}
	tuesday := hours[2].(map[string]interface{})
	if tuesday["is_closed"] != true {
		t.Errorf("expected Tuesday closed, got %v", tuesday["is_closed"])
	}
}

func TestUpdateLocationHoursCreatesMissingRow(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	_, token := seedTestUser(db, "admin@test.com", "admin", nil)

	body := []map[string]interface{}{
		{"day_of_week": 3, "open_time": "08:00", "close_time": "16:00", "is_closed": false},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/locations/"+loc.ID.String()+"/hours", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	hours := parseResponseArray(w)
	if len(hours) != 1 {
		t.Fatalf("expected 1 hour row, got %d", len(hours))
	}
}

func TestUpdateLocationHoursRejectsBadDay(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	_, token := seedTestUser(db, "admin@test.com", "admin", nil)

	body := []map[string]interface{}{
		{"day_of_week": 7, "open_time": "08:00", "close_time": "16:00"},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/locations/"+loc.ID.String()+"/hours", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateLocationHoursRejectsCloseBeforeOpen(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")
	_, token := seedTestUser(db, "admin@test.com", "admin", nil)

	body := []map[string]interface{}{
		{"day_of_week": 1, "open_time": "20:00", "close_time": "10:00", "is_closed": false},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("PUT", "/api/admin/locations/"+loc.ID.String()+"/hours", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateLocationHoursRequiresStaff(t *testing.T) {
	db := freshDB()
	router := setupLocationRouter(db)

	loc := seedLocation(db, "Venue A")

	body := []map[string]interface{}{
		{"day_of_week": 1, "open_time": "10:00", "close_time": "20:00"},
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PUT", "/api/admin/locations/"+loc.ID.String()+"/hours", body))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
}
