package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"gudbro-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret-for-routes")
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	// The calendar handler queries overrides and events on separate
	// goroutines; with an in-memory database every connection would see
	// its own empty schema, so pin everything to one connection.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	tables := []string{
		`CREATE TABLE IF NOT EXISTS "users" (
			"id" TEXT PRIMARY KEY, "email" TEXT NOT NULL UNIQUE, "password" TEXT NOT NULL,
			"name" TEXT, "role" TEXT DEFAULT 'staff', "location_id" TEXT,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "locations" (
			"id" TEXT PRIMARY KEY, "name" TEXT NOT NULL, "slug" TEXT NOT NULL UNIQUE,
			"timezone" TEXT NOT NULL DEFAULT 'Asia/Ho_Chi_Minh', "address" TEXT, "city" TEXT,
			"phone" TEXT, "email" TEXT, "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "operating_hours" (
			"id" TEXT PRIMARY KEY, "location_id" TEXT NOT NULL, "day_of_week" INTEGER NOT NULL,
			"open_time" TEXT NOT NULL DEFAULT '09:00', "close_time" TEXT NOT NULL DEFAULT '22:00',
			"is_closed" INTEGER DEFAULT 0, "created_at" DATETIME, "updated_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "schedule_overrides" (
			"id" TEXT PRIMARY KEY, "location_id" TEXT NOT NULL, "override_type" TEXT NOT NULL,
			"name" TEXT NOT NULL, "description" TEXT, "date_start" TEXT NOT NULL, "date_end" TEXT,
			"recurrence" TEXT NOT NULL DEFAULT 'none', "recurrence_end_date" TEXT,
			"is_closed" INTEGER DEFAULT 0, "open_time" TEXT, "close_time" TEXT,
			"color" TEXT, "event_id" TEXT, "is_active" INTEGER DEFAULT 1,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
		`CREATE TABLE IF NOT EXISTS "events" (
			"id" TEXT PRIMARY KEY, "location_id" TEXT NOT NULL, "title" TEXT NOT NULL,
			"description" TEXT, "event_type" TEXT DEFAULT 'other', "event_category" TEXT DEFAULT 'special',
			"status" TEXT NOT NULL DEFAULT 'draft', "start_date" TEXT NOT NULL, "end_date" TEXT,
			"start_time" TEXT NOT NULL DEFAULT '18:00', "end_time" TEXT NOT NULL DEFAULT '23:00',
			"requires_reservation" INTEGER DEFAULT 0, "entrance_fee" REAL, "ticket_url" TEXT,
			"image_url" TEXT, "is_public" INTEGER DEFAULT 1, "is_featured" INTEGER DEFAULT 0,
			"created_at" DATETIME, "updated_at" DATETIME, "deleted_at" DATETIME
		)`,
	}

	for _, sql := range tables {
		if err := db.Exec(sql).Error; err != nil {
			t.Fatal(err)
		}
	}
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	db := setupTestDB(t)
	r := gin.New()
	SetupRoutes(r, db)
	return r, db
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicLocationsRoute(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/locations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestPublicCalendarRoute(t *testing.T) {
	r, db := setupRouter(t)
	locationID := uuid.New().String()
	db.Exec(`INSERT INTO locations (id, name, slug, is_active) VALUES (?, 'Venue', 'venue', 1)`, locationID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/calendar/"+locationID+"/schedule?start=2025-06-01&end=2025-06-07", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProtectedRouteRequiresAuth(t *testing.T) {
	r, _ := setupRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/auth/profile", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStaffRouteBlocksUnrelatedRole(t *testing.T) {
	r, _ := setupRouter(t)
	token, _ := utils.GenerateToken(uuid.New(), "user@test.com", "viewer", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/overrides?location_id=loc-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestStaffRouteAllowsAdmin(t *testing.T) {
	r, _ := setupRouter(t)
	token, _ := utils.GenerateToken(uuid.New(), "admin@test.com", "admin", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/admin/overrides?location_id=loc-1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
