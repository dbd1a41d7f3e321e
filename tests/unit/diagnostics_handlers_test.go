package handlers_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cardkeep/cardkeep-api/internal/handlers"
	"github.com/cardkeep/cardkeep-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newDiagnosticsApp(db *gorm.DB, userID string) *fiber.App {
	app := fiber.New()
	handler := &handlers.DiagnosticsHandler{DB: db}
	app.Get("/api/test-simple", handler.TestSimple)
	if userID != "" {
		app.Use(authAs(userID))
	}
	app.Get("/api/test-db", handler.TestDB)
	return app
}

// TestTestSimple verifies the reachability probe needs no session
func TestTestSimple(t *testing.T) {
	db := setupTestDB(t)
	app := newDiagnosticsApp(db, "")

	req := httptest.NewRequest("GET", "/api/test-simple", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 200)

	var result struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Timestamp string `json:"timestamp"`
	}
	helpers.ParseJSON(t, resp, &result)

	if !result.Success {
		t.Error("Expected success to be true")
	}
	if result.Message != "API is reachable" {
		t.Errorf("Unexpected message: %q", result.Message)
	}
	if _, err := time.Parse(time.RFC3339, result.Timestamp); err != nil {
		t.Errorf("Expected RFC3339 timestamp, got %q", result.Timestamp)
	}
}

// TestTestDBUnauthorized verifies the integrity report is session-gated
func TestTestDBUnauthorized(t *testing.T) {
	db := setupTestDB(t)
	app := newDiagnosticsApp(db, "")

	req := httptest.NewRequest("GET", "/api/test-db", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 401)
}

// TestTestDBOrphanScenario verifies a card pointing at a missing definition
// is reported as an orphan, not an error
func TestTestDBOrphanScenario(t *testing.T) {
	db := setupTestDB(t)

	orphanID := helpers.CreateTestUserCard(t, db, testUserID, "no-such-definition", false)

	app := newDiagnosticsApp(db, testUserID)
	req := httptest.NewRequest("GET", "/api/test-db", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 200)

	var report struct {
		TotalUserCards  int      `json:"totalUserCards"`
		OrphanedCards   int      `json:"orphanedCards"`
		ValidCards      int      `json:"validCards"`
		OrphanedCardIds []string `json:"orphanedCardIds"`
		UserID          string   `json:"userId"`
	}
	helpers.ParseJSON(t, resp, &report)

	if report.TotalUserCards != 1 {
		t.Errorf("Expected totalUserCards=1, got %d", report.TotalUserCards)
	}
	if report.OrphanedCards != 1 {
		t.Errorf("Expected orphanedCards=1, got %d", report.OrphanedCards)
	}
	if report.ValidCards != 0 {
		t.Errorf("Expected validCards=0, got %d", report.ValidCards)
	}
	if len(report.OrphanedCardIds) != 1 || report.OrphanedCardIds[0] != orphanID {
		t.Errorf("Expected orphanedCardIds=[%s], got %v", orphanID, report.OrphanedCardIds)
	}
	if report.UserID != testUserID {
		t.Errorf("Expected userId=%s, got %s", testUserID, report.UserID)
	}
}

// TestTestDBSampleCap verifies the valid-card sample is capped at five
func TestTestDBSampleCap(t *testing.T) {
	db := setupTestDB(t)

	defID := helpers.CreateTestCardDefinition(t, db, "Stone Golem", "core")
	for i := 0; i < 7; i++ {
		helpers.CreateTestUserCard(t, db, testUserID, defID, false)
	}

	app := newDiagnosticsApp(db, testUserID)
	req := httptest.NewRequest("GET", "/api/test-db", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 200)

	var report struct {
		TotalUserCards   int                      `json:"totalUserCards"`
		ValidCards       int                      `json:"validCards"`
		OrphanedCards    int                      `json:"orphanedCards"`
		SampleValidCards []map[string]interface{} `json:"sampleValidCards"`
	}
	helpers.ParseJSON(t, resp, &report)

	if report.TotalUserCards != 7 {
		t.Errorf("Expected totalUserCards=7, got %d", report.TotalUserCards)
	}
	if report.ValidCards != 7 {
		t.Errorf("Expected validCards=7, got %d", report.ValidCards)
	}
	if report.OrphanedCards != 0 {
		t.Errorf("Expected orphanedCards=0, got %d", report.OrphanedCards)
	}
	if len(report.SampleValidCards) != 5 {
		t.Errorf("Expected 5 sample cards, got %d", len(report.SampleValidCards))
	}
}
