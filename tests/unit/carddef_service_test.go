package handlers_test

import (
	"fmt"
	"testing"

	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/tests/helpers"
)

// TestListCardDefinitionsFilterAndPage verifies set filtering, paging, and
// the total count reflecting the filter rather than the page
func TestListCardDefinitionsFilterAndPage(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 8; i++ {
		helpers.CreateTestCardDefinition(t, db, fmt.Sprintf("Core Card %d", i), "core")
	}
	for i := 0; i < 3; i++ {
		helpers.CreateTestCardDefinition(t, db, fmt.Sprintf("Promo Card %d", i), "promo")
	}

	page, err := services.ListCardDefinitions(db, "core", 5, 0)
	if err != nil {
		t.Fatalf("Failed to list definitions: %v", err)
	}
	if page.Total != 8 {
		t.Errorf("Expected total=8 for core set, got %d", page.Total)
	}
	if len(page.Definitions) != 5 {
		t.Errorf("Expected 5 definitions on first page, got %d", len(page.Definitions))
	}

	rest, err := services.ListCardDefinitions(db, "core", 5, 5)
	if err != nil {
		t.Fatalf("Failed to list second page: %v", err)
	}
	if len(rest.Definitions) != 3 {
		t.Errorf("Expected 3 definitions on second page, got %d", len(rest.Definitions))
	}

	all, err := services.ListCardDefinitions(db, "", 50, 0)
	if err != nil {
		t.Fatalf("Failed to list unfiltered: %v", err)
	}
	if all.Total != 11 {
		t.Errorf("Expected total=11 unfiltered, got %d", all.Total)
	}
}

// TestListCardDefinitionsLimitClamp verifies out-of-range limits fall back
// to the default page size
func TestListCardDefinitionsLimitClamp(t *testing.T) {
	db := setupTestDB(t)

	page, err := services.ListCardDefinitions(db, "", 0, 0)
	if err != nil {
		t.Fatalf("Failed with zero limit: %v", err)
	}
	if page.Limit != 50 {
		t.Errorf("Expected zero limit normalized to 50, got %d", page.Limit)
	}

	page, err = services.ListCardDefinitions(db, "", 10000, 0)
	if err != nil {
		t.Fatalf("Failed with oversized limit: %v", err)
	}
	if page.Limit != 50 {
		t.Errorf("Expected oversized limit normalized to 50, got %d", page.Limit)
	}

	page, err = services.ListCardDefinitions(db, "", 25, -5)
	if err != nil {
		t.Fatalf("Failed with negative offset: %v", err)
	}
	if page.Offset != 0 {
		t.Errorf("Expected negative offset normalized to 0, got %d", page.Offset)
	}
}
