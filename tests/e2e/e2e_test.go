package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/database"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/tests/helpers"
	_ "github.com/go-sql-driver/mysql"
)

// TestE2EWithFullStack tests the entire service stack
func TestE2EWithFullStack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E test in short mode")
	}

	ctx := context.Background()

	tc, err := helpers.CreateAllTestContainers(t)
	if err != nil {
		t.Fatalf("Failed to start test containers: %v", err)
	}
	defer tc.Terminate(t)

	apiHost, _ := tc.CardKeepContainer.Host(ctx)
	apiPort, _ := tc.CardKeepContainer.MappedPort(ctx, "3000")
	baseURL := fmt.Sprintf("http://%s:%s", apiHost, apiPort.Port())

	// Wait a bit for everything to stabilize
	time.Sleep(5 * time.Second)

	// Run E2E tests
	t.Run("HealthCheck", func(t *testing.T) {
		testHealthCheck(t, tc)
	})

	t.Run("PrometheusMetrics", func(t *testing.T) {
		testPrometheusMetrics(t, baseURL)
	})

	t.Run("SwaggerUI", func(t *testing.T) {
		testSwaggerUI(t, baseURL)
	})

	t.Run("ReachabilityProbe", func(t *testing.T) {
		testReachabilityProbe(t, baseURL)
	})

	t.Run("SessionGating", func(t *testing.T) {
		testSessionGating(t, baseURL)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		testUnknownRoute(t, baseURL)
	})
}

func testHealthCheck(t *testing.T, tc *helpers.TestContainers) {
	ctx := context.Background()

	// Point the config at the mapped ports on localhost, not internal
	// container names
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	dbHost, _ := tc.DBContainer.Host(ctx)
	dbPort, _ := tc.DBContainer.MappedPort(ctx, "3306")
	cfg.DBHost = dbHost
	cfg.DBPort = dbPort.Port()

	authzHost, _ := tc.AuthorizerContainer.Host(ctx)
	authzPort, _ := tc.AuthorizerContainer.MappedPort(ctx, "8080")
	cfg.AuthzURL = fmt.Sprintf("http://%s:%s", authzHost, authzPort.Port())

	gormDB, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	defer database.Close(gormDB)

	result := services.HealthCheck(cfg, gormDB)

	if result.Database != "ok" {
		t.Errorf("Expected database ok, got: %+v", result)
	}
	if result.Authorizer != "ok" {
		t.Errorf("Expected authorizer ok, got: %+v", result)
	}

	t.Logf("Health check: status=%s, database=%s, authorizer=%s, packFunction=%s",
		result.Status, result.Database, result.Authorizer, result.PackFunction)
}

func testPrometheusMetrics(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/metrics")
	if err != nil {
		t.Fatalf("Failed to get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for metrics, got %d. Body: %s", resp.StatusCode, string(body))
	}

	t.Logf("Metrics endpoint working, found %d bytes of metrics", len(body))
}

func testSwaggerUI(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/swagger/index.html")
	if err != nil {
		t.Fatalf("Failed to get Swagger UI: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200 for Swagger UI, got %d", resp.StatusCode)
	}
}

func testReachabilityProbe(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/api/test-simple")
	if err != nil {
		t.Fatalf("Failed to reach probe: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if !result.Success {
		t.Error("Expected success to be true")
	}
}

// testSessionGating verifies protected endpoints refuse requests without a
// session cookie across the running stack
func testSessionGating(t *testing.T, baseURL string) {
	protected := []struct {
		method string
		path   string
	}{
		{"GET", "/api/decks"},
		{"POST", "/api/decks"},
		{"GET", "/api/cards"},
		{"GET", "/api/test-db"},
		{"POST", "/api/open-pack"},
		{"GET", "/api/admin/card-definitions"},
	}

	client := &http.Client{Timeout: 10 * time.Second}
	for _, route := range protected {
		req, err := http.NewRequest(route.method, baseURL+route.path, nil)
		if err != nil {
			t.Fatalf("Failed to build request: %v", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("Failed to call %s %s: %v", route.method, route.path, err)
		}

		if resp.StatusCode != 401 {
			t.Errorf("%s %s: expected 401, got %d", route.method, route.path, resp.StatusCode)
		}

		var body struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Errorf("%s %s: response is not valid JSON: %v", route.method, route.path, err)
		} else if body.Error == "" {
			t.Errorf("%s %s: expected an error message", route.method, route.path)
		}
		resp.Body.Close()
	}
}

func testUnknownRoute(t *testing.T, baseURL string) {
	resp, err := http.Get(baseURL + "/api/no-such-thing")
	if err != nil {
		t.Fatalf("Failed to access unknown route: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 404 {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Errorf("Response is not valid JSON: %v", err)
	}
	if body.Error != "Resource not found" {
		t.Errorf("Expected 'Resource not found', got %q", body.Error)
	}
}
