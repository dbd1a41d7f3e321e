package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/handlers"
	"github.com/cardkeep/cardkeep-api/internal/services"
	"github.com/cardkeep/cardkeep-api/tests/helpers"
	"github.com/gofiber/fiber/v2"
)

// upstreamCall captures what the stub pack function received
type upstreamCall struct {
	Authorization string
	Body          map[string]interface{}
}

func newPackApp(upstreamURL, userID string) *fiber.App {
	cfg := &config.Config{
		PackFunctionURL: upstreamURL,
		PackServiceKey:  "test-service-key",
	}
	app := fiber.New()
	handler := &handlers.PackHandler{Packs: services.NewPackClient(cfg)}
	if userID != "" {
		app.Use(authAs(userID))
	}
	app.Post("/api/open-pack", handler.OpenPack)
	return app
}

func stubPackFunction(t *testing.T, status int, body string, lastCall *upstreamCall) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastCall != nil {
			lastCall.Authorization = r.Header.Get("Authorization")
			raw, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(raw, &lastCall.Body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func openPackRequest(t *testing.T, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/open-pack", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// TestOpenPackPassthrough verifies the upstream response body and status are
// relayed verbatim, and the service key plus caller identity are forwarded
func TestOpenPackPassthrough(t *testing.T) {
	var call upstreamCall
	upstreamBody := `{"cards":[{"id":"c1","rarity":"rare"}],"setCode":"core"}`
	upstream := stubPackFunction(t, 200, upstreamBody, &call)
	defer upstream.Close()

	app := newPackApp(upstream.URL, testUserID)
	resp, err := app.Test(openPackRequest(t, map[string]interface{}{
		"set_code": "core",
		"quantity": 2,
	}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 200)

	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != upstreamBody {
		t.Errorf("Expected verbatim upstream body, got %s", string(raw))
	}

	if call.Authorization != "Bearer test-service-key" {
		t.Errorf("Expected service key auth header, got %q", call.Authorization)
	}
	if call.Body["userId"] != testUserID {
		t.Errorf("Expected userId=%s forwarded, got %v", testUserID, call.Body["userId"])
	}
	if call.Body["setCode"] != "core" {
		t.Errorf("Expected setCode forwarded, got %v", call.Body["setCode"])
	}
	if qty, ok := call.Body["quantity"].(float64); !ok || qty != 2 {
		t.Errorf("Expected quantity=2 forwarded, got %v", call.Body["quantity"])
	}
}

// TestOpenPackUpstreamError verifies upstream failures are relayed, not masked
func TestOpenPackUpstreamError(t *testing.T) {
	upstream := stubPackFunction(t, 503, `{"error":"pack service drained"}`, nil)
	defer upstream.Close()

	app := newPackApp(upstream.URL, testUserID)
	resp, err := app.Test(openPackRequest(t, map[string]interface{}{"set_code": "core"}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 503)

	raw, _ := io.ReadAll(resp.Body)
	if string(raw) != `{"error":"pack service drained"}` {
		t.Errorf("Expected verbatim upstream error body, got %s", string(raw))
	}
}

// TestOpenPackQuantityDefault verifies an omitted quantity becomes one
func TestOpenPackQuantityDefault(t *testing.T) {
	var call upstreamCall
	upstream := stubPackFunction(t, 200, `{"cards":[]}`, &call)
	defer upstream.Close()

	app := newPackApp(upstream.URL, testUserID)
	resp, err := app.Test(openPackRequest(t, map[string]interface{}{"set_code": "core"}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 200)
	if qty, ok := call.Body["quantity"].(float64); !ok || qty != 1 {
		t.Errorf("Expected quantity defaulted to 1, got %v", call.Body["quantity"])
	}
}

// TestOpenPackRejectsInvalidBody verifies schema violations never reach upstream
func TestOpenPackRejectsInvalidBody(t *testing.T) {
	var call upstreamCall
	upstream := stubPackFunction(t, 200, `{"cards":[]}`, &call)
	defer upstream.Close()

	app := newPackApp(upstream.URL, testUserID)

	cases := []map[string]interface{}{
		{},                                      // missing set_code
		{"set_code": ""},                        // too short
		{"set_code": "core", "quantity": 0},     // below minimum
		{"set_code": "core", "quantity": 13},    // above maximum
		{"set_code": "core", "extra": "nope"},   // unknown field
		{"set_code": "core", "quantity": "two"}, // wrong type
	}

	for i, payload := range cases {
		resp, err := app.Test(openPackRequest(t, payload))
		if err != nil {
			t.Fatalf("Case %d: failed to execute request: %v", i, err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("Case %d: expected 400, got %d", i, resp.StatusCode)
		}
	}

	if call.Authorization != "" {
		t.Error("Expected no upstream call for invalid bodies")
	}
}

// TestOpenPackMethodNotAllowed verifies non-POST methods are refused with 405
// under the server's full route arrangement: error handler installed, the
// route registered in the /api group and no trailing catch-all to shadow the
// router's method check
func TestOpenPackMethodNotAllowed(t *testing.T) {
	upstream := stubPackFunction(t, 200, `{"cards":[]}`, nil)
	defer upstream.Close()

	cfg := &config.Config{
		PackFunctionURL: upstream.URL,
		PackServiceKey:  "test-service-key",
	}
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})
	handler := &handlers.PackHandler{Packs: services.NewPackClient(cfg)}
	api := app.Group("/api")
	api.Post("/open-pack", authAs(testUserID), handler.OpenPack)

	for _, method := range []string{"GET", "PUT", "DELETE", "PATCH"} {
		req := httptest.NewRequest(method, "/api/open-pack", nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("%s: failed to execute request: %v", method, err)
		}
		if resp.StatusCode != 405 {
			t.Errorf("%s /api/open-pack: expected 405, got %d", method, resp.StatusCode)
		}
	}

	// Unknown paths still get the fixed 404 body through the error handler
	req := httptest.NewRequest("GET", "/api/no-such-thing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
	helpers.AssertErrorBody(t, resp, "Resource not found")
}

// TestOpenPackUnauthorized verifies no session means no upstream call
func TestOpenPackUnauthorized(t *testing.T) {
	var call upstreamCall
	upstream := stubPackFunction(t, 200, `{"cards":[]}`, &call)
	defer upstream.Close()

	app := newPackApp(upstream.URL, "")
	resp, err := app.Test(openPackRequest(t, map[string]interface{}{"set_code": "core"}))
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}

	helpers.AssertStatus(t, resp, 401)
	if call.Authorization != "" {
		t.Error("Expected no upstream call without a session")
	}
}
