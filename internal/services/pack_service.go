package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cardkeep/cardkeep-api/internal/config"
)

// PackClient forwards validated pack-opening requests to the external
// serverless pack function. Pack contents and odds live entirely in that
// function; this client only relays.
type PackClient struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewPackClient creates a pack client from configuration
func NewPackClient(cfg *config.Config) *PackClient {
	return &PackClient{
		baseURL:    cfg.PackFunctionURL,
		serviceKey: cfg.PackServiceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// PackResult carries the upstream status and raw body so handlers can pass
// both through verbatim
type PackResult struct {
	StatusCode int
	Body       []byte
}

// OpenPack posts the pack request to the external function with the service
// credential. Upstream failures are returned as a PackResult, not an error;
// err is non-nil only when the function could not be reached at all.
func (p *PackClient) OpenPack(userID, setCode string, quantity int) (*PackResult, error) {
	payload := map[string]interface{}{
		"userId":   userID,
		"setCode":  setCode,
		"quantity": quantity,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, p.baseURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.serviceKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pack function request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack function response: %w", err)
	}

	return &PackResult{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
