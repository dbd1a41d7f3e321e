package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/authorizerdev/authorizer-go"
	"github.com/cardkeep/cardkeep-api/internal/config"
	"github.com/cardkeep/cardkeep-api/internal/types"
	"github.com/cardkeep/cardkeep-api/internal/utils"
)

var (
	authClient *authorizer.AuthorizerClient
	authOnce   sync.Once
)

// IsAuthorizerInitialized returns true if the Authorizer client is initialized
func IsAuthorizerInitialized() bool {
	return authClient != nil
}

// InitAuthorizer initializes the Authorizer client (singleton pattern)
func InitAuthorizer(cfg *config.Config, requestProtocol, requestHost string) error {
	var initErr error

	authOnce.Do(func() {
		// Ping the Authorizer service first
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			initErr = fmt.Errorf("authorizer ping failed: %w", err)
			return
		}

		redirectURL := fmt.Sprintf("%s://%s", requestProtocol, requestHost)
		log.Printf("Initializing Authorizer: authorizerURL=%s, clientID=%s, redirectURL=%s",
			cfg.AuthzURL, cfg.AuthzClientID, redirectURL)

		var err error
		authClient, err = authorizer.NewAuthorizerClient(cfg.AuthzClientID, cfg.AuthzURL, redirectURL, nil)
		if err != nil {
			initErr = fmt.Errorf("failed to create authorizer client: %w", err)
			return
		}
	})

	return initErr
}

// ValidateSession validates a session cookie and resolves the caller identity
func ValidateSession(cookie string, roles []string) (*types.AuthUser, error) {
	if authClient == nil {
		return nil, fmt.Errorf("authorizer client not initialized")
	}

	// Convert roles to []*string
	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	res, err := authClient.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
		Roles:  rolesPtrs,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}

	if res == nil || !res.IsValid {
		return nil, fmt.Errorf("session is not valid")
	}

	return &types.AuthUser{
		ID:    res.User.ID,
		Email: res.User.Email,
	}, nil
}

// AuthSession is the result of exchanging an authorization code
type AuthSession struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AuthProfile is the identity record fetched from the Authorizer after a
// successful code exchange
type AuthProfile struct {
	ID                string `json:"id"`
	Email             string `json:"email"`
	EmailVerified     bool   `json:"email_verified"`
	PreferredUsername string `json:"preferred_username"`
}

// ExchangeCode exchanges an OAuth authorization code for a session at the
// Authorizer token endpoint. The SDK does not expose the token endpoint, so
// this goes over plain HTTP.
func ExchangeCode(cfg *config.Config, code string) (*AuthSession, error) {
	payload := map[string]string{
		"grant_type": "authorization_code",
		"code":       code,
		"client_id":  cfg.AuthzClientID,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	tokenURL := strings.TrimSuffix(cfg.AuthzURL, "/") + "/oauth/token"
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Post(tokenURL, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var session AuthSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w, body: %s", err, string(body))
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token, body: %s", string(body))
	}

	return &session, nil
}

// FetchAuthProfile fetches the profile of the token holder via the Authorizer
// GraphQL endpoint
func FetchAuthProfile(cfg *config.Config, accessToken string) (*AuthProfile, error) {
	query := `{
		profile {
			id
			email
			email_verified
			preferred_username
		}
	}`

	jsonPayload, err := json.Marshal(map[string]interface{}{"query": query})
	if err != nil {
		return nil, err
	}

	graphqlURL := strings.TrimSuffix(cfg.AuthzURL, "/") + "/graphql"
	req, err := http.NewRequest(http.MethodPost, graphqlURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data struct {
			Profile *AuthProfile `json:"profile"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w, body: %s", err, string(body))
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("profile query error: %s", result.Errors[0].Message)
	}
	if result.Data.Profile == nil {
		return nil, fmt.Errorf("no profile in response, body: %s", string(body))
	}

	return result.Data.Profile, nil
}
