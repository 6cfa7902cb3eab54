// Package ninjaone is a minimal client for the NinjaOne v2 script library API.
package ninjaone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/tacogips/rmmkit/internal/logger"
	"github.com/tacogips/rmmkit/internal/script/model"
)

// API paths relative to the instance URL.
const (
	tokenPath   = "/oauth/token"
	scriptsPath = "/v2/automation/scripts"
)

// bodySnippetLimit bounds the response body kept in errors.
const bodySnippetLimit = 512

// Options configures a Client.
type Options struct {
	// InstanceURL is the platform base URL (e.g. https://eu.ninjarmm.com).
	InstanceURL string
	// ClientID is the OAuth2 client ID.
	ClientID string
	// ClientSecret is the OAuth2 client secret.
	ClientSecret string
	// Scopes are the requested OAuth2 scopes.
	Scopes []string
	// Timeout is the per-request timeout. Zero means 30 seconds.
	Timeout time.Duration
	// HTTPClient overrides the HTTP client (tests).
	HTTPClient *http.Client
}

// Client talks to the script library API. It is not safe for concurrent use.
type Client struct {
	// BaseURL is the instance URL without a trailing slash.
	BaseURL string
	// HTTPClient is the HTTP client for API requests.
	HTTPClient *http.Client

	credentials clientcredentials.Config
	token       *oauth2.Token
}

// NewClient creates a new API client.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.InstanceURL, "/")

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		BaseURL:    base,
		HTTPClient: httpClient,
		credentials: clientcredentials.Config{
			ClientID:     opts.ClientID,
			ClientSecret: opts.ClientSecret,
			TokenURL:     base + tokenPath,
			Scopes:       opts.Scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
	}
}

// Authenticate exchanges the client credentials for a bearer token.
func (c *Client) Authenticate(ctx context.Context) error {
	logger.Debug("requesting access token from %s", c.credentials.TokenURL)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.HTTPClient)
	tok, err := c.credentials.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			return NewAuthError(c.credentials.TokenURL, re.Response.StatusCode, snippet(re.Body), err)
		}
		return NewAuthError(c.credentials.TokenURL, 0, "", err)
	}

	c.token = tok
	return nil
}

// ensureToken authenticates when no valid token is held.
func (c *Client) ensureToken(ctx context.Context) error {
	if c.token != nil && c.token.Valid() {
		return nil
	}
	return c.Authenticate(ctx)
}

// ListScripts fetches every script in the library.
func (c *Client) ListScripts(ctx context.Context) ([]model.RemoteScript, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	url := c.BaseURL + scriptsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewFetchError(url, 0, "", err)
	}
	c.token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewFetchError(url, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewFetchError(url, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewFetchError(url, resp.StatusCode, snippet(body), nil)
	}

	var scripts []model.RemoteScript
	if err := json.Unmarshal(body, &scripts); err != nil {
		return nil, NewFetchError(url, resp.StatusCode, snippet(body), fmt.Errorf("failed to decode script list: %w", err))
	}

	logger.Debug("fetched %d remote scripts", len(scripts))
	return scripts, nil
}

// CreateScript creates a new script.
func (c *Client) CreateScript(ctx context.Context, payload model.ScriptPayload) (*model.RemoteScript, error) {
	return c.send(ctx, "create script", http.MethodPost, c.BaseURL+scriptsPath, payload)
}

// UpdateScript replaces an existing script.
func (c *Client) UpdateScript(ctx context.Context, id int64, payload model.ScriptPayload) (*model.RemoteScript, error) {
	url := fmt.Sprintf("%s%s/%d", c.BaseURL, scriptsPath, id)
	return c.send(ctx, "update script", http.MethodPut, url, payload)
}

// send issues a create or update request. The returned record is nil when
// the server answers without a body.
func (c *Client) send(ctx context.Context, op, method, url string, payload model.ScriptPayload) (*model.RemoteScript, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, NewSyncError(op, url, 0, "", fmt.Errorf("failed to encode payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return nil, NewSyncError(op, url, 0, "", err)
	}
	c.token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewSyncError(op, url, 0, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewSyncError(op, url, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		return nil, NewSyncError(op, url, resp.StatusCode, snippet(body), nil)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	var script model.RemoteScript
	if err := json.Unmarshal(body, &script); err != nil {
		// The write succeeded; an unexpected body is not fatal.
		logger.Debug("%s: ignoring undecodable response body: %v", op, err)
		return nil, nil
	}
	return &script, nil
}

// snippet trims a response body for inclusion in errors.
func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > bodySnippetLimit {
		s = s[:bodySnippetLimit] + "..."
	}
	return s
}
