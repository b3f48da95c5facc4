package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"portalempleos/internal/config"
	"portalempleos/internal/models"
)

// HeaderRequestID carries a per-request correlation id to the backend
const HeaderRequestID = "X-Request-ID"

// HeaderAccessToken carries the access token in the default header mode
const HeaderAccessToken = "x-access-token"

// TokenSource supplies access tokens to the client
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

// invalidator is implemented by token sources that can drop a rejected token
type invalidator interface {
	Invalidate()
}

// Client talks to the job-board backend
type Client struct {
	baseURL       string
	headerMode    config.HeaderMode
	basicUsername string
	basicPassword string
	tokens        TokenSource
	httpClient    *http.Client
}

// New creates a backend client
func New(cfg *config.Config, tokens TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:       cfg.BaseURL,
		headerMode:    cfg.HeaderMode,
		basicUsername: cfg.BasicUsername,
		basicPassword: cfg.BasicPassword,
		tokens:        tokens,
		httpClient:    httpClient,
	}
}

// Post sends body as JSON to endpoint and returns the response envelope as is.
// The envelope code is not interpreted here.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (*models.Envelope, error) {
	if body == nil {
		body = struct{}{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		httpErr := &HTTPError{StatusCode: resp.StatusCode, Endpoint: endpoint}
		if httpErr.IsUnauthorized() {
			if inv, ok := c.tokens.(invalidator); ok {
				inv.Invalidate()
			}
		}
		return nil, httpErr
	}

	var env models.Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &env, nil
}

// authorize sets the auth header for the configured header mode
func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.headerMode == config.HeaderModeBasic {
		req.SetBasicAuth(c.basicUsername, c.basicPassword)
		return nil
	}

	if c.tokens == nil {
		return fmt.Errorf("%w: no token source configured", ErrTokenFetch)
	}
	token, err := c.tokens.GetToken(ctx)
	if err != nil {
		return err
	}

	switch c.headerMode {
	case config.HeaderModeBearer:
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	default:
		req.Header.Set(HeaderAccessToken, token)
	}
	return nil
}
