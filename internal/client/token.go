package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/singleflight"

	"portalempleos/internal/config"
	"portalempleos/internal/errcodes"
	"portalempleos/internal/models"
)

// Fetcher obtains a fresh access token from the backend
type Fetcher interface {
	FetchToken(ctx context.Context) (*oauth2.Token, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context) (*oauth2.Token, error)

// FetchToken calls f
func (f FetcherFunc) FetchToken(ctx context.Context) (*oauth2.Token, error) {
	return f(ctx)
}

// TokenStore persists the cached token between runs
type TokenStore interface {
	LoadToken() (*oauth2.Token, error)
	SaveToken(tok *oauth2.Token) error
	ClearToken() error
}

// TokenProviderConfig configures a TokenProvider
type TokenProviderConfig struct {
	Mode        config.AuthMode
	StaticToken string
	Fetcher     Fetcher
	Store       TokenStore       // optional
	Now         func() time.Time // defaults to time.Now
}

// TokenProvider hands out the access token, fetching a new one when the
// cached token has expired. Concurrent refreshes share one fetch.
type TokenProvider struct {
	mode        config.AuthMode
	staticToken string
	fetcher     Fetcher
	store       TokenStore
	now         func() time.Time

	mu     sync.Mutex
	cached *oauth2.Token
	loaded bool

	group singleflight.Group
}

// NewTokenProvider creates a token provider
func NewTokenProvider(cfg TokenProviderConfig) *TokenProvider {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenProvider{
		mode:        cfg.Mode,
		staticToken: cfg.StaticToken,
		fetcher:     cfg.Fetcher,
		store:       cfg.Store,
		now:         now,
	}
}

// GetToken returns a valid access token
func (p *TokenProvider) GetToken(ctx context.Context) (string, error) {
	if p.mode == config.AuthModeStatic {
		return p.staticToken, nil
	}

	if tok := p.current(); tok != nil {
		return tok.AccessToken, nil
	}

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan("token", func() (any, error) {
		// another caller may have refreshed while we waited
		if tok := p.current(); tok != nil {
			return tok, nil
		}
		return p.refresh(fetchCtx)
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrTokenFetch, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(*oauth2.Token).AccessToken, nil
	}
}

// Token implements oauth2.TokenSource.
func (p *TokenProvider) Token() (*oauth2.Token, error) {
	access, err := p.GetToken(context.Background())
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != nil && p.cached.AccessToken == access {
		tok := *p.cached
		return &tok, nil
	}
	return &oauth2.Token{AccessToken: access}, nil
}

// Invalidate drops the cached token so the next call fetches a new one
func (p *TokenProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.loaded = true
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.ClearToken(); err != nil {
			log.Printf("Warning: failed to clear stored token: %v", err)
		}
	}
}

// current returns the cached token if it has not expired
func (p *TokenProvider) current() *oauth2.Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded && p.store != nil {
		tok, err := p.store.LoadToken()
		if err != nil {
			log.Printf("Warning: failed to load stored token: %v", err)
		}
		p.cached = tok
	}
	p.loaded = true

	if p.cached == nil || p.cached.AccessToken == "" {
		return nil
	}
	if !p.now().Before(p.cached.Expiry) {
		return nil
	}
	return p.cached
}

func (p *TokenProvider) refresh(ctx context.Context) (*oauth2.Token, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", ErrTokenFetch)
	}

	tok, err := p.fetcher.FetchToken(ctx)
	if err != nil {
		if !errors.Is(err, ErrTokenFetch) {
			err = fmt.Errorf("%w: %v", ErrTokenFetch, err)
		}
		return nil, err
	}

	p.mu.Lock()
	p.cached = tok
	p.mu.Unlock()

	if p.store != nil {
		if err := p.store.SaveToken(tok); err != nil {
			log.Printf("Warning: failed to persist token: %v", err)
		}
	}
	return tok, nil
}

// BasicFetcher requests tokens with HTTP basic credentials
type BasicFetcher struct {
	URL        string
	Username   string
	Password   string
	HTTPClient *http.Client
}

// NewBasicFetcher creates a fetcher for the configured token endpoint
func NewBasicFetcher(cfg *config.Config, httpClient *http.Client) *BasicFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BasicFetcher{
		URL:        cfg.BaseURL + cfg.Endpoints.Token,
		Username:   cfg.BasicUsername,
		Password:   cfg.BasicPassword,
		HTTPClient: httpClient,
	}
}

// FetchToken performs GET /getToken
func (f *BasicFetcher) FetchToken(ctx context.Context) (*oauth2.Token, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", ErrTokenFetch, err)
	}
	req.SetBasicAuth(f.Username, f.Password)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %w", ErrTokenFetch, &HTTPError{StatusCode: resp.StatusCode, Endpoint: f.URL})
	}

	var body models.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenFetch, ErrParse)
	}

	if !errcodes.IsSuccess(body.Code) {
		return nil, fmt.Errorf("%w: code %s: %s", ErrTokenFetch, body.Code, body.Description)
	}
	if body.Token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrTokenFetch)
	}

	expiry, err := ParseExpiration(body.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenFetch, err)
	}

	return &oauth2.Token{AccessToken: body.Token, Expiry: expiry}, nil
}

var expirationLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
}

// ParseExpiration parses the token_expiration timestamps the backend emits.
// Values without a zone are taken as UTC.
func ParseExpiration(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("missing token expiration")
	}
	for _, layout := range expirationLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized token expiration %q", value)
}
