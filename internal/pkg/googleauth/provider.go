// Package googleauth exchanges a service-account JWT assertion for a
// Google API access token.
package googleauth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	grantType       = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	assertionTTL = time.Hour
	// Tokens are refreshed a minute before they expire.
	expiryLeeway = time.Minute
)

type Config struct {
	Email string
	Key   *rsa.PrivateKey
	Scope string
}

// Provider mints and caches access tokens. Safe for concurrent use.
type Provider struct {
	cfg        Config
	httpClient *http.Client

	// Overridable for testing.
	tokenURL string
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" || cfg.Key == nil {
		return nil, fmt.Errorf("google credentials missing")
	}
	return &Provider{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokenURL:   defaultTokenURL,
		now:        time.Now,
	}, nil
}

type assertionClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Token returns a valid access token, reusing the cached one until it
// nears expiry.
func (p *Provider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && p.now().Before(p.expires.Add(-expiryLeeway)) {
		return p.token, nil
	}

	assertion, err := p.signAssertion()
	if err != nil {
		return "", fmt.Errorf("signing assertion: %w", err)
	}

	token, ttl, err := p.exchange(ctx, assertion)
	if err != nil {
		return "", err
	}

	p.token = token
	p.expires = p.now().Add(ttl)
	return token, nil
}

func (p *Provider) signAssertion() (string, error) {
	now := p.now()
	claims := &assertionClaims{
		Scope: p.cfg.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    p.cfg.Email,
			Audience:  []string{p.tokenURL},
			ExpiresAt: jwt.NewNumericDate(now.Add(assertionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return tok.SignedString(p.cfg.Key)
}

func (p *Provider) exchange(ctx context.Context, assertion string) (string, time.Duration, error) {
	form := url.Values{
		"grant_type": {grantType},
		"assertion":  {assertion},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("sending token request: %w", err)
	}
	defer resp.Body.Close()

	var body struct {
		AccessToken      string `json:"access_token"`
		ExpiresIn        int    `json:"expires_in"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, fmt.Errorf("decoding token response: %w", err)
	}

	if body.AccessToken == "" {
		if body.ErrorDescription != "" {
			return "", 0, fmt.Errorf("token exchange failed: %s", body.ErrorDescription)
		}
		return "", 0, fmt.Errorf("token exchange failed: status %d", resp.StatusCode)
	}

	ttl := time.Duration(body.ExpiresIn) * time.Second
	if ttl == 0 {
		ttl = assertionTTL
	}
	return body.AccessToken, ttl, nil
}
