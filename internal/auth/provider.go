package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Identity is the verified identity handed back by the external provider
// after a successful exchange, together with the provider-issued session
// token that becomes our session credential.
type Identity struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// IdentityProvider abstracts the external OAuth identity service so the
// session manager can be tested against a fake.
type IdentityProvider interface {
	// Exchange trades an opaque external session id for a verified
	// identity. It fails with ErrUpstreamAuth when the provider rejects
	// the id or is unreachable.
	Exchange(ctx context.Context, externalSessionID string) (Identity, error)
}

// HTTPIdentityProvider calls the provider's session-data endpoint over
// HTTP. The contract: GET the configured URL with an X-Session-ID header,
// expect a JSON body {email, name, picture?, session_token} on 200 and
// any non-200 status on failure.
type HTTPIdentityProvider struct {
	URL    string
	Client *http.Client
}

// NewHTTPIdentityProvider builds a provider client with a bounded timeout.
func NewHTTPIdentityProvider(url string) *HTTPIdentityProvider {
	return &HTTPIdentityProvider{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Exchange implements IdentityProvider.
func (p *HTTPIdentityProvider) Exchange(ctx context.Context, externalSessionID string) (Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	req.Header.Set("X-Session-ID", externalSessionID)

	resp, err := p.Client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUpstreamAuth, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: provider returned %d", ErrUpstreamAuth, resp.StatusCode)
	}
	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("%w: decode response: %v", ErrUpstreamAuth, err)
	}
	if id.Email == "" || id.SessionToken == "" {
		return Identity{}, fmt.Errorf("%w: incomplete identity payload", ErrUpstreamAuth)
	}
	return id, nil
}
