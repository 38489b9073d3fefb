package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/infrastructure/circuitbreaker"
)

const (
	// DefaultAPIEndpoint is used when a request does not carry its regional endpoint.
	DefaultAPIEndpoint = "https://api.amazonalexa.com"

	emailPath = "/v2/accounts/~current/settings/Profile.email"
)

// DefaultAllowedHosts are the regional Alexa API hosts a request may name.
var DefaultAllowedHosts = []string{
	"api.amazonalexa.com",
	"api.eu.amazonalexa.com",
	"api.fe.amazonalexa.com",
}

var (
	// ErrPermissionDenied means the customer has not granted the email permission.
	ErrPermissionDenied = errors.New("profile permission denied")
	// ErrEndpointNotAllowed means the request named an API endpoint outside the allowlist.
	ErrEndpointNotAllowed = errors.New("profile api endpoint not allowed")
)

// Doer is satisfied by *circuitbreaker.HTTPClient and *http.Client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client reads customer profile data from the Alexa Customer Profile API.
// The endpoint comes from the request body, so only https on a default host
// or any scheme on an extra host is accepted.
type Client struct {
	http       Doer
	log        *zap.Logger
	hosts      map[string]struct{}
	extraHosts map[string]struct{}
}

// NewClient creates the profile client. extraHosts are accepted over http or
// https in addition to DefaultAllowedHosts.
func NewClient(doer Doer, log *zap.Logger, extraHosts ...string) *Client {
	if doer == nil {
		doer = circuitbreaker.NewHTTPClient(circuitbreaker.DefaultHTTPClientSettings("customer-profile"), log)
	}
	c := &Client{
		http:       doer,
		log:        log,
		hosts:      make(map[string]struct{}, len(DefaultAllowedHosts)),
		extraHosts: make(map[string]struct{}, len(extraHosts)),
	}
	for _, h := range DefaultAllowedHosts {
		c.hosts[h] = struct{}{}
	}
	for _, h := range extraHosts {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			c.extraHosts[h] = struct{}{}
		}
	}
	return c
}

func (c *Client) endpoint(apiEndpoint string) (string, error) {
	if apiEndpoint == "" {
		return DefaultAPIEndpoint, nil
	}
	u, err := url.Parse(apiEndpoint)
	if err != nil || u.User != nil {
		return "", fmt.Errorf("%w: %q", ErrEndpointNotAllowed, apiEndpoint)
	}
	host := strings.ToLower(u.Hostname())
	if _, ok := c.extraHosts[host]; ok && (u.Scheme == "http" || u.Scheme == "https") {
		return u.Scheme + "://" + u.Host, nil
	}
	if _, ok := c.hosts[host]; ok && u.Scheme == "https" && u.Port() == "" {
		return u.Scheme + "://" + u.Host, nil
	}
	return "", fmt.Errorf("%w: %q", ErrEndpointNotAllowed, apiEndpoint)
}

// GetProfileEmail returns the customer's email address. A 2xx response with an
// empty body yields "" and no error.
func (c *Client) GetProfileEmail(ctx context.Context, apiEndpoint, accessToken string) (string, error) {
	base, err := c.endpoint(apiEndpoint)
	if err != nil {
		c.log.Warn("Rejected profile API endpoint", zap.String("api_endpoint", apiEndpoint))
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+emailPath, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("failed to read profile response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		c.log.Info("Profile email permission missing", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrPermissionDenied, resp.StatusCode)
	case resp.StatusCode == http.StatusNoContent:
		return "", nil
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("profile API returned status %d: %s", resp.StatusCode, body)
	}

	if len(strings.TrimSpace(string(body))) == 0 {
		return "", nil
	}

	var email string
	if err := json.Unmarshal(body, &email); err != nil {
		return "", fmt.Errorf("failed to decode profile email: %w", err)
	}
	return email, nil
}
