// Package auth turns a service-account credential file into bearer-
// authenticated HTTP clients for the Google APIs this tool calls.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/domdx/glossary-transfer/internal/glossary"
)

// ScopeCloudPlatform covers both the Translation API and Cloud
// Storage.
const ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"

// Credentials is a loaded service-account key file. Only the fields
// the auth flow needs are validated; the raw document is kept for the
// JWT config, which understands the full format.
type Credentials struct {
	Type        string `json:"type"`
	ProjectID   string `json:"project_id"`
	PrivateKey  string `json:"private_key"`
	ClientEmail string `json:"client_email"`
	TokenURI    string `json:"token_uri"`

	raw []byte
}

// Load reads and validates a service-account JSON file. Any problem
// with the file fails with glossary.ErrAuthentication.
func Load(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading credentials file %s: %v", glossary.ErrAuthentication, path, err)
	}
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("%w: parsing credentials file %s: %v", glossary.ErrAuthentication, path, err)
	}
	if c.Type != "service_account" {
		return nil, fmt.Errorf("%w: %s: credential type %q, want \"service_account\"", glossary.ErrAuthentication, path, c.Type)
	}
	for field, value := range map[string]string{
		"private_key":  c.PrivateKey,
		"client_email": c.ClientEmail,
		"token_uri":    c.TokenURI,
	} {
		if value == "" {
			return nil, fmt.Errorf("%w: %s: missing required field %q", glossary.ErrAuthentication, path, field)
		}
	}
	c.raw = data
	return &c, nil
}

// TokenSource builds an oauth2 token source for the cloud-platform
// scope.
func (c *Credentials) TokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	cfg, err := google.JWTConfigFromJSON(c.raw, ScopeCloudPlatform)
	if err != nil {
		return nil, fmt.Errorf("%w: building JWT config: %v", glossary.ErrAuthentication, err)
	}
	return cfg.TokenSource(ctx), nil
}

// HTTPClient returns an *http.Client that injects bearer tokens into
// every request. Tokens are minted per invocation and never cached
// across runs.
func (c *Credentials) HTTPClient(ctx context.Context) (*http.Client, error) {
	ts, err := c.TokenSource(ctx)
	if err != nil {
		return nil, err
	}
	return oauth2.NewClient(ctx, ts), nil
}
