package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/damon-houk/plaid-stripe-link/internal/domain/entity"
	"github.com/damon-houk/plaid-stripe-link/internal/domain/service"
	"github.com/damon-houk/plaid-stripe-link/internal/infrastructure/logger"
)

const (
	publicTokenExchangePath = "item/public_token/exchange"
	stripeBankAccountPath   = "processor/stripe/bank_account_token/create"

	defaultTimeout = 10 * time.Second
)

// HTTPClient is the transport used to reach Plaid
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements the Plaid API interface
type Client struct {
	clientID    string
	secret      string
	environment entity.Environment
	host        string
	httpClient  HTTPClient
	logger      logger.Logger
}

var _ service.PlaidAPI = (*Client)(nil)

// Option customizes a Client at construction
type Option func(*Client)

// WithHTTPClient replaces the default transport
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewClient creates a Plaid client for the named environment. An empty
// environment selects the sandbox.
func NewClient(clientID, secret, environment string, opts ...Option) (*Client, error) {
	env, err := entity.ParseEnvironment(environment)
	if err != nil {
		return nil, &Error{
			Kind:    ConfigurationError,
			Message: "Invalid Plaid environment",
			Err:     err,
		}
	}

	c := &Client{
		clientID:    clientID,
		secret:      secret,
		environment: env,
		host:        env.Host(),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		logger:      logger.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithField("plaid_environment", env.String())

	return c, nil
}

// IsEnvironment reports whether the client targets the named environment
func (c *Client) IsEnvironment(name string) bool {
	return c.environment == entity.Environment(name)
}

func (c *Client) IsSandbox() bool {
	return c.IsEnvironment(string(entity.Sandbox))
}

func (c *Client) IsDevelopment() bool {
	return c.IsEnvironment(string(entity.Development))
}

func (c *Client) IsProduction() bool {
	return c.IsEnvironment(string(entity.Production))
}

// Host returns the resolved API host, including the trailing slash
func (c *Client) Host() string {
	return c.host
}

func (c *Client) Environment() entity.Environment {
	return c.environment
}

// GetStripeBankAccount exchanges the public token for an access token and
// uses it to create a Stripe bank account token for accountID.
func (c *Client) GetStripeBankAccount(ctx context.Context, publicToken, accountID string) (string, error) {
	accessToken, err := c.exchangePublicToken(ctx, publicToken)
	if err != nil {
		return "", err
	}

	resp, err := c.requestEndpoint(ctx, http.MethodPost, stripeBankAccountPath, map[string]interface{}{
		"access_token": accessToken,
		"account_id":   accountID,
	})
	if err != nil {
		return "", err
	}

	token, ok := resp.stringField("stripe_bank_account_token")
	if resp.StatusCode != http.StatusOK || !ok {
		return "", &Error{
			Kind:     APIError,
			Response: resp,
			Message:  "Error attempting to exchange access_token for Stripe bank_account_token: " + resp.RawBody,
		}
	}

	return token, nil
}

// exchangePublicToken trades a short-lived public token for a durable access token
func (c *Client) exchangePublicToken(ctx context.Context, publicToken string) (string, error) {
	resp, err := c.requestEndpoint(ctx, http.MethodPost, publicTokenExchangePath, map[string]interface{}{
		"public_token": publicToken,
	})
	if err != nil {
		return "", err
	}

	token, ok := resp.stringField("access_token")
	if resp.StatusCode != http.StatusOK || !ok {
		return "", &Error{
			Kind:     APIError,
			Response: resp,
			Message:  "Error attempting to exchange public_token for access token: " + resp.RawBody,
		}
	}

	return token, nil
}

// requestEndpoint sends body, with the client credentials injected, to host+endpoint.
// Credentials are written last so body can never replace them.
func (c *Client) requestEndpoint(ctx context.Context, method, endpoint string, body map[string]interface{}) (*Response, error) {
	payload := make(map[string]interface{}, len(body)+2)
	for k, v := range body {
		payload[k] = v
	}
	payload["client_id"] = c.clientID
	payload["secret"] = c.secret

	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: TransportError, Message: "failed to encode request body", Err: err}
	}

	reqURL := c.host + endpoint
	req, err := http.NewRequestWithContext(ctx, method, reqURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, &Error{Kind: TransportError, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Plaid request failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
		return nil, &Error{Kind: TransportError, Message: "failed to execute request to " + endpoint, Err: err}
	}
	defer func() {
		if closeErr := httpResp.Body.Close(); closeErr != nil {
			c.logger.Debug("Error closing response body", map[string]interface{}{
				"endpoint": endpoint,
				"error":    closeErr.Error(),
			})
		}
	}()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &Error{Kind: TransportError, Message: "failed to read response body from " + endpoint, Err: err}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		RawBody:    string(raw),
	}
	var parsed map[string]interface{}
	if json.Unmarshal(raw, &parsed) == nil {
		resp.Body = parsed
	}

	c.logger.Debug("Plaid response received", map[string]interface{}{
		"endpoint":         endpoint,
		"status":           resp.StatusCode,
		"duration_ms":      time.Since(start).Milliseconds(),
		"plaid_request_id": resp.Body["request_id"],
	})

	return resp, nil
}

func (r *Response) stringField(name string) (string, bool) {
	v, ok := r.Body[name].(string)
	return v, ok
}
