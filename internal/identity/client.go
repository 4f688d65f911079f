package identity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Config carries the provider endpoint settings.
type Config struct {
	BaseURL      string
	APIKey       string
	Timeout      time.Duration
	PollInterval time.Duration
}

// Client talks to the remote identity provider over REST.
type Client struct {
	http         *resty.Client
	pollInterval time.Duration
	logger       *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		httpClient.SetHeader("X-Api-Key", cfg.APIKey)
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = 30 * time.Second
	}

	return &Client{
		http:         httpClient,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for the remote identity. A 401/403 response
// maps to ErrBadCredentials; everything else that is not a 2xx maps to
// ErrUnavailable.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	var ident Identity

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentialsBody{Email: email, Password: password}).
		SetResult(&ident).
		Post("/v1/token")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, ErrBadCredentials
	case resp.IsError():
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return &ident, nil
}

// SignUp creates a remote account and returns its identity.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	var ident Identity

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(credentialsBody{Email: email, Password: password}).
		SetResult(&ident).
		Post("/v1/accounts")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return &ident, nil
}

// SignOut revokes the provider-side session. Callers suppress the error.
func (c *Client) SignOut(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post("/v1/revoke")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return nil
}

// current fetches the provider's view of the active identity. A 204 means
// signed out (nil identity, nil error).
func (c *Client) current(ctx context.Context) (*Identity, error) {
	var ident Identity

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&ident).
		Get("/v1/session")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNoContent:
		return nil, nil
	case resp.IsError():
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return &ident, nil
}

// Subscribe delivers the current identity and every subsequent change to the
// callback (nil identity means signed out). The initial fetch is synchronous
// so an unreachable provider fails the subscription itself; after that,
// polling errors are logged and the last known identity stands.
func (c *Client) Subscribe(ctx context.Context, callback func(*Identity)) error {
	last, err := c.current(ctx)
	if err != nil {
		return err
	}
	callback(last)

	go func() {
		ticker := time.NewTicker(c.pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ident, err := c.current(ctx)
				if err != nil {
					c.logger.Warn("identity poll failed", "error", err)
					continue
				}
				if identityChanged(last, ident) {
					last = ident
					callback(ident)
				}
			}
		}
	}()

	return nil
}

func identityChanged(a, b *Identity) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return a.ID != b.ID
}
