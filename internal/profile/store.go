package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const usersCollection = "users"

var (
	// ErrNotFound means the document is genuinely absent, as opposed to the
	// store being unreachable. Callers handle the two cases differently.
	ErrNotFound = errors.New("profile document not found")

	ErrUnavailable = errors.New("profile store unavailable")
)

// Document is the remote user profile record keyed by identity id. Role and
// Name may be absent; the session resolver fills defaults.
type Document struct {
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	Role      string     `json:"role,omitempty"`
	Division  string     `json:"division,omitempty"`
	Section   string     `json:"section,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// Config carries the document store endpoint settings.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Store is a REST client for the remote profile document store.
type Store struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewStore(cfg Config, logger *slog.Logger) *Store {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.APIKey != "" {
		httpClient.SetHeader("X-Api-Key", cfg.APIKey)
	}

	return &Store{
		http:   httpClient,
		logger: logger,
	}
}

// GetDocument fetches the profile for the given identity id from the users
// collection.
func (s *Store) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document

	resp, err := s.http.R().
		SetContext(ctx).
		SetResult(&doc).
		Get(fmt.Sprintf("/v1/collections/%s/documents/%s", usersCollection, id))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.IsError():
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return &doc, nil
}

// SetDocument writes (creates or replaces) the profile for the given
// identity id.
func (s *Store) SetDocument(ctx context.Context, id string, doc *Document) error {
	resp, err := s.http.R().
		SetContext(ctx).
		SetBody(doc).
		Put(fmt.Sprintf("/v1/collections/%s/documents/%s", usersCollection, id))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.IsError() {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode())
	}

	return nil
}
