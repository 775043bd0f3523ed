package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"portfolio-contact/internal/domain"
)

// Submission is the public contact form payload.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// HTTPStatusError captures non-2xx responses from the contact API.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("client: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// Client calls the contact API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Client for the API rooted at baseURL (scheme and host,
// optionally with a path prefix in front of /api/contact).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base url must not be empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) contactURL(suffix string) string {
	return c.baseURL + "/api/contact" + suffix
}

// Submit posts a contact form submission.
func (c *Client) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("client: marshal submission: %w", err)
	}
	u := c.contactURL("")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if _, err := c.do(req, u); err != nil {
		return fmt.Errorf("client: submit: %w", err)
	}
	return nil
}

// List fetches every stored message, newest first.
func (c *Client) List(ctx context.Context) ([]domain.Message, error) {
	u := c.contactURL("/admin")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	raw, err := c.do(req, u)
	if err != nil {
		return nil, fmt.Errorf("client: list: %w", err)
	}
	msgs := make([]domain.Message, 0)
	if err := json.Unmarshal(raw, &msgs); err != nil {
		return nil, fmt.Errorf("client: decode messages: %w", err)
	}
	return msgs, nil
}

// Delete removes a message by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	u := c.contactURL("/" + url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return fmt.Errorf("client: create request: %w", err)
	}
	if _, err := c.do(req, u); err != nil {
		return fmt.Errorf("client: delete: %w", err)
	}
	return nil
}

func (c *Client) do(req *http.Request, u string) ([]byte, error) {
	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        u,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
