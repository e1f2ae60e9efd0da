package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/sweet-shop/internal/models"
)

const defaultTimeout = 10 * time.Second

// HTTPClient implements Client against the catalog service REST API.
type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(hc *HTTPClient) {
		hc.http = c
	}
}

// WithTimeout sets the per-request timeout. A client passed to WithHTTPClient is copied,
// never modified.
func WithTimeout(d time.Duration) Option {
	return func(hc *HTTPClient) {
		c := *hc.http
		c.Timeout = d
		hc.http = &c
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(hc *HTTPClient) {
		hc.token = token
	}
}

func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResult struct {
	Token string `json:"token"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// errorBody covers both error shapes the service can emit.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Login exchanges credentials for a bearer token and keeps it for later calls.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (string, error) {
	var res tokenResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", credentials{username, password}, &res); err != nil {
		return "", err
	}
	c.token = res.Token
	return res.Token, nil
}

// Register creates a regular user account and keeps the returned token.
func (c *HTTPClient) Register(ctx context.Context, username, password string) (string, error) {
	var res tokenResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", credentials{username, password}, &res); err != nil {
		return "", err
	}
	c.token = res.Token
	return res.Token, nil
}

func (c *HTTPClient) List(ctx context.Context) ([]models.Sweet, error) {
	var sweets []models.Sweet
	if err := c.do(ctx, http.MethodGet, "/api/sweets", nil, &sweets); err != nil {
		return nil, err
	}
	return sweets, nil
}

func (c *HTTPClient) Create(ctx context.Context, in SweetInput) (models.Sweet, error) {
	var s models.Sweet
	err := c.do(ctx, http.MethodPost, "/api/sweets", in, &s)
	return s, err
}

func (c *HTTPClient) Update(ctx context.Context, id int64, in SweetInput) (models.Sweet, error) {
	var s models.Sweet
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/sweets/%d", id), in, &s)
	return s, err
}

func (c *HTTPClient) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/sweets/%d", id), nil, nil)
}

func (c *HTTPClient) Restock(ctx context.Context, id int64, quantity int) (models.Sweet, error) {
	var s models.Sweet
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sweets/%d/restock", id), quantityRequest{quantity}, &s)
	return s, err
}

func (c *HTTPClient) Purchase(ctx context.Context, id int64, quantity int) (models.Sweet, error) {
	var s models.Sweet
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/sweets/%d/purchase", id), quantityRequest{quantity}, &s)
	return s, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode, Reason: readReason(resp.Body)}
		log.Printf("catalog %s %s [%s] failed: %d %s", method, path, requestID, resp.StatusCode, apiErr.Reason)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func readReason(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	var eb errorBody
	if json.Unmarshal(data, &eb) == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if eb.Error != "" {
			return eb.Error
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}
