// Package client is an HTTP client for a running string-analyzer server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rcliao/string-analyzer/internal/errors"
	"github.com/rcliao/string-analyzer/internal/model"
	"github.com/rcliao/string-analyzer/internal/service"
)

const defaultTimeout = 10 * time.Second

// Client calls the string-analyzer HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// APIError is a non-2xx response. It unwraps to the sentinel for the kind
// the server reported, so errors.KindOf works on client errors too.
type APIError struct {
	StatusCode int
	Kind       errors.Kind
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Kind.Sentinel()
}

// Create stores value on the server.
func (c *Client) Create(ctx context.Context, value string) (*model.StringRecord, error) {
	body, err := json.Marshal(map[string]string{"value": value})
	if err != nil {
		return nil, err
	}
	var rec model.StringRecord
	if err := c.do(ctx, http.MethodPost, "/strings", bytes.NewReader(body), http.StatusCreated, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Get fetches the record for value.
func (c *Client) Get(ctx context.Context, value string) (*model.StringRecord, error) {
	var rec model.StringRecord
	if err := c.do(ctx, http.MethodGet, "/strings/"+url.PathEscape(value), nil, http.StatusOK, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes value from the server.
func (c *Client) Delete(ctx context.Context, value string) error {
	return c.do(ctx, http.MethodDelete, "/strings/"+url.PathEscape(value), nil, http.StatusNoContent, nil)
}

// Filter runs a structured query. params uses the API's query parameter names.
func (c *Client) Filter(ctx context.Context, params url.Values) (*service.QueryResult, error) {
	path := "/strings"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var res service.QueryResult
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Search runs a natural-language query.
func (c *Client) Search(ctx context.Context, query string) (*service.NaturalLanguageResult, error) {
	path := "/strings/filter-by-natural-language?" + url.Values{"query": {query}}.Encode()
	var res service.NaturalLanguageResult
	if err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, want int, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "executing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		var payload struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errors.ParseKind(payload.Kind),
			Message:    payload.Error,
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}
