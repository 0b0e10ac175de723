// internal/nocodb/client.go
//
// Minimal client for the NocoDB v2 table API. Every record this service
// serves lives in NocoDB; this package is the only place that talks to it.
package nocodb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/autorunai/moto-backend/internal/config"
)

// ErrRecordNotFound is returned when a single-record lookup hits a 404.
// List queries with no matches return an empty list, not this error.
var ErrRecordNotFound = errors.New("nocodb: record not found")

// APIError is any non-2xx answer from NocoDB other than a record 404.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nocodb: unexpected status %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewClient(cfg config.NocoDBConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
	}
}

// Query carries the NocoDB list parameters. Where uses NocoDB's filter
// syntax, e.g. "(Activo,eq,1)~and(Marca,eq,TVS)". Sort is a column name,
// prefixed with "-" for descending.
type Query struct {
	Where  string
	Sort   string
	Limit  int
	Offset int
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Where != "" {
		v.Set("where", q.Where)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

// List fetches records matching the query and decodes the NocoDB list
// envelope into out (a *models.ListResponse[T]).
func (c *Client) List(ctx context.Context, table string, q Query, out any) error {
	endpoint := c.recordsURL(table)
	if params := q.values().Encode(); params != "" {
		endpoint += "?" + params
	}
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

// GetRecord fetches one record by its NocoDB row id.
func (c *Client) GetRecord(ctx context.Context, table string, id int, out any) error {
	return c.do(ctx, http.MethodGet, c.recordsURL(table)+"/"+strconv.Itoa(id), nil, out)
}

// CreateRecord inserts a record and decodes the created row into out.
func (c *Client) CreateRecord(ctx context.Context, table string, body any, out any) error {
	return c.do(ctx, http.MethodPost, c.recordsURL(table), body, out)
}

// UpdateRecord patches the given fields of one record. NocoDB expects the
// row id inside the PATCH body, not in the path.
func (c *Client) UpdateRecord(ctx context.Context, table string, id int, fields map[string]any, out any) error {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["Id"] = id
	return c.do(ctx, http.MethodPatch, c.recordsURL(table), body, out)
}

// DeleteRecord permanently removes a record. Prefer the status columns;
// this is only used by the admin hard-delete path.
func (c *Client) DeleteRecord(ctx context.Context, table string, id int) error {
	return c.do(ctx, http.MethodDelete, c.recordsURL(table)+"/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) recordsURL(table string) string {
	return fmt.Sprintf("%s/api/v2/tables/%s/records", c.baseURL, table)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("nocodb: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("nocodb: build request: %w", err)
	}
	req.Header.Set("xc-token", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nocodb: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(start).Milliseconds(),
	}).Debug("NocoDB request")

	if resp.StatusCode == http.StatusNotFound {
		return ErrRecordNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nocodb: decode response: %w", err)
	}
	return nil
}
