// Package postgrest implements db.Store over a PostgREST-style REST API
// fronting the hosted place database.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/arcadia-cloud/placedex/internal/db"
)

// Compile-time check: Client implements db.Store.
var _ db.Store = (*Client)(nil)

const defaultTimeout = 10 * time.Second

// Config holds connection parameters for the REST store.
type Config struct {
	// BaseURL is the REST root, e.g. https://project.example.co/rest/v1.
	BaseURL string
	// APIKey is sent as both the apikey header and a bearer token.
	APIKey string
	// PingTable is the table probed by Ping (count-with-limit-1 read).
	PingTable string
	Timeout   time.Duration
}

// Client talks to the REST store.
type Client struct {
	http      *http.Client
	baseURL   string
	apiKey    string
	pingTable string
}

// New creates a REST store client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:    cfg.APIKey,
		pingTable: cfg.PingTable,
	}, nil
}

// Select reads rows from one table. Zero rows is not an error.
func (c *Client) Select(ctx context.Context, q *db.SelectQuery) ([]json.RawMessage, error) {
	u := c.baseURL + "/" + url.PathEscape(q.Table) + "?" + encodeQuery(q)

	body, err := c.do(ctx, http.MethodGet, u, nil, db.OpSelect)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: fmt.Errorf("decode rows: %w: %w", err, db.ErrUnavailable)}
	}
	return rows, nil
}

// Call invokes a named remote function and returns the raw response body.
func (c *Client) Call(ctx context.Context, fn string, args map[string]any) ([]byte, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return nil, &db.Error{Op: db.OpCall, Err: err}
	}

	u := c.baseURL + "/rpc/" + url.PathEscape(fn)
	return c.do(ctx, http.MethodPost, u, payload, db.OpCall)
}

// Ping is the connectivity probe: a count-with-limit-1 read on the ping table.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Select(ctx, &db.SelectQuery{
		Table:   c.pingTable,
		Columns: []string{"id"},
		Limit:   1,
	})
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte, op string) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &db.Error{Op: op, Err: err}
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &db.Error{Op: op, Err: fmt.Errorf("%w: %w", err, db.ErrUnavailable)}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &db.Error{Op: op, Err: fmt.Errorf("read body: %w: %w", err, db.ErrUnavailable)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &db.Error{Op: op, Err: fmt.Errorf(
			"status %d: %s: %w", resp.StatusCode, truncate(data, 200), db.ErrUnavailable,
		)}
	}
	return data, nil
}

// encodeQuery renders a SelectQuery in PostgREST operator syntax:
// select=a,b&col=op.value&or=(c1.op.v1,c2.op.v2)&limit=n
func encodeQuery(q *db.SelectQuery) string {
	params := url.Values{}
	if len(q.Columns) > 0 {
		params.Set("select", strings.Join(q.Columns, ","))
	}
	for _, c := range q.Where {
		params.Set(c.Column, c.Op+"."+c.Value)
	}
	if len(q.AnyOf) > 0 {
		parts := make([]string, len(q.AnyOf))
		for i, c := range q.AnyOf {
			parts[i] = c.Column + "." + c.Op + "." + c.Value
		}
		params.Set("or", "("+strings.Join(parts, ",")+")")
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params.Encode()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
