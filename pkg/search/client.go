package search

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aum-search/aum-web/pkg/env/backend"
	"github.com/aum-search/aum-web/pkg/models"
	"github.com/aum-search/aum-web/pkg/version"
)

const (
	searchPath = "/search?q="

	connectTimeout  = 5 * time.Second
	maxResponseSize = 32 << 20
)

type Client struct {
	BackendEnv *backend.Env

	client *http.Client
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.SetHTTPClient(client)
	}
}

func NewClient(backend *backend.Env, options ...Option) *Client {
	c := &Client{BackendEnv: backend}

	c.client = &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: connectTimeout,
			}).DialContext,
		},
		Timeout: backend.Timeout,
	}

	for _, option := range options {
		option(c)
	}

	return c
}

func (c *Client) SetHTTPClient(client *http.Client) {
	c.client = client
}

// SearchURL appends the search path and the query to the configured base
// address. The base address is used verbatim.
func (c *Client) SearchURL(q string) string {
	if c.BackendEnv.Encoding == backend.EncodingEscape {
		return c.BackendEnv.URL + searchPath + url.QueryEscape(q)
	}
	return c.BackendEnv.URL + searchPath + escapeRaw(q)
}

// Search issues exactly one GET for the query. The HTTP status of the reply
// is not inspected: a backend error payload is returned as data.
func (c *Client) Search(ctx context.Context, q string) (*models.QueryResponse, error) {
	target := c.SearchURL(q)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create request to search backend: %w", err)
	}
	c.setHeaders(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{URL: target, Err: err}
	}

	response, err := models.ParseQueryResponse(body)
	if err != nil {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	return response, nil
}

// Ping checks that the backend answers on its root address. Any status
// below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	target := strings.TrimSuffix(c.BackendEnv.URL, "/") + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("unable to create request to search backend: %w", err)
	}
	c.setHeaders(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("search backend returned status: %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", fmt.Sprintf("AUM/%s", version.Version()))
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}
}

// escapeRaw percent-encodes only the bytes that cannot be carried in a
// request line, the way a browser fetch does for the query component.
// Everything else, "&", "=", "+", "%" and "#" included, is left as is.
func escapeRaw(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c <= ' ' || c >= 0x7f, c == '"', c == '\'', c == '<', c == '>':
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0x0f])
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
