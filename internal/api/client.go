package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/snipstash/snipstash/internal/apperrors"
)

// DefaultTimeout bounds every request. There is no retry: a failed
// request is surfaced to the caller immediately.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response body is kept for
// reporting.
const maxErrorBody = 4 << 10

// Client issues authenticated requests against one snippet server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        *zap.Logger
}

// Option adjusts a Client at construction time.
type Option func(*Client)

// WithTimeout overrides the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient substitutes the underlying http.Client (tests, custom TLS).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// New returns a Client for baseURL authenticating with token. The token
// is attached as a bearer header on every request and never logged.
func New(baseURL, token string, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateSnippet uploads a new snippet as a multipart POST and returns the
// server-assigned snippet.
func (c *Client) CreateSnippet(ctx context.Context, in SnippetInput) (*Snippet, error) {
	body, contentType, err := encodeMultipart(in)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/snippets", nil, body, contentType)
	if err != nil {
		return nil, err
	}
	var s Snippet
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSnippet fetches one snippet with full file contents.
func (c *Client) GetSnippet(ctx context.Context, id string) (*Snippet, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/snippets/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return nil, err
	}
	var s Snippet
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSnippet replaces a snippet via a multipart PUT. The supplied file
// set replaces the stored one entirely; there is no merge.
func (c *Client) UpdateSnippet(ctx context.Context, id string, in SnippetInput) (*Snippet, error) {
	body, contentType, err := encodeMultipart(in)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/snippets/"+url.PathEscape(id), nil, body, contentType)
	if err != nil {
		return nil, err
	}
	var s Snippet
	if err := c.do(req, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSnippet removes a snippet.
func (c *Client) DeleteSnippet(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/snippets/"+url.PathEscape(id), nil, nil, "")
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListPage fetches one page of snippet summaries.
func (c *Client) ListPage(ctx context.Context, page, pageSize int) (*Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	req, err := c.newRequest(ctx, http.MethodGet, "/snippets", query, nil, "")
	if err != nil {
		return nil, err
	}
	var p Page
	if err := c.do(req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Search returns the snippets matching q in server order; callers apply
// their own ordering guarantees on top.
func (c *Client) Search(ctx context.Context, q SearchQuery) ([]Snippet, error) {
	query := url.Values{}
	query.Set("q", q.Text)
	query.Set("sort", string(q.Sort))
	query.Set("search_code", strconv.FormatBool(q.SearchCode))
	req, err := c.newRequest(ctx, http.MethodGet, "/snippets/search", query, nil, "")
	if err != nil {
		return nil, err
	}
	var matches []Snippet
	if err := c.do(req, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}

// newRequest builds a request with the bearer header and a request id
// attached.
func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, "could not build request for "+path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	return req, nil
}

// do executes req, classifies failures and decodes a JSON body into out
// when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("api request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return apperrors.Wrap(apperrors.KindNetwork, "request to "+req.URL.Path+" failed", err)
	}
	defer resp.Body.Close()

	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.classify(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindServer, "could not decode server response", err)
	}
	return nil
}

// classify maps a non-2xx response to the error taxonomy.
func (c *Client) classify(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	excerpt := strings.TrimSpace(string(body))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return apperrors.New(apperrors.KindUnauthorized, "server rejected the token; run `snipstash login <server-url>`")
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.New(apperrors.KindNotFound, "not found")
	case resp.StatusCode == http.StatusTooManyRequests:
		hint := parseRetryAfter(resp.Header.Get("Retry-After"))
		msg := "rate limited by server"
		if raw := resp.Header.Get("Retry-After"); raw != "" {
			msg = "rate limited by server, retry after " + raw
		}
		return apperrors.RateLimit(msg, hint)
	default:
		msg := fmt.Sprintf("server returned HTTP %d", resp.StatusCode)
		return apperrors.Server(resp.StatusCode, msg, excerpt)
	}
}

// parseRetryAfter accepts both forms of the Retry-After header: a delay
// in seconds or an HTTP date.
func parseRetryAfter(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
