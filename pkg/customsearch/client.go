// Package customsearch is a small client for the Google Custom Search JSON
// API. A Client issues exactly one GET per Fetch and never retries or
// caches; paging across calls is left to the caller.
package customsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rubiojr/gss/pkg/log"
	"github.com/rubiojr/gss/pkg/version"
)

// MaxNum is the largest "num" the API accepts per call.
const MaxNum = 10

// MaxResults is how deep the API pages into a result set. Calls with
// start+num-1 above it are rejected.
const MaxResults = 100

// DefaultBaseURL is the public Custom Search endpoint.
const DefaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Query describes a single API call. Offset is zero-based.
type Query struct {
	Keywords string
	Language string
	APIKey   string
	EngineID string
	Count    int
	Offset   int
}

// Values encodes the query as URL parameters. Count is clamped to
// [1, MaxNum] and Offset is sent one-based as "start".
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("q", q.Keywords)
	v.Set("key", q.APIKey)
	v.Set("cx", q.EngineID)
	if q.Language != "" {
		v.Set("hl", q.Language)
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	v.Set("start", strconv.Itoa(offset+1))
	v.Set("num", strconv.Itoa(ClampCount(q.Count)))
	return v
}

// ClampCount limits n to what one call may request.
func ClampCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxNum {
		return MaxNum
	}
	return n
}

// Client talks to a Custom Search compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client. Its Timeout is the only timeout
// applied to calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  version.UserAgent(),
		logger:     log.ForService("customsearch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint the client calls.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch performs one API call. Any failure is returned as an *Error.
func (c *Client) Fetch(ctx context.Context, q Query) (*Response, error) {
	reqURL, err := c.requestURL(q)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logger.Debugf("GET start=%d num=%d hl=%q", q.Offset+1, ClampCount(q.Count), q.Language)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		e := &Error{Kind: KindStatus, StatusCode: resp.StatusCode}
		var envelope apiError
		if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
			e.Message = envelope.Error.Message
		}
		return nil, e
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{Kind: KindDecode, Err: err}
	}

	return &out, nil
}

func (c *Client) requestURL(q Query) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	// Keep any parameters a proxying base URL already carries.
	values := u.Query()
	for k, v := range q.Values() {
		values[k] = v
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}
