// Package fetch retrieves a page over HTTP and parses it into a document.
//
// Each call makes exactly one attempt. Failures come back as *Error carrying a
// Kind so callers can tell a timeout from a bad status or a dead connection.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"

	"github.com/pfrederiksen/ufcstats/internal/document"
)

const (
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	DefaultTimeout   = 20 * time.Second
)

// Kind classifies a fetch failure.
type Kind int

const (
	NetworkFailure Kind = iota + 1
	HTTPStatus
	Timeout
	ParseFailure
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case HTTPStatus:
		return "http status"
	case Timeout:
		return "timeout"
	case ParseFailure:
		return "parse failure"
	default:
		return "unknown"
	}
}

// Error is returned for every failed fetch.
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int // set for HTTPStatus
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == HTTPStatus:
		return fmt.Sprintf("fetching %s: unexpected status code: %d", e.URL, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("fetching %s: %s: %v", e.URL, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 if err is not a fetch error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// Options configures a Client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	// RequestsPerSecond paces requests. Zero disables pacing.
	RequestsPerSecond float64
	// Headers are sent with every request in addition to User-Agent.
	Headers map[string]string
}

// Client fetches and parses pages.
type Client struct {
	http *resty.Client
}

// New creates a Client. Zero-valued options fall back to the defaults.
func New(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	limiter := rate.NewLimiter(limit, 1)

	httpClient := resty.New()
	httpClient.SetTimeout(opts.Timeout)
	httpClient.SetRetryCount(0)
	httpClient.SetHeader("User-Agent", opts.UserAgent)
	httpClient.SetHeaders(opts.Headers)
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	return &Client{http: httpClient}
}

// Document fetches url and parses the response body.
func (c *Client) Document(ctx context.Context, url string) (*document.Document, error) {
	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, classify(url, err)
	}

	if !resp.IsSuccess() {
		return nil, &Error{Kind: HTTPStatus, URL: url, StatusCode: resp.StatusCode()}
	}

	body, err := charset.NewReader(bytes.NewReader(resp.Body()), resp.Header().Get("Content-Type"))
	if err != nil {
		return nil, &Error{Kind: ParseFailure, URL: url, Err: fmt.Errorf("decoding body: %w", err)}
	}

	doc, err := document.Parse(body)
	if err != nil {
		return nil, &Error{Kind: ParseFailure, URL: url, Err: err}
	}
	return doc, nil
}

func classify(url string, err error) *Error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &Error{Kind: Timeout, URL: url, Err: err}
	}
	return &Error{Kind: NetworkFailure, URL: url, Err: err}
}
