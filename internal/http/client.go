package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/handiism/xkcd-downloader/internal/model"
)

// ErrStatus is wrapped by errors for responses with a non-2xx status.
var ErrStatus = errors.New("http: unexpected status")

// Options configures the HTTP client.
type Options struct {
	// Timeout for individual attempts.
	// Default: 60s
	Timeout time.Duration

	// RetryAttempts is the retry budget: the maximum number of attempts,
	// including the first, for one logical fetch.
	// Default: 5
	RetryAttempts int

	// UserAgent is sent with every request.
	// Default: "xkcd-downloader"
	UserAgent string

	// Transport overrides the round tripper of the underlying client.
	// Default: http.DefaultTransport
	Transport http.RoundTripper

	// OnAttempt, if set, is called after every attempt.
	OnAttempt func(Attempt)
}

// DefaultOptions returns options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Timeout:       60 * time.Second,
		RetryAttempts: 5,
		UserAgent:     "xkcd-downloader",
	}
}

// Attempt describes one network attempt of a logical fetch.
type Attempt struct {
	URL string

	// Number is the 1-indexed attempt number; Budget the total allowed.
	Number int
	Budget int

	// Err is nil for a successful attempt.
	Err error

	// Transient reports whether Err was classified as retryable.
	Transient bool
}

// Response is the successful outcome of a fetch.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// FetchError is the failed outcome of a fetch.
//
// ErrKind is model.KindTransientNetwork when every attempt of the retry budget
// failed with a connection-level error, and model.KindPermanent when the
// fetch was aborted on an error that is not worth retrying.
type FetchError struct {
	URL      string
	ErrKind  model.ErrorKind
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s after %d attempt(s): %v", e.URL, e.ErrKind, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Kind implements model.Kinder.
func (e *FetchError) Kind() model.ErrorKind { return e.ErrKind }

// Client performs GET requests with a bounded, immediate retry policy.
//
// Client provides:
//   - A fixed retry budget for connection-level failures
//   - Immediate abort on failures that cannot be classified
//   - Per-attempt observation through Options.OnAttempt
//
// Client keeps no state between calls other than the pooled connections
// of the underlying http.Client, so it is safe for concurrent use.
//
// Example usage:
//
//	client := NewClient(DefaultOptions())
//
//	resp, err := client.Fetch(ctx, "http://www.xkcd.com/353/")
//	if err != nil {
//	    var fe *FetchError
//	    if errors.As(err, &fe) && fe.Kind() == model.KindTransientNetwork {
//	        // the site stayed unreachable for the whole retry budget
//	    }
//	    return err
//	}
//	fmt.Println(len(resp.Body), resp.ContentType)
type Client struct {
	httpClient    *http.Client
	userAgent     string
	retryAttempts int
	onAttempt     func(Attempt)
}

// NewClient creates a new HTTP client. Zero fields of opts fall back to
// DefaultOptions.
func NewClient(opts Options) *Client {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.RetryAttempts <= 0 {
		opts.RetryAttempts = def.RetryAttempts
	}
	if opts.UserAgent == "" {
		opts.UserAgent = def.UserAgent
	}

	return &Client{
		httpClient: &http.Client{
			Transport: opts.Transport,
			Timeout:   opts.Timeout,
		},
		userAgent:     opts.UserAgent,
		retryAttempts: opts.RetryAttempts,
		onAttempt:     opts.OnAttempt,
	}
}

// Fetch performs one logical GET of url.
//
// Connection-level failures (refused or reset connections, DNS failures,
// timeouts, connections closed before a response) are retried immediately
// until the retry budget is spent. Anything else aborts at once:
//   - a non-2xx response, wrapping ErrStatus
//   - cancellation of ctx
//   - any error that cannot be classified as connection-level
//
// The returned error is always a *FetchError.
func (c *Client) Fetch(ctx context.Context, url string) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		resp, err := c.get(ctx, url)

		transient := err != nil && ctx.Err() == nil && IsTransient(err)
		c.observe(Attempt{
			URL:       url,
			Number:    attempt,
			Budget:    c.retryAttempts,
			Err:       err,
			Transient: transient,
		})

		if err == nil {
			return resp, nil
		}
		if !transient {
			return nil, &FetchError{URL: url, ErrKind: model.KindPermanent, Attempts: attempt, Err: err}
		}
		lastErr = err
	}

	return nil, &FetchError{URL: url, ErrKind: model.KindTransientNetwork, Attempts: c.retryAttempts, Err: lastErr}
}

// Get fetches url and returns the response body.
//
// Example:
//
//	data, err := client.Get(ctx, "https://imgs.xkcd.com/comics/python.png")
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// get performs a single attempt.
func (c *Client) get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *Client) observe(a Attempt) {
	if c.onAttempt != nil {
		c.onAttempt(a)
	}
}

// IsTransient reports whether err is a connection-level network failure
// that may succeed when the same request is sent again.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrStatus) || errors.Is(err, context.Canceled) {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// *url.Error implements net.Error for every error it wraps, so only
	// its Timeout answer is meaningful here.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	for _, target := range []error{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.ECONNABORTED,
		syscall.EPIPE,
		io.ErrUnexpectedEOF,
		io.EOF,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
