// Package fetch provides the HTTP client used to pull question-viewer pages.
// Pages come from a third-party host, so the client paces itself: a randomized
// delay between requests and a longer pause at a fixed request interval.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sync"
	"time"
)

// Defaults applied by New for zero-valued options.
const (
	DefaultMaxAttempts       = 3
	DefaultPerRequestTimeout = 30 * time.Second
	DefaultMinDelay          = 1 * time.Second
	DefaultMaxDelay          = 3 * time.Second
	DefaultLongPauseEvery    = 25
	DefaultLongPause         = 10 * time.Second
)

// Options configure a Client. Zero values take the package defaults; a nil
// HTTPClient gets a fresh one with the per-request timeout applied.
type Options struct {
	HTTPClient        *http.Client
	UserAgent         string
	MaxAttempts       int
	PerRequestTimeout time.Duration

	// MinDelay/MaxDelay bound the randomized pause before each request after
	// the first. LongPauseEvery inserts LongPause instead every Nth request.
	MinDelay       time.Duration
	MaxDelay       time.Duration
	LongPauseEvery int
	LongPause      time.Duration
}

// Client issues paced GETs with bounded retry on transient failures.
type Client struct {
	httpClient *http.Client
	userAgent  string
	attempts   int
	timeout    time.Duration

	minDelay       time.Duration
	maxDelay       time.Duration
	longPauseEvery int
	longPause      time.Duration

	mu       sync.Mutex
	rng      *rand.Rand
	requests int
}

func New(opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = DefaultMaxAttempts
	}
	if opts.PerRequestTimeout <= 0 {
		opts.PerRequestTimeout = DefaultPerRequestTimeout
	}
	if opts.MinDelay <= 0 {
		opts.MinDelay = DefaultMinDelay
	}
	if opts.MaxDelay < opts.MinDelay {
		opts.MaxDelay = DefaultMaxDelay
	}
	if opts.LongPauseEvery <= 0 {
		opts.LongPauseEvery = DefaultLongPauseEvery
	}
	if opts.LongPause <= 0 {
		opts.LongPause = DefaultLongPause
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.PerRequestTimeout}
	}
	return &Client{
		httpClient:     opts.HTTPClient,
		userAgent:      opts.UserAgent,
		attempts:       opts.MaxAttempts,
		timeout:        opts.PerRequestTimeout,
		minDelay:       opts.MinDelay,
		maxDelay:       opts.MaxDelay,
		longPauseEvery: opts.LongPauseEvery,
		longPause:      opts.LongPause,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// QuestionURL builds the viewer page URL for one question ID.
func QuestionURL(base, questionID string) string {
	return base + "/" + questionID
}

// Get issues one GET without pacing. Transient failures (5xx, network errors)
// are retried with linear backoff up to the attempt limit.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for i := 0; i < c.attempts; i++ {
		body, err := c.tryOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if !isTransient(err) || i == c.attempts-1 {
			return nil, err
		}
		lastErr = err
		if err := sleepCtx(ctx, time.Duration(i+1)*200*time.Millisecond); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// GetPolite pauses before fetching. Call it for every page in a crawl; the
// first request goes out immediately.
func (c *Client) GetPolite(ctx context.Context, url string) ([]byte, error) {
	if delay := c.nextDelay(); delay > 0 {
		if err := sleepCtx(ctx, delay); err != nil {
			return nil, err
		}
	}
	return c.Get(ctx, url)
}

// nextDelay returns the pause to take before the next request: zero for the
// first, the long pause every Nth, a randomized short delay otherwise.
func (c *Client) nextDelay() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.requests++
	if c.requests == 1 {
		return 0
	}
	if (c.requests-1)%c.longPauseEvery == 0 {
		return c.longPause
	}
	spread := c.maxDelay - c.minDelay
	if spread <= 0 {
		return c.minDelay
	}
	return c.minDelay + time.Duration(c.rng.Int63n(int64(spread)))
}

func (c *Client) tryOnce(ctx context.Context, url string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &statusError{code: resp.StatusCode}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("server error: %d", e.code)
}

func isTransient(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
