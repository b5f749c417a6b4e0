// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP transport used for catalog requests.
package httputil

import (
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses that carry no Retry-After header. Tests override this
// to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 5

// RetryTransport is an http.RoundTripper that retries HTTP 429 (Too Many
// Requests) responses. The wait honors the Retry-After header when present
// and otherwise doubles from RetryBaseDelay: 1 s, 2 s, 4 s, ...
//
// When MaxRetries is 0 the default (5) is used. After exhausting retries
// the last 429 response is returned so the caller can inspect it. If the
// request context is cancelled during a wait, RoundTrip returns ctx.Err().
type RetryTransport struct {
	// Base performs the actual requests. Nil means http.DefaultTransport.
	Base http.RoundTripper

	MaxRetries int

	// UserAgent is set on requests that do not already carry one.
	UserAgent string
}

// NewClient returns an http.Client with a RetryTransport and the given timeout.
func NewClient(timeout time.Duration, userAgent string, maxRetries int) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &RetryTransport{
			MaxRetries: maxRetries,
			UserAgent:  userAgent,
		},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	maxRetries := t.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	ctx := req.Context()
	for attempt := 0; ; attempt++ {
		r := req.Clone(ctx)
		if t.UserAgent != "" && r.Header.Get("User-Agent") == "" {
			r.Header.Set("User-Agent", t.UserAgent)
		}
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r.Body = body
		}

		resp, err := base.RoundTrip(r)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= maxRetries {
			return resp, nil
		}
		// A body we cannot replay means no retry.
		if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
			return resp, nil
		}

		backoff := parseRetryAfter(resp)
		if backoff <= 0 {
			backoff = time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// parseRetryAfter reads a Retry-After header given in seconds or as an
// HTTP date. It returns 0 when the header is absent or unusable.
func parseRetryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if when, err := http.ParseTime(v); err == nil {
		if d := time.Until(when); d > 0 {
			return d
		}
	}
	return 0
}
