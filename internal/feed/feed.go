// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/glebics/basealt-test-task/internal/cacheutil"
	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/pkgdiff"
	"github.com/glebics/basealt-test-task/internal/version"
)

// ErrStatus is returned when the API answers with a non-2xx status.
var ErrStatus = errors.New("unexpected response status")

// maxBody caps the size of a single listing response. Sisyphus x86_64 is
// well below this.
const maxBody = 512 << 20

// Client fetches package listings.
type Client struct {
	api     string
	http    *retryablehttp.Client
	cache   cacheutil.Cache
	refresh bool
}

// Option configures a Client.
type Option func(*Client)

// WithCache enables the response cache.
func WithCache(c cacheutil.Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

// WithRefresh skips cache reads. Responses are still written back.
func WithRefresh(refresh bool) Option {
	return func(cl *Client) { cl.refresh = refresh }
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(cl *Client) {
		if n >= 0 {
			cl.http.RetryMax = n
		}
	}
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(cl *Client) {
		cl.http.RetryWaitMin = minWait
		cl.http.RetryWaitMax = maxWait
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http.HTTPClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(cl *Client) {
		if hc != nil {
			cl.http.HTTPClient = hc
		}
	}
}

// New returns a Client for the API rooted at api.
func New(api string, opts ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	rc.Logger = leveledLogger{}
	// Hand the last response back after the final attempt so the caller can
	// report its status.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{api: api, http: rc}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the listing URL for branch and arch.
func (c *Client) URL(branch, arch string) (string, error) {
	u, err := url.JoinPath(c.api, url.PathEscape(branch))
	if err != nil {
		return "", fmt.Errorf("invalid api %q: %w", c.api, err)
	}
	return u + "?" + url.Values{"arch": {arch}}.Encode(), nil
}

// Fetch returns the records of branch for arch.
func (c *Client) Fetch(ctx context.Context, branch, arch string) ([]pkgdiff.Record, error) {
	body, err := c.Raw(ctx, branch, arch)
	if err != nil {
		return nil, err
	}

	records, err := Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", branch, arch, err)
	}
	log.Debugf("fetched %s/%s: records=%d", branch, arch, len(records))
	return records, nil
}

// Raw returns the response body for branch and arch, from the cache when
// allowed.
func (c *Client) Raw(ctx context.Context, branch, arch string) ([]byte, error) {
	u, err := c.URL(branch, arch)
	if err != nil {
		return nil, err
	}
	subdirs := []string{"feed", branch}

	if !c.refresh {
		if entry, ok := c.cache.Read(subdirs, u); ok {
			log.Debugf("cache hit: url=%s age=%s", u, time.Since(entry.ModTime).Round(time.Second))
			return entry.Data, nil
		}
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Write(subdirs, u, body); err != nil {
		log.WithError(err).Warnf("failed to cache %s", u)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	log.Debugf("GET %s", u)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrStatus, u, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("GET %s: reading body: %w", u, err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("GET %s: response is not valid JSON", u)
	}
	return body, nil
}

// Decode extracts the records from a listing response. A missing or null
// "packages" key yields an empty, non-nil slice.
func Decode(body []byte) ([]pkgdiff.Record, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}

	packages := gjson.GetBytes(body, "packages")
	if !packages.Exists() || packages.Type == gjson.Null {
		return []pkgdiff.Record{}, nil
	}
	if !packages.IsArray() {
		return nil, fmt.Errorf("packages is %s, not an array", packages.Type)
	}

	records, err := pkgdiff.DecodeRecords([]byte(packages.Raw))
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []pkgdiff.Record{}
	}

	if n := gjson.GetBytes(body, "length"); n.Exists() && n.Int() != int64(len(records)) {
		log.Warnf("listing length mismatch: declared=%d decoded=%d", n.Int(), len(records))
	}
	return records, nil
}
