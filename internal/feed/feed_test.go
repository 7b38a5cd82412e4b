// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebics/basealt-test-task/internal/cacheutil"
	"github.com/glebics/basealt-test-task/internal/pkgdiff"
)

const listing = `{
  "request_args": {"arch": "x86_64"},
  "length": 2,
  "packages": [
    {"name": "bash", "epoch": 0, "version": "5.2.21", "release": "alt1", "arch": "x86_64", "disttag": "sisyphus+1", "buildtime": 1700000000, "source": "bash"},
    {"name": "zlib", "epoch": 1, "version": "1.3", "release": "alt2", "arch": "x86_64", "disttag": "sisyphus+2", "buildtime": 1700000001, "source": "zlib"}
  ]
}`

type fakeAPI struct {
	hits     atomic.Int32
	failures int32
	status   int
	body     string
	lastURL  atomic.Value
	lastUA   atomic.Value
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n := f.hits.Add(1)
	f.lastURL.Store(r.URL.String())
	f.lastUA.Store(r.UserAgent())

	if n <= f.failures {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(f.body))
}

func newTestClient(t *testing.T, api *fakeAPI, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	base := []Option{
		WithHTTPClient(srv.Client()),
		WithRetries(2),
		WithRetryWait(time.Millisecond, 2*time.Millisecond),
	}
	return New(srv.URL+"/api/export/branch_binary_packages", append(base, opts...)...)
}

func TestFetch(t *testing.T) {
	api := &fakeAPI{body: listing}
	c := newTestClient(t, api)

	records, err := c.Fetch(context.Background(), "sisyphus", "x86_64")

	require.NoError(t, err)
	assert.Equal(t, []pkgdiff.Record{
		{Name: "bash", Epoch: "0", Version: "5.2.21", Release: "alt1", Arch: "x86_64"},
		{Name: "zlib", Epoch: "1", Version: "1.3", Release: "alt2", Arch: "x86_64"},
	}, records)
	assert.Equal(t, "/api/export/branch_binary_packages/sisyphus?arch=x86_64", api.lastURL.Load())
	assert.True(t, strings.HasPrefix(api.lastUA.Load().(string), "pkgdiff/"))
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	api := &fakeAPI{body: listing, failures: 2}
	c := newTestClient(t, api)

	records, err := c.Fetch(context.Background(), "p10", "aarch64")

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.EqualValues(t, 3, api.hits.Load())
}

func TestFetch_GivesUp(t *testing.T) {
	api := &fakeAPI{failures: 100}
	c := newTestClient(t, api)

	_, err := c.Fetch(context.Background(), "p10", "aarch64")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "503")
	assert.EqualValues(t, 3, api.hits.Load())
}

func TestFetch_NotFoundIsNotRetried(t *testing.T) {
	api := &fakeAPI{status: http.StatusNotFound}
	c := newTestClient(t, api)

	_, err := c.Fetch(context.Background(), "nosuchbranch", "x86_64")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
	assert.EqualValues(t, 1, api.hits.Load())
}

func TestFetch_InvalidJSON(t *testing.T) {
	api := &fakeAPI{body: `{"packages": [`}
	c := newTestClient(t, api)

	_, err := c.Fetch(context.Background(), "p10", "x86_64")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestFetch_MalformedRecord(t *testing.T) {
	api := &fakeAPI{body: `{"packages": [{"name": "bash", "epoch": 0, "release": "alt1"}]}`}
	c := newTestClient(t, api)

	_, err := c.Fetch(context.Background(), "p10", "x86_64")

	require.Error(t, err)
	assert.ErrorIs(t, err, pkgdiff.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "p10/x86_64")
}

func TestFetch_ContextCanceled(t *testing.T) {
	api := &fakeAPI{body: listing}
	c := newTestClient(t, api)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Fetch(ctx, "p10", "x86_64")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetch_Cache(t *testing.T) {
	cache := cacheutil.Cache{Dir: t.TempDir(), Enabled: true}
	api := &fakeAPI{body: listing}
	c := newTestClient(t, api, WithCache(cache))

	first, err := c.Fetch(context.Background(), "sisyphus", "x86_64")
	require.NoError(t, err)
	second, err := c.Fetch(context.Background(), "sisyphus", "x86_64")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, api.hits.Load())

	// Another arch is another entry.
	_, err = c.Fetch(context.Background(), "sisyphus", "i586")
	require.NoError(t, err)
	assert.EqualValues(t, 2, api.hits.Load())
}

func TestFetch_Refresh(t *testing.T) {
	cache := cacheutil.Cache{Dir: t.TempDir(), Enabled: true}
	api := &fakeAPI{body: listing}
	c := newTestClient(t, api, WithCache(cache), WithRefresh(true))

	_, err := c.Fetch(context.Background(), "sisyphus", "x86_64")
	require.NoError(t, err)
	_, err = c.Fetch(context.Background(), "sisyphus", "x86_64")
	require.NoError(t, err)

	assert.EqualValues(t, 2, api.hits.Load())

	// The refreshed response was still written back.
	u, err := c.URL("sisyphus", "x86_64")
	require.NoError(t, err)
	_, ok := cache.Read([]string{"feed", "sisyphus"}, u)
	assert.True(t, ok)
}

func TestFetch_FailuresAreNotCached(t *testing.T) {
	cache := cacheutil.Cache{Dir: t.TempDir(), Enabled: true}
	api := &fakeAPI{status: http.StatusNotFound}
	c := newTestClient(t, api, WithCache(cache))

	_, err := c.Fetch(context.Background(), "p10", "x86_64")
	require.Error(t, err)

	u, err := c.URL("p10", "x86_64")
	require.NoError(t, err)
	_, ok := cache.Read([]string{"feed", "p10"}, u)
	assert.False(t, ok)
}

func TestURL(t *testing.T) {
	tests := []struct {
		api, branch, arch string
		want              string
	}{
		{
			"https://rdb.altlinux.org/api/export/branch_binary_packages", "sisyphus", "x86_64",
			"https://rdb.altlinux.org/api/export/branch_binary_packages/sisyphus?arch=x86_64",
		},
		{
			"https://rdb.altlinux.org/api/export/branch_binary_packages/", "p10", "noarch",
			"https://rdb.altlinux.org/api/export/branch_binary_packages/p10?arch=noarch",
		},
		{
			"http://localhost:8080", "p10", "",
			"http://localhost:8080/p10?arch=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := New(tt.api).URL(tt.branch, tt.arch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []pkgdiff.Record
		wantErr string
	}{
		{
			name: "no packages key",
			body: `{"length": 0}`,
			want: []pkgdiff.Record{},
		},
		{
			name: "null packages",
			body: `{"packages": null}`,
			want: []pkgdiff.Record{},
		},
		{
			name: "empty packages",
			body: `{"length": 0, "packages": []}`,
			want: []pkgdiff.Record{},
		},
		{
			name: "string epoch",
			body: `{"packages": [{"name": "a", "epoch": "2", "version": "1", "release": "alt1"}]}`,
			want: []pkgdiff.Record{{Name: "a", Epoch: "2", Version: "1", Release: "alt1"}},
		},
		{
			name:    "packages is an object",
			body:    `{"packages": {"name": "a"}}`,
			wantErr: "not an array",
		},
		{
			name:    "not json",
			body:    `<html>`,
			wantErr: "not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields(t *testing.T) {
	assert.Equal(t, 2, len(fields([]interface{}{"url", "x", "attempt", 2})))
	f := fields([]interface{}{"url", "x", "dangling"})
	assert.Equal(t, "x", f["url"])
	assert.Equal(t, "dangling", f["extra"])
}
