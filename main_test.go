// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/version"
)

func TestDeduplicateFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "empty args",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "only program and command",
			args:     []string{"pkgdiff", "compare"},
			expected: []string{"pkgdiff", "compare"},
		},
		{
			name:     "no duplicates",
			args:     []string{"pkgdiff", "compare", "--output", "text", "--titles"},
			expected: []string{"pkgdiff", "compare", "--output", "text", "--titles"},
		},
		{
			name:     "duplicate flag with value - last wins",
			args:     []string{"pkgdiff", "compare", "--output", "json", "--titles", "--output", "text"},
			expected: []string{"pkgdiff", "compare", "--titles", "--output", "text"},
		},
		{
			name:     "duplicate boolean flag",
			args:     []string{"pkgdiff", "compare", "--titles", "--fetch", "--titles"},
			expected: []string{"pkgdiff", "compare", "--fetch", "--titles"},
		},
		{
			name:     "duplicate flag with equals syntax",
			args:     []string{"pkgdiff", "compare", "--output=json", "--titles", "--output=text"},
			expected: []string{"pkgdiff", "compare", "--titles", "--output=text"},
		},
		{
			name:     "mixed equals and space syntax - same flag",
			args:     []string{"pkgdiff", "compare", "--output=json", "--output", "text"},
			expected: []string{"pkgdiff", "compare", "--output", "text"},
		},
		{
			name:     "positional args preserved",
			args:     []string{"pkgdiff", "compare", "/srv/pkgdiff", "--output", "json", "--output", "text"},
			expected: []string{"pkgdiff", "compare", "/srv/pkgdiff", "--output", "text"},
		},
		{
			name:     "positional after flags",
			args:     []string{"pkgdiff", "compare", "--output", "json", "/srv/pkgdiff", "--output", "text"},
			expected: []string{"pkgdiff", "compare", "/srv/pkgdiff", "--output", "text"},
		},
		{
			name:     "short flags deduplicated",
			args:     []string{"pkgdiff", "compare", "-o", "json", "-o", "text"},
			expected: []string{"pkgdiff", "compare", "-o", "text"},
		},
		{
			name:     "value that looks like a flag",
			args:     []string{"pkgdiff", "compare", "--sort", "-version", "--sort", "name"},
			expected: []string{"pkgdiff", "compare", "--sort", "name"},
		},
		{
			name:     "repeatable flags kept",
			args:     []string{"pkgdiff", "compare", "--arch", "x86_64", "--arch", "aarch64", "-b", "a", "-b", "b"},
			expected: []string{"pkgdiff", "compare", "--arch", "x86_64", "--arch", "aarch64", "-b", "a", "-b", "b"},
		},
		{
			name:     "triple duplicate",
			args:     []string{"pkgdiff", "compare", "--output", "a", "--output", "b", "--output", "c"},
			expected: []string{"pkgdiff", "compare", "--output", "c"},
		},
		{
			name:     "terminator ends flag processing",
			args:     []string{"pkgdiff", "drift", "--color", "--", "--color", "b.json"},
			expected: []string{"pkgdiff", "drift", "--color", "--", "--color", "b.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, deduplicateFlags(tt.args))
		})
	}
}

func TestInjectConfigSet(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		insertIdx int
		entries   []string
		expected  []string
	}{
		{
			name:      "empty config returns args unchanged",
			args:      []string{"pkgdiff", "compare", "--titles"},
			insertIdx: 2,
			expected:  []string{"pkgdiff", "compare", "--titles"},
		},
		{
			name:      "single entry injected",
			args:      []string{"pkgdiff", "compare", "--titles"},
			insertIdx: 2,
			entries:   []string{"--fetch"},
			expected:  []string{"pkgdiff", "compare", "--fetch", "--titles"},
		},
		{
			name:      "multi-word entry split",
			args:      []string{"pkgdiff", "compare", "--titles"},
			insertIdx: 2,
			entries:   []string{"--output  text"},
			expected:  []string{"pkgdiff", "compare", "--output", "text", "--titles"},
		},
		{
			name:      "insert after work dir",
			args:      []string{"pkgdiff", "compare", "/srv/pkgdiff", "--titles"},
			insertIdx: 3,
			entries:   []string{"--arch x86_64", "--fetch"},
			expected:  []string{"pkgdiff", "compare", "/srv/pkgdiff", "--arch", "x86_64", "--fetch", "--titles"},
		},
		{
			name:      "insert at end",
			args:      []string{"pkgdiff", "compare"},
			insertIdx: 2,
			entries:   []string{"--output json"},
			expected:  []string{"pkgdiff", "compare", "--output", "json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, injectConfigSet(tt.args, tt.entries, tt.insertIdx))
		})
	}
}

func TestProcessCommandArgs(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "pkgdiff.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`compare:
  defaults:
    - --titles
    - --output json
  nightly:
    - --fetch
    - --arch x86_64
`), 0o600))
	t.Setenv("PKGDIFF_CFG_FILE", cfg)
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "defaults injected and overridden",
			args:     []string{"pkgdiff", "compare", "--output", "yaml"},
			expected: []string{"pkgdiff", "compare", "--titles", "--output", "yaml"},
		},
		{
			name:     "defaults follow the work dir",
			args:     []string{"pkgdiff", "compare", "/srv/pkgdiff"},
			expected: []string{"pkgdiff", "compare", "/srv/pkgdiff", "--titles", "--output", "json"},
		},
		{
			name:     "named set replaces the marker",
			args:     []string{"pkgdiff", "compare", "@nightly", "--arch", "aarch64"},
			expected: []string{"pkgdiff", "compare", "--fetch", "--arch", "x86_64", "--arch", "aarch64"},
		},
		{
			name:     "unknown set expands to nothing",
			args:     []string{"pkgdiff", "compare", "@weekly", "--fetch"},
			expected: []string{"pkgdiff", "compare", "--fetch"},
		},
		{
			name:     "other commands have no defaults",
			args:     []string{"pkgdiff", "fetch", "--refresh"},
			expected: []string{"pkgdiff", "fetch", "--refresh"},
		},
		{
			name:     "completion untouched",
			args:     []string{"pkgdiff", "completion", "bash"},
			expected: []string{"pkgdiff", "completion", "bash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, processCommandArgs(tt.args))
		})
	}
}

func TestHandleVersion(t *testing.T) {
	var buf bytes.Buffer
	assert.True(t, handleVersion([]string{"pkgdiff", "--version"}, &buf))
	assert.Equal(t, version.Version+"\n", buf.String())

	buf.Reset()
	assert.False(t, handleVersion([]string{"pkgdiff", "compare"}, &buf))
	assert.Empty(t, buf.String())
}

func TestHandleNakedCommand(t *testing.T) {
	assert.Equal(t, []string{"pkgdiff", "--help"}, handleNakedCommand([]string{"pkgdiff"}))
	assert.Equal(t, []string{"pkgdiff", "fetch"}, handleNakedCommand([]string{"pkgdiff", "fetch"}))
}

func TestInitAndRunApp(t *testing.T) {
	t.Setenv("PKGDIFF_CACHE", "0")
	t.Setenv("PKGDIFF_CFG_FILE", filepath.Join(t.TempDir(), "none.yaml"))
	config.Config = config.Type{}
	t.Cleanup(func() { config.Config = config.Type{} })

	missing := filepath.Join(t.TempDir(), "missing")
	assert.Equal(t, 1, initAndRunApp([]string{"pkgdiff", "compare", missing}))
	assert.Equal(t, 2, initAndRunApp([]string{"pkgdiff", "drift", missing}))
}
