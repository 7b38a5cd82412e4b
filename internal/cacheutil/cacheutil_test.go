// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFromEnv_WithCacheDir verifies PKGDIFF_CACHE_DIR has the highest
// priority.
func TestFromEnv_WithCacheDir(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("PKGDIFF_CACHE_DIR", customDir)
	t.Setenv("PKGDIFF_CACHE", "")

	c := FromEnv()

	assert.True(t, c.Enabled)
	assert.Equal(t, customDir, c.Dir)
}

// TestFromEnv_WithoutCacheDir verifies the fallback to
// os.UserCacheDir()/pkgdiff.
func TestFromEnv_WithoutCacheDir(t *testing.T) {
	t.Setenv("PKGDIFF_CACHE_DIR", "")

	c := FromEnv()

	// Depends on the system; when resolvable it must be absolute.
	if c.Dir != "" {
		assert.True(t, filepath.IsAbs(c.Dir))
		assert.Equal(t, "pkgdiff", filepath.Base(c.Dir))
	}
}

func TestFromEnv_Enabled(t *testing.T) {
	tests := []struct {
		value   string
		enabled bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"yes", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("PKGDIFF_CACHE="+tt.value, func(t *testing.T) {
			t.Setenv("PKGDIFF_CACHE_DIR", t.TempDir())
			t.Setenv("PKGDIFF_CACHE", tt.value)

			assert.Equal(t, tt.enabled, FromEnv().Enabled)
		})
	}
}

func TestEnsureDir_Disabled(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	c := Cache{Dir: dir}

	require.NoError(t, c.EnsureDir())

	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDir_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := Cache{Dir: dir, Enabled: true}

	require.NoError(t, c.EnsureDir())
	// Existing directory is fine too.
	require.NoError(t, c.EnsureDir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEntryPath(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}

	p, ok := c.EntryPath([]string{"feed"}, "sisyphus/x86_64")
	assert.False(t, ok)
	assert.Equal(t, filepath.Join(c.Dir, "feed", encodeKey("sisyphus/x86_64")), p)

	require.NoError(t, c.Write([]string{"feed"}, "sisyphus/x86_64", []byte("{}")))

	p2, ok := c.EntryPath([]string{"feed"}, "sisyphus/x86_64")
	assert.True(t, ok)
	assert.Equal(t, p, p2)
}

func TestEntryPath_NoDir(t *testing.T) {
	p, ok := Cache{}.EntryPath(nil, "key")

	assert.False(t, ok)
	assert.Empty(t, p)
}

func TestRead_Disabled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Cache{Dir: dir, Enabled: true}.Write(nil, "key", []byte("data")))

	entry, ok := Cache{Dir: dir}.Read(nil, "key")

	assert.False(t, ok)
	assert.Nil(t, entry)
}

func TestRead_NotFound(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}

	entry, ok := c.Read([]string{"feed"}, "missing")

	assert.False(t, ok)
	assert.Nil(t, entry)
}

func TestWriteRead_RoundTrip(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}
	data := []byte(`{"packages":[]}`)

	require.NoError(t, c.Write([]string{"feed", "p10"}, "p10/aarch64", data))

	entry, ok := c.Read([]string{"feed", "p10"}, "p10/aarch64")
	require.True(t, ok)
	assert.Equal(t, "p10/aarch64", entry.Key)
	assert.Equal(t, encodeKey("p10/aarch64"), entry.EncodedKey)
	assert.Equal(t, data, entry.Data)
	assert.WithinDuration(t, time.Now(), entry.ModTime, time.Minute)
}

func TestWrite_Disabled(t *testing.T) {
	dir := t.TempDir()
	c := Cache{Dir: dir}

	require.NoError(t, c.Write([]string{"feed"}, "key", []byte("data")))

	_, err := os.Stat(filepath.Join(dir, "feed"))
	assert.True(t, os.IsNotExist(err))
}

func TestWrite_OverwritesExisting(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}

	require.NoError(t, c.Write(nil, "key", []byte("first")))
	require.NoError(t, c.Write(nil, "key", []byte("second")))

	entry, ok := c.Read(nil, "key")
	require.True(t, ok)
	assert.Equal(t, "second", string(entry.Data))

	// No temp files are left behind.
	files, err := os.ReadDir(c.Dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestWrite_EmptyData(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}

	require.NoError(t, c.Write(nil, "empty", []byte{}))

	entry, ok := c.Read(nil, "empty")
	require.True(t, ok)
	assert.Empty(t, entry.Data)
}

func TestPurge_DisabledWithZeroHours(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}
	p := filepath.Join(c.Dir, "old")
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(p, old, old))

	require.NoError(t, c.Purge(0))
	require.NoError(t, c.Purge(-1))

	_, err := os.Stat(p)
	assert.NoError(t, err)
}

func TestPurge_MixedAges(t *testing.T) {
	c := Cache{Dir: t.TempDir(), Enabled: true}
	nested := filepath.Join(c.Dir, "feed", "sisyphus")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	oldFile := filepath.Join(nested, "old")
	newFile := filepath.Join(c.Dir, "new")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(newFile, []byte("x"), 0o600))
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, old, old))

	require.NoError(t, c.Purge(1))

	_, err := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(newFile)
	assert.NoError(t, err)
	// Directories are kept.
	_, err = os.Stat(nested)
	assert.NoError(t, err)
}

func TestPurge_MissingDir(t *testing.T) {
	c := Cache{Dir: filepath.Join(t.TempDir(), "absent"), Enabled: true}

	assert.NoError(t, c.Purge(1))
}

func TestEncodeKey(t *testing.T) {
	a := encodeKey("sisyphus/x86_64")

	assert.Equal(t, a, encodeKey("sisyphus/x86_64"))
	assert.NotEqual(t, a, encodeKey("p10/x86_64"))
	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]+$", a)
	assert.Len(t, encodeKey("a/b?c=d&e f"), 64)
}
