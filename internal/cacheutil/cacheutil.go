// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebics/basealt-test-task/internal/log"
)

// Entry represents a cached artifact on disk.
// Key is the clear-text key; EncodedKey is the hashed filename.
type Entry struct {
	Key        string
	EncodedKey string
	Path       string
	Data       []byte
	ModTime    time.Time
}

// Cache is a directory of sha256-named files. The zero value is disabled.
type Cache struct {
	Dir     string
	Enabled bool
}

// FromEnv builds a Cache from the environment.
//   - PKGDIFF_CACHE: "0" or "false" disables caching
//   - PKGDIFF_CACHE_DIR: base directory, default os.UserCacheDir()/pkgdiff
//
// The cache is disabled when no base directory can be resolved.
func FromEnv() Cache {
	enabled, _ := os.LookupEnv("PKGDIFF_CACHE")
	c := Cache{Enabled: enabled == "" || (enabled != "0" && enabled != "false")}

	if d, ok := os.LookupEnv("PKGDIFF_CACHE_DIR"); ok && d != "" {
		c.Dir = d
	} else if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		c.Dir = filepath.Join(dir, "pkgdiff")
	}

	if c.Dir == "" {
		c.Enabled = false
	}
	return c
}

// EnsureDir creates the base directory if the cache is usable.
func (c Cache) EnsureDir() error {
	if !c.Enabled {
		return nil
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache base directory: %w", err)
	}
	log.Debugf("cache dir ready: path=%s", c.Dir)
	return nil
}

// EntryPath returns the path where the entry for clearKey lives beneath
// subdirs and whether a file exists there.
func (c Cache) EntryPath(subdirs []string, clearKey string) (string, bool) {
	if c.Dir == "" {
		return "", false
	}
	p := filepath.Join(append([]string{c.Dir}, append(subdirs, encodeKey(clearKey))...)...)
	if info, err := os.Stat(p); err == nil && !info.IsDir() {
		return p, true
	}
	return p, false
}

// Read returns the entry for clearKey if the cache is enabled and the entry
// exists.
func (c Cache) Read(subdirs []string, clearKey string) (*Entry, bool) {
	if !c.Enabled {
		return nil, false
	}
	p, ok := c.EntryPath(subdirs, clearKey)
	if !ok {
		return nil, false
	}
	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", clearKey)
	return &Entry{
		Key:        clearKey,
		EncodedKey: encodeKey(clearKey),
		Path:       p,
		Data:       b,
		ModTime:    info.ModTime(),
	}, true
}

// Write stores data for clearKey beneath subdirs, creating directories as
// needed. A disabled cache ignores writes.
func (c Cache) Write(subdirs []string, clearKey string, data []byte) error {
	if !c.Enabled {
		return nil
	}
	dir := filepath.Join(append([]string{c.Dir}, subdirs...)...)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write through a temp file so a concurrent reader never sees a partial
	// entry.
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, encodeKey(clearKey))); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s", clearKey)
	return nil
}

// Purge removes files older than the provided number of hours.
// If hours <= 0 or the cache is disabled, it is a no-op.
func (c Cache) Purge(hours int) error {
	if hours <= 0 {
		log.Debug("cache cleaning disabled")
		return nil
	}
	if !c.Enabled {
		return nil
	}

	maxAge := time.Duration(hours) * time.Hour
	if err := filepath.Walk(c.Dir, func(path string, info os.FileInfo, walkErr error) error {
		// Entries can vanish between listing and stat when two runs share
		// the cache.
		if walkErr != nil {
			if os.IsNotExist(walkErr) {
				return nil
			}
			return walkErr
		}

		if info == nil {
			return nil
		}

		if !info.IsDir() && time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err == nil {
				log.Debugf("removed cache file %s", path)
			} else {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}
