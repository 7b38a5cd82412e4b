// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"
)

const (
	DefaultAPI        = "https://rdb.altlinux.org/api/export/branch_binary_packages"
	DefaultBranchA    = "sisyphus"
	DefaultBranchB    = "p10"
	DefaultWorkers    = 4
	DefaultTimeout    = 120
	DefaultRetries    = 3
	DefaultDataDir    = "data"
	DefaultResultsDir = "comparison_results"
	DefaultCacheClean = 24
)

// DefaultArchs is the full list of architectures published for both branches.
var DefaultArchs = []string{
	"aarch64", "armh", "mipsel", "ppc64le", "x86_64",
	"i586", "s390x", "riscv64", "sparc64",
}

// StoreSettings selects where listings and results are persisted.
type StoreSettings struct {
	Type      string
	Bucket    string
	Prefix    string
	Region    string
	Endpoint  string
	Profile   string
	PathStyle bool
}

// Settings is the resolved, typed view of the configuration consumed by the
// runner. Every field has a default so an empty config file is valid.
type Settings struct {
	API        string
	BranchA    string
	BranchB    string
	Archs      []string
	Workers    int
	Timeout    time.Duration
	Retries    int
	DataDir    string
	ResultsDir string
	CacheClean int
	Store      StoreSettings
}

// Resolve reads Settings from the global Config, applying defaults for
// missing keys.
func Resolve() (Settings, error) {
	var s Settings
	var err error

	get := func(key, def string) string {
		if err != nil {
			return def
		}
		var v string
		v, err = GetString(key, def)
		if err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return v
	}
	getInt := func(key string, def int) int {
		if err != nil {
			return def
		}
		var v int
		v, err = GetInt(key, def)
		if err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return v
	}

	s.API = get("api", DefaultAPI)
	s.BranchA = get("branches.a", DefaultBranchA)
	s.BranchB = get("branches.b", DefaultBranchB)
	s.Workers = getInt("workers", DefaultWorkers)
	s.Timeout = time.Duration(getInt("timeout", DefaultTimeout)) * time.Second
	s.Retries = getInt("retries", DefaultRetries)
	s.DataDir = get("data_dir", DefaultDataDir)
	s.ResultsDir = get("results_dir", DefaultResultsDir)
	s.CacheClean = getInt("cache.clean", DefaultCacheClean)
	s.Store.Type = get("store.type", "local")
	s.Store.Bucket = get("store.s3.bucket", "")
	s.Store.Prefix = get("store.s3.prefix", "")
	s.Store.Region = get("store.s3.region", "")
	s.Store.Endpoint = get("store.s3.endpoint", "")
	s.Store.Profile = get("store.s3.profile", "")
	if err != nil {
		return Settings{}, err
	}

	if s.Store.PathStyle, err = GetBool("store.s3.path_style", false); err != nil {
		return Settings{}, fmt.Errorf("store.s3.path_style: %w", err)
	}

	archs, err := GetStringSlice("archs", DefaultArchs)
	if err != nil {
		return Settings{}, fmt.Errorf("archs: %w", err)
	}
	s.Archs = append([]string(nil), archs...)

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the invariants the runner relies on.
func (s Settings) Validate() error {
	switch {
	case s.API == "":
		return fmt.Errorf("api must not be empty")
	case s.BranchA == "" || s.BranchB == "":
		return fmt.Errorf("both branches must be set")
	case s.BranchA == s.BranchB:
		return fmt.Errorf("branches must differ, got %q twice", s.BranchA)
	case s.Workers < 1:
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	case s.Retries < 0:
		return fmt.Errorf("retries must not be negative, got %d", s.Retries)
	case s.Timeout <= 0:
		return fmt.Errorf("timeout must be positive, got %s", s.Timeout)
	}

	switch s.Store.Type {
	case "local":
	case "s3":
		if s.Store.Bucket == "" {
			return fmt.Errorf("store.s3.bucket is required for the s3 store")
		}
	default:
		return fmt.Errorf("unknown store type %q", s.Store.Type)
	}
	return nil
}
