// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for pkgdiff's
// configuration. The configuration is a single YAML document found at, in
// order:
//   - the path in PKGDIFF_CFG_FILE
//   - ./pkgdiff.yaml
//   - pkgdiff.yaml under os.UserConfigDir, e.g. $HOME/.config/pkgdiff.yaml
//
// Resolve turns the document into Settings with defaults for every key.
package config
