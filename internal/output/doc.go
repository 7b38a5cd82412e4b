// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output filters, sorts and renders diff reports as text tables, JSON
// or YAML.
package output
