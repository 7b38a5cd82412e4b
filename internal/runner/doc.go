// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package runner drives a comparison across architectures: fetch listings
// for both branches, persist them, load them back, diff them and write the
// results.
//
// Fetching runs one job per (branch, arch) pair on a bounded worker pool. A
// failing pair does not stop the others; every failure is collected and
// returned as one aggregated error once all pairs are done. An architecture
// whose listing is empty on either side is skipped with a notice and no
// result files are written for it.
package runner
