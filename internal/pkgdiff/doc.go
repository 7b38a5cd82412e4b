// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package pkgdiff classifies two package listings into three buckets: names
// only in B, names only in A, and names whose build in A is strictly newer
// than in B. Ordering is delegated to rpmver. Diff holds no state and is safe
// to call concurrently.
package pkgdiff
