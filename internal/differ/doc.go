// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ renders the drift between two saved JSON documents, such as
// comparison results or package listings from two different runs.
package differ
