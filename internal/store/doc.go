// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package store persists package listings and comparison results as named
// blobs.
//
// Keys are slash separated relative paths such as
// "data/sisyphus_x86_64_packages.json". The Local store maps them beneath a
// root directory, the S3 store beneath a bucket and optional prefix, and the
// Memory store keeps them in a map for tests and embedding.
//
// Every backend reports a missing key as ErrNotFound so callers can treat a
// missing listing as an empty one.
package store
