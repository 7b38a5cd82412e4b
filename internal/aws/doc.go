// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and builds the S3 client used by
// the s3 result store. S3 compatible servers are reached through an endpoint
// override and path-style addressing.
package aws
