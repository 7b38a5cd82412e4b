// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the pkgdiff subcommands (compare, fetch, drift and
// completion) to the runner, the renderers and the configuration.
package command
