// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/glebics/basealt-test-task/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the directory listings and results are kept
// under, and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	WorkDir     string
	StartingDir string
}
