// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other pkgdiff packages to avoid import cycles.

package version

import (
	"runtime"
	"runtime/debug"
)

var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()

// UserAgent is sent with every feed request.
func UserAgent() string {
	return "pkgdiff/" + Version + " (" + runtime.GOOS + "/" + runtime.GOARCH + ")"
}
