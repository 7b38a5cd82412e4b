// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ParseWorkDir resolves the optional work directory positional. A relative
// path is taken from the current directory and a leading ~/ from the home
// directory. It returns an error if the entry does not exist, is empty or is
// not a directory.
func ParseWorkDir(workDir string) (string, error) {
	if strings.TrimSpace(workDir) == "" {
		return "", os.ErrInvalid
	}

	dir := workDir
	if rest, ok := strings.CutPrefix(dir, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, rest)
	}

	if !filepath.IsAbs(dir) {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cwd, dir)
	}

	if r, err := os.Stat(dir); err != nil {
		return "", err
	} else if !r.IsDir() {
		return "", os.ErrInvalid
	}

	return filepath.Clean(dir), nil
}
