// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the rest of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestParseWorkDir(t *testing.T) {
	tests := []struct {
		name string
		// setup returns the argument and the expected directory.
		setup   func(t *testing.T) (string, string)
		wantErr bool
		errIs   error
	}{
		{
			name: "absolute",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				return dir, dir
			},
		},
		{
			name: "absolute with trailing slash",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				return dir + "/", dir
			},
		},
		{
			name: "relative",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				chdir(t, filepath.Dir(dir))
				wd, _ := os.Getwd()
				return filepath.Base(dir), filepath.Join(wd, filepath.Base(dir))
			},
		},
		{
			name: "dot",
			setup: func(t *testing.T) (string, string) {
				chdir(t, t.TempDir())
				wd, _ := os.Getwd()
				return ".", wd
			},
		},
		{
			name: "parent",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				sub := filepath.Join(dir, "sub")
				require.NoError(t, os.Mkdir(sub, 0o755))
				chdir(t, sub)
				wd, _ := os.Getwd()
				return "..", filepath.Dir(wd)
			},
		},
		{
			name: "home",
			setup: func(t *testing.T) (string, string) {
				home := t.TempDir()
				t.Setenv("HOME", home)
				require.NoError(t, os.Mkdir(filepath.Join(home, "work"), 0o755))
				return "~/work", filepath.Join(home, "work")
			},
		},
		{
			name: "missing",
			setup: func(t *testing.T) (string, string) {
				return "/nonexistent/path/that/does/not/exist", ""
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "file",
			setup: func(t *testing.T) (string, string) {
				file := filepath.Join(t.TempDir(), "file.txt")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
				return file, ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "empty",
			setup: func(t *testing.T) (string, string) {
				return "  ", ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg, want := tt.setup(t)

			dir, err := ParseWorkDir(arg)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(want), dir)
		})
	}
}
