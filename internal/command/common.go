// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/attrs"
	"github.com/glebics/basealt-test-task/internal/cacheutil"
	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/feed"
	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/meta"
	"github.com/glebics/basealt-test-task/internal/output"
	"github.com/glebics/basealt-test-task/internal/pkgdiff"
	"github.com/glebics/basealt-test-task/internal/runner"
	"github.com/glebics/basealt-test-task/internal/store"
)

// BuildAttrs starts from the default columns and merges --attrs into them.
func BuildAttrs(cmd *cli.Command) (attrs.AttrList, error) {
	al := attrs.Default()
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	return al, nil
}

// DumpSchemaIfRequested lists the package attributes when --schema is set,
// and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(reflect.TypeOf(pkgdiff.Record{}), []string{"evr"}, stdout(cmd))
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr pkgdiff <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "pkgdiff", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// resolveSettings reads the configured settings for the command namespace
// and applies flag overrides.
func resolveSettings(cmd *cli.Command, ns string) (config.Settings, error) {
	config.Config.Namespace = ns

	s, err := config.Resolve()
	if err != nil {
		return config.Settings{}, err
	}

	if cmd.IsSet("workers") {
		s.Workers = cmd.Int("workers")
	}
	log.Debugf("settings: %+v", s)

	return s, s.Validate()
}

// newRunner wires the feed client and the store for s. With fetching set,
// stale cache entries are purged first. With refresh set, cached feed
// responses are never read.
func newRunner(ctx context.Context, cmd *cli.Command, s config.Settings, fetching, refresh bool) (*runner.Runner, error) {
	cache := cacheutil.FromEnv()
	if fetching {
		if err := cache.Purge(s.CacheClean); err != nil {
			log.Warnf("cache purge: %v", err)
		}
	}

	client := feed.New(s.API,
		feed.WithCache(cache),
		feed.WithRefresh(refresh),
		feed.WithRetries(s.Retries),
		feed.WithTimeout(s.Timeout),
	)

	st, err := store.New(ctx, s.Store, GetMeta(cmd).WorkDir)
	if err != nil {
		return nil, err
	}
	log.Debugf("store: %s", st)

	return runner.New(s, client, st,
		runner.WithProgress(runner.ProgressWriter(os.Stderr)),
		runner.WithNotices(stderr(cmd)),
	), nil
}

// renderOptions collects the rendering flags.
func renderOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Output:  cmd.String("output"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Color:   cmd.Bool("color"),
		Titles:  cmd.Bool("titles"),
		Padding: cmd.Int("padding"),
		Buckets: splitList(cmd.StringSlice("bucket")),
	}
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
