// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/meta"
)

// fetchCommandAction downloads and persists the listings of both branches
// for every selected arch without comparing them. Feed responses younger
// than cache.clean hours are reused unless --refresh is set.
func fetchCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "fetch") {
		return nil
	}

	s, err := resolveSettings(cmd, "fetch")
	if err != nil {
		return err
	}

	r, err := newRunner(ctx, cmd, s, true, cmd.Bool("refresh"))
	if err != nil {
		return err
	}

	archs := r.Archs(splitList(cmd.StringSlice("arch")))
	if err := r.FetchAll(ctx, archs); err != nil {
		return err
	}

	fmt.Fprintf(stdout(cmd), "fetched %s and %s for %d architectures\n", s.BranchA, s.BranchB, len(archs))
	return nil
}

// fetchCommandBuilder constructs the cli.Command for "fetch".
func fetchCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "fetch and persist the package lists of both branches",
		UsageText: "pkgdiff fetch [WorkDir] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append([]cli.Flag{tldrFlag}, NewFetchFlags()...),
		Action: fetchCommandAction,
	}
}
