// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/meta"
	"github.com/glebics/basealt-test-task/internal/output"
)

// compareCommandAction is the action handler for the "compare" subcommand.
// It diffs the persisted listings of both branches per arch, optionally
// fetching them first, writes the result files and renders the reports.
func compareCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "compare") {
		return nil
	}
	if DumpSchemaIfRequested(cmd) {
		return nil
	}

	al, err := BuildAttrs(cmd)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	s, err := resolveSettings(cmd, "compare")
	if err != nil {
		return err
	}

	fetch := cmd.Bool("fetch")
	// A requested fetch always goes to the feed.
	r, err := newRunner(ctx, cmd, s, fetch, fetch || cmd.Bool("refresh"))
	if err != nil {
		return err
	}

	archs := r.Archs(splitList(cmd.StringSlice("arch")))
	results, runErr := r.Compare(ctx, archs, fetch)

	var sections []output.Section
	for _, res := range results {
		if !res.Skipped {
			sections = append(sections, output.Section{Arch: res.Arch, Report: res.Report})
		}
	}

	opts := renderOptions(cmd)
	if len(sections) > 0 {
		if err := output.SliceDiceSpit(sections, al, opts, stdout(cmd)); err != nil {
			return err
		}
	}

	// Keep structured output parseable.
	summaries := stdout(cmd)
	if opts.Output != "text" {
		summaries = stderr(cmd)
	}
	for _, res := range results {
		fmt.Fprintln(summaries, res.Summary())
	}

	return runErr
}

// compareCommandBuilder constructs the cli.Command for "compare", wiring
// metadata, flags, and action/validator handlers.
func compareCommandBuilder(meta meta.Meta) *cli.Command {
	ns := "compare"
	return &cli.Command{
		Name:      ns,
		Usage:     "compare the package lists of two branches",
		UsageText: "pkgdiff compare [WorkDir] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			NewFetchFlag(ns, meta.Config.Source),
			schemaFlag,
			tldrFlag,
		}, NewFetchFlags()...), NewGlobalFlags(ns, meta.Config.Source)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: compareCommandAction,
	}
}
