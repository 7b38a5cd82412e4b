// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/differ"
	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/meta"
)

// driftCommandAction shows how a saved report or listing changed between
// two runs.
func driftCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "drift") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 2 {
		return fmt.Errorf("drift needs two files, got %d", len(args))
	}

	opts := differ.Options{
		Coloring: cmd.Bool("color"),
		Ignore:   splitList(cmd.StringSlice("ignore")),
	}

	_, err := differ.DiffFiles(args[0], args[1], opts, stdout(cmd))
	return err
}

// driftCommandBuilder constructs the cli.Command for "drift".
func driftCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "drift",
		Usage:     "show the difference between two saved JSON files",
		UsageText: "pkgdiff drift OLD NEW [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored output",
				Sources: sources("drift", meta.Config.Source, "color", "PKGDIFF_COLOR"),
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "top level keys to leave out, e.g. only_in_p10",
			},
			tldrFlag,
		},
		Action: driftCommandAction,
	}
}
