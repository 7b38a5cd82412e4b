// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/meta"
	"github.com/glebics/basealt-test-task/internal/util"
)

// InitApp builds the root command. args[1] is the subcommand and doubles as
// the config namespace; compare and fetch accept an optional work directory
// right after it.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// args[1] could be -h/--help, so ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine; every setting has a default.
	cfg, _ := config.Load() //nolint
	cfg.Namespace = ns
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
		WorkDir:     sd,
	}

	// The work directory is the first argument after the command if it is not
	// a flag. Other commands take their own positionals.
	if (ns == "compare" || ns == "fetch") && len(args) > 2 && !strings.HasPrefix(args[2], "-") {
		wd, err := util.ParseWorkDir(args[2])
		if err != nil {
			return nil, fmt.Errorf("failed to parse work dir (%s): %w", args[2], err)
		}
		meta.WorkDir = wd
	}

	app := &cli.Command{
		Name:  "pkgdiff",
		Usage: "compare binary package lists of ALT Linux branches",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "pkgdiff version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		compareCommandBuilder(meta),
		driftCommandBuilder(meta),
		fetchCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
