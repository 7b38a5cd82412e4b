// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var (
	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the package attributes and exit",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the rendering flags shared by the report commands.
// Values come from the command line, then the environment, then the config
// file under ns and finally the config file root.
func NewGlobalFlags(ns string, cfgFile string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
			Sources: sources(ns, cfgFile, "attrs", "PKGDIFF_ATTRS"),
		},
		&cli.StringSliceFlag{
			Name:    "bucket",
			Aliases: []string{"b"},
			Usage:   "buckets to render: a, b, higher or a full bucket key",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: sources(ns, cfgFile, "color", "PKGDIFF_COLOR"),
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Sources: sources(ns, cfgFile, "output", "PKGDIFF_OUTPUT"),
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:    "padding",
			Usage:   "spaces between text columns",
			Value:   2,
			Sources: sources(ns, cfgFile, "padding"),
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Value:   "name",
			Sources: sources(ns, cfgFile, "sort"),
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
			Sources: sources(ns, cfgFile, "titles"),
		},
	}

	return
}

// NewFetchFlags returns the flags that shape fetching: the architectures,
// cache refresh and worker count. The config file settings for these are
// read by config.Resolve, so only the environment is consulted here.
func NewFetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "arch",
			Usage:   "architectures to process, default all configured",
			Sources: sources("", "", "", "PKGDIFF_ARCH"),
			Validator: func(values []string) error {
				return FlagValidators(values, ArchValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "refresh",
			Usage: "ignore cached feed responses (implied by compare --fetch)",
		},
		&cli.IntFlag{
			Name:    "workers",
			Usage:   "concurrent fetches, overrides the workers setting",
			Sources: sources("", "", "", "PKGDIFF_WORKERS"),
			Validator: func(n int) error {
				return FlagValidators(n, PositiveValidator)
			},
		},
	}
}

// NewFetchFlag constructs the --fetch flag of compare.
func NewFetchFlag(ns string, cfgFile string) *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:    "fetch",
		Usage:   "fetch fresh listings from the feed before comparing, bypassing the response cache",
		Sources: sources(ns, cfgFile, "fetch", "PKGDIFF_FETCH"),
	}
}

// sources builds a value chain of the env vars followed by the config file
// key, namespaced first and then global. An empty key or file skips the
// config file.
func sources(ns string, cfgFile string, key string, envVars ...string) cli.ValueSourceChain {
	chain := cli.NewValueSourceChain()
	for _, env := range envVars {
		chain.Chain = append(chain.Chain, cli.EnvVar(env))
	}
	if cfgFile == "" || key == "" {
		return chain
	}

	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+key, altsrc.StringSourcer(cfgFile)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(key, altsrc.StringSourcer(cfgFile)))

	return chain
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
