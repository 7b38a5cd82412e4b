// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/glebics/basealt-test-task/internal/cacheutil"
	"github.com/glebics/basealt-test-task/internal/command"
	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/log"
	"github.com/glebics/basealt-test-task/internal/version"
)

var ctx = context.Background()

var (
	// boolFlags never consume the following argument.
	boolFlags = strset.New(
		"--color", "-c", "--fetch", "--refresh", "--schema", "--titles", "-t",
		"--tldr", "--help", "-h", "--version", "-v",
	)

	// repeatableFlags accumulate, so every occurrence is kept.
	repeatableFlags = strset.New("--arch", "--bucket", "-b", "--ignore")
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string, w io.Writer) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Fprintln(w, version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands config sets and drops overridden flags.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = processSetOnly(args)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args)
}

// processSetOnly expands an @set argument into the flags listed under
// <command>.<set> in the config file. Without one, <command>.defaults is
// injected ahead of the user's flags so those win.
func processSetOnly(args []string) []string {
	if len(args) < 2 {
		return args
	}

	idx := 2
	set := "defaults"
	insertIdx := -1
	for i, a := range args[idx:] {
		if strings.HasPrefix(a, "@") {
			set = a[1:]
			insertIdx = idx + i
			break
		}
	}

	if insertIdx != -1 {
		args = append(args[:insertIdx:insertIdx], args[insertIdx+1:]...)
	} else {
		// Keep a leading positional, the work dir, in place.
		insertIdx = idx
		if len(args) > idx && !strings.HasPrefix(args[idx], "-") {
			insertIdx++
		}
	}

	entries, _ := config.GetStringSlice(args[1] + "." + set)
	return injectConfigSet(args, entries, insertIdx)
}

// injectConfigSet splits entries into fields and inserts them at insertIdx.
func injectConfigSet(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, strings.Fields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// deduplicateFlags keeps the last occurrence of every flag after the
// command, together with its value, so flags given on the command line
// override those injected from a config set. Repeatable flags are kept.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type group struct {
		name   string
		tokens []string
	}

	var groups []group
	for i := 2; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			groups = append(groups, group{tokens: args[i:]})
			break
		}
		if !strings.HasPrefix(a, "-") || a == "-" {
			groups = append(groups, group{tokens: []string{a}})
			continue
		}

		name, _, inline := strings.Cut(a, "=")
		g := group{name: name, tokens: []string{a}}
		if !inline && !boolFlags.Has(name) && i+1 < len(args) {
			i++
			g.tokens = append(g.tokens, args[i])
		}
		groups = append(groups, g)
	}

	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" && !repeatableFlags.Has(g.name) {
			last[g.name] = i
		}
	}

	out := append([]string(nil), args[:2]...)
	for i, g := range groups {
		if j, ok := last[g.name]; ok && j != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	// Pre-create cache directory when caching is enabled.
	if err := cacheutil.FromEnv().EnsureDir(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("cache ensure err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args, os.Stdout) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
