// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/scylladb/go-set/strset"
	"github.com/urfave/cli/v3"

	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag combinations that no single validator
// can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("color") && c.String("output") != "text" {
		return fmt.Errorf("--color only applies to text output")
	}
	return nil
}

func OutputValidator(value any) error {
	valid := false
	for _, v := range output.Formats {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// ArchValidator accepts architectures that are configured or published by
// default. Values may be comma separated.
func ArchValidator(value any) error {
	values, ok := value.([]string)
	if !ok {
		return fmt.Errorf("unexpected arch value %T", value)
	}

	known := strset.New(config.DefaultArchs...)
	if archs, err := config.GetStringSlice("archs"); err == nil {
		known.Add(archs...)
	}

	var unknown []string
	for _, v := range splitList(values) {
		if !known.Has(v) {
			unknown = append(unknown, v)
		}
	}
	if len(unknown) > 0 {
		want := known.List()
		sort.Strings(want)
		return fmt.Errorf("unknown arch %s, want one of %s",
			strings.Join(unknown, ", "), strings.Join(want, ", "))
	}
	return nil
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); ok && n < 1 {
		return fmt.Errorf("must be at least 1, got %d", n)
	}
	return nil
}

// splitList flattens comma separated entries and drops blanks.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
