// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/glebics/basealt-test-task/internal/pkgdiff"
)

// Result is the outcome of comparing one architecture.
type Result struct {
	Arch    string
	LabelA  string
	LabelB  string
	CountA  int
	CountB  int
	Skipped bool
	Report  pkgdiff.Report
}

// Summary is a one line, human readable account of r.
func (r Result) Summary() string {
	if r.Skipped {
		return fmt.Sprintf("%s: skipped (%s %s packages, %s %s packages)",
			r.Arch,
			humanize.Comma(int64(r.CountA)), r.LabelA,
			humanize.Comma(int64(r.CountB)), r.LabelB)
	}
	return fmt.Sprintf("%s: %s only in %s, %s only in %s, %s higher in %s",
		r.Arch,
		humanize.Comma(int64(len(r.Report.OnlyInB))), r.LabelB,
		humanize.Comma(int64(len(r.Report.OnlyInA))), r.LabelA,
		humanize.Comma(int64(len(r.Report.HigherInA))), r.LabelA)
}
