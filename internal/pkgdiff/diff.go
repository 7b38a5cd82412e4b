// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgdiff

import (
	"fmt"

	"github.com/glebics/basealt-test-task/internal/rpmver"
)

// Comparator orders two version triples.
type Comparator func(a, b rpmver.Triple) rpmver.Order

type options struct {
	compare Comparator
	labelA  string
	labelB  string
}

// Option customizes Diff.
type Option func(*options)

// WithComparator replaces rpmver.Compare.
func WithComparator(c Comparator) Option {
	return func(o *options) {
		if c != nil {
			o.compare = c
		}
	}
}

// WithLabels names the two sides of the report. Empty labels keep the
// defaults.
func WithLabels(a, b string) Option {
	return func(o *options) {
		if a != "" {
			o.labelA = a
		}
		if b != "" {
			o.labelB = b
		}
	}
}

// Diff classifies the records of a and b by name. Every input record must
// carry a name and a version, otherwise the whole diff fails with
// ErrMalformedRecord.
func Diff(a, b []Record, opts ...Option) (Report, error) {
	o := options{
		compare: rpmver.Compare,
		labelA:  DefaultLabelA,
		labelB:  DefaultLabelB,
	}
	for _, opt := range opts {
		opt(&o)
	}

	ia, err := newIndex(a, o.labelA)
	if err != nil {
		return Report{}, err
	}
	ib, err := newIndex(b, o.labelB)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		LabelA:    o.labelA,
		LabelB:    o.labelB,
		OnlyInB:   []Record{},
		OnlyInA:   []Record{},
		HigherInA: []Record{},
	}

	for _, name := range ib.names {
		if _, ok := ia.byName[name]; !ok {
			report.OnlyInB = append(report.OnlyInB, ib.byName[name])
		}
	}

	for _, name := range ia.names {
		ra := ia.byName[name]
		rb, ok := ib.byName[name]
		if !ok {
			report.OnlyInA = append(report.OnlyInA, ra)
			continue
		}
		if o.compare(ra.Triple(), rb.Triple()) == rpmver.Greater {
			report.HigherInA = append(report.HigherInA, ra)
		}
	}

	return report, nil
}

// index maps names to records. A repeated name replaces the stored record but
// keeps the position of its first appearance in names.
type index struct {
	names  []string
	byName map[string]Record
}

func newIndex(records []Record, side string) (index, error) {
	idx := index{
		names:  make([]string, 0, len(records)),
		byName: make(map[string]Record, len(records)),
	}
	for i, r := range records {
		if err := r.validate(); err != nil {
			return index{}, fmt.Errorf("%s[%d]: %w", side, i, err)
		}
		if _, seen := idx.byName[r.Name]; !seen {
			idx.names = append(idx.names, r.Name)
		}
		idx.byName[r.Name] = r
	}
	return idx, nil
}
