// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package rpmver

import (
	"fmt"
	"regexp"
	"strings"
)

// Order is the relation between two version identifiers.
type Order int

const (
	Less    Order = -1
	Equal   Order = 0
	Greater Order = 1
)

func (o Order) String() string {
	switch o {
	case Less:
		return "LESS"
	case Equal:
		return "EQUAL"
	case Greater:
		return "GREATER"
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Invert returns the relation seen from the other side.
func (o Order) Invert() Order {
	return -o
}

// Triple is the (epoch, version, release) tuple of a package build.
type Triple struct {
	Epoch   string `json:"epoch"`
	Version string `json:"version"`
	Release string `json:"release"`
}

// String renders the triple as [E:]V-R. A zero epoch is omitted.
func (t Triple) String() string {
	var sb strings.Builder
	if e := normalizeEpoch(t.Epoch); e != "0" {
		sb.WriteString(e)
		sb.WriteString(":")
	}
	sb.WriteString(t.Version)
	if t.Release != "" {
		sb.WriteString("-")
		sb.WriteString(t.Release)
	}
	return sb.String()
}

// Parse splits an [E:]V[-R] string into a Triple. The release is taken from
// the last '-' so versions may not contain one.
func Parse(s string) Triple {
	var t Triple
	if i := strings.Index(s, ":"); i >= 0 {
		t.Epoch = s[:i]
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "-"); i >= 0 {
		t.Version = s[:i]
		t.Release = s[i+1:]
	} else {
		t.Version = s
	}
	return t
}

// Compare orders two triples by epoch, then version, then release.
func Compare(a, b Triple) Order {
	if o := CompareEpoch(a.Epoch, b.Epoch); o != Equal {
		return o
	}
	if o := CompareSegments(a.Version, b.Version); o != Equal {
		return o
	}
	return CompareSegments(a.Release, b.Release)
}

// CompareEpoch orders two epoch tokens. An empty epoch is "0". Numeric epochs
// compare by value and sort below non-numeric ones, which compare bytewise.
func CompareEpoch(a, b string) Order {
	a, b = normalizeEpoch(a), normalizeEpoch(b)
	if a == b {
		return Equal
	}

	aNum, bNum := isDigits(a), isDigits(b)
	switch {
	case aNum && bNum:
		return compareNumeric(a, b)
	case aNum:
		return Less
	case bNum:
		return Greater
	}
	return compareStrings(a, b)
}

var segmentRegex = regexp.MustCompile(`[a-zA-Z]+|[0-9]+|~|\^`)

// CompareSegments compares two version or release strings segment by segment.
func CompareSegments(a, b string) Order {
	if a == b {
		return Equal
	}

	aSegs := segmentRegex.FindAllString(a, -1)
	bSegs := segmentRegex.FindAllString(b, -1)

	// Nothing to walk on either side, e.g. "." vs "-". Order the raw strings so
	// the relation stays total.
	if len(aSegs) == 0 && len(bSegs) == 0 {
		return compareStrings(a, b)
	}

	i := 0
	for ; i < len(aSegs) && i < len(bSegs); i++ {
		x, y := aSegs[i], bSegs[i]

		if x == "~" || y == "~" {
			if x != "~" {
				return Greater
			}
			if y != "~" {
				return Less
			}
			continue
		}

		if x == "^" || y == "^" {
			if x != "^" {
				return Greater
			}
			if y != "^" {
				return Less
			}
			continue
		}

		xNum, yNum := isDigit(x[0]), isDigit(y[0])
		if xNum != yNum {
			if xNum {
				return Greater
			}
			return Less
		}

		var o Order
		if xNum {
			o = compareNumeric(x, y)
		} else {
			o = compareStrings(x, y)
		}
		if o != Equal {
			return o
		}
	}

	// One side ran out. A trailing '~' loses to the end of string and a
	// trailing '^' beats it, anything else beats it too.
	switch {
	case i < len(aSegs):
		if aSegs[i] == "~" {
			return Less
		}
		return Greater
	case i < len(bSegs):
		if bSegs[i] == "~" {
			return Greater
		}
		return Less
	}
	return Equal
}

// compareNumeric orders two digit runs without converting them, so runs longer
// than an int64 still work.
func compareNumeric(a, b string) Order {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	switch {
	case len(a) > len(b):
		return Greater
	case len(a) < len(b):
		return Less
	}
	return compareStrings(a, b)
}

func compareStrings(a, b string) Order {
	switch {
	case a > b:
		return Greater
	case a < b:
		return Less
	}
	return Equal
}

func normalizeEpoch(e string) string {
	e = strings.TrimSpace(e)
	if e == "" {
		return "0"
	}
	if isDigits(e) {
		if t := strings.TrimLeft(e, "0"); t != "" {
			return t
		}
		return "0"
	}
	return e
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
