// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a report bucket with --filter expressions.
//
// An expression is key, operator and target. Expressions are separated by
// commas, or by PKGDIFF_FILTER_DELIM when a target needs a comma. A row is
// kept only when it passes every expression.
//
// Operators, each negatable with a leading !:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - @ : substring match
//   - / : regular expression match
//   - < and > : ordering
//
// Keys are output keys of the attrs list. Ordering on version uses
// rpmvercmp segment comparison and ordering on evr compares the whole
// epoch, version and release triple, so version>5.9 keeps 5.10. Epoch is
// compared numerically and every other field as text.
//
// Examples:
//
//   - "name^python3-" : names starting with python3-
//   - "arch!=noarch" : everything that is not noarch
//   - "evr>1:2.0-alt1" : builds newer than 1:2.0-alt1
package filters
