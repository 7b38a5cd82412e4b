// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package rpmver orders RPM style version identifiers. A Triple carries the
// epoch, version and release of a package build and Compare returns how two
// triples relate using the rpmvercmp segment rules: digit runs compare
// numerically, letter runs compare bytewise, punctuation only separates, '~'
// sorts before everything and '^' sorts after end of string.
package rpmver
