// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// ErrShape is returned when the two documents are not both objects or both
// arrays.
var ErrShape = errors.New("documents differ in shape")

// Options tune Diff.
type Options struct {
	// Coloring turns on ANSI colors in the rendered delta.
	Coloring bool
	// Ignore lists top level object keys left out of the comparison.
	Ignore []string
}

// Diff compares two JSON documents and writes an ASCII delta to w. It reports
// whether the documents differ. If w is nil, os.Stdout is used.
func Diff(left, right []byte, opts Options, w io.Writer) (bool, error) {
	if w == nil {
		w = os.Stdout
	}
	log.Debugf("diff: len(left)=%d len(right)=%d", len(left), len(right))

	var ldoc, rdoc interface{}
	if err := json.Unmarshal(left, &ldoc); err != nil {
		return false, fmt.Errorf("left document: %w", err)
	}
	if err := json.Unmarshal(right, &rdoc); err != nil {
		return false, fmt.Errorf("right document: %w", err)
	}

	differ := gojsondiff.New()

	var delta gojsondiff.Diff
	switch l := ldoc.(type) {
	case map[string]interface{}:
		r, ok := rdoc.(map[string]interface{})
		if !ok {
			return false, ErrShape
		}
		for _, key := range opts.Ignore {
			delete(l, key)
			delete(r, key)
		}
		delta = differ.CompareObjects(l, r)
	case []interface{}:
		r, ok := rdoc.([]interface{})
		if !ok {
			return false, ErrShape
		}
		delta = differ.CompareArrays(l, r)
	default:
		return false, fmt.Errorf("%w: want objects or arrays", ErrShape)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The documents are identical.")
		return false, nil
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: false,
		Coloring:       opts.Coloring,
	}

	out, err := formatter.NewAsciiFormatter(ldoc, config).Format(delta)
	if err != nil {
		return true, fmt.Errorf("format delta: %w", err)
	}

	fmt.Fprintln(w, out)
	return true, nil
}

// DiffFiles reads two files and diffs them with Diff.
func DiffFiles(leftPath, rightPath string, opts Options, w io.Writer) (bool, error) {
	left, err := os.ReadFile(leftPath)
	if err != nil {
		return false, err
	}
	right, err := os.ReadFile(rightPath)
	if err != nil {
		return false, err
	}
	return Diff(left, right, opts, w)
}
