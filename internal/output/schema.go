// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/apex/log"
)

// schemaTag is a discovered struct field tag used when emitting schema
// information (--schema flag).
type schemaTag struct {
	Name      string
	OmitEmpty bool
}

// NewTag parses a json struct tag value. Fields tagged "-" or without a name
// yield an empty tag.
func NewTag(s string) schemaTag {
	parts := strings.Split(s, ",")
	if parts[0] == "" || parts[0] == "-" {
		return schemaTag{}
	}

	tag := schemaTag{Name: parts[0]}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			tag.OmitEmpty = true
		}
	}
	return tag
}

// DumpSchema writes the attribute names of typ, in field order, followed by
// extra computed attributes. If w is nil, os.Stdout is used.
func DumpSchema(typ reflect.Type, extra []string, w io.Writer) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w,
		`Package attributes available to the --attrs, --filter and --sort flags.`)
	fmt.Fprintln(w, "")

	for _, name := range schemaNames(typ) {
		fmt.Fprintln(w, name)
	}
	for _, name := range extra {
		fmt.Fprintln(w, name)
	}
}

func schemaNames(typ reflect.Type) []string {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		log.Debugf("not a struct: %s", typ)
		return nil
	}

	var names []string
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}
		if tag := NewTag(tagValue); tag.Name != "" {
			names = append(names, tag.Name)
		}
	}
	return names
}
