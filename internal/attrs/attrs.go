// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/scylladb/go-set/strset"

	"github.com/glebics/basealt-test-task/internal/log"
)

// Keys are the record fields that can be shown. evr is the rendered
// [E:]V-R triple.
var Keys = []string{"name", "epoch", "version", "release", "arch", "evr"}

var lengthRe = regexp.MustCompile(`-?\d+`)

// Attr is one output column.
type Attr struct {
	// The record field to extract.
	Key string `yaml:"key" json:"Key"`
	// Should this Attr be included in output or is it just
	// intended for filtering and sorting?
	Include bool `yaml:"include" json:"Include"`
	// The key to use in the output and the column title for text output.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// Transformation spec to apply to the output value.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// Transform applies the attribute's transform spec to a value and returns the
// transformed result.
func (a *Attr) Transform(value interface{}) interface{} {
	// Only strings are transformed.
	result, ok := value.(string)
	if !ok {
		log.Tracef("non-string value: value=%v", value)
		return value
	}

	// Which case transformation appears last wins. A global spec is
	// prepended, so --attrs '*::U,name::l' lower cases name.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
		log.Tracef("case lower: result=%s", result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
		log.Tracef("case upper: result=%s", result)
	}

	if a.TransformSpec != "" {
		// Same override rule as case: the last length wins.
		match := lengthRe.FindAllString(a.TransformSpec, -1)
		if len(match) != 0 {
			l, _ := strconv.Atoi(match[len(match)-1])
			abs := int(math.Abs(float64(l)))
			if len(result) > abs {
				if l < 0 {
					lr := abs/2 - 1
					if lr < 1 {
						lr = 1
					}
					result = result[:lr] + ".." + result[len(result)-lr:]
					log.Tracef("length middle: result=%s", result)
				} else {
					result = result[:l]
					log.Tracef("length trunc: result=%s", result)
				}
			}
		}
	}

	return result
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// Default returns the columns shown when --attrs is not given.
func Default() AttrList {
	return AttrList{
		{Key: "name", OutputKey: "name", Include: true},
		{Key: "epoch", OutputKey: "epoch", Include: true},
		{Key: "version", OutputKey: "version", Include: true},
		{Key: "release", OutputKey: "release", Include: true},
		{Key: "arch", OutputKey: "arch", Include: true},
	}
}

// Set parses a comma separated list of key[:outputKey[:transform]] specs and
// merges it into the list. A leading ! hides an existing column; * carries a
// transform applied to every column.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		log.Debugf("early return: value=%s", value)
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

	specs := strings.Split(value, ",")
	log.Debugf("specs split: specs=%v", specs)
specloop:
	for _, spec := range specs {
		attr := Attr{
			Include: true,
		}

		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}

		if attr.Key == "*" {
			attr.Include = false
		} else if !known(attr.Key) {
			return fmt.Errorf("unknown attribute %q, want one of %s", attr.Key, strings.Join(Keys, ", "))
		}
		log.Tracef("key parsed: key=%s, include=%v", attr.Key, attr.Include)

		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: outputKey=%s spec=%s", attr.OutputKey, attr.TransformSpec)

		// A key already in the list (a default or a repeat) is updated in
		// place so the column keeps its position.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				log.Tracef("existing updated: i=%d", i)
				continue specloop
			}
		}

		*a = append(*a, attr)
		log.Tracef("attr appended: len=%d", len(*a))
	}

	return nil
}

// SetGlobalTransformSpec prepends the * transform spec, if any, to every
// attr's own spec.
func (a *AttrList) SetGlobalTransformSpec() error {
	spec := ""

	// If there is more than one, take the first.
	for attr := range *a {
		if (*a)[attr].Key == "*" {
			spec = (*a)[attr].TransformSpec
			break
		}
	}
	log.Debugf("global spec: spec=%s", spec)

	if spec == "" {
		return nil
	}

	for attr := range *a {
		(*a)[attr].TransformSpec = spec + "," + (*a)[attr].TransformSpec
	}
	return nil
}

// Included returns the attrs that produce output columns.
func (a AttrList) Included() AttrList {
	var out AttrList
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in --attrs syntax.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Type returns the flag type for use with the flag.Value interface.
func (a *AttrList) Type() string { return "list" }

func known(key string) bool {
	return strset.New(Keys...).Has(key)
}
