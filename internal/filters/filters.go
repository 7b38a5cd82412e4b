// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/glebics/basealt-test-task/internal/attrs"
	"github.com/glebics/basealt-test-task/internal/rpmver"
)

// filterRegex splits a filter expression into key, operator and target.
// Operators are one of = ^ ~ < > @ or /, optionally prefixed with '!'.
// Examples: "name" (key only), "name=bash" (key + operator + target),
// "name=" (key + operator, no target).
var filterRegex = regexp.MustCompile(`^([^!?=^~<>@/]*)(!?[=^~<>@/])?(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a --filter value into a slice of Filter.
// Malformed expressions are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Allow an override for values that contain commas.
	delim := ","
	if d, ok := os.LookupEnv("PKGDIFF_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// FilterDataset returns the rows of candidates, a JSON array of package
// records, that pass spec. Each row maps an attr's OutputKey to its raw
// value; transforms are applied later by the output layer.
func FilterDataset(candidates gjson.Result, attrs attrs.AttrList, spec string) []map[string]interface{} {
	//nolint:prealloc
	var filteredResults []map[string]interface{}

	filters := BuildFilters(spec)

	for _, candidate := range candidates.Array() {
		if !applyFilters(candidate, attrs, filters) {
			continue
		}

		result := make(map[string]interface{})
		for _, attr := range attrs {
			if attr.Key == "*" {
				continue
			}
			result[attr.OutputKey] = Value(candidate, attr.Key)
		}
		filteredResults = append(filteredResults, result)
	}

	return filteredResults
}

// Value extracts key from a record row. evr is assembled from the epoch,
// version and release fields.
func Value(candidate gjson.Result, key string) interface{} {
	if key == "evr" {
		return triple(candidate).String()
	}
	v := candidate.Get(key)
	if !v.Exists() {
		return nil
	}
	return v.Value()
}

func triple(candidate gjson.Result) rpmver.Triple {
	return rpmver.Triple{
		Epoch:   candidate.Get("epoch").String(),
		Version: candidate.Get("version").String(),
		Release: candidate.Get("release").String(),
	}
}

// applyFilters returns true if the candidate row matches all of the
// filters.
func applyFilters(candidate gjson.Result, attrs attrs.AttrList, filters []Filter) bool {
	if len(filters) == 0 {
		return true
	}

	for _, filter := range filters {
		var key string

		// Filters name columns by their output key.
		for _, attr := range attrs {
			if attr.OutputKey == filter.Key && attr.Key != "*" {
				key = attr.Key
				break
			}
		}

		// Report an unknown key and keep going with the other filters.
		if key == "" {
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		value := Value(candidate, key)
		if value == nil {
			return false
		}

		var result bool
		switch {
		case key == "version" && isOrdering(filter.Operand):
			result = checkVersionOperand(rpmver.CompareSegments(fmt.Sprint(value), filter.Value), filter)
		case key == "evr" && isOrdering(filter.Operand):
			result = checkVersionOperand(rpmver.Compare(triple(candidate), rpmver.Parse(filter.Value)), filter)
		default:
			if v, ok := value.(string); ok {
				result = checkStringOperand(v, filter)
			} else if num, ok := value.(float64); ok {
				result = checkNumericOperand(num, filter)
			} else {
				result = checkStringOperand(fmt.Sprintf("%v", value), filter)
			}
		}

		if !result {
			return false
		}
	}

	return true
}

func isOrdering(operand string) bool {
	return operand == "<" || operand == ">"
}

// checkVersionOperand applies < and > to a comparator result.
func checkVersionOperand(o rpmver.Order, filter Filter) bool {
	switch filter.Operand {
	case ">":
		return (o == rpmver.Greater) == !filter.Negate
	case "<":
		return (o == rpmver.Less) == !filter.Negate
	default:
		return false
	}
}

// checkNumericOperand compares a numeric value against the filter value using
// numeric semantics. Supported operands: =, >, < and the negated forms.
func checkNumericOperand(value float64, filter Filter) bool {
	tgt, err := strconv.ParseFloat(strings.TrimSpace(filter.Value), 64)
	if err != nil {
		// Not a number, so fall back to comparing the text.
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}

	switch filter.Operand {
	case "=":
		return (value == tgt) == !filter.Negate
	case ">":
		return (value > tgt) == !filter.Negate
	case "<":
		return (value < tgt) == !filter.Negate
	default:
		return checkStringOperand(strconv.FormatFloat(value, 'f', -1, 64), filter)
	}
}

// checkStringOperand evaluates a string comparison style filter against the
// provided value using the operand semantics.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Value == !filter.Negate
	case "~":
		return strings.EqualFold(value, filter.Value) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Value) == !filter.Negate
	case ">":
		return value > filter.Value == !filter.Negate
	case "<":
		return value < filter.Value == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Value) == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Value, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Value)
			return false
		}
		return matched == !filter.Negate
	case "":
		// A bare key keeps rows where the field is non-empty.
		return (value != "") == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
