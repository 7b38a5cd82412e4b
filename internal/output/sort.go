// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"sort"
	"strings"

	"github.com/glebics/basealt-test-task/internal/rpmver"
)

// SortDataset sorts rows by a comma separated list of output keys. A leading
// - reverses a key and a leading ! makes a text key case sensitive. The
// version and evr keys sort by rpmvercmp, numbers sort numerically and
// everything else as text. An empty spec keeps the order.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if strings.TrimSpace(spec) == "" {
		return
	}
	fields := strings.Split(spec, ",")

	sort.SliceStable(resultSet, func(one, two int) bool {
		for _, field := range fields {
			field = strings.TrimSpace(field)

			ascending := true
			if strings.HasPrefix(field, "-") {
				field = strings.TrimPrefix(field, "-")
				ascending = false
			}

			caseSensitive := false
			if strings.HasPrefix(field, "!") {
				field = strings.TrimPrefix(field, "!")
				caseSensitive = true
			}

			oneValue := resultSet[one][field]
			twoValue := resultSet[two][field]

			if o := compareVersions(field, oneValue, twoValue); o != rpmver.Equal {
				return (o == rpmver.Less) == ascending
			} else if field == "version" || field == "evr" {
				continue
			}

			oneNum, oneOk := oneValue.(float64)
			twoNum, twoOk := twoValue.(float64)

			if oneOk && twoOk {
				if oneNum != twoNum {
					if ascending {
						return oneNum < twoNum
					}
					return oneNum > twoNum
				}
				continue
			}

			// Fall back to string comparison which can also handle bools.
			oneStr := InterfaceToString(oneValue)
			twoStr := InterfaceToString(twoValue)

			if !caseSensitive {
				oneStr = strings.ToLower(oneStr)
				twoStr = strings.ToLower(twoStr)
			}

			if oneStr != twoStr {
				if ascending {
					return oneStr < twoStr
				}
				return oneStr > twoStr
			}
		}
		return false
	})
}

// compareVersions orders version and evr values with rpmver. Any other field
// compares Equal.
func compareVersions(field string, one, two interface{}) rpmver.Order {
	switch field {
	case "version":
		return rpmver.CompareSegments(InterfaceToString(one), InterfaceToString(two))
	case "evr":
		return rpmver.Compare(rpmver.Parse(InterfaceToString(one)), rpmver.Parse(InterfaceToString(two)))
	default:
		return rpmver.Equal
	}
}
