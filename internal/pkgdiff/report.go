// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgdiff

import (
	"bytes"
	"encoding/json"
)

const (
	DefaultLabelA = "sisyphus"
	DefaultLabelB = "p10"
)

// Report is the outcome of Diff. Labels only affect serialization.
type Report struct {
	LabelA    string   `json:"-"`
	LabelB    string   `json:"-"`
	OnlyInB   []Record `json:"-"`
	OnlyInA   []Record `json:"-"`
	HigherInA []Record `json:"-"`
}

// Bucket is one named slice of a Report.
type Bucket struct {
	Key     string
	Records []Record
}

// Buckets returns the three buckets in serialization order.
func (r Report) Buckets() []Bucket {
	a, b := r.labels()
	return []Bucket{
		{Key: "only_in_" + b, Records: r.OnlyInB},
		{Key: "only_in_" + a, Records: r.OnlyInA},
		{Key: "version_higher_in_" + a, Records: r.HigherInA},
	}
}

// Empty reports whether all three buckets are empty.
func (r Report) Empty() bool {
	return len(r.OnlyInB) == 0 && len(r.OnlyInA) == 0 && len(r.HigherInA) == 0
}

// MarshalJSON writes the buckets as an object whose keys keep the order of
// Buckets. Nil buckets are written as empty arrays.
func (r Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, bucket := range r.Buckets() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(bucket.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		records := bucket.Records
		if records == nil {
			records = []Record{}
		}
		value, err := json.Marshal(records)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a report written by MarshalJSON. The labels must be set
// beforehand when they differ from the defaults.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw map[string][]Record
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	buckets := r.Buckets()
	r.OnlyInB = raw[buckets[0].Key]
	r.OnlyInA = raw[buckets[1].Key]
	r.HigherInA = raw[buckets[2].Key]
	return nil
}

func (r Report) labels() (string, string) {
	a, b := r.LabelA, r.LabelB
	if a == "" {
		a = DefaultLabelA
	}
	if b == "" {
		b = DefaultLabelB
	}
	return a, b
}
