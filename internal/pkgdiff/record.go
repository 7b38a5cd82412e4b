// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package pkgdiff

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/glebics/basealt-test-task/internal/rpmver"
)

// ErrMalformedRecord is returned when a record lacks a required field.
var ErrMalformedRecord = errors.New("malformed package record")

// Epoch is an epoch token. The feed sends it as a JSON number, other sources
// as a string. Empty means zero.
type Epoch string

// MarshalJSON emits canonical numeric epochs as numbers and anything else,
// including digit strings with leading zeros, as a string.
func (e Epoch) MarshalJSON() ([]byte, error) {
	s := strings.TrimSpace(string(e))
	if s == "" {
		return []byte("0"), nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil && strconv.FormatUint(n, 10) == s {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

// UnmarshalJSON accepts a number, a string or null.
func (e *Epoch) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = Epoch(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("epoch is neither number nor string: %s", data)
	}
	*e = Epoch(n.String())
	return nil
}

// Record is one binary package build for one architecture.
type Record struct {
	Name    string `json:"name"`
	Epoch   Epoch  `json:"epoch"`
	Version string `json:"version"`
	Release string `json:"release"`
	Arch    string `json:"arch"`
}

// UnmarshalJSON decodes a record and rejects one that has no name, version or
// release key. Extra keys are ignored.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name    *string `json:"name"`
		Epoch   Epoch   `json:"epoch"`
		Version *string `json:"version"`
		Release *string `json:"release"`
		Arch    string  `json:"arch"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var missing []string
	if raw.Name == nil {
		missing = append(missing, "name")
	}
	if raw.Version == nil {
		missing = append(missing, "version")
	}
	if raw.Release == nil {
		missing = append(missing, "release")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMalformedRecord, strings.Join(missing, ", "))
	}

	*r = Record{
		Name:    *raw.Name,
		Epoch:   raw.Epoch,
		Version: *raw.Version,
		Release: *raw.Release,
		Arch:    raw.Arch,
	}
	return nil
}

// Triple returns the comparator input for r.
func (r Record) Triple() rpmver.Triple {
	return rpmver.Triple{
		Epoch:   string(r.Epoch),
		Version: r.Version,
		Release: r.Release,
	}
}

// EVR renders the record's version as [E:]V-R.
func (r Record) EVR() string {
	return r.Triple().String()
}

func (r Record) validate() error {
	switch {
	case r.Name == "":
		return fmt.Errorf("%w: empty name", ErrMalformedRecord)
	case r.Version == "":
		return fmt.Errorf("%w: %s has empty version", ErrMalformedRecord, r.Name)
	}
	return nil
}

// DecodeRecords decodes a JSON array of records.
func DecodeRecords(data []byte) ([]Record, error) {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
