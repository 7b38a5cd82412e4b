// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package pkgdiff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Record
		wantErr string
	}{
		{
			name:  "feed shape",
			input: `{"name":"bash","epoch":0,"version":"5.2.15","release":"alt1","arch":"x86_64","disttag":"sisyphus+1","buildtime":1700000000,"source":"bash"}`,
			want:  Record{Name: "bash", Epoch: "0", Version: "5.2.15", Release: "alt1", Arch: "x86_64"},
		},
		{
			name:  "string epoch",
			input: `{"name":"a","epoch":"2","version":"1","release":"alt1","arch":"noarch"}`,
			want:  Record{Name: "a", Epoch: "2", Version: "1", Release: "alt1", Arch: "noarch"},
		},
		{
			name:  "null epoch",
			input: `{"name":"a","epoch":null,"version":"1","release":"alt1"}`,
			want:  Record{Name: "a", Version: "1", Release: "alt1"},
		},
		{
			name:  "absent epoch",
			input: `{"name":"a","version":"1","release":"alt1"}`,
			want:  Record{Name: "a", Version: "1", Release: "alt1"},
		},
		{
			name:    "missing version",
			input:   `{"name":"a","epoch":0,"release":"alt1"}`,
			wantErr: "missing version",
		},
		{
			name:    "missing name and release",
			input:   `{"epoch":0,"version":"1"}`,
			wantErr: "missing name, release",
		},
		{
			name:    "bool epoch",
			input:   `{"name":"a","epoch":true,"version":"1","release":"alt1"}`,
			wantErr: "epoch is neither number nor string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Record
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordUnmarshal_MissingIsMalformed(t *testing.T) {
	_, err := DecodeRecords([]byte(`[{"name":"a","version":"1","release":"1"},{"name":"b","version":"1"}]`))
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestEpochMarshal(t *testing.T) {
	tests := []struct {
		epoch Epoch
		want  string
	}{
		{"", "0"},
		{"0", "0"},
		{"12", "12"},
		{"x1", `"x1"`},
		{"-1", `"-1"`},
		{"01", `"01"`},
		{"007", `"007"`},
		{"00", `"00"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.epoch), func(t *testing.T) {
			got, err := json.Marshal(tt.epoch)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestEpochRoundTrip_LeadingZeros(t *testing.T) {
	records, err := DecodeRecords([]byte(`[{"name":"a","epoch":"01","version":"1","release":"alt1"},{"name":"b","epoch":7,"version":"1","release":"alt1"}]`))
	require.NoError(t, err)
	require.Equal(t, Epoch("01"), records[0].Epoch)

	data, err := json.MarshalIndent(records, "", "  ")
	require.NoError(t, err)
	assert.True(t, json.Valid(data))

	back, err := DecodeRecords(data)
	require.NoError(t, err)
	assert.Equal(t, records, back)

	report, err := Diff(records, []Record{{Name: "a", Epoch: "1", Version: "1", Release: "alt1"}})
	require.NoError(t, err)
	assert.Empty(t, report.HigherInA)
	_, err = json.Marshal(report)
	assert.NoError(t, err)
}

func TestRecordMarshal_FieldOrder(t *testing.T) {
	got, err := json.Marshal(Record{Name: "foo", Version: "1.2", Release: "1", Arch: "x86_64"})
	require.NoError(t, err)
	assert.Equal(t, `{"name":"foo","epoch":0,"version":"1.2","release":"1","arch":"x86_64"}`, string(got))
}

func TestRecordEVR(t *testing.T) {
	assert.Equal(t, "1.2-alt1", Record{Name: "a", Version: "1.2", Release: "alt1"}.EVR())
	assert.Equal(t, "1:1.2-alt1", Record{Name: "a", Epoch: "1", Version: "1.2", Release: "alt1"}.EVR())
}

func TestReportMarshal(t *testing.T) {
	report := Report{
		OnlyInA: []Record{{Name: "foo", Epoch: "0", Version: "1.2", Release: "1", Arch: "x86_64"}},
	}

	got, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Equal(t,
		`{"only_in_p10":[],"only_in_sisyphus":[{"name":"foo","epoch":0,"version":"1.2","release":"1","arch":"x86_64"}],"version_higher_in_sisyphus":[]}`,
		string(got))

	report.LabelA, report.LabelB = "p11", "p10"
	got, err = json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(got), `"only_in_p11":[{`)
	assert.Contains(t, string(got), `"version_higher_in_p11":[]`)
}

func TestReportUnmarshal(t *testing.T) {
	input := `{"only_in_p10":[{"name":"b","epoch":0,"version":"1","release":"alt1","arch":"x86_64"}],"only_in_sisyphus":[],"version_higher_in_sisyphus":[{"name":"c","epoch":1,"version":"2","release":"alt1","arch":"x86_64"}]}`

	var report Report
	require.NoError(t, json.Unmarshal([]byte(input), &report))
	assert.Equal(t, []string{"b"}, names(report.OnlyInB))
	assert.Empty(t, report.OnlyInA)
	assert.Equal(t, []string{"c"}, names(report.HigherInA))
	assert.Equal(t, Epoch("1"), report.HigherInA[0].Epoch)
}

func TestReportBuckets(t *testing.T) {
	report := Report{LabelA: "sisyphus", LabelB: "p10"}
	var keys []string
	for _, b := range report.Buckets() {
		keys = append(keys, b.Key)
	}
	assert.Equal(t, []string{"only_in_p10", "only_in_sisyphus", "version_higher_in_sisyphus"}, keys)
	assert.True(t, report.Empty())
}
