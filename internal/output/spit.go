// Copyright (c) 2026 The basealt-test-task Authors.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/glebics/basealt-test-task/internal/attrs"
	"github.com/glebics/basealt-test-task/internal/config"
	"github.com/glebics/basealt-test-task/internal/filters"
	"github.com/glebics/basealt-test-task/internal/pkgdiff"
)

// Formats lists the accepted --output values.
var Formats = []string{"text", "json", "yaml"}

// Options shape how reports are rendered.
type Options struct {
	Output  string
	Filter  string
	Sort    string
	Color   bool
	Titles  bool
	Padding int
	// Buckets restricts output to these buckets. Empty means all.
	Buckets []string
}

// Section is the report of one architecture.
type Section struct {
	Arch   string
	Report pkgdiff.Report
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value interface{}, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		if value == "" {
			return emptyValue[0]
		}
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		// Epochs are the only numbers and they are integers.
		return fmt.Sprintf("%.0f", value)
	case bool:
		return strconv.FormatBool(value)
	default:
		if reflect.ValueOf(value).IsZero() {
			return emptyValue[0]
		}
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// SliceDiceSpit filters, transforms, sorts and renders every section to w.
// If w is nil, os.Stdout is used.
func SliceDiceSpit(sections []Section, attrList attrs.AttrList, opts Options, w io.Writer) error {
	if w == nil {
		w = os.Stdout
	}

	// The global spec is folded into a copy so the caller's list is reusable.
	attrList = append(attrs.AttrList(nil), attrList...)
	if err := attrList.SetGlobalTransformSpec(); err != nil {
		return err
	}
	columns := attrList.Included()

	switch opts.Output {
	case "json":
		doc := orderedObject{}
		for _, s := range sections {
			buckets := orderedObject{}
			for _, b := range selectBuckets(s.Report, opts.Buckets) {
				buckets = append(buckets, orderedField{b.Key, toRows(dataset(b, attrList, opts), columns)})
			}
			doc = append(doc, orderedField{s.Arch, buckets})
		}
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		doc := yaml.MapSlice{}
		for _, s := range sections {
			buckets := yaml.MapSlice{}
			for _, b := range selectBuckets(s.Report, opts.Buckets) {
				buckets = append(buckets, yaml.MapItem{Key: b.Key, Value: toYAMLRows(dataset(b, attrList, opts), columns)})
			}
			doc = append(doc, yaml.MapItem{Key: s.Arch, Value: buckets})
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "", "text":
		for _, s := range sections {
			for _, b := range selectBuckets(s.Report, opts.Buckets) {
				rows := dataset(b, attrList, opts)
				header := fmt.Sprintf("%s %s (%s)", s.Arch, b.Key, humanize.Comma(int64(len(rows))))
				TableWriter(rows, columns, opts, header, w)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q, want one of %s", opts.Output, strings.Join(Formats, ", "))
	}
}

// dataset turns one bucket into filtered, transformed and sorted rows.
func dataset(b pkgdiff.Bucket, attrList attrs.AttrList, opts Options) []map[string]interface{} {
	records := b.Records
	if records == nil {
		records = []pkgdiff.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		log.Errorf("dataset marshal: %v", err)
		return nil
	}

	rows := filters.FilterDataset(gjson.ParseBytes(raw), attrList, opts.Filter)

	for _, row := range rows {
		for _, attr := range attrList {
			if attr.TransformSpec != "" && attr.Key != "*" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}

	SortDataset(rows, opts.Sort)
	return rows
}

// selectBuckets returns the report buckets named in want. Besides the
// report keys, "a", "b" and "higher" select by role.
func selectBuckets(r pkgdiff.Report, want []string) []pkgdiff.Bucket {
	all := r.Buckets()
	if len(want) == 0 {
		return all
	}

	aliases := map[string]int{"b": 0, "a": 1, "higher": 2}
	selected := make([]bool, len(all))
	for _, w := range want {
		if i, ok := aliases[strings.ToLower(w)]; ok {
			selected[i] = true
			continue
		}
		for i, b := range all {
			if b.Key == w {
				selected[i] = true
			}
		}
	}

	var out []pkgdiff.Bucket
	for i, b := range all {
		if selected[i] {
			out = append(out, b)
		}
	}
	return out
}

// TableWriter renders the result set in a tabular form honoring color,
// titles and padding options. Output is written to w. If w is nil, os.Stdout
// is used.
func TableWriter(
	resultSet []map[string]interface{},
	columns attrs.AttrList,
	opts Options,
	header string,
	w io.Writer) {

	if w == nil {
		w = os.Stdout
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	if header != "" {
		fmt.Fprintln(w, headerStyle.Render(header))
	}

	// Nothing but the header for an empty bucket.
	if len(resultSet) == 0 {
		fmt.Fprintln(w)
		return
	}

	var rows [][]string
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, attr := range columns {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(columns))
		for _, attr := range columns {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
	fmt.Fprintln(w)
}

// getColors returns configured color values for table rendering. Each color is
// selected based on terminal background color and brightness so that we can
// make sure output is reasonably visible for all(?) terminal themes.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	// An explicit color in the config wins; otherwise pick a default that
	// suits the terminal background.
	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil && colorCfg != "" {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}

// orderedField and orderedObject marshal to a JSON object whose keys keep
// their insertion order.
type orderedField struct {
	Key   string
	Value interface{}
}

type orderedObject []orderedField

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func toRows(rows []map[string]interface{}, columns attrs.AttrList) []orderedObject {
	out := make([]orderedObject, 0, len(rows))
	for _, row := range rows {
		obj := make(orderedObject, 0, len(columns))
		for _, attr := range columns {
			obj = append(obj, orderedField{attr.OutputKey, row[attr.OutputKey]})
		}
		out = append(out, obj)
	}
	return out
}

func toYAMLRows(rows []map[string]interface{}, columns attrs.AttrList) []yaml.MapSlice {
	out := make([]yaml.MapSlice, 0, len(rows))
	for _, row := range rows {
		item := make(yaml.MapSlice, 0, len(columns))
		for _, attr := range columns {
			item = append(item, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
		}
		out = append(out, item)
	}
	return out
}
