// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package output

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/juju/errors"
)

// Null is shown in place of absent values.
const Null = "NULL"

const (
	columnPadding = 2
	columnSep     = "  "
)

// OrNull returns the value, or Null when it is absent.
func OrNull(value *string) string {
	if value == nil {
		return Null
	}
	return *value
}

// Table renders rows the way the "simple" format of the tabulate python
// package does, which is what existing tooling and operators parse:
//
//	name         restore_count  state
//	---------  ---------------  ----------
//	orchagent                1  restored
//
// Each column is as wide as its widest cell or its header plus two,
// whichever is larger. A column whose every cell is a number is right
// aligned, with decimal points lined up; other columns are left aligned.
// Lines carry no trailing whitespace.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable returns an empty table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// AddRow appends a row. Missing cells are treated as empty and extra cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Write renders the table to w, ending every line with a newline.
func (t *Table) Write(w io.Writer) error {
	columns := make([][]string, len(t.headers))
	widths := make([]int, len(t.headers))
	numeric := make([]bool, len(t.headers))
	for i, header := range t.headers {
		cells := make([]string, len(t.rows))
		for j, row := range t.rows {
			cells[j] = row[i]
		}
		kind := columnKind(cells)
		if kind == floatColumn {
			cells = alignDecimals(cells)
		}
		numeric[i] = kind != textColumn

		widths[i] = width(header) + columnPadding
		for _, cell := range cells {
			widths[i] = max(widths[i], width(cell))
		}
		columns[i] = cells
	}

	var sb strings.Builder
	line := make([]string, len(t.headers))
	writeLine := func() {
		sb.WriteString(strings.TrimRight(strings.Join(line, columnSep), " "))
		sb.WriteByte('\n')
	}

	for i, header := range t.headers {
		line[i] = pad(header, widths[i], numeric[i])
	}
	writeLine()
	for i := range t.headers {
		line[i] = strings.Repeat("-", widths[i])
	}
	writeLine()
	for j := range t.rows {
		for i := range t.headers {
			line[i] = pad(columns[i][j], widths[i], numeric[i])
		}
		writeLine()
	}

	_, err := io.WriteString(w, sb.String())
	return errors.Trace(err)
}

type kind int

const (
	// An empty column counts as text.
	textColumn kind = iota
	intColumn
	floatColumn
)

func columnKind(cells []string) kind {
	if len(cells) == 0 {
		return textColumn
	}
	result := intColumn
	for _, cell := range cells {
		switch {
		case isInt(cell):
		case isFloat(cell):
			result = floatColumn
		default:
			return textColumn
		}
	}
	return result
}

func isInt(s string) bool {
	_, err := strconv.Atoi(strings.TrimSpace(s))
	return err == nil
}

func isFloat(s string) bool {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, "xX_") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// alignDecimals normalises floats to their shortest form and pads each
// cell on the right so that decimal points line up once the column is
// right aligned.
func alignDecimals(cells []string) []string {
	result := make([]string, len(cells))
	decimals := make([]int, len(cells))
	most := -1
	for i, cell := range cells {
		result[i] = cell
		if !isInt(cell) {
			f, _ := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			result[i] = strconv.FormatFloat(f, 'g', 6, 64)
		}
		decimals[i] = afterPoint(result[i])
		most = max(most, decimals[i])
	}
	for i := range result {
		result[i] += strings.Repeat(" ", most-decimals[i])
	}
	return result
}

// afterPoint returns the number of characters after the decimal point, or
// -1 if there is none.
func afterPoint(s string) int {
	if isInt(s) {
		return -1
	}
	pos := strings.LastIndex(s, ".")
	if pos < 0 {
		pos = strings.LastIndex(strings.ToLower(s), "e")
	}
	if pos < 0 {
		return -1
	}
	return len(s) - pos - 1
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func pad(s string, w int, right bool) string {
	fill := strings.Repeat(" ", max(0, w-width(s)))
	if right {
		return fill + s
	}
	return s + fill
}
