// Package source reads results workbooks and loads them concurrently.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// Format is the container format of a results file.
type Format string

// Supported formats.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Extensions lists the file extensions tried, in order.
var Extensions = []string{".xlsx", ".csv"} //nolint:gochecknoglobals // fixed lookup order

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FormatOf guesses the format from a file name or content type.
func FormatOf(name string) (Format, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch {
	case strings.HasSuffix(n, ".xlsx"), strings.Contains(n, "spreadsheetml"):
		return FormatXLSX, true
	case strings.HasSuffix(n, ".csv"), strings.Contains(n, "text/csv"):
		return FormatCSV, true
	}
	return "", false
}

// Parse reads rows from data. When the name gives no format, xlsx is tried
// before csv.
func Parse(name string, data []byte) ([]model.RawRow, error) {
	if f, ok := FormatOf(name); ok {
		return ParseFormat(f, data)
	}
	rows, err := ReadXLSX(data)
	if err == nil || errors.Is(err, ErrEmptySheet) {
		return rows, err
	}
	return ReadCSV(data)
}

// ParseFormat reads rows from data in format f.
func ParseFormat(f Format, data []byte) ([]model.RawRow, error) {
	switch f {
	case FormatXLSX:
		return ReadXLSX(data)
	case FormatCSV:
		return ReadCSV(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// ReadXLSX reads the first sheet of a workbook. The first row is the header.
func ReadXLSX(data []byte) ([]model.RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrEmptySheet)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return table(rows)
}

// ReadCSV reads a delimited text file. The delimiter is detected from the
// header line among comma, semicolon and tab.
func ReadCSV(data []byte) ([]model.RawRow, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = sniffDelimiter(data)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		records = append(records, rec)
	}
	return table(records)
}

func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, count := ',', bytes.Count(line, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > count {
			best, count = d, n
		}
	}
	return best
}

// table turns a header row plus data rows into RawRows. Columns with a blank
// header are dropped.
func table(records [][]string) ([]model.RawRow, error) {
	if len(records) == 0 {
		return nil, ErrEmptySheet
	}
	var headers []string
	var cols []int
	for i, h := range records[0] {
		if h = strings.TrimSpace(h); h != "" {
			headers = append(headers, h)
			cols = append(cols, i)
		}
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrEmptySheet)
	}

	out := make([]model.RawRow, 0, len(records)-1)
	for _, rec := range records[1:] {
		values := make([]any, len(cols))
		for j, c := range cols {
			if c < len(rec) {
				values[j] = cell(rec[c])
			}
		}
		out = append(out, model.NewRawRow(headers, values))
	}
	return out, nil
}

// cell converts numeric text to float64 when the conversion round-trips, so
// "12" becomes 12 but "0123" and "1:02" stay text. Empty cells are nil.
func cell(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || strconv.FormatFloat(f, 'f', -1, 64) != t {
		return t
	}
	return f
}
