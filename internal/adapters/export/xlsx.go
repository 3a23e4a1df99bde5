package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

var sheetNameCleaner = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_") //nolint:gochecknoglobals // shared replacer

// WriteXLSX writes one sheet per table. Numeric cells are stored as numbers.
func WriteXLSX(w io.Writer, tables ...Table) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	used := map[string]bool{}
	for i, t := range tables {
		name := uniqueSheetName(t.Name, i, used)
		if i == 0 {
			if err := f.SetSheetName(first, name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("add sheet %q: %w", name, err)
		}
		if err := writeSheet(f, name, t); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t Table) error {
	put := func(rowIdx int, cells []any) error {
		axis, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, axis, &cells); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, rowIdx, err)
		}
		return nil
	}

	header := make([]any, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := put(1, header); err != nil {
		return err
	}
	for i, r := range t.Rows {
		cells := make([]any, len(r))
		for j, c := range r {
			cells[j] = cellValue(c)
		}
		if err := put(i+2, cells); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil && strconv.FormatFloat(f, 'f', -1, 64) == s {
		return f
	}
	return s
}

func uniqueSheetName(name string, idx int, used map[string]bool) string {
	name = sheetNameCleaner.Replace(strings.TrimSpace(name))
	if name == "" {
		name = "Sheet" + strconv.Itoa(idx+1)
	}
	for utf8.RuneCountInString(name) > maxSheetName {
		_, size := utf8.DecodeLastRuneInString(name)
		name = name[:len(name)-size]
	}
	base := name
	for n := 2; used[strings.ToLower(name)]; n++ {
		suffix := "-" + strconv.Itoa(n)
		name = base
		for utf8.RuneCountInString(name)+len(suffix) > maxSheetName {
			_, size := utf8.DecodeLastRuneInString(name)
			name = name[:len(name)-size]
		}
		name += suffix
	}
	used[strings.ToLower(name)] = true
	return name
}
