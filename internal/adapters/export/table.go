// Package export renders results as CSV or XLSX tables.
package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// ErrUnknownFormat is returned for formats other than csv and xlsx.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an output format.
type Format string

// Output formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv and xlsx in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Table is a named grid of text cells.
type Table struct {
	Name    string     `json:"name"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Append adds a row.
func (t *Table) Append(cells ...string) { t.Rows = append(t.Rows, cells) }

// Write renders tables in format f. CSV holds only the first table.
func Write(w io.Writer, f Format, tables ...Table) error {
	switch f {
	case FormatCSV:
		if len(tables) == 0 {
			return nil
		}
		return WriteCSV(w, tables[0])
	case FormatXLSX:
		return WriteXLSX(w, tables...)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// FileName joins parts with underscores and adds the extension of f.
func FileName(f Format, parts ...string) string {
	return strings.Join(parts, "_") + "." + string(f)
}

// Priority fixes the order of well-known columns in raw exports.
var Priority = []string{ //nolint:gochecknoglobals // fixed column order
	"Clas", "CL", "Cl", "cl", "Posicion",
	"Dorsal", "DORSAL", "dorsal", "No. caballo",
	"Puntos", "PUNTOS", "puntos", "Faltas",
	"Tiempo", "TIEMPO", "tiempo",
	"Atleta", "Jinete", "NOMBRE JINETE", "nombre",
	"Licencia", "LICENCIA", "licencia",
	"Caballo", "CABALLO", "caballo",
	"Club", "CLUB", "club",
	"Reg", "Total", "TOTAL", "total",
}

// Columns orders the union of the row keys: present priority columns first,
// then the rest by how many rows carry them, first seen first on ties.
func Columns(rows []model.RawRow) []string {
	count := map[string]int{}
	var seen []string
	for _, r := range rows {
		for _, k := range r.Keys() {
			if _, ok := count[k]; !ok {
				seen = append(seen, k)
			}
			count[k]++
		}
	}

	out := make([]string, 0, len(seen))
	taken := make(map[string]bool, len(seen))
	for _, p := range Priority {
		if _, ok := count[p]; ok {
			out = append(out, p)
			taken[p] = true
		}
	}
	sort.SliceStable(seen, func(i, j int) bool { return count[seen[i]] > count[seen[j]] })
	for _, k := range seen {
		if !taken[k] {
			out = append(out, k)
		}
	}
	return out
}
