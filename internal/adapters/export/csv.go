package export

import (
	"io"
	"strings"
)

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ") //nolint:gochecknoglobals // shared replacer

// WriteCSV writes t as comma separated lines joined by "\n". Line breaks in
// cells become spaces. Cells holding a comma or a quote are quoted with
// doubled quotes.
func WriteCSV(w io.Writer, t Table) error {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, csvLine(t.Headers))
	for _, r := range t.Rows {
		lines = append(lines, csvLine(r))
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func csvLine(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = EscapeCSV(c)
	}
	return strings.Join(out, ",")
}

// EscapeCSV renders one cell.
func EscapeCSV(s string) string {
	s = lineBreaks.Replace(s)
	if strings.ContainsAny(s, "\",\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
