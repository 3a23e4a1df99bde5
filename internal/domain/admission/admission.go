// Package admission holds the list of entries allowed into a competition.
package admission

import (
	"strings"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

// Column names accepted for the two halves of an admitted pair.
var (
	LicenseColumns          = []string{"lic", "LIC", "Lic", "Licencia", "LICENCIA", "licencia"}
	SecondaryLicenseColumns = []string{"lac", "LAC", "Lac", "Licencia_1", "LICENCIA_1", "licencia_1"}
)

// List is a set of admitted (license, secondary license) pairs. An empty list
// admits everybody.
type List struct {
	pairs map[string]struct{}
}

// New builds a list from explicit pairs.
func New(pairs ...[2]string) *List {
	l := &List{pairs: make(map[string]struct{}, len(pairs))}
	for _, p := range pairs {
		l.Add(p[0], p[1])
	}
	return l
}

// FromRows reads pairs from sheet rows. Rows missing either half are skipped.
func FromRows(rows []model.RawRow) *List {
	l := New()
	for _, r := range rows {
		l.Add(first(r, LicenseColumns), first(r, SecondaryLicenseColumns))
	}
	return l
}

// Add admits the pair. Blank halves are ignored.
func (l *List) Add(lic, lac string) {
	lic, lac = strings.TrimSpace(lic), strings.TrimSpace(lac)
	if lic == "" || lac == "" {
		return
	}
	l.pairs[key(lic, lac)] = struct{}{}
}

// Len is the number of admitted pairs.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.pairs)
}

// Allows reports whether the pair may compete.
func (l *List) Allows(lic, lac string) bool {
	if l.Len() == 0 {
		return true
	}
	lic, lac = strings.TrimSpace(lic), strings.TrimSpace(lac)
	if lic == "" || lac == "" {
		return false
	}
	_, ok := l.pairs[key(lic, lac)]
	return ok
}

// AllowsRow applies Allows to a results row.
func (l *List) AllowsRow(r model.RawRow) bool {
	if l.Len() == 0 {
		return true
	}
	return l.Allows(first(r, LicenseColumns), first(r, SecondaryLicenseColumns))
}

func key(lic, lac string) string { return lic + "-" + lac }

func first(r model.RawRow, cols []string) string {
	for _, c := range cols {
		if v := strings.TrimSpace(r.Text(c)); v != "" {
			return v
		}
	}
	return ""
}
