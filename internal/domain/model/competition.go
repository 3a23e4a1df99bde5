package model

import (
	"sort"
	"strings"
	"time"
)

// Day is a competition day. Result files are named after it.
type Day string

// Competition days. Saturday and Sunday are mandatory; the tiebreak is a
// runoff held only when needed.
const (
	Saturday Day = "SABADO"
	Sunday   Day = "DOMINGO"
	Tiebreak Day = "DESEMPATE"
)

// Days lists every day in processing order.
var Days = []Day{Saturday, Sunday, Tiebreak}

// MandatoryDays are the days that count toward the total.
var MandatoryDays = []Day{Saturday, Sunday}

// Mandatory reports whether d counts toward the total.
func (d Day) Mandatory() bool { return d == Saturday || d == Sunday }

// ParseDay accepts the file-name spelling or the English name, in any case.
func ParseDay(s string) (Day, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SABADO", "SÁBADO", "SATURDAY":
		return Saturday, true
	case "DOMINGO", "SUNDAY":
		return Sunday, true
	case "DESEMPATE", "TIEBREAK", "RUNOFF":
		return Tiebreak, true
	}
	return "", false
}

// Mode selects the tie-break rule of a category.
type Mode string

// Category modes.
const (
	ModePointsTime Mode = "points+time"
	ModeTimeOnly   Mode = "time-only"
)

// ModeFor returns ModeTimeOnly when category is listed in timeOnly.
func ModeFor(category string, timeOnly []string) Mode {
	for _, c := range timeOnly {
		if strings.EqualFold(strings.TrimSpace(c), strings.TrimSpace(category)) {
			return ModeTimeOnly
		}
	}
	return ModePointsTime
}

// FileKey addresses one results file.
type FileKey struct {
	Competition string `json:"competition"`
	Day         Day    `json:"day"`
	Category    string `json:"category"`
}

// BaseName is the file name without extension, e.g. SABADOA2.
func (k FileKey) BaseName() string { return string(k.Day) + k.Category }

func (k FileKey) String() string { return k.Competition + "/" + k.BaseName() }

// FileData is one ingested results file.
type FileData struct {
	Key    FileKey        `json:"key"`
	Source string         `json:"source"`
	Raw    []RawRow       `json:"raw"`
	Rows   []CanonicalRow `json:"rows"`
}

// Empty reports whether the file holds no usable rows.
func (f *FileData) Empty() bool { return f == nil || len(f.Rows) == 0 }

// Snapshot is an immutable view of every loaded file.
type Snapshot struct {
	ID       string                `json:"id"`
	LoadedAt time.Time             `json:"loaded_at"`
	Files    map[FileKey]*FileData `json:"-"`
	Missing  []FileKey             `json:"missing"`
}

// File returns the file stored under key.
func (s *Snapshot) File(key FileKey) (*FileData, bool) {
	if s == nil {
		return nil, false
	}
	f, ok := s.Files[key]
	return f, ok
}

// Category gathers the three day files of a category.
func (s *Snapshot) Category(competition, category string) CategoryFiles {
	cf := CategoryFiles{Competition: competition, Category: category}
	cf.Saturday, _ = s.File(FileKey{Competition: competition, Day: Saturday, Category: category})
	cf.Sunday, _ = s.File(FileKey{Competition: competition, Day: Sunday, Category: category})
	cf.Tiebreak, _ = s.File(FileKey{Competition: competition, Day: Tiebreak, Category: category})
	return cf
}

// Competitions lists competitions with at least one file, sorted.
func (s *Snapshot) Competitions() []string {
	seen := map[string]struct{}{}
	for k := range s.Files {
		seen[k.Competition] = struct{}{}
	}
	return sortedKeys(seen)
}

// Categories lists the categories of a competition, sorted.
func (s *Snapshot) Categories(competition string) []string {
	seen := map[string]struct{}{}
	for k := range s.Files {
		if k.Competition == competition {
			seen[k.Category] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

// SortedFiles returns every file ordered by competition, category and day.
func (s *Snapshot) SortedFiles() []*FileData {
	out := make([]*FileData, 0, len(s.Files))
	for _, f := range s.Files {
		out = append(out, f)
	}
	order := map[Day]int{Saturday: 0, Sunday: 1, Tiebreak: 2}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Key, out[j].Key
		if a.Competition != b.Competition {
			return a.Competition < b.Competition
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return order[a.Day] < order[b.Day]
	})
	return out
}

// RowCount is the number of canonical rows across all files.
func (s *Snapshot) RowCount() int {
	n := 0
	for _, f := range s.Files {
		n += len(f.Rows)
	}
	return n
}

// WithFile returns a copy of s with f stored under its key. Other files are
// shared with s.
func (s *Snapshot) WithFile(id string, at time.Time, f *FileData) *Snapshot {
	next := &Snapshot{ID: id, LoadedAt: at, Files: make(map[FileKey]*FileData, len(s.Files)+1)}
	for k, v := range s.Files {
		next.Files[k] = v
	}
	next.Files[f.Key] = f
	for _, m := range s.Missing {
		if m != f.Key {
			next.Missing = append(next.Missing, m)
		}
	}
	return next
}

// CategoryFiles are the day files of one category. Any of them may be nil.
type CategoryFiles struct {
	Competition string
	Category    string
	Saturday    *FileData
	Sunday      *FileData
	Tiebreak    *FileData
}

// File returns the file of day.
func (c CategoryFiles) File(day Day) *FileData {
	switch day {
	case Saturday:
		return c.Saturday
	case Sunday:
		return c.Sunday
	case Tiebreak:
		return c.Tiebreak
	}
	return nil
}

// Rows returns the canonical rows of day, nil when the file is missing.
func (c CategoryFiles) Rows(day Day) []CanonicalRow {
	if f := c.File(day); f != nil {
		return f.Rows
	}
	return nil
}

// HasData reports whether the file of day exists and is non-empty.
func (c CategoryFiles) HasData(day Day) bool { return !c.File(day).Empty() }

// ShowRank reports whether both mandatory days have results.
func (c CategoryFiles) ShowRank() bool { return c.HasData(Saturday) && c.HasData(Sunday) }

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
