package model

import (
	"encoding/json"
	"strconv"
	"strings"
)

// EliminationCode is a marker written in the score column instead of points.
type EliminationCode string

// Known elimination markers.
const (
	CodeEL  EliminationCode = "EL"
	CodeE   EliminationCode = "E"
	CodeR   EliminationCode = "R"
	CodeELI EliminationCode = "ELI"
	CodeRET EliminationCode = "RET"
	CodeNC  EliminationCode = "NC"
)

var eliminationCodes = map[string]EliminationCode{
	"EL":  CodeEL,
	"E":   CodeE,
	"R":   CodeR,
	"ELI": CodeELI,
	"RET": CodeRET,
	"NC":  CodeNC,
}

// ParseEliminationCode matches s against the elimination vocabulary after
// trimming, ignoring case.
func ParseEliminationCode(s string) (EliminationCode, bool) {
	c, ok := eliminationCodes[strings.ToUpper(strings.TrimSpace(s))]
	return c, ok
}

// IsEliminationMarker reports whether s is one of the elimination codes.
func IsEliminationMarker(s string) bool {
	_, ok := ParseEliminationCode(s)
	return ok
}

// Label is the display text for the code.
func (c EliminationCode) Label() string {
	if c == CodeNC {
		return "does not continue"
	}
	return "eliminated"
}

// Missing is the placeholder shown for absent text values.
const Missing = "-"

// ScoreKind discriminates Score.
type ScoreKind uint8

// Score kinds.
const (
	ScoreAbsent ScoreKind = iota
	ScoreNumeric
	ScoreEliminated
)

// Score is the normalized content of a score cell.
type Score struct {
	Kind  ScoreKind
	Value float64
	Code  EliminationCode
}

// Absent is the score of a missing cell.
func Absent() Score { return Score{Kind: ScoreAbsent} }

// Numeric wraps a point value.
func Numeric(v float64) Score { return Score{Kind: ScoreNumeric, Value: v} }

// Eliminated wraps an elimination code.
func Eliminated(c EliminationCode) Score { return Score{Kind: ScoreEliminated, Code: c} }

func (s Score) IsAbsent() bool     { return s.Kind == ScoreAbsent }
func (s Score) IsNumeric() bool    { return s.Kind == ScoreNumeric }
func (s Score) IsEliminated() bool { return s.Kind == ScoreEliminated }

// String renders the score the way result sheets do.
func (s Score) String() string {
	switch s.Kind {
	case ScoreNumeric:
		return strconv.FormatFloat(s.Value, 'f', -1, 64)
	case ScoreEliminated:
		return string(s.Code)
	default:
		return Missing
	}
}

// MarshalJSON emits numbers as numbers and everything else as text.
func (s Score) MarshalJSON() ([]byte, error) {
	if s.Kind == ScoreNumeric {
		return json.Marshal(s.Value)
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a number, an elimination code or "-".
func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*s = Numeric(f)
		return nil
	}
	var txt string
	if err := json.Unmarshal(data, &txt); err != nil {
		*s = Absent()
		return nil //nolint:nilerr // unknown shapes degrade to absent
	}
	if c, ok := ParseEliminationCode(txt); ok {
		*s = Eliminated(c)
		return nil
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(txt), 64); err == nil {
		*s = Numeric(v)
		return nil
	}
	*s = Absent()
	return nil
}
