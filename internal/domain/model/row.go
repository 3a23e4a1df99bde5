// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RawRow is one spreadsheet row as read from a results file: column name to
// cell value, keeping the column order of the sheet. Values are string,
// float64 or nil.
type RawRow struct {
	keys   []string
	values map[string]any
}

// NewRawRow builds a row from parallel header and value slices. Extra values
// without a header are dropped; repeated headers keep the first position and
// the last value.
func NewRawRow(headers []string, values []any) RawRow {
	r := RawRow{values: make(map[string]any, len(headers))}
	for i, h := range headers {
		var v any
		if i < len(values) {
			v = values[i]
		}
		r.Set(h, v)
	}
	return r
}

// RowOf builds a row from alternating key/value pairs. Intended for fixtures.
func RowOf(pairs ...any) RawRow {
	r := RawRow{values: make(map[string]any, len(pairs)/2)}
	for i := 0; i+1 < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			continue
		}
		r.Set(k, normalizeValue(pairs[i+1]))
	}
	return r
}

// Set stores v under key, appending the key if it is new.
func (r *RawRow) Set(key string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r RawRow) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Text returns the value under key rendered as text; "" when absent or nil.
func (r RawRow) Text(key string) string {
	v, ok := r.values[key]
	if !ok {
		return ""
	}
	return ValueText(v)
}

// Keys returns the column names in sheet order. The slice must not be modified.
func (r RawRow) Keys() []string { return r.keys }

// Len returns the number of columns.
func (r RawRow) Len() int { return len(r.keys) }

// IsBlank reports whether every cell is nil or whitespace.
func (r RawRow) IsBlank() bool {
	for _, v := range r.values {
		if strings.TrimSpace(ValueText(v)) != "" {
			return false
		}
	}
	return true
}

// ValueText renders a cell value as text. Whole floats print without a
// decimal point.
func ValueText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// MarshalJSON writes the row as an object in column order.
func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object keeping the order of its keys. Numbers become
// float64.
func (r *RawRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("raw row: expected object")
	}
	*r = RawRow{values: make(map[string]any)}
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return errors.New("raw row: expected string key")
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return err
		}
		r.Set(key, normalizeValue(v))
	}
	_, err = dec.Token()
	return err
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float32:
		return float64(t)
	default:
		return v
	}
}
