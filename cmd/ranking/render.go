package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/metrics"
)

// Output formats besides the export ones.
const (
	formatTable = "table"
	formatJSON  = "json"
)

// output is what a command produced: a JSON value and its tabular form.
type output struct {
	kind   string
	value  any
	tables []export.Table
}

// emit writes out in the format chosen by --format to the --output target.
func emit(cmd *cobra.Command, opts *options, out output) (err error) {
	w, closeFn, err := destination(cmd, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
	}()

	switch strings.ToLower(opts.format) {
	case formatTable:
		return writeTables(w, out.tables...)
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out.value)
	}

	f, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if err := export.Write(w, f, out.tables...); err != nil {
		return err
	}
	metrics.RecordExport(out.kind, string(f))
	return nil
}

// writeTables prints tables as aligned columns, one block per table.
func writeTables(w io.Writer, tables ...export.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if len(tables) > 1 {
			if _, err := fmt.Fprintf(w, "== %s ==\n", t.Name); err != nil {
				return err
			}
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Headers, "\t"))
		for _, r := range t.Rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
