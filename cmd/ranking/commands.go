package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Nikoblas/campeonatoeuskadiponis/internal/adapters/export"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/domain/model"
)

func classifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify CATEGORY",
		Short: "Individual classification of a category",
		Long: `Ranks the riders of a category over Saturday and Sunday, with the
runoff deciding ties.

Examples:
  ranking classify A2
  ranking classify B --competition AZKOITIA --format xlsx -o clasificacion.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.svc.Classification(cmd.Context(), s.competition, args[0])
			if err != nil {
				return err
			}
			return emit(cmd, opts, output{kind: "classification", value: res, tables: []export.Table{export.ClassificationTable(res)}})
		},
	}
}

func summaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary CATEGORY",
		Short: "Category summary (Clas, Jinete, Club, Total, Sábado, Domingo)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			entries, err := s.svc.Summary(cmd.Context(), s.competition, args[0])
			if err != nil {
				return err
			}
			return emit(cmd, opts, output{kind: "summary", value: entries, tables: []export.Table{export.SummaryTable(args[0], entries)}})
		},
	}
}

func fileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "file DAY CATEGORY",
		Short: "Rows of one results file as loaded",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, ok := model.ParseDay(args[0])
			if !ok {
				return fmt.Errorf("unknown day %q (want SABADO, DOMINGO or DESEMPATE)", args[0])
			}
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			f, err := s.svc.File(cmd.Context(), model.FileKey{Competition: s.competition, Day: day, Category: args[1]})
			if err != nil {
				return err
			}
			return emit(cmd, opts, output{kind: "file", value: f, tables: []export.Table{export.FileTable(f)}})
		},
	}
}

func missingCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Expected results files that were not found",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := open(cmd, opts)
			if err != nil {
				return err
			}
			defer s.Close()

			keys, err := s.svc.Missing(cmd.Context(), s.competition)
			if err != nil {
				return err
			}
			t := export.Table{Name: "missing", Headers: []string{"Competición", "Día", "Categoría", "Fichero"}}
			names := make([]string, len(keys))
			for i, k := range keys {
				names[i] = k.BaseName()
				t.Append(k.Competition, string(k.Day), k.Category, k.BaseName())
			}
			return emit(cmd, opts, output{kind: "missing", value: names, tables: []export.Table{t}})
		},
	}
}

func templateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Blank spreadsheets for the results team",
	}

	day := &cobra.Command{
		Use:   "day DAY CATEGORY...",
		Short: "Blank day results sheet, one per category",
		Example: `  ranking template day SABADO A A2 B --format xlsx -o sabado.xlsx`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := model.ParseDay(args[0])
			if !ok {
				return fmt.Errorf("unknown day %q (want SABADO, DOMINGO or DESEMPATE)", args[0])
			}
			tables := make([]export.Table, 0, len(args)-1)
			for _, c := range args[1:] {
				tables = append(tables, export.DayTemplate(d, strings.TrimSpace(c)))
			}
			return emit(cmd, opts, output{kind: "template_day", value: tables, tables: tables})
		},
	}

	category := &cobra.Command{
		Use:   "category CATEGORY...",
		Short: "Blank category summary sheet, one per category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := make([]export.Table, 0, len(args))
			for _, c := range args {
				tables = append(tables, export.CategoryTemplate(strings.TrimSpace(c)))
			}
			return emit(cmd, opts, output{kind: "template_category", value: tables, tables: tables})
		},
	}

	cmd.AddCommand(day, category)
	return cmd
}
