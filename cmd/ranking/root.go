package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	app "github.com/Nikoblas/campeonatoeuskadiponis/internal/app"
	"github.com/Nikoblas/campeonatoeuskadiponis/internal/config"
	"github.com/Nikoblas/campeonatoeuskadiponis/pkg/logger"
)

// options are the flags shared by every command.
type options struct {
	dataDir     string
	competition string
	format      string
	output      string
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ranking",
		Short: "Classify pony championship results from the command line",
		Long: `Reads the SABADO, DOMINGO and DESEMPATE results files of a competition
and prints classifications, category summaries, files and blank templates.

Settings come from the same PONIS_* environment and PONIS_CONFIG file as the
server; flags win over both.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.dataDir, "data-dir", "", "Results root directory (default from config)")
	flags.StringVarP(&opts.competition, "competition", "c", "", "Competition folder (default: first configured)")
	flags.StringVarP(&opts.format, "format", "f", formatTable, "Output format: table, json, csv or xlsx")
	flags.StringVarP(&opts.output, "output", "o", "", "Write to this file instead of stdout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log loading progress to stderr")

	root.AddCommand(
		classifyCmd(opts),
		summaryCmd(opts),
		fileCmd(opts),
		missingCmd(opts),
		templateCmd(opts),
	)
	return root
}

// session is a started service plus the resolved settings.
type session struct {
	svc         *app.Service
	competition string
}

// open loads the configuration, applies the flags and starts a service.
func open(cmd *cobra.Command, opts *options) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	competition := opts.competition
	if competition == "" {
		competition = cfg.Competitions[0]
	}
	cfg.Competitions = []string{competition}

	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
		return nil, err
	}
	level := "warn"
	if opts.verbose {
		level = cfg.LogLevel
	}
	if err := logger.SetLevelString(level); err != nil {
		return nil, err
	}

	svc := app.New(app.WithConfig(cfg), app.WithLogger(logger.Named("ranking")))
	if err := svc.Start(ctx); err != nil {
		svc.Stop()
		return nil, fmt.Errorf("load %s from %s: %w", competition, cfg.DataDir, err)
	}
	return &session{svc: svc, competition: competition}, nil
}

func (s *session) Close() { s.svc.Stop() }

// destination returns the writer selected by --output.
func destination(cmd *cobra.Command, opts *options) (io.Writer, func() error, error) {
	if opts.output == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(opts.output)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
