package main

import (
	"fmt"

	"github.com/spf13/cobra"

	textcompare "github.com/baditaflorin/go_text_compare"
	"github.com/baditaflorin/go_text_compare/internal/adapters/logger"
	"github.com/baditaflorin/go_text_compare/internal/ports"
)

// app holds the flag values shared by every subcommand.
type app struct {
	verbose       bool
	quiet         bool
	normalizer    string
	workers       int
	maxCandidates int
	precision     int
	output        string
	diff          bool

	logger ports.Logger
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:   "textcompare",
		Short: "Compare reference texts with candidate texts",
		Long: `textcompare scores candidate texts against a reference text. For each pair it
reports the similarity ratio, the character error rate (CER), the word error
rate (WER) and a character-level diff.

Tables are read from .csv or .xlsx files: the first column is the reference,
every other column is a candidate.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setupLogging(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	flags.StringVarP(&a.normalizer, "normalizer", "n", "none", "text normalization: none, whitespace, nfc, fold, full")
	flags.IntVarP(&a.workers, "workers", "j", 0, "rows compared concurrently (0 = one per CPU)")
	flags.IntVar(&a.maxCandidates, "max-candidates", 2, "maximum candidate columns (0 = unlimited)")
	flags.IntVar(&a.precision, "precision", 3, "decimals in the overview")
	flags.StringVarP(&a.output, "output", "o", formatText, "output format: text, json, html, patch")
	flags.BoolVar(&a.diff, "diff", false, "print the diff of every row in text output")

	root.AddCommand(newFileCmd(a), newTextCmd(a))
	return root, a
}

// runE wraps a subcommand so the logger is flushed and closed before cobra
// reports the returned error.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if cerr := a.closeLogger(); err == nil {
			err = cerr
		}
		return err
	}
}

// closeLogger closes the logger once. It is a no-op when logging was never set up.
func (a *app) closeLogger() error {
	if a.logger == nil {
		return nil
	}
	err := a.logger.Close()
	a.logger = nil
	return err
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	level := logger.LevelWarn
	if a.verbose {
		level = logger.LevelDebug
	}
	if a.quiet {
		level = logger.LevelError
	}

	opts := logger.DefaultOptions()
	opts.Output = cmd.ErrOrStderr()
	opts.AddSource = a.verbose
	base, err := logger.NewWithOptions(opts)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger.WithLevel(base, level)
	return nil
}

func (a *app) newComparer() (*textcompare.Comparer, error) {
	if _, err := parseFormat(a.output); err != nil {
		return nil, err
	}
	normalizerType, err := textcompare.ParseNormalizerType(a.normalizer)
	if err != nil {
		return nil, err
	}
	return textcompare.New(
		textcompare.WithLoggerAdapter(a.logger),
		textcompare.WithNormalizerType(normalizerType),
		textcompare.WithWorkers(a.workers),
		textcompare.WithMaxCandidates(a.maxCandidates),
		textcompare.WithPrecision(a.precision),
	)
}
