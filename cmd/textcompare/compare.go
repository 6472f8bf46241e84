package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
)

func newFileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "file <table.csv|table.xlsx>",
		Short: "Compare every row of a CSV or XLSX table",
		Long: `Compare every candidate column of a table against its first column.
Rows that cannot be compared are reported and excluded from the means.`,
		Args: cobra.ExactArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			comparer, err := a.newComparer()
			if err != nil {
				return err
			}
			defer comparer.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := comparer.CompareFile(ctx, args[0])
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), a.output, filepath.Base(args[0]), res, a.diff)
		}),
	}
}

func newTextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "text <reference> <candidate> [candidate...]",
		Short: "Compare a reference text with one or more candidates",
		Example: `  textcompare text "the cat sat" "the cat sits"
  textcompare text -o html "hello" "hallo" "hullo" > report.html`,
		Args: cobra.MinimumNArgs(2),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			comparer, err := a.newComparer()
			if err != nil {
				return err
			}
			defer comparer.Close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			res, err := comparer.CompareTexts(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), a.output, "Text comparison", res, true)
		}),
	}
}
