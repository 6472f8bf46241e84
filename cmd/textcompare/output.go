package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	textcompare "github.com/baditaflorin/go_text_compare"
	"github.com/baditaflorin/go_text_compare/pkg/render"
)

const (
	formatText  = "text"
	formatJSON  = "json"
	formatHTML  = "html"
	formatPatch = "patch"
)

func parseFormat(name string) (string, error) {
	switch f := strings.ToLower(name); f {
	case formatText, formatJSON, formatHTML, formatPatch:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown output format %q", textcompare.ErrInvalidConfig, name)
	}
}

func writeResult(w io.Writer, format, title string, res textcompare.BatchResult, diff bool) error {
	format, err := parseFormat(format)
	if err != nil {
		return err
	}
	switch format {
	case formatJSON:
		return writeJSON(w, res)
	case formatHTML:
		return render.WriteDocument(w, render.NewDocument(title, res))
	case formatPatch:
		return writePatch(w, res)
	default:
		return writeText(w, res, diff)
	}
}

func writeJSON(w io.Writer, res textcompare.BatchResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Overview []textcompare.OverviewRow `json:"overview"`
		Result   textcompare.BatchResult   `json:"result"`
	}{res.Overview(), res})
}

func writeText(w io.Writer, res textcompare.BatchResult, diff bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "COMPARISON\tRATIO\tCER\tWER")
	for _, row := range res.Overview() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Comparison, row.Ratio, row.CER, row.WER)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, name := range res.Columns {
		col := res.Results[name]
		if col.UndefinedCER > 0 || col.UndefinedWER > 0 || col.FailedRows > 0 {
			fmt.Fprintf(w, "%s-%s: %d undefined cer, %d undefined wer, %d failed rows\n",
				res.ReferenceColumn, name, col.UndefinedCER, col.UndefinedWER, col.FailedRows)
		}
	}
	if !diff {
		return nil
	}

	fmt.Fprintf(w, "\n%s\n", render.Legend)
	for _, name := range res.Columns {
		for _, row := range res.Results[name].Rows {
			fmt.Fprintf(w, "\n%s-%s #%d", res.ReferenceColumn, name, row.Row+1)
			if row.Failed() {
				fmt.Fprintf(w, "  error: %s\n", row.Error)
				continue
			}
			ratio := textcompare.Measure{Value: row.Ratio, Defined: true}
			fmt.Fprintf(w, "  ratio %s  cer %s  wer %s\n",
				ratio.Rounded(res.Precision), row.CER.Rounded(res.Precision), row.WER.Rounded(res.Precision))
			fmt.Fprintln(w, render.ANSI(row.Segments))
		}
	}
	return nil
}

func writePatch(w io.Writer, res textcompare.BatchResult) error {
	for _, name := range res.Columns {
		for _, row := range res.Results[name].Rows {
			if _, err := fmt.Fprintf(w, "--- %s-%s #%d\n", res.ReferenceColumn, name, row.Row+1); err != nil {
				return err
			}
			if row.Failed() {
				fmt.Fprintf(w, "error: %s\n", row.Error)
				continue
			}
			if _, err := io.WriteString(w, render.Patch(row.Segments)); err != nil {
				return err
			}
		}
	}
	return nil
}
