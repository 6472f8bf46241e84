package domain

import "fmt"

// Row holds one reference text and its candidates keyed by column name.
type Row struct {
	Reference  string            `json:"reference"`
	Candidates map[string]string `json:"candidates"`
}

// Table is the input of a batch comparison: a single reference column and
// one or more candidate columns. Column names are opaque.
type Table struct {
	ReferenceColumn  string   `json:"reference_column"`
	CandidateColumns []string `json:"candidate_columns"`
	Rows             []Row    `json:"rows"`
}

// NewTable builds a Table from a header and records. The first column is
// the reference; every other column is a candidate. Short records are
// padded with empty strings and extra cells are ignored.
func NewTable(header []string, records [][]string) (Table, error) {
	if len(header) < 2 {
		return Table{}, fmt.Errorf("%w: need a reference and at least one candidate column, got %d column(s)",
			ErrInvalidInputShape, len(header))
	}

	t := Table{
		ReferenceColumn:  header[0],
		CandidateColumns: append([]string(nil), header[1:]...),
		Rows:             make([]Row, 0, len(records)),
	}
	for _, rec := range records {
		row := Row{Candidates: make(map[string]string, len(t.CandidateColumns))}
		if len(rec) > 0 {
			row.Reference = rec[0]
		}
		for i, name := range t.CandidateColumns {
			if i+1 < len(rec) {
				row.Candidates[name] = rec[i+1]
			} else {
				row.Candidates[name] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Validate checks the column shape against the supported candidate range.
// A missing candidate value in a row reads as the empty string.
func (t Table) Validate(maxCandidates int) error {
	n := len(t.CandidateColumns)
	if n < 1 {
		return fmt.Errorf("%w: no candidate columns", ErrInvalidInputShape)
	}
	if maxCandidates > 0 && n > maxCandidates {
		return fmt.Errorf("%w: %d candidate columns, at most %d supported",
			ErrInvalidInputShape, n, maxCandidates)
	}
	seen := map[string]bool{t.ReferenceColumn: true}
	for _, name := range t.CandidateColumns {
		if seen[name] {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidInputShape, name)
		}
		seen[name] = true
	}
	return nil
}
