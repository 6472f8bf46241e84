package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Granularity selects the splitting rule that produced a Sequence.
type Granularity int

const (
	// Character splits text into Unicode code points.
	Character Granularity = iota
	// Word splits text on runs of whitespace.
	Word
)

func (g Granularity) String() string {
	switch g {
	case Character:
		return "character"
	case Word:
		return "word"
	default:
		return "unknown"
	}
}

// Sequence is an ordered, immutable list of atomic units.
type Sequence struct {
	units       []string
	granularity Granularity
}

// NewSequence builds a Sequence from a copy of units.
func NewSequence(units []string, granularity Granularity) Sequence {
	owned := make([]string, len(units))
	copy(owned, units)
	return Sequence{units: owned, granularity: granularity}
}

// Len returns the number of units.
func (s Sequence) Len() int { return len(s.units) }

// At returns the unit at index i.
func (s Sequence) At(i int) string { return s.units[i] }

// Granularity returns the splitting rule the sequence was built with.
func (s Sequence) Granularity() Granularity { return s.granularity }

// Units returns a copy of the units.
func (s Sequence) Units() []string {
	out := make([]string, len(s.units))
	copy(out, s.units)
	return out
}

// Join renders the units in [start, end) back to text. Characters are
// concatenated; words are joined with a single space.
func (s Sequence) Join(start, end int) string {
	if start >= end {
		return ""
	}
	if s.granularity == Word {
		return strings.Join(s.units[start:end], " ")
	}
	return strings.Join(s.units[start:end], "")
}

// OpKind is the kind of an edit operation.
type OpKind int

const (
	Equal OpKind = iota
	Insert
	Delete
	Substitute
)

func (k OpKind) String() string {
	switch k {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Substitute:
		return "substitute"
	default:
		return "unknown"
	}
}

// Span is a half-open index range [Start, End).
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool { return s.End <= s.Start }

// EditOperation maps a reference span onto a candidate span.
// Insert has an empty reference span, Delete an empty candidate span.
type EditOperation struct {
	Kind      OpKind
	Reference Span
	Candidate Span
}

// Cost returns the unit cost the operation contributes to the edit distance.
func (op EditOperation) Cost() int {
	switch op.Kind {
	case Insert:
		return op.Candidate.Len()
	case Delete, Substitute:
		return op.Reference.Len()
	default:
		return 0
	}
}

// EditScript is an ordered list of operations covering both sequences
// completely and disjointly.
type EditScript struct {
	Ops          []EditOperation
	ReferenceLen int
	CandidateLen int
}

// Distance returns the total cost of the script.
func (s EditScript) Distance() int {
	total := 0
	for _, op := range s.Ops {
		total += op.Cost()
	}
	return total
}

// Matched returns the number of reference units covered by Equal operations.
func (s EditScript) Matched() int {
	matched := 0
	for _, op := range s.Ops {
		if op.Kind == Equal {
			matched += op.Reference.Len()
		}
	}
	return matched
}

// Validate checks that the operations tile both sequences in order and that
// each operation's spans are consistent with its kind.
func (s EditScript) Validate() error {
	refPos, candPos := 0, 0
	for i, op := range s.Ops {
		if op.Reference.Start != refPos || op.Candidate.Start != candPos {
			return fmt.Errorf("%w: operation %d is not contiguous", ErrInvalidScript, i)
		}
		if op.Reference.Len() < 0 || op.Candidate.Len() < 0 {
			return fmt.Errorf("%w: operation %d has a negative span", ErrInvalidScript, i)
		}
		switch op.Kind {
		case Equal, Substitute:
			if op.Reference.Len() != op.Candidate.Len() || op.Reference.Empty() {
				return fmt.Errorf("%w: %s operation %d has unbalanced spans", ErrInvalidScript, op.Kind, i)
			}
		case Insert:
			if !op.Reference.Empty() || op.Candidate.Empty() {
				return fmt.Errorf("%w: insert operation %d has bad spans", ErrInvalidScript, i)
			}
		case Delete:
			if op.Reference.Empty() || !op.Candidate.Empty() {
				return fmt.Errorf("%w: delete operation %d has bad spans", ErrInvalidScript, i)
			}
		default:
			return fmt.Errorf("%w: operation %d has unknown kind %d", ErrInvalidScript, i, op.Kind)
		}
		refPos = op.Reference.End
		candPos = op.Candidate.End
	}
	if refPos != s.ReferenceLen || candPos != s.CandidateLen {
		return fmt.Errorf("%w: covers %d/%d reference and %d/%d candidate units",
			ErrInvalidScript, refPos, s.ReferenceLen, candPos, s.CandidateLen)
	}
	return nil
}

// Counts tallies the unit-level outcome of an alignment.
type Counts struct {
	Hits          int `json:"hits"`
	Substitutions int `json:"substitutions"`
	Deletions     int `json:"deletions"`
	Insertions    int `json:"insertions"`
}

// Errors returns substitutions + deletions + insertions.
func (c Counts) Errors() int { return c.Substitutions + c.Deletions + c.Insertions }

// Label classifies a rendered diff segment.
type Label string

const (
	LabelEqual   Label = "equal"
	LabelInsert  Label = "insert"
	LabelDelete  Label = "delete"
	LabelReplace Label = "replace"
)

// DiffSegment is a contiguous, labeled span ready for rendering.
// Insert carries only CandidateText, Delete only ReferenceText.
type DiffSegment struct {
	Label         Label  `json:"label"`
	ReferenceText string `json:"reference_text,omitempty"`
	CandidateText string `json:"candidate_text,omitempty"`
}

// Measure is a metric value that may be undefined. An undefined measure
// holds NaN and encodes to JSON null, so it never reads as a genuine 0.0.
type Measure struct {
	Value   float64
	Defined bool
}

// Defined wraps a computed value.
func Defined(v float64) Measure { return Measure{Value: v, Defined: true} }

// Undefined returns a measure with no value.
func Undefined() Measure { return Measure{Value: math.NaN()} }

// Rounded returns the measure rounded to precision decimals.
func (m Measure) Rounded(precision int) Measure {
	if !m.Defined {
		return m
	}
	return Defined(Round(m.Value, precision))
}

func (m Measure) String() string {
	if !m.Defined {
		return "n/a"
	}
	return strconv.FormatFloat(m.Value, 'f', -1, 64)
}

// MarshalJSON encodes an undefined measure as null.
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON decodes null as an undefined measure.
func (m *Measure) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}

// Round rounds v to precision decimal places.
func Round(v float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}

// ComparisonResult holds the metrics and diff of one row against one
// candidate column. Distance is the character-level edit distance.
// When Err is set the row is excluded from every mean.
type ComparisonResult struct {
	Row        int           `json:"row"`
	Ratio      float64       `json:"ratio"`
	Distance   int           `json:"distance"`
	CER        Measure       `json:"cer"`
	WER        Measure       `json:"wer"`
	CharCounts Counts        `json:"char_counts"`
	WordCounts Counts        `json:"word_counts"`
	Segments   []DiffSegment `json:"segments"`
	Error      string        `json:"error,omitempty"`
	Err        error         `json:"-"`
}

// Failed reports whether the row could not be compared.
func (r ComparisonResult) Failed() bool { return r.Err != nil }

// ColumnResult aggregates all rows for one candidate column. Means are kept
// at full precision; undefined rates and failed rows are excluded and counted.
type ColumnResult struct {
	Column       string             `json:"column"`
	Rows         []ComparisonResult `json:"rows"`
	MeanRatio    Measure            `json:"mean_ratio"`
	MeanCER      Measure            `json:"mean_cer"`
	MeanWER      Measure            `json:"mean_wer"`
	UndefinedCER int                `json:"undefined_cer"`
	UndefinedWER int                `json:"undefined_wer"`
	FailedRows   int                `json:"failed_rows"`
}

// OverviewRow is one line of the aggregate metrics table.
type OverviewRow struct {
	Comparison string  `json:"comparison"`
	Ratio      Measure `json:"ratio"`
	CER        Measure `json:"cer"`
	WER        Measure `json:"wer"`
}

// BatchResult maps each candidate column to its aggregated results.
type BatchResult struct {
	ReferenceColumn string                  `json:"reference_column"`
	Columns         []string                `json:"columns"`
	Results         map[string]ColumnResult `json:"results"`
	Precision       int                     `json:"precision"`
}

// Column returns the results for a candidate column.
func (b BatchResult) Column(name string) (ColumnResult, bool) {
	res, ok := b.Results[name]
	return res, ok
}

// Overview returns the per-column means rounded to the batch precision,
// in candidate column order.
func (b BatchResult) Overview() []OverviewRow {
	rows := make([]OverviewRow, 0, len(b.Columns))
	for _, name := range b.Columns {
		res := b.Results[name]
		rows = append(rows, OverviewRow{
			Comparison: b.ReferenceColumn + "-" + name,
			Ratio:      res.MeanRatio.Rounded(b.Precision),
			CER:        res.MeanCER.Rounded(b.Precision),
			WER:        res.MeanWER.Rounded(b.Precision),
		})
	}
	return rows
}
