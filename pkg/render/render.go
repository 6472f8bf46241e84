// Package render turns diff segments into HTML, ANSI-coloured terminal text
// and diff-match-patch patches.
package render

import (
	"html"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// Legend explains the highlight colours.
const Legend = "red: deleted, green: added, yellow: changed"

// MetricLegend explains the overview columns.
const MetricLegend = "Ratio: share of matching characters between the reference and the candidate. " +
	"CER (character error rate): character edits per reference character. " +
	"WER (word error rate): word edits per reference word."

// Style maps each highlighted label to an inline CSS declaration.
type Style struct {
	Delete  string
	Insert  string
	Replace string
}

// DefaultStyle uses red for deletions, green for insertions and orange-yellow
// for replacements.
func DefaultStyle() Style {
	return Style{
		Delete:  "background-color:#ffd6d6;color:#b00020;text-decoration:line-through",
		Insert:  "background-color:#d4f7d4;color:#1b5e20",
		Replace: "background-color:#ffe4a3;color:#8a4b00",
	}
}

// HTML renders segments as an HTML fragment with DefaultStyle.
func HTML(segments []domain.DiffSegment) string {
	return DefaultStyle().HTML(segments)
}

// HTML renders segments as an HTML fragment. Deleted text shows the
// reference, inserted text the candidate, and replaced text the candidate
// with the reference in the title attribute. All text is escaped.
func (s Style) HTML(segments []domain.DiffSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		switch seg.Label {
		case domain.LabelEqual:
			sb.WriteString(escape(seg.CandidateText))
		case domain.LabelDelete:
			writeSpan(&sb, "diff-delete", s.Delete, "", seg.ReferenceText)
		case domain.LabelInsert:
			writeSpan(&sb, "diff-insert", s.Insert, "", seg.CandidateText)
		case domain.LabelReplace:
			writeSpan(&sb, "diff-replace", s.Replace, seg.ReferenceText, seg.CandidateText)
		}
	}
	return sb.String()
}

func writeSpan(sb *strings.Builder, class, style, title, text string) {
	sb.WriteString(`<span class="`)
	sb.WriteString(class)
	sb.WriteString(`" style="`)
	sb.WriteString(style)
	sb.WriteString(`"`)
	if title != "" {
		sb.WriteString(` title="`)
		sb.WriteString(html.EscapeString(title))
		sb.WriteString(`"`)
	}
	sb.WriteString(`>`)
	sb.WriteString(escape(text))
	sb.WriteString(`</span>`)
}

// escape escapes text and keeps line breaks visible.
func escape(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br>")
}

const (
	ansiReset   = "\x1b[0m"
	ansiDelete  = "\x1b[41;37m"
	ansiInsert  = "\x1b[42;30m"
	ansiReplace = "\x1b[43;30m"
)

// ANSI renders segments for a colour terminal. Replacements show the
// reference struck through in red followed by the candidate in yellow.
func ANSI(segments []domain.DiffSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		switch seg.Label {
		case domain.LabelEqual:
			sb.WriteString(seg.CandidateText)
		case domain.LabelDelete:
			sb.WriteString(ansiDelete + seg.ReferenceText + ansiReset)
		case domain.LabelInsert:
			sb.WriteString(ansiInsert + seg.CandidateText + ansiReset)
		case domain.LabelReplace:
			sb.WriteString(ansiDelete + seg.ReferenceText + ansiReset)
			sb.WriteString(ansiReplace + seg.CandidateText + ansiReset)
		}
	}
	return sb.String()
}

// Diffs converts segments to diff-match-patch diffs. A replacement becomes
// a deletion followed by an insertion.
func Diffs(segments []domain.DiffSegment) []diffmatchpatch.Diff {
	diffs := make([]diffmatchpatch.Diff, 0, len(segments)+len(segments)/2)
	for _, seg := range segments {
		switch seg.Label {
		case domain.LabelEqual:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffEqual, Text: seg.ReferenceText})
		case domain.LabelDelete:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: seg.ReferenceText})
		case domain.LabelInsert:
			diffs = append(diffs, diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: seg.CandidateText})
		case domain.LabelReplace:
			diffs = append(diffs,
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffDelete, Text: seg.ReferenceText},
				diffmatchpatch.Diff{Type: diffmatchpatch.DiffInsert, Text: seg.CandidateText},
			)
		}
	}
	return diffs
}

// Patch renders segments as diff-match-patch patch text that turns the
// reference into the candidate.
func Patch(segments []domain.DiffSegment) string {
	dmp := diffmatchpatch.New()
	diffs := Diffs(segments)
	patches := dmp.PatchMake(dmp.DiffText1(diffs), diffs)
	return dmp.PatchToText(patches)
}
