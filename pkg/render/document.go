package render

import (
	"html/template"
	"io"
	"strconv"

	"github.com/baditaflorin/go_text_compare/internal/core/domain"
)

// Section is one rendered reference/candidate comparison.
type Section struct {
	Title string
	Diff  template.HTML
}

// Document is a full HTML report: the metric overview and one diff
// section per comparison.
type Document struct {
	Title    string
	Overview []domain.OverviewRow
	Sections []Section
}

// NewDocument builds a report from a batch result. Each row of each
// candidate column becomes a section.
func NewDocument(title string, res domain.BatchResult) Document {
	doc := Document{Title: title, Overview: res.Overview()}
	for _, name := range res.Columns {
		col := res.Results[name]
		for _, row := range col.Rows {
			section := Section{Title: sectionTitle(res.ReferenceColumn, name, row.Row, len(col.Rows))}
			if row.Failed() {
				section.Diff = template.HTML(`<em>` + escape(row.Error) + `</em>`)
			} else {
				section.Diff = template.HTML(HTML(row.Segments))
			}
			doc.Sections = append(doc.Sections, section)
		}
	}
	return doc
}

func sectionTitle(reference, candidate string, row, rows int) string {
	title := reference + "-" + candidate
	if rows > 1 {
		title += " #" + strconv.Itoa(row+1)
	}
	return title
}

var documentTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"legend":       func() string { return Legend },
	"metricLegend": func() string { return MetricLegend },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 10px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.diff { white-space: pre-wrap; line-height: 1.6; }
.caption { color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Overview}}
<h2>Overview</h2>
<table>
<tr><th>Comparison</th><th>Ratio</th><th>CER</th><th>WER</th></tr>
{{- range .Overview}}
<tr><td>{{.Comparison}}</td><td>{{.Ratio}}</td><td>{{.CER}}</td><td>{{.WER}}</td></tr>
{{- end}}
</table>
<p class="caption">{{metricLegend}}</p>
{{- end}}
{{- range .Sections}}
<h2>{{.Title}}</h2>
<p class="caption">{{legend}}</p>
<div class="diff">{{.Diff}}</div>
{{- end}}
</body>
</html>
`))

// WriteDocument renders doc as a standalone HTML page.
func WriteDocument(w io.Writer, doc Document) error {
	return documentTemplate.Execute(w, doc)
}
