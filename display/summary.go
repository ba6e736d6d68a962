package display

import (
	"bytes"
	"text/template"

	"github.com/rustyeddy/fxcredit/check"
	"github.com/rustyeddy/fxcredit/venue"
)

// Summary is the one-screen picture of a data set: what loaded, and what
// the validator made of it.
type Summary struct {
	Dir      string
	Counts   venue.Counts
	Report   check.Report
	Errors   int
	Warnings int
	Infos    int
}

// NewSummary assembles a summary from a loaded registry and its report.
func NewSummary(dir string, reg *venue.Registry, rep check.Report) Summary {
	errors, warnings, infos := rep.Counts()
	return Summary{
		Dir:      dir,
		Counts:   reg.Counts(),
		Report:   rep,
		Errors:   errors,
		Warnings: warnings,
		Infos:    infos,
	}
}

// CountRows feeds the summary template.
func (s Summary) CountRows() []Row {
	return CountRows(s.Counts)
}

var summaryFuncs = template.FuncMap{
	"table": Table,
	"line":  FormatFinding,
}

const summaryTemplate = `Credit configuration: {{.Dir}}

{{table .CountRows}}
{{- if .Report.Findings}}
Findings: {{.Errors}} error, {{.Warnings}} warning, {{.Infos}} info
{{range .Report.Findings}}{{line .}}
{{end -}}
{{else}}
All references resolve. No findings.
{{end -}}
`

// RenderSummary executes the summary template.
func RenderSummary(s Summary) (string, error) {
	t, err := template.New("summary").Funcs(summaryFuncs).Parse(summaryTemplate)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}
