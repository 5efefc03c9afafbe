package report

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed template/summary.txt.tmpl
var summaryTemplate string

var summaryTmpl = template.Must(template.New("summary").Parse(summaryTemplate))

// RenderSummary renders the plain-text completion report for a run.
func RenderSummary(data Data) (string, error) {
	var sb strings.Builder
	if err := summaryTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return sb.String(), nil
}
