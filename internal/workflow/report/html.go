package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	errx "github.com/testnotify-poc/server/internal/core/error"
	logx "github.com/testnotify-poc/server/pkg/logger"
)

//go:embed template/report.html.tmpl
var htmlTemplate string

var htmlTmpl = template.Must(template.New("report").Parse(htmlTemplate))

// RenderHTML renders the styled HTML report. Output is identical for
// identical Data; only RenderedAt varies between otherwise equal snapshots.
func RenderHTML(data Data) (string, error) {
	var sb strings.Builder
	if err := htmlTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return sb.String(), nil
}

// Publish writes the HTML report to path, fully replacing any previous file.
// The report is the run's only durable artifact, so write failures are fatal
// for the run.
func Publish(path string, html string) error {
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		logx.Error().Err(err).Str("path", path).Msg("failed to write HTML report")
		return errx.WrapPublish(err)
	}
	logx.Info().Str("path", path).Msg("HTML report published")
	return nil
}
