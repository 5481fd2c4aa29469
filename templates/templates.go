// Package templates holds the embedded report templates.
package templates

import (
	"embed"
	"fmt"
	"text/template"
)

const MarkdownReportTemplate = "report.md.tmpl"

//go:embed files/*.tmpl
var templateFS embed.FS

// GetMarkdownTemplate parses the embedded markdown report template
func GetMarkdownTemplate() (*template.Template, error) {
	tmpl, err := template.New(MarkdownReportTemplate).
		Funcs(GetTemplateFunc()).
		ParseFS(templateFS, "files/"+MarkdownReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown template: %w", err)
	}
	return tmpl, nil
}
