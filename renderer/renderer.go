// Package renderer renders portfolio reports as markdown.
//
// Every report has a view struct, built from a folio.Portfolio, and a
// template in templates/ executed against it.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

var funcs = template.FuncMap{
	"money":   Money,
	"signed":  SignedMoney,
	"percent": Percent,
	"spct":    SignedPercent,
}

// RenderPerformance renders the performance table.
func RenderPerformance(v *PerformanceView) string {
	return renderTemplate("performance", "performance.md", nil, v)
}

// RenderDetails renders the positions held today with their accounts.
func RenderDetails(v *DetailsView) string {
	partials := map[string]string{
		"details_positions": "details_positions.md",
		"details_accounts":  "details_accounts.md",
		"details_exposure":  "details_exposure.md",
	}
	return renderTemplate("details", "details.md", partials, v)
}

// RenderSnapshots renders the snapshot history.
func RenderSnapshots(v *SnapshotsView) string {
	return renderTemplate("snapshots", "snapshots.md", nil, v)
}

// RenderReport renders the rule evaluations.
func RenderReport(v *ReportView) string {
	return renderTemplate("report", "report.md", nil, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, "templates/"+file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
