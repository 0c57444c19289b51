package adapter

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"

	m "codelens.dev/pkg/codelens/internal/model"
)

// ReportStyles is the stylesheet shared by the HTML report and the web UI.
const ReportStyles = `<style>
:root { --ink: #1f262d; --muted: #5c6c73; --accent: #2f6f6d; --stroke: rgba(31, 38, 45, 0.12); --bg: #f6f1e8; }
* { box-sizing: border-box; }
body { margin: 0; font-family: "IBM Plex Sans", "Segoe UI", sans-serif; color: var(--ink); background: var(--bg); }
.shell { max-width: 1180px; margin: 0 auto; padding: 32px 24px 64px; }
.card { background: #fff; border: 1px solid var(--stroke); border-radius: 12px; padding: 20px 24px; margin-bottom: 20px; }
.eyebrow { text-transform: uppercase; letter-spacing: 0.12em; color: var(--muted); font-size: 12px; margin: 0; }
.stats-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 12px; }
.stat-label { color: var(--muted); margin: 0; font-size: 13px; }
.stat-value { font-size: 28px; font-weight: 600; margin: 4px 0 0; }
table { width: 100%; border-collapse: collapse; font-size: 14px; }
th, td { text-align: left; padding: 6px 8px; border-bottom: 1px solid var(--stroke); vertical-align: top; }
th { background: #e2eef0; }
code { font-family: "IBM Plex Mono", monospace; font-size: 13px; white-space: pre-wrap; }
.empty { color: var(--muted); }
.error { color: #a33; }
nav a { margin-right: 16px; color: var(--accent); }
</style>`

// ScanReportPage renders a standalone HTML report document.
func ScanReportPage(report m.Report) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!doctype html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.printf("<title>%s - CodeLens Report</title>", esc(report.Metadata.ApplicationName))
		h.raw(ReportStyles)
		h.raw("</head><body><main class=\"shell\">")

		if h.err != nil {
			return h.err
		}

		if err := ScanReportSections(report).Render(ctx, w); err != nil {
			return err
		}

		h.raw("</main></body></html>")

		return h.err
	})
}

// ScanReportSections renders the report body without the document shell.
func ScanReportSections(report m.Report) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		meta := report.Metadata
		s := report.Summary

		h.printf("<header class=\"card\"><p class=\"eyebrow\">CodeLens</p><h1>%s</h1>", esc(meta.ApplicationName))
		h.printf("<p>Scan timestamp: %s<br>Repository: <code>%s</code><br>Run: <code>%s</code></p></header>",
			esc(meta.Timestamp.Format("2006-01-02 15:04:05")), esc(string(meta.RepositoryPath)), esc(meta.RunID))

		h.raw("<section class=\"card\"><h2>Summary</h2><div class=\"stats-grid\">")
		writeStat(h, "Files analyzed", s.FilesAnalyzed)
		writeStat(h, "Unique demographic fields", len(s.UniqueFields))
		writeStat(h, "Demographic fields found", s.FieldsFound)
		writeStat(h, "Integration patterns found", s.PatternsFound)
		h.raw("</div></section>")

		writeFieldFrequencies(h, report.ScanResult)
		writeCategorySummary(h, report.ScanResult)
		writePatternSummary(h, report.ScanResult)
		writeFilesByLanguage(h, report.ScanResult)
		writeDemographicsByFile(h, report.ScanResult)
		writeFieldOccurrences(h, report.ScanResult)
		writePatternList(h, "Integration Patterns", report.Patterns)

		if report.HasExtension(".java") {
			var java []m.IntegrationPatternMatch

			for _, p := range report.Patterns {
				if strings.EqualFold(p.FilePath.Ext(), ".java") {
					java = append(java, p)
				}
			}

			writePatternList(h, "Java Analysis", java)
		}

		return h.err
	})
}

func writeStat(h *htmlWriter, label string, value int) {
	h.printf("<div><p class=\"stat-label\">%s</p><p class=\"stat-value\">%d</p></div>", esc(label), value)
}

func writeFieldFrequencies(h *htmlWriter, r m.ScanResult) {
	h.raw("<section class=\"card\"><h2>Demographic Field Frequency</h2>")

	freqs := r.FieldFrequencies()
	if len(freqs) == 0 {
		h.raw("<p class=\"empty\">No demographic fields found.</p></section>")
		return
	}

	h.raw("<table><thead><tr><th>Field</th><th>Category</th><th>Occurrences</th></tr></thead><tbody>")

	for _, f := range freqs {
		h.printf("<tr><td>%s</td><td>%s</td><td>%d</td></tr>", esc(f.FieldName), esc(string(f.Category)), f.Count)
	}

	h.raw("</tbody></table></section>")
}

func writeCategorySummary(h *htmlWriter, r m.ScanResult) {
	counts := r.CategoryCounts()
	if len(counts) == 0 {
		return
	}

	h.raw("<section class=\"card\"><h2>Demographic Data Summary</h2><table><thead><tr><th>Category</th><th>Distinct fields</th><th>Occurrences</th></tr></thead><tbody>")

	for _, c := range counts {
		h.printf("<tr><td>%s</td><td>%d</td><td>%d</td></tr>", esc(string(c.Category)), c.Fields, c.Count)
	}

	h.raw("</tbody></table></section>")
}

func writePatternSummary(h *htmlWriter, r m.ScanResult) {
	dist := r.PatternDistribution()
	if len(dist) == 0 {
		return
	}

	h.raw("<section class=\"card\"><h2>Integration Patterns Summary</h2><table><thead><tr><th>Pattern type</th><th>Occurrences</th></tr></thead><tbody>")

	for _, d := range dist {
		h.printf("<tr><td>%s</td><td>%d</td></tr>", esc(string(d.PatternType)), d.Count)
	}

	h.raw("</tbody></table></section>")
}

func writeFilesByLanguage(h *htmlWriter, r m.ScanResult) {
	counts := r.ExtensionCounts()
	if len(counts) == 0 {
		return
	}

	h.raw("<section class=\"card\"><h2>Files by Language</h2><table><thead><tr><th>Language</th><th>Extension</th><th>Files</th></tr></thead><tbody>")

	for _, c := range counts {
		h.printf("<tr><td>%s</td><td>%s</td><td>%d</td></tr>", esc(c.Language), esc(c.Extension), c.Count)
	}

	h.raw("</tbody></table></section>")
}

func writeDemographicsByFile(h *htmlWriter, r m.ScanResult) {
	h.raw("<section class=\"card\"><h2>Demographic Fields by File</h2>")

	if len(r.Summary.FileDetails) == 0 {
		h.raw("<p class=\"empty\">No files analyzed.</p></section>")
		return
	}

	h.raw("<table><thead><tr><th>File</th><th>Fields</th><th>Demographic fields</th><th>Integration patterns</th><th>Patterns</th></tr></thead><tbody>")

	for _, d := range r.Summary.FileDetails {
		h.printf("<tr><td><code>%s</code>", esc(string(d.Path)))

		if d.Error != "" {
			h.printf("<br><span class=\"error\">%s</span>", esc(d.Error))
		}

		h.printf("</td><td>%s</td><td>%d</td><td>%d</td><td>%s</td></tr>",
			esc(strings.Join(r.FieldNames(d.Path), ", ")),
			d.FieldsFound,
			d.PatternsFound,
			esc(strings.Join(r.PatternDetails(d.Path), ", ")))
	}

	h.raw("</tbody></table></section>")
}

// writeFieldOccurrences lists every occurrence of every field, grouped by file.
func writeFieldOccurrences(h *htmlWriter, r m.ScanResult) {
	if len(r.Fields) == 0 {
		return
	}

	h.raw("<section class=\"card\"><h2>Demographic Data Details</h2>")

	for _, file := range r.Fields {
		h.printf("<h3><code>%s</code></h3>", esc(string(file.Path)))

		for _, field := range file.Fields {
			h.printf("<p><strong>Field: %s</strong> (Type: %s)</p><table><thead><tr><th>Line</th><th>Code</th></tr></thead><tbody>",
				esc(field.FieldName), esc(string(field.Category)))

			for _, occ := range field.Occurrences {
				h.printf("<tr><td>Line %d</td><td><code>%s</code></td></tr>", occ.LineNumber, esc(occ.LineText))
			}

			h.raw("</tbody></table>")
		}
	}

	h.raw("</section>")
}

func writePatternList(h *htmlWriter, title string, patterns []m.IntegrationPatternMatch) {
	h.printf("<section class=\"card\"><h2>%s</h2>", esc(title))

	if len(patterns) == 0 {
		h.raw("<p class=\"empty\">No integration patterns found.</p></section>")
		return
	}

	h.raw("<table><thead><tr><th>Type</th><th>Sub type</th><th>File</th><th>Line</th><th>Code</th></tr></thead><tbody>")

	for _, p := range patterns {
		h.printf("<tr><td>%s</td><td>%s</td><td><code>%s</code></td><td>%d</td><td><code>%s</code></td></tr>",
			esc(string(p.PatternType)), esc(p.SubType), esc(string(p.FilePath)), p.LineNumber, esc(p.LineText))
	}

	h.raw("</tbody></table></section>")
}

func writeHTMLReport(w io.Writer, report m.Report) error {
	return ScanReportPage(report).Render(context.Background(), w)
}
