package web

import (
	"context"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"codelens.dev/pkg/codelens/internal/adapter"
	"codelens.dev/pkg/codelens/internal/domain"
	m "codelens.dev/pkg/codelens/internal/model"
)

const pageStyles = `<style>
form.stack label { display: block; margin: 12px 0 4px; font-weight: 600; }
form.stack input[type=text], form.stack select { width: 100%; max-width: 480px; padding: 6px 8px; }
button { margin-top: 16px; padding: 8px 18px; background: var(--accent); color: #fff; border: 0; border-radius: 6px; cursor: pointer; }
pre.logs { background: #1f262d; color: #e8e6e3; padding: 16px; border-radius: 8px; overflow-x: auto; font-size: 12px; }
</style>`

// page accumulates the first write error so templates stay linear.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err != nil {
		return
	}

	_, p.err = io.WriteString(p.w, s)
}

func (p *page) printf(format string, args ...interface{}) {
	if p.err != nil {
		return
	}

	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *page) render(ctx context.Context, c templ.Component) {
	if p.err != nil {
		return
	}

	p.err = c.Render(ctx, p.w)
}

func esc(s string) string {
	return html.EscapeString(s)
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, "render failed", http.StatusInternalServerError)
	}
}

func renderStatus(w http.ResponseWriter, r *http.Request, component templ.Component, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := component.Render(r.Context(), w); err != nil {
		slog.Error("Failed to render page", "error", err)
	}
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw("<!doctype html><html lang=\"en\"><head>")
		p.raw("<meta charset=\"utf-8\">")
		p.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		p.printf("<title>%s</title>", esc(title))
		p.raw(adapter.ReportStyles)
		p.raw(pageStyles)
		p.raw("</head><body><main class=\"shell\">")
		p.raw("<nav><a href=\"/\">Home</a><a href=\"/scan\">Code Analysis</a><a href=\"/match\">Attribute Matching</a><a href=\"/columns\">Column Matching</a><a href=\"/reports\">Reports</a><a href=\"/logs\">Logs</a></nav>")
		p.render(ctx, body)
		p.raw("</main></body></html>")

		return p.err
	})
}

func pageHeader(p *page, eyebrow, title, subhead string) {
	p.printf("<header class=\"page-header\"><p class=\"eyebrow\">%s</p><h1>%s</h1>", esc(eyebrow), esc(title))
	if subhead != "" {
		p.printf("<p class=\"subhead\">%s</p>", esc(subhead))
	}

	p.raw("</header>")
}

func errorBanner(p *page, message string) {
	if message != "" {
		p.printf("<section class=\"card\"><p class=\"error\">%s</p></section>", esc(message))
	}
}

func homePage() templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "CodeLens", "Code and data analysis",
			"Scan source code for demographic fields and integration patterns, or match attributes between two spreadsheets.")
		p.raw("<section class=\"card\"><h2>Code Analysis</h2><p>Point at a repository path or upload source files to find demographic fields and integration patterns.</p><p><a href=\"/scan\">Start a scan</a></p></section>")
		p.raw("<section class=\"card\"><h2>Attribute Matching</h2><p>Upload a C360 attribute sheet and a target sheet to find similar attributes.</p><p><a href=\"/match\">Match attributes</a></p></section>")
		p.raw("<section class=\"card\"><h2>Column Matching</h2><p>Upload two spreadsheets to pair their column headers and compare the values behind them.</p><p><a href=\"/columns\">Match columns</a></p></section>")

		return p.err
	})

	return layout("CodeLens", body)
}

func scanFormPage(message string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "Code Analysis", "Scan a repository", "Supported files: "+strings.Join(domain.DefaultExtensions, ", "))
		errorBanner(p, message)
		p.raw("<section class=\"card\"><form class=\"stack\" method=\"post\" action=\"/scan\" enctype=\"multipart/form-data\">")
		p.printf("<label for=\"application_name\">Application name</label><input type=\"text\" id=\"application_name\" name=\"application_name\" value=\"%s\">", esc(domain.DefaultApplicationName))
		p.raw("<label for=\"repo_path\">Repository path</label><input type=\"text\" id=\"repo_path\" name=\"repo_path\" placeholder=\"/path/to/repository\">")
		p.raw("<label for=\"files\">Or upload files</label><input type=\"file\" id=\"files\" name=\"files\" multiple>")
		p.raw("<button type=\"submit\">Analyze</button></form></section>")

		return p.err
	})

	return layout("CodeLens - Code Analysis", body)
}

func scanResultPage(outcome domain.ScanOutcome) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.render(ctx, adapter.ScanReportSections(outcome.Report))
		reportLinks(p, outcome.Files)

		return p.err
	})

	return layout("CodeLens - "+outcome.Report.Metadata.ApplicationName, body)
}

func reportLinks(p *page, files []m.ReportFile) {
	if len(files) == 0 {
		return
	}

	p.raw("<section class=\"card\"><h2>Download reports</h2><ul>")

	for _, file := range files {
		p.printf("<li><a href=\"%s\">%s</a> (%s)</li>",
			esc(downloadURL(file.Name)), esc(file.Name), esc(strings.ToUpper(string(file.Format))))
	}

	p.raw("</ul></section>")
}

func matchFormPage(message string, threshold int) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "Attribute Matching", "Match attributes", "Upload two spreadsheets (.xlsx or .csv) with attr_name, business_name and attr_description columns.")
		errorBanner(p, message)
		p.raw("<section class=\"card\"><form class=\"stack\" method=\"post\" action=\"/match\" enctype=\"multipart/form-data\">")
		p.raw("<label for=\"source\">C360 attributes</label><input type=\"file\" id=\"source\" name=\"source\" required>")
		p.raw("<label for=\"target\">Target attributes</label><input type=\"file\" id=\"target\" name=\"target\" required>")
		p.raw("<label for=\"match_type\">Match on</label><select id=\"match_type\" name=\"match_type\">")
		p.printf("<option value=\"%s\">Attribute Name</option>", domain.MatchTypeAttributeName)
		p.printf("<option value=\"%s\">Business Name</option>", domain.MatchTypeBusinessName)
		p.printf("<option value=\"%s\">Attribute Description</option>", domain.MatchTypeAttributeDescription)
		p.raw("</select><label for=\"algorithm\">Algorithm</label><select id=\"algorithm\" name=\"algorithm\">")

		for _, a := range domain.Algorithms {
			p.printf("<option value=\"%s\">%s</option>", esc(a.Name), esc(a.Label))
		}

		p.raw("</select>")
		p.printf("<label for=\"threshold\">Minimum score (0-100)</label><input type=\"text\" id=\"threshold\" name=\"threshold\" value=\"%d\">", threshold)
		p.raw("<label><input type=\"checkbox\" name=\"preprocess\" value=\"on\" checked> Preprocess C360 attributes</label>")
		p.raw("<button type=\"submit\">Match</button></form></section>")

		return p.err
	})

	return layout("CodeLens - Attribute Matching", body)
}

type matchView struct {
	Result       m.MatchResult
	Preprocessed bool
	Stats        m.PreprocessStats
	Download     string
	RemovedRows  string
}

func matchResultPage(view matchView) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		result := view.Result
		pageHeader(p, "Attribute Matching", "Matching results",
			fmt.Sprintf("Column %s, %s, minimum score %d", result.Column, result.Algorithm, result.Threshold))

		if view.Preprocessed {
			s := view.Stats
			p.raw("<section class=\"card\"><h2>Preprocessing</h2><div class=\"stats-grid\">")
			writeStat(p, "Initial rows", s.InitialRows)
			writeStat(p, "Final rows", s.FinalRows)
			writeStat(p, "Empty descriptions", s.EmptyDescription)
			writeStat(p, "Integer descriptions", s.IntegerDescription)
			writeStat(p, "Single values", s.SingleValue)
			p.raw("</div>")

			if view.RemovedRows != "" {
				p.printf("<p><a href=\"%s\">Download removed rows</a></p>", esc(downloadURL(view.RemovedRows)))
			}

			p.raw("</section>")
		}

		p.raw("<section class=\"card\"><h2>Summary</h2><div class=\"stats-grid\">")
		writeStat(p, "Matches", result.Summary.Total)
		writeStat(p, "High confidence", result.Summary.HighConfidence)
		p.printf("<div><p class=\"stat-label\">Average score</p><p class=\"stat-value\">%.1f%%</p></div>", result.Summary.AverageScore)
		p.raw("</div></section>")

		p.raw("<section class=\"card\"><h2>Matches</h2>")

		if len(result.Matches) == 0 {
			p.raw("<p class=\"empty\">No matches found. Try lowering the minimum score or another algorithm.</p></section>")
			return p.err
		}

		p.raw("<table><thead><tr>")

		for _, col := range result.SourceColumns {
			p.printf("<th>C360 %s</th>", esc(col))
		}

		for _, col := range result.TargetColumns {
			p.printf("<th>Target Data %s</th>", esc(col))
		}

		p.raw("<th>Match Score (%)</th></tr></thead><tbody>")

		for _, match := range result.Matches {
			p.raw("<tr>")

			for _, col := range result.SourceColumns {
				p.printf("<td>%s</td>", esc(match.Source[col]))
			}

			for _, col := range result.TargetColumns {
				p.printf("<td>%s</td>", esc(match.Target[col]))
			}

			p.printf("<td>%d</td></tr>", match.Score)
		}

		p.raw("</tbody></table>")

		if view.Download != "" {
			p.printf("<p><a href=\"%s\">Download matches (Excel)</a></p>", esc(downloadURL(view.Download)))
		}

		p.raw("</section>")

		return p.err
	})

	return layout("CodeLens - Matching results", body)
}

func columnsFormPage(message string, threshold int) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "Column Matching", "Match spreadsheet columns", "Upload two spreadsheets (.xlsx or .csv). Each column of the first is paired with the most similar column of the second.")
		errorBanner(p, message)
		p.raw("<section class=\"card\"><form class=\"stack\" method=\"post\" action=\"/columns\" enctype=\"multipart/form-data\">")
		p.raw("<label for=\"first\">First spreadsheet</label><input type=\"file\" id=\"first\" name=\"first\" required>")
		p.raw("<label for=\"second\">Second spreadsheet</label><input type=\"file\" id=\"second\" name=\"second\" required>")
		p.printf("<label for=\"threshold\">Column matching threshold (%d-%d)</label><input type=\"text\" id=\"threshold\" name=\"threshold\" value=\"%d\">",
			domain.MinColumnThreshold, domain.MaxColumnThreshold, threshold)
		p.raw("<button type=\"submit\">Compare</button></form></section>")

		return p.err
	})

	return layout("CodeLens - Column Matching", body)
}

type columnsView struct {
	Result   m.ColumnComparison
	Download string
}

func columnsResultPage(view columnsView) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		result := view.Result
		pageHeader(p, "Column Matching", "Column analysis", fmt.Sprintf("Threshold %d", result.Threshold))

		p.raw("<section class=\"card\"><h2>Files</h2><div class=\"stats-grid\">")
		for _, shape := range []m.DatasetShape{result.Source, result.Target} {
			p.printf("<div><p class=\"stat-label\">%s</p><p class=\"stat-value\">%d rows, %d columns</p></div>",
				esc(shape.Name), shape.Rows, shape.Columns)
		}
		p.raw("</div></section>")

		p.raw("<section class=\"card\"><h2>Matched Columns</h2>")

		if len(result.Matches) == 0 {
			p.raw("<p class=\"empty\">No matching columns found with the current threshold.</p></section>")
			return p.err
		}

		p.raw("<table><thead><tr><th>File 1 Column</th><th>File 2 Column</th><th>Match Score</th>")
		p.raw("<th>Unique Values 1</th><th>Unique Values 2</th><th>Null Count 1</th><th>Null Count 2</th></tr></thead><tbody>")

		for _, match := range result.Matches {
			p.printf("<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
				esc(match.SourceColumn), esc(match.TargetColumn), match.Score,
				match.SourceUnique, match.TargetUnique, match.SourceEmpty, match.TargetEmpty)
		}

		p.raw("</tbody></table>")

		if view.Download != "" {
			p.printf("<p><a href=\"%s\">Download analysis (Excel)</a></p>", esc(downloadURL(view.Download)))
		}

		p.raw("</section>")

		return p.err
	})

	return layout("CodeLens - Column analysis", body)
}

func writeStat(p *page, label string, value int) {
	p.printf("<div><p class=\"stat-label\">%s</p><p class=\"stat-value\">%s</p></div>", esc(label), strconv.Itoa(value))
}

func reportsPage(files []m.ReportFile, application string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "Reports", "Generated reports", "")
		p.raw("<section class=\"card\"><form method=\"get\" action=\"/reports\">")
		p.printf("<input type=\"text\" name=\"app\" placeholder=\"Application name\" value=\"%s\"> <button type=\"submit\">Filter</button></form></section>", esc(application))
		p.raw("<section class=\"card\">")

		if len(files) == 0 {
			p.raw("<p class=\"empty\">No reports found.</p></section>")
			return p.err
		}

		p.raw("<table><thead><tr><th>Application</th><th>Format</th><th>Generated</th><th>File</th></tr></thead><tbody>")

		for _, file := range files {
			generated := "-"
			if !file.Timestamp.IsZero() {
				generated = file.Timestamp.Format("2006-01-02 15:04:05")
			}

			p.printf("<tr><td>%s</td><td>%s</td><td>%s</td><td><a href=\"%s\">%s</a></td></tr>",
				esc(file.ApplicationName), esc(strings.ToUpper(string(file.Format))), esc(generated),
				esc(downloadURL(file.Name)), esc(file.Name))
		}

		p.raw("</tbody></table></section>")

		return p.err
	})

	return layout("CodeLens - Reports", body)
}

func logsPage(lines []string) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &page{w: w}
		pageHeader(p, "Logs", "Application logs", fmt.Sprintf("Last %d lines", len(lines)))
		p.raw("<section class=\"card\">")

		if len(lines) == 0 {
			p.raw("<p class=\"empty\">No log entries yet.</p></section>")
			return p.err
		}

		p.printf("<pre class=\"logs\">%s</pre></section>", esc(strings.Join(lines, "\n")))

		return p.err
	})

	return layout("CodeLens - Logs", body)
}
