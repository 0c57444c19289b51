package adapter

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"

	m "codelens.dev/pkg/codelens/internal/model"
)

const (
	sarifToolName = "CodeLens"
	sarifToolURI  = "https://codelens.dev"
)

// writeSARIFReport emits one rule per demographic category and integration
// sub-type and one result per recorded match.
func writeSARIFReport(w io.Writer, report m.Report) error {
	doc, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(sarifToolName, sarifToolURI)
	root := string(report.Metadata.RepositoryPath)

	for _, match := range report.FieldMatches() {
		rule := run.AddRule(DemographicRuleID(match.Category)).
			WithDescription(fmt.Sprintf("Demographic field of category %s", match.Category)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "warning"})

		run.AddResult(sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("Demographic field %q (%s)", match.FieldName, match.Category))).
			WithLevel("warning").
			WithLocations([]*sarif.Location{sarifLocation(root, match.FilePath, match.LineNumber, match.LineText)}))
	}

	for _, p := range report.Patterns {
		rule := run.AddRule(IntegrationRuleID(p.PatternType, p.SubType)).
			WithDescription(fmt.Sprintf("Integration pattern %s/%s", p.PatternType, p.SubType)).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "note"})

		run.AddResult(sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(fmt.Sprintf("Integration pattern %s: %s", p.PatternType, p.SubType))).
			WithLevel("note").
			WithLocations([]*sarif.Location{sarifLocation(root, p.FilePath, p.LineNumber, p.LineText)}))
	}

	doc.AddRun(run)

	return doc.PrettyWrite(w)
}

// DemographicRuleID is the SARIF rule id of a demographic category.
func DemographicRuleID(c m.Category) string {
	return "demographic/" + string(c)
}

// IntegrationRuleID is the SARIF rule id of an integration sub-type.
func IntegrationRuleID(p m.PatternType, subType string) string {
	return "integration/" + string(p) + "/" + subType
}

func sarifLocation(root string, path m.Path, line int, snippet string) *sarif.Location {
	uri := string(path)
	if rel, err := filepath.Rel(root, uri); err == nil && root != "" {
		uri = rel
	}

	region := sarif.NewRegion().WithStartLine(line).WithSnippet(sarif.NewArtifactContent().WithText(snippet))

	return sarif.NewLocation().WithPhysicalLocation(
		sarif.NewPhysicalLocation().
			WithArtifactLocation(sarif.NewArtifactLocation().WithUri(filepath.ToSlash(uri))).
			WithRegion(region),
	)
}
