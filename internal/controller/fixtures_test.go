package controller

import (
	"errors"
	"time"

	m "codelens.dev/pkg/codelens/internal/model"
)

func testReport() m.Report {
	result := m.NewScanResult([]m.FileAnalysis{
		{
			File: m.NewCodeFile("/repo/src/Orders.java"),
			Fields: []m.FieldOccurrences{
				{FieldName: "email", Category: m.CategoryContact, Occurrences: []m.Occurrence{{LineNumber: 3, LineText: "String email;"}}},
				{FieldName: "first_name", Category: m.CategoryName, Occurrences: []m.Occurrence{{LineNumber: 4, LineText: "String first_name;"}, {LineNumber: 9, LineText: "first_name = x;"}}},
			},
			Patterns: []m.IntegrationPatternMatch{
				{PatternType: m.PatternMessaging, SubType: "kafka", FilePath: "/repo/src/Orders.java", LineNumber: 1, LineText: "@KafkaListener"},
			},
		},
		{
			File: m.NewCodeFile("/repo/app.py"),
			Err:  errors.New("permission denied"),
		},
	})

	return m.Report{
		Metadata: m.ReportMetadata{
			RunID:           "run-1",
			ApplicationName: "Orders",
			Timestamp:       time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
			RepositoryPath:  "/repo",
		},
		ScanResult: result,
	}
}

func testMatchResult() m.MatchResult {
	result := m.MatchResult{
		Column:        "attr_name",
		Algorithm:     "ratio",
		Threshold:     60,
		SourceColumns: []string{"attr_name"},
		TargetColumns: []string{"attr_name", "system"},
		Matches: []m.RecordMatch{
			{Score: 91, Source: m.Record{"attr_name": "customer_id"}, Target: m.Record{"attr_name": "customerid", "system": "crm"}},
			{Score: 70, Source: m.Record{"attr_name": "email"}, Target: m.Record{"attr_name": "e_mail_addr", "system": "crm"}},
		},
	}
	result.Summarize()

	return result
}
