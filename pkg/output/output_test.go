package output

import (
	"errors"
	"time"

	"github.com/ccollicutt/xmllog2json/pkg/bucket"
	"github.com/ccollicutt/xmllog2json/pkg/converter"
	"github.com/ccollicutt/xmllog2json/pkg/entry"
	"github.com/ccollicutt/xmllog2json/pkg/severity"
)

func testBuckets() *bucket.Buckets {
	b := entry.NewBuilder(entry.Filter{}, nil)
	var entries []entry.LogEntry
	for _, r := range [][3]string{
		{"2024-01-15T10:30:00", "WARNING", "disk almost full"},
		{"2024-01-15T10:31:00", "INFO", "backup <started> & running"},
		{"2024-01-15T10:32:00", "WARNING", "disk full"},
	} {
		e, ok := b.Build(r[0], r[1], r[2])
		if !ok {
			panic("test record rejected: " + r[2])
		}
		entries = append(entries, e)
	}
	return bucket.Bucket(entries)
}

func createTestRun() *converter.RunResult {
	start := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return &converter.RunResult{
		RunID: "run-123",
		Files: []*converter.FileResult{
			{
				Source:   "input/a.xml",
				Buckets:  testBuckets(),
				Counts:   map[severity.Severity]int{severity.Warning: 2, severity.Info: 1, severity.Error: 0},
				Records:  4,
				Accepted: 3,
				Rejected: 1,
				Outputs:  []string{"output/WARNING_1_1.json", "output/INFO_1_1.json", "output/ERROR_1_1.json"},
			},
			{
				Source: "input/b.xml",
				Err:    errors.New(`input/b.xml: record 2: unrecognized tag "source"`),
			},
		},
		Counts:    map[severity.Severity]int{severity.Warning: 2, severity.Info: 1, severity.Error: 0},
		StartTime: start,
		EndTime:   start.Add(1500 * time.Millisecond),
	}
}

func createTestReport() *Report {
	f, _ := entry.ParseFilter("warning,info", "2024-01-01T00:00:00", "")
	return NewReport(createTestRun(), Metadata{
		OutputDir:    "output",
		CounterScope: converter.ScopeRun,
		Filter:       NewFilterInfo(f),
	})
}
