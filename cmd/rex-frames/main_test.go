package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/abiiranathan/rex-frames/frames"
	"github.com/abiiranathan/rex-frames/routing"
)

func TestAnalysisOutputEmptyShape(t *testing.T) {
	// A scan with nothing to report must still emit arrays, not nulls,
	// so consumers get a stable JSON shape.
	report, err := frames.ScanDir(t.TempDir(), frames.DefaultScanConfig, nil)
	if err != nil {
		t.Fatal(err)
	}
	table := routing.Aggregate(report.Documents, nil)

	output := AnalysisOutput{
		Diagnostics: report.Diagnostics,
		Exact:       table.Exact(),
		Prefixes:    table.Prefixes(),
	}

	data, err := json.Marshal(output)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	for _, want := range []string{`"diagnostics":[]`, `"exact":[]`, `"prefixes":[]`} {
		if !strings.Contains(got, want) {
			t.Errorf("output %s, want it to contain %s", got, want)
		}
	}
	if strings.Contains(got, "null") {
		t.Errorf("output %s contains null, want empty arrays", got)
	}
}
