package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/deepwork/internal"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	report := internal.CreateTestReport()

	var buf bytes.Buffer
	exporter := &YAMLExporter{}
	if err := exporter.Export(report, &buf); err != nil {
		t.Fatalf("YAMLExporter.Export() error = %v", err)
	}

	output := buf.String()
	var decoded internal.StatsReport
	if err := yaml.Unmarshal([]byte(output), &decoded); err != nil {
		t.Fatalf("Output is not valid YAML: %v\nOutput: %s", err, output)
	}

	if len(decoded.Records) != 3 {
		t.Errorf("decoded %d records, want 3", len(decoded.Records))
	}
	if decoded.WindowEnd != "2024-03-04" {
		t.Errorf("WindowEnd = %q, want 2024-03-04", decoded.WindowEnd)
	}
	for _, want := range []string{"generated_at:", "records:", "summary:", "longest_streak:"} {
		if !strings.Contains(output, want) {
			t.Errorf("Output should contain %q", want)
		}
	}
}

func TestYAMLExporter_Extension(t *testing.T) {
	exporter := &YAMLExporter{}
	if got := exporter.Extension(); got != "yaml" {
		t.Errorf("YAMLExporter.Extension() = %v, want yaml", got)
	}
}
