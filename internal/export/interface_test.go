package export

import (
	"testing"
)

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantExt string
		wantErr bool
	}{
		{name: "jsonl format", format: "jsonl", wantExt: "jsonl"},
		{name: "markdown format", format: "md", wantExt: "md"},
		{name: "markdown format long", format: "markdown", wantExt: "md"},
		{name: "yaml format", format: "yaml", wantExt: "yaml"},
		{name: "json format", format: "json", wantExt: "json"},
		{name: "case and space", format: " YAML ", wantExt: "yaml"},
		{name: "unsupported format", format: "csv", wantErr: true},
		{name: "empty format", format: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, err := NewExporter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if tt.wantErr {
				if exporter != nil {
					t.Errorf("NewExporter() returned exporter %T, want nil", exporter)
				}
				return
			}

			if exporter == nil {
				t.Fatal("NewExporter() returned nil exporter")
			}
			if got := exporter.Extension(); got != tt.wantExt {
				t.Errorf("Exporter.Extension() = %v, want %v", got, tt.wantExt)
			}
		})
	}
}

func TestFormats(t *testing.T) {
	got := Formats()
	want := []string{"json", "jsonl", "yaml", "md"}
	if len(got) != len(want) {
		t.Fatalf("Formats() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Formats()[%d] = %q, want %q", i, got[i], want[i])
		}
		if _, err := NewExporter(got[i]); err != nil {
			t.Errorf("NewExporter(%q) error = %v", got[i], err)
		}
	}
}
