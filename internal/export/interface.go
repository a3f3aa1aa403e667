package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/deepwork/internal"
)

// Exporter writes a stats report in one file format
type Exporter interface {
	Export(report *internal.StatsReport, w io.Writer) error
	Extension() string
}

var formats = []struct {
	names []string
	build func() Exporter
}{
	{[]string{"json"}, func() Exporter { return &JSONExporter{} }},
	{[]string{"jsonl"}, func() Exporter { return &JSONLExporter{} }},
	{[]string{"yaml"}, func() Exporter { return &YAMLExporter{} }},
	{[]string{"md", "markdown"}, func() Exporter { return &MarkdownExporter{} }},
}

// Formats lists the primary name of every supported format.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.names[0])
	}
	return names
}

// NewExporter returns the exporter registered under format.
func NewExporter(format string) (Exporter, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	for _, f := range formats {
		for _, name := range f.names {
			if name == format {
				return f.build(), nil
			}
		}
	}
	return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats(), ", "))
}
