package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/deepwork/internal"
)

// JSONLExporter exports one daily record per line, in the persisted shape
type JSONLExporter struct{}

// Export exports the report records to JSONL format
func (e *JSONLExporter) Export(report *internal.StatsReport, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, record := range report.Records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("failed to encode record %s: %w", record.Date, err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
