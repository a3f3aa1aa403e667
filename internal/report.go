package internal

import "time"

// StatsReport is the exportable view of the snapshot
type StatsReport struct {
	GeneratedAt string        `json:"generated_at" yaml:"generated_at"`
	WindowStart string        `json:"window_start" yaml:"window_start"`
	WindowEnd   string        `json:"window_end" yaml:"window_end"`
	Records     []DailyRecord `json:"records" yaml:"records"`
	Summary     Summary       `json:"summary" yaml:"summary"`
}

// BuildReport summarizes records over the window ending at now. Records
// outside the window are still listed.
func BuildReport(now time.Time, records []DailyRecord) *StatsReport {
	cells := Calendar(now, records)
	report := &StatsReport{
		GeneratedAt: now.Format(time.RFC3339),
		Records:     records,
		Summary:     Summarize(cells),
	}
	if report.Records == nil {
		report.Records = []DailyRecord{}
	}
	if len(cells) > 0 {
		report.WindowStart = cells[0].Date
		report.WindowEnd = cells[len(cells)-1].Date
	}
	return report
}
