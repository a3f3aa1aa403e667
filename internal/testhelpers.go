package internal

import (
	"strconv"
	"time"
)

// FixedClock always reports the same instant
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

// CreateTestRecords returns a small snapshot spread over three days
func CreateTestRecords() []DailyRecord {
	return []DailyRecord{
		{Date: "2024-03-01", Duration: 1500},
		{Date: "2024-03-02", Duration: 3 * 3600},
		{Date: "2024-03-04", Duration: 7 * 3600},
	}
}

// CreateTestReport builds a report over CreateTestRecords ending 2024-03-04
func CreateTestReport() *StatsReport {
	now := time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC)
	return BuildReport(now, CreateTestRecords())
}

// CreateTestReportWithRecords builds a report over custom records
func CreateTestReportWithRecords(records []DailyRecord) *StatsReport {
	now := time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC)
	return BuildReport(now, records)
}

// NewTestEngine returns an engine driven by manual ticks and sequential ids
func NewTestEngine(now time.Time) (*Engine, *ManualTickers) {
	tickers := &ManualTickers{}
	next := 0
	engine := NewEngine(EngineOptions{
		Clock:   FixedClock{At: now},
		Tickers: tickers.New,
		IDs: func() string {
			next++
			return "completion-" + strconv.Itoa(next)
		},
	})
	return engine, tickers
}
