package internal

import "time"

// DefaultSessionSeconds is the length a session re-arms to after a reset,
// a finish, or a start from zero.
const DefaultSessionSeconds = 3600

// DateLayout is the calendar key format used for persisted records.
const DateLayout = "2006-01-02"

// Status is the Session Engine state.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusFinished
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// SessionState is a read-only view of the live session
type SessionState struct {
	Remaining int
	Initial   int
	Status    Status
}

// Elapsed returns the seconds counted down so far.
func (s SessionState) Elapsed() int {
	return s.Initial - s.Remaining
}

// CompletionReason tells how a session ended
type CompletionReason string

const (
	ReasonExhausted CompletionReason = "exhausted"
	ReasonFinished  CompletionReason = "finished"
)

// Completion is emitted once per ended session
type Completion struct {
	ID      string
	Seconds int
	EndedAt time.Time
	Reason  CompletionReason
}

// DailyRecord is the accumulated focus time for one calendar date
type DailyRecord struct {
	Date     string `json:"date" yaml:"date"`
	Duration int    `json:"duration" yaml:"duration"` // seconds
}

// Hours returns the record duration in hours.
func (r DailyRecord) Hours() float64 {
	return float64(r.Duration) / 3600
}

// Level is a heat-map intensity bucket, 0 through 4
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMedium
	LevelHigh
	LevelMax
)

// CalendarCell is one day of the heat-map
type CalendarCell struct {
	Date    string  `json:"date" yaml:"date"`
	Seconds int     `json:"seconds" yaml:"seconds"`
	Hours   float64 `json:"hours" yaml:"hours"`
	Level   Level   `json:"level" yaml:"level"`
}
