package internal

// Summary aggregates a projected window
type Summary struct {
	TotalSeconds  int          `json:"total_seconds" yaml:"total_seconds"`
	ActiveDays    int          `json:"active_days" yaml:"active_days"`
	BestDay       CalendarCell `json:"best_day" yaml:"best_day"`
	CurrentStreak int          `json:"current_streak" yaml:"current_streak"`
	LongestStreak int          `json:"longest_streak" yaml:"longest_streak"`
}

// TotalHours returns TotalSeconds in hours.
func (s Summary) TotalHours() float64 {
	return float64(s.TotalSeconds) / 3600
}

// Summarize computes totals and streaks over cells. The current streak
// still counts when only the last day (today) is empty.
func Summarize(cells []CalendarCell) Summary {
	var summary Summary
	run := 0
	for _, cell := range cells {
		summary.TotalSeconds += cell.Seconds
		if cell.Seconds <= 0 {
			run = 0
			continue
		}
		summary.ActiveDays++
		run++
		if run > summary.LongestStreak {
			summary.LongestStreak = run
		}
		if cell.Seconds > summary.BestDay.Seconds {
			summary.BestDay = cell
		}
	}

	end := len(cells) - 1
	if end >= 0 && cells[end].Seconds <= 0 {
		end--
	}
	for i := end; i >= 0 && cells[i].Seconds > 0; i-- {
		summary.CurrentStreak++
	}
	return summary
}
