package internal

import "time"

// WindowMonths is the number of calendar months the heat-map spans.
const WindowMonths = 12

// GenerateWindow returns every date from the first day of the month eleven
// months before today's month through today, at noon in today's location.
// Noon keeps each date on its own calendar day where DST skips midnight.
func GenerateWindow(today time.Time) []time.Time {
	loc := today.Location()
	year, month, _ := today.Date()
	endKey := DateKey(today)

	var dates []time.Time
	for offset := 0; ; offset++ {
		// time.Date normalizes the negative month and day overflow.
		date := time.Date(year, month-(WindowMonths-1), 1+offset, 12, 0, 0, 0, loc)
		if DateKey(date) > endKey {
			break
		}
		dates = append(dates, date)
	}
	return dates
}

// Classify buckets a day's hours into a heat-map level.
func Classify(hours float64) Level {
	switch {
	case !(hours > 0):
		return LevelNone
	case hours < 2:
		return LevelLow
	case hours < 4:
		return LevelMedium
	case hours < 6:
		return LevelHigh
	default:
		return LevelMax
	}
}

// Project emits one cell per date, in order, looking each date up in records.
func Project(dates []time.Time, records []DailyRecord) []CalendarCell {
	byDate := make(map[string]int, len(records))
	for _, record := range records {
		byDate[record.Date] += record.Duration
	}

	cells := make([]CalendarCell, 0, len(dates))
	for _, date := range dates {
		key := DateKey(date)
		seconds := byDate[key]
		hours := float64(seconds) / 3600
		cells = append(cells, CalendarCell{
			Date:    key,
			Seconds: seconds,
			Hours:   hours,
			Level:   Classify(hours),
		})
	}
	return cells
}

// Weeks groups cells into columns of seven consecutive days counted from
// the window start. The last column may be shorter.
func Weeks(cells []CalendarCell) [][]CalendarCell {
	var weeks [][]CalendarCell
	for start := 0; start < len(cells); start += 7 {
		end := start + 7
		if end > len(cells) {
			end = len(cells)
		}
		weeks = append(weeks, cells[start:end])
	}
	return weeks
}

// MonthLabels returns, per week column, the short month name when a month
// begins inside that column and "" otherwise.
func MonthLabels(weeks [][]CalendarCell) []string {
	labels := make([]string, len(weeks))
	for i, week := range weeks {
		for _, cell := range week {
			date, err := time.Parse(DateLayout, cell.Date)
			if err != nil {
				continue
			}
			if date.Day() == 1 {
				labels[i] = date.Format("Jan")
				break
			}
		}
	}
	return labels
}

// Calendar builds the heat-map cells for the window ending today.
func Calendar(today time.Time, records []DailyRecord) []CalendarCell {
	return Project(GenerateWindow(today), records)
}
