package internal

import (
	"errors"
	"testing"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{-5, "00:00:00"},
		{0, "00:00:00"},
		{9, "00:00:09"},
		{61, "00:01:01"},
		{3600, "01:00:00"},
		{36000, "10:00:00"},
		{360000 + 61, "100:01:01"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "01:00:00", want: 3600},
		{input: "25:00", want: 1500},
		{input: "1:02:03", want: 3723},
		{input: "100:00:00", want: 360000},
		{input: " 90 ", want: 90},
		{input: "25m", want: 1500},
		{input: "1h30m", want: 5400},
		{input: "45s", want: 45},
		{input: "", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
		{input: "00:00:00", wantErr: true},
		{input: "1:2:3:4", wantErr: true},
		{input: "ab:cd", wantErr: true},
		{input: "1:-1", wantErr: true},
		{input: "1.5s", wantErr: true},
		{input: "-10m", wantErr: true},
		{input: "soon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDuration) {
					t.Errorf("ParseClock(%q) error = %v, want ErrInvalidDuration", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseClock_RoundTrip(t *testing.T) {
	for _, seconds := range []int{1, 59, 1500, 3661, 86399, 360000} {
		got, err := ParseClock(FormatClock(seconds))
		if err != nil || got != seconds {
			t.Errorf("ParseClock(FormatClock(%d)) = %d, %v", seconds, got, err)
		}
	}
}
