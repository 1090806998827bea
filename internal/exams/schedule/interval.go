package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// TimeSpan is a half-open interval [Start, End) in minutes from midnight.
// End may equal minutesPerDay for an exam that runs to the end of the day.
type TimeSpan struct {
	Start int
	End   int
}

// NewTimeSpan builds a span from a wall-clock start ("15:04") and a
// duration in minutes. The span must fit inside a single day.
func NewTimeSpan(startTime string, durationMinutes int) (TimeSpan, error) {
	start, err := parseTimeOfDay(startTime)
	if err != nil {
		return TimeSpan{}, err
	}

	if durationMinutes <= 0 {
		return TimeSpan{}, fmt.Errorf("duration must be positive, got %d", durationMinutes)
	}

	end := start + durationMinutes
	if end > minutesPerDay {
		return TimeSpan{}, fmt.Errorf("exam ending at %s crosses midnight", formatMinutes(end-minutesPerDay))
	}

	return TimeSpan{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals share any minute.
// Back-to-back spans (one ends exactly when the other starts) do not overlap.
func (t TimeSpan) Overlaps(other TimeSpan) bool {
	return t.Start < other.End && other.Start < t.End
}

// Duration returns the span length in minutes.
func (t TimeSpan) Duration() int {
	return t.End - t.Start
}

func (t TimeSpan) String() string {
	return fmt.Sprintf("%s-%s", formatMinutes(t.Start), formatMinutes(t.End))
}

func parseTimeOfDay(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}

	return hours*60 + minutes, nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
