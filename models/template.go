package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WeeklyTemplate is a caregiver's recurring weekly availability pattern: a
// mapping from three-letter weekday abbreviation ("Sun".."Sat") to the ordered
// slot start times ("HH:MM", 24-hour) offered on that weekday.
type WeeklyTemplate map[string][]string

// WeekdayAbbr returns the template key for a weekday ("Mon", "Tue", ...).
func WeekdayAbbr(d time.Weekday) string {
	return d.String()[:3]
}

var validWeekdays = map[string]bool{
	"Sun": true, "Mon": true, "Tue": true, "Wed": true,
	"Thu": true, "Fri": true, "Sat": true,
}

// ParseClockMinutes parses an "HH:MM" 24-hour time string into minutes since
// midnight.
func ParseClockMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClockMinutes renders minutes since midnight as "HH:MM".
func FormatClockMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Normalize validates the template shape and returns a cleaned copy: unknown
// weekday keys or unparseable times are rejected, per-day times are sorted and
// de-duplicated, and days left without any time are dropped.
func (t WeeklyTemplate) Normalize() (WeeklyTemplate, error) {
	out := make(WeeklyTemplate, len(t))
	for day, times := range t {
		if !validWeekdays[day] {
			return nil, fmt.Errorf("invalid weekday key %q", day)
		}
		mins := make([]int, 0, len(times))
		seen := make(map[int]bool, len(times))
		for _, ts := range times {
			m, err := ParseClockMinutes(ts)
			if err != nil {
				return nil, fmt.Errorf("weekday %s: %w", day, err)
			}
			if !seen[m] {
				seen[m] = true
				mins = append(mins, m)
			}
		}
		if len(mins) == 0 {
			continue
		}
		sort.Ints(mins)
		cleaned := make([]string, len(mins))
		for i, m := range mins {
			cleaned[i] = FormatClockMinutes(m)
		}
		out[day] = cleaned
	}
	return out, nil
}
