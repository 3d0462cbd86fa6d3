package models

import (
	"math"
	"strconv"
)

// AvailabilityView is the resolved, bookable slot set for a caregiver over a
// rolling date window. It is computed fresh per request and never persisted.
type AvailabilityView struct {
	AvailableDates []string            `json:"availableDates"`
	SlotsByDate    map[string][]string `json:"slotsByDate"`
}

// DurationOption is one offerable appointment length from the fixed catalog.
type DurationOption struct {
	Hours float64 `json:"hours"`
	Label string  `json:"label"`
}

// DurationMinutes converts fractional hours to whole minutes.
func DurationMinutes(hours float64) int {
	return int(math.Round(hours * 60))
}

// Minutes returns the option's length in whole minutes.
func (d DurationOption) Minutes() int {
	return DurationMinutes(d.Hours)
}

// DurationCatalog returns the offerable appointment lengths, ascending, from
// half an hour to eight hours in half-hour steps.
func DurationCatalog() []DurationOption {
	opts := make([]DurationOption, 0, 16)
	for h := 0.5; h <= 8.0; h += 0.5 {
		label := " hours"
		if h == 1.0 {
			label = " hour"
		}
		opts = append(opts, DurationOption{
			Hours: h,
			Label: strconv.FormatFloat(h, 'f', -1, 64) + label,
		})
	}
	return opts
}
