package availability

import (
	"sort"
	"time"

	"carelink/models"
	"carelink/utils"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ExpandTemplate materializes a weekly template across a rolling window of
// windowDays calendar days starting at windowStart. The result maps each date
// ("YYYY-MM-DD") to the candidate slot start times configured for that date's
// weekday. Dates whose weekday has no template entry are absent; that is not
// an error.
func ExpandTemplate(tpl models.WeeklyTemplate, windowStart time.Time, windowDays int) map[string][]string {
	expanded := make(map[string][]string)
	if len(tpl) == 0 || windowDays <= 0 {
		return expanded
	}
	day := time.Date(windowStart.Year(), windowStart.Month(), windowStart.Day(), 0, 0, 0, 0, windowStart.Location())
	for i := 0; i < windowDays; i++ {
		d := day.AddDate(0, 0, i)
		times := tpl[models.WeekdayAbbr(d.Weekday())]
		if len(times) == 0 {
			continue
		}
		expanded[d.Format(dateLayout)] = append([]string(nil), times...)
	}
	return expanded
}

// overlaps reports whether half-open intervals [a,b) and [c,d) intersect.
func overlaps(a, b, c, d int) bool {
	return a < d && c < b
}

// busyIntervals indexes confirmed bookings by date as [start,end) minute
// intervals. Bookings with unparseable times are skipped and logged.
func busyIntervals(bookings []models.Booking) map[string][][2]int {
	busy := make(map[string][][2]int)
	for _, b := range bookings {
		if b.Status == models.BookingStatusCancelled {
			continue
		}
		start, end, err := b.Interval()
		if err != nil {
			utils.GetLogger().Warn("skipping booking with unparseable time",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		busy[b.Date] = append(busy[b.Date], [2]int{start, end})
	}
	return busy
}

// ExcludeBookedSlots removes from the expanded date→times mapping every slot
// whose [t, t+granularityMin) interval intersects an existing booking on that
// date. Dates whose candidate list becomes empty are dropped. It returns the
// filtered mapping and the sorted list of remaining available dates.
func ExcludeBookedSlots(expanded map[string][]string, bookings []models.Booking, granularityMin int) (map[string][]string, []string) {
	if granularityMin <= 0 {
		granularityMin = models.DefaultSlotGranularityMin
	}
	busy := busyIntervals(bookings)

	filtered := make(map[string][]string, len(expanded))
	dates := make([]string, 0, len(expanded))
	for date, times := range expanded {
		intervals := busy[date]
		kept := make([]string, 0, len(times))
		for _, ts := range times {
			start, err := models.ParseClockMinutes(ts)
			if err != nil {
				utils.GetLogger().Warn("skipping unparseable template slot",
					zap.String("date", date), zap.String("time", ts), zap.Error(err))
				continue
			}
			conflict := false
			for _, iv := range intervals {
				if overlaps(start, start+granularityMin, iv[0], iv[1]) {
					conflict = true
					break
				}
			}
			if !conflict {
				kept = append(kept, ts)
			}
		}
		if len(kept) > 0 {
			filtered[date] = kept
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return filtered, dates
}

// FilterCompatibleDurations returns the subset of the catalog whose interval
// [startTime, startTime+duration) does not intersect any existing booking on
// the chosen date, preserving catalog order. When no date/time has been
// chosen yet the full catalog is returned unfiltered.
func FilterCompatibleDurations(date, startTime string, catalog []models.DurationOption, bookings []models.Booking) []models.DurationOption {
	if date == "" || startTime == "" {
		return append([]models.DurationOption(nil), catalog...)
	}
	start, err := models.ParseClockMinutes(startTime)
	if err != nil {
		utils.GetLogger().Warn("unparseable slot time for duration filtering",
			zap.String("time", startTime), zap.Error(err))
		return nil
	}

	intervals := busyIntervals(bookings)[date]
	out := make([]models.DurationOption, 0, len(catalog))
	for _, opt := range catalog {
		end := start + opt.Minutes()
		conflict := false
		for _, iv := range intervals {
			if overlaps(start, end, iv[0], iv[1]) {
				conflict = true
				break
			}
		}
		if !conflict {
			out = append(out, opt)
		}
	}
	return out
}
