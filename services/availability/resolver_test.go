package availability

import (
	"reflect"
	"testing"
	"time"

	"carelink/models"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func TestExpandTemplate_WeekdayLookup(t *testing.T) {
	tpl := models.WeeklyTemplate{
		"Mon": {"09:00", "09:30"},
	}
	// 2025-07-01 is a Tuesday; Mondays in the window: Jul 7, 14, 21, 28.
	expanded := ExpandTemplate(tpl, mustDate(t, "2025-07-01"), 30)

	if len(expanded) != 4 {
		t.Fatalf("expected 4 dates, got %d: %v", len(expanded), expanded)
	}
	for _, date := range []string{"2025-07-07", "2025-07-14", "2025-07-21", "2025-07-28"} {
		times, ok := expanded[date]
		if !ok {
			t.Fatalf("expected %s in expansion", date)
		}
		if !reflect.DeepEqual(times, []string{"09:00", "09:30"}) {
			t.Fatalf("date %s: expected both template times, got %v", date, times)
		}
	}
}

func TestExpandTemplate_WindowBoundary(t *testing.T) {
	tpl := models.WeeklyTemplate{
		"Sun": {"10:00"}, "Mon": {"10:00"}, "Tue": {"10:00"}, "Wed": {"10:00"},
		"Thu": {"10:00"}, "Fri": {"10:00"}, "Sat": {"10:00"},
	}
	start := mustDate(t, "2025-07-01")
	expanded := ExpandTemplate(tpl, start, 30)

	if len(expanded) != 30 {
		t.Fatalf("expected 30 dates, got %d", len(expanded))
	}
	if _, ok := expanded["2025-07-30"]; !ok {
		t.Fatalf("day 30 of the window (today+29) must be included")
	}
	if _, ok := expanded["2025-07-31"]; ok {
		t.Fatalf("today+30 must be outside the window")
	}
}

func TestExpandTemplate_EmptyTemplate(t *testing.T) {
	expanded := ExpandTemplate(nil, mustDate(t, "2025-07-01"), 30)
	if len(expanded) != 0 {
		t.Fatalf("expected empty expansion, got %v", expanded)
	}
}

func TestExcludeBookedSlots_OverlapBoundary(t *testing.T) {
	expanded := map[string][]string{
		"2025-07-14": {"09:00", "09:30", "10:00"},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "09:00", Duration: 1.0, Status: models.BookingStatusConfirmed},
	}

	filtered, dates := ExcludeBookedSlots(expanded, bookings, 30)

	// 09:00 and 09:30 fall inside 09:00–10:00; 10:00 starts exactly at the
	// booking's end and must be retained.
	if !reflect.DeepEqual(filtered["2025-07-14"], []string{"10:00"}) {
		t.Fatalf("expected only 10:00 to survive, got %v", filtered["2025-07-14"])
	}
	if !reflect.DeepEqual(dates, []string{"2025-07-14"}) {
		t.Fatalf("expected date to remain available, got %v", dates)
	}
}

func TestExcludeBookedSlots_DropsFullyBookedDates(t *testing.T) {
	expanded := map[string][]string{
		"2025-07-14": {"09:00"},
		"2025-07-15": {"09:00"},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "08:00", Duration: 2.0, Status: models.BookingStatusConfirmed},
	}

	filtered, dates := ExcludeBookedSlots(expanded, bookings, 30)

	if _, ok := filtered["2025-07-14"]; ok {
		t.Fatalf("fully booked date must be dropped, got %v", filtered)
	}
	if !reflect.DeepEqual(dates, []string{"2025-07-15"}) {
		t.Fatalf("expected only 2025-07-15 available, got %v", dates)
	}
}

func TestExcludeBookedSlots_IgnoresCancelled(t *testing.T) {
	expanded := map[string][]string{
		"2025-07-14": {"09:00"},
	}
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "09:00", Duration: 1.0, Status: models.BookingStatusCancelled},
	}

	filtered, _ := ExcludeBookedSlots(expanded, bookings, 30)
	if !reflect.DeepEqual(filtered["2025-07-14"], []string{"09:00"}) {
		t.Fatalf("cancelled bookings must not occupy slots, got %v", filtered)
	}
}

func TestExcludeBookedSlots_GranularityWidensSlotInterval(t *testing.T) {
	expanded := map[string][]string{
		"2025-07-14": {"09:00"},
	}
	// Booking occupies 09:45–10:45. A 30-minute slot at 09:00 is clear; a
	// 60-minute slot at 09:00 reaches into it.
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "09:45", Duration: 1.0, Status: models.BookingStatusConfirmed},
	}

	filtered, _ := ExcludeBookedSlots(expanded, bookings, 30)
	if len(filtered["2025-07-14"]) != 1 {
		t.Fatalf("30-minute slot should survive, got %v", filtered)
	}

	filtered, _ = ExcludeBookedSlots(expanded, bookings, 60)
	if len(filtered["2025-07-14"]) != 0 {
		t.Fatalf("60-minute slot should be excluded, got %v", filtered)
	}
}

func TestFilterCompatibleDurations(t *testing.T) {
	catalog := models.DurationCatalog()
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "15:00", Duration: 1.0, Status: models.BookingStatusConfirmed},
	}

	opts := FilterCompatibleDurations("2025-07-14", "14:00", catalog, bookings)

	// 14:00 + 1.0h = 15:00 exactly, no overlap; 14:00 + 1.5h = 15:30 crosses
	// the 15:00 booking start.
	var hours []float64
	for _, o := range opts {
		hours = append(hours, o.Hours)
	}
	if !reflect.DeepEqual(hours, []float64{0.5, 1.0}) {
		t.Fatalf("expected [0.5 1.0], got %v", hours)
	}
}

func TestFilterCompatibleDurations_NoSelectionReturnsFullCatalog(t *testing.T) {
	catalog := models.DurationCatalog()
	bookings := []models.Booking{
		{ID: "b1", Date: "2025-07-14", StartTime: "00:00", Duration: 8.0, Status: models.BookingStatusConfirmed},
	}

	opts := FilterCompatibleDurations("", "", catalog, bookings)
	if len(opts) != len(catalog) {
		t.Fatalf("expected full catalog of %d options, got %d", len(catalog), len(opts))
	}
}

func TestFilterCompatibleDurations_PreservesCatalogOrder(t *testing.T) {
	catalog := models.DurationCatalog()
	opts := FilterCompatibleDurations("2025-07-14", "09:00", catalog, nil)

	if len(opts) != len(catalog) {
		t.Fatalf("expected all %d options with no bookings, got %d", len(catalog), len(opts))
	}
	for i := 1; i < len(opts); i++ {
		if opts[i-1].Hours >= opts[i].Hours {
			t.Fatalf("catalog order not preserved at index %d: %v", i, opts)
		}
	}
}

func TestDurationCatalog(t *testing.T) {
	catalog := models.DurationCatalog()
	if len(catalog) != 16 {
		t.Fatalf("expected 16 options (0.5h..8h), got %d", len(catalog))
	}
	if catalog[0].Hours != 0.5 || catalog[len(catalog)-1].Hours != 8.0 {
		t.Fatalf("catalog bounds wrong: %v", catalog)
	}
	if catalog[1].Minutes() != 60 {
		t.Fatalf("expected 1h option to be 60 minutes, got %d", catalog[1].Minutes())
	}
}
