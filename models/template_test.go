package models

import (
	"reflect"
	"testing"
	"time"
)

func TestWeekdayAbbr(t *testing.T) {
	if got := WeekdayAbbr(time.Monday); got != "Mon" {
		t.Fatalf("expected Mon, got %q", got)
	}
	if got := WeekdayAbbr(time.Sunday); got != "Sun" {
		t.Fatalf("expected Sun, got %q", got)
	}
}

func TestParseClockMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseClockMinutes(in)
		if err != nil {
			t.Fatalf("ParseClockMinutes(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseClockMinutes(%q) = %d, want %d", in, got, want)
		}
	}
	for _, in := range []string{"", "9am", "24:00", "12:60", "12", "12:00:00"} {
		if _, err := ParseClockMinutes(in); err == nil {
			t.Fatalf("ParseClockMinutes(%q): expected error", in)
		}
	}
}

func TestNormalize_SortsAndDedups(t *testing.T) {
	tpl := WeeklyTemplate{
		"Mon": {"10:00", "09:00", "10:00"},
		"Tue": {},
	}
	got, err := tpl.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := WeeklyTemplate{"Mon": {"09:00", "10:00"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Normalize = %v, want %v", got, want)
	}
}

func TestNormalize_RejectsMalformed(t *testing.T) {
	if _, err := (WeeklyTemplate{"Monday": {"09:00"}}).Normalize(); err == nil {
		t.Fatal("expected error for invalid weekday key")
	}
	if _, err := (WeeklyTemplate{"Mon": {"25:00"}}).Normalize(); err == nil {
		t.Fatal("expected error for invalid time")
	}
}
