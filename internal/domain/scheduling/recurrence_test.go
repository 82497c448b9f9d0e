package scheduling

import (
	"testing"
	"time"

	"github.com/medagenda/clinic-scheduler/internal/httperr"
)

func TestOccurrencesWeekly(t *testing.T) {
	base := Window{Start: day(10, 0), End: day(11, 0)} // Monday 2026-09-14
	p := Pattern{
		Frequency: FrequencyWeekly,
		Interval:  1,
		EndDate:   time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
	}

	got, err := Occurrences(base, p, 365)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 4 {
		t.Fatalf("expected 4 occurrences, got %d", len(got))
	}
	for i, w := range got {
		wantStart := base.Start.AddDate(0, 0, 7*i)
		if !w.Start.Equal(wantStart) {
			t.Errorf("occurrence %d starts %v, want %v", i, w.Start, wantStart)
		}
		if w.Duration() != time.Hour {
			t.Errorf("occurrence %d duration %v, want 1h", i, w.Duration())
		}
	}
}

func TestOccurrencesEndDateInclusive(t *testing.T) {
	base := Window{Start: day(10, 0), End: day(11, 0)}
	p := Pattern{
		Frequency: FrequencyDaily,
		Interval:  1,
		// End date is the day of the third occurrence; it must be kept.
		EndDate: time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC),
	}

	got, err := Occurrences(base, p, 365)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	last := got[len(got)-1]
	if last.Start.Day() != 16 {
		t.Errorf("last occurrence on day %d, want 16", last.Start.Day())
	}
}

func TestOccurrencesMonthlyInterval(t *testing.T) {
	base := Window{Start: day(10, 0), End: day(10, 30)}
	p := Pattern{
		Frequency: FrequencyMonthly,
		Interval:  2,
		EndDate:   time.Date(2027, 1, 14, 0, 0, 0, 0, time.UTC),
	}

	got, err := Occurrences(base, p, 365)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 occurrences, got %d", len(got))
	}
	if got[1].Start.Month() != time.November || got[2].Start.Month() != time.January {
		t.Errorf("months = %v, %v", got[1].Start.Month(), got[2].Start.Month())
	}
}

func TestOccurrencesDeterministic(t *testing.T) {
	base := Window{Start: day(9, 0), End: day(9, 45)}
	p := Pattern{
		Frequency: FrequencyDaily,
		Interval:  3,
		EndDate:   time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
	}

	first, err := Occurrences(base, p, 365)
	if err != nil {
		t.Fatal(err)
	}
	second, _ := Occurrences(base, p, 365)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Fatalf("occurrence %d differs between runs", i)
		}
	}
}

func TestOccurrencesRespectsMaxCount(t *testing.T) {
	base := Window{Start: day(9, 0), End: day(9, 30)}
	p := Pattern{
		Frequency: FrequencyDaily,
		Interval:  1,
		EndDate:   base.Start.AddDate(10, 0, 0),
	}

	got, err := Occurrences(base, p, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Fatalf("expected cap at 5, got %d", len(got))
	}
}

func TestPatternValidate(t *testing.T) {
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		p    Pattern
		code string
	}{
		{"ok", Pattern{Frequency: FrequencyWeekly, Interval: 2, EndDate: end}, ""},
		{"bad frequency", Pattern{Frequency: "yearly", Interval: 1, EndDate: end}, "invalid_frequency"},
		{"zero interval", Pattern{Frequency: FrequencyDaily, Interval: 0, EndDate: end}, "invalid_interval"},
		{"negative interval", Pattern{Frequency: FrequencyDaily, Interval: -1, EndDate: end}, "invalid_interval"},
		{"missing end date", Pattern{Frequency: FrequencyDaily, Interval: 1}, "missing_end_date"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate()
			if tc.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !httperr.IsBusiness(err, tc.code) {
				t.Fatalf("err = %v, want code %q", err, tc.code)
			}
		})
	}
}
