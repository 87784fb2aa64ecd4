package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestOf(t *testing.T) {
	paris := time.FixedZone("CEST", 2*3600)
	late := time.Date(2024, time.June, 3, 23, 30, 0, 0, paris)
	if got, want := Of(late), New(2024, time.June, 3); got != want {
		t.Errorf("Of(%v) = %v, want %v", late, got, want)
	}
}

func TestDaysUntil(t *testing.T) {
	testCases := []struct {
		from, to Date
		want     int
	}{
		{New(2024, time.January, 1), New(2024, time.January, 2), 1},
		{New(2024, time.February, 28), New(2024, time.March, 1), 2},
		{New(2023, time.December, 31), New(2024, time.January, 1), 1},
		{New(2024, time.January, 5), New(2024, time.January, 1), -4},
		{New(2024, time.March, 30), New(2024, time.March, 30), 0},
	}
	for _, tc := range testCases {
		if got := tc.from.DaysUntil(tc.to); got != tc.want {
			t.Errorf("%v.DaysUntil(%v) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStartOfEndOf(t *testing.T) {
	d := New(2024, time.August, 14) // a Wednesday
	testCases := []struct {
		period     Period
		start, end Date
	}{
		{Daily, d, d},
		{Weekly, New(2024, time.August, 12), New(2024, time.August, 18)},
		{Monthly, New(2024, time.August, 1), New(2024, time.August, 31)},
		{Quarterly, New(2024, time.July, 1), New(2024, time.September, 30)},
		{Yearly, New(2024, time.January, 1), New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		if got := d.StartOf(tc.period); got != tc.start {
			t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.start)
		}
		if got := d.EndOf(tc.period); got != tc.end {
			t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.end)
		}
	}
}
