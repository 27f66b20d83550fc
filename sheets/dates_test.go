package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(year int) func() time.Time {
	return func() time.Time { return time.Date(year, time.June, 15, 12, 0, 0, 0, time.UTC) }
}

func TestParseStartDate(t *testing.T) {
	p := NewParser(WithLocation(time.UTC), WithClock(fixedClock(2025)))

	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{"month first", "03/15/2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"single digits", "1/7/2026", time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), true},
		// The day-first reading is never attempted.
		{"day first is rejected", "15/03/2025", time.Time{}, false},
		{"ambiguous reads month first", "05/06/2025", time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC), true},
		{"non-existent day", "02/30/2025", time.Time{}, false},
		{"year 2000 is too early", "01/01/2000", time.Time{}, false},
		{"iso date", "2025-11-02", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), true},
		{"iso instant", "2025-11-02T18:30:00Z", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), true},
		{"english month", "Nov 2, 2025", time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC), true},
		{"short year month first", "3/15/25", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"year first slashes", "2025/3/15", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"day month name year", "15-Mar-2025", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"date and time", "2025-03-15 10:00", time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"short year too early", "3/15/99", time.Time{}, false},
		{"spanish abbreviation", "ENE 7", time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC), true},
		{"spanish abbreviation lower case", "ago 21", time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC), true},
		{"abbreviation shared with english", "MAR 3", time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), true},
		{"abbreviation with bad day", "FEB 30", time.Time{}, false},
		{"unknown abbreviation", "XYZ 3", time.Time{}, false},
		{"three words", "ENE 7 2025", time.Time{}, false},
		{"garbage", "a confirmar", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.parseStartDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseStartDate_LocalMidnight(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)
	p := NewParser(WithLocation(loc), WithClock(fixedClock(2025)))

	got, ok := p.parseStartDate("ENE 7")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-07T03:00:00Z", got.UTC().Format(time.RFC3339))
}

func TestParseStartDate_YearFollowsClock(t *testing.T) {
	p := NewParser(WithLocation(time.UTC), WithClock(fixedClock(2031)))

	got, ok := p.parseStartDate("DIC 31")
	assert.True(t, ok)
	assert.Equal(t, 2031, got.Year())
}
