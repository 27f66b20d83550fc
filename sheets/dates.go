package sheets

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// minYear is exclusive: a start date must fall after it.
const minYear = 2000

var slashDate = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)

// monthAbbrev covers the Spanish three-letter month labels used in the sheet.
var monthAbbrev = map[string]time.Month{
	"ENE": time.January,
	"FEB": time.February,
	"MAR": time.March,
	"ABR": time.April,
	"MAY": time.May,
	"JUN": time.June,
	"JUL": time.July,
	"AGO": time.August,
	"SEP": time.September,
	"OCT": time.October,
	"NOV": time.November,
	"DIC": time.December,
}

// parseStartDate resolves the sheet's start date cell to local midnight.
//
// Numeric slash dates with a four digit year are read month first (the sheet
// export's locale). When such a value does not form a valid month-first date
// it is rejected; the day-first reading is never attempted. Spanish month
// labels ("ENE 7") take the year from the clock. Anything else goes through
// dateparse, still preferring month first.
func (p *Parser) parseStartDate(v string) (time.Time, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, false
	}

	if m := slashDate.FindStringSubmatch(v); m != nil {
		month, _ := leadingInt(m[1])
		day, _ := leadingInt(m[2])
		year, _ := leadingInt(m[3])
		return p.civilDate(year, month, day)
	}

	if month, day, ok := monthLabel(v); ok {
		if day == 0 {
			return time.Time{}, false
		}
		return p.civilDate(p.now().In(p.loc).Year(), int(month), day)
	}

	t, err := dateparse.ParseIn(v, p.loc, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, false
	}
	t = t.In(p.loc)
	return p.civilDate(t.Year(), int(t.Month()), t.Day())
}

// monthLabel recognizes "MON DAY" with a Spanish month abbreviation. day is
// zero when the label is known but the day is not a positive integer.
func monthLabel(v string) (time.Month, int, bool) {
	parts := strings.Fields(v)
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, ok := monthAbbrev[strings.ToUpper(parts[0])]
	if !ok {
		return 0, 0, false
	}
	day, _ := positiveInt(parts[1])
	return month, day, true
}

// civilDate builds local midnight of year-month-day, refusing dates that do
// not exist on the calendar or fall in or before minYear.
func (p *Parser) civilDate(year, month, day int) (time.Time, bool) {
	if year <= minYear || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, p.loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
