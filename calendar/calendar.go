// Package calendar groups races into Monday-to-Sunday weeks of a year.
//
// Week 1 is the week holding January 1st, so it may start in December of the
// previous year. Weeks are numbered sequentially from there, at most 53.
package calendar

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/padraicbc/racecal/models"
)

const maxWeeks = 53

// WeekGroup is one calendar week and the races starting in it.
type WeekGroup struct {
	Week      int           `json:"week"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Races     []models.Race `json:"races"`
}

// Query restricts which races are grouped. Zero fields do not filter.
type Query struct {
	Search     string
	Country    string
	Provinces  []string
	Discipline string
	Formats    []string
	Modalities []string
}

// Active reports whether any restriction is set.
func (q Query) Active() bool {
	return strings.TrimSpace(q.Search) != "" || q.Country != "" || len(q.Provinces) > 0 ||
		q.Discipline != "" || len(q.Formats) > 0 || len(q.Modalities) > 0
}

// Match reports whether race passes every restriction of q.
func (q Query) Match(race models.Race) bool {
	if s := strings.TrimSpace(q.Search); s != "" {
		if !strings.Contains(Fold(race.Name), Fold(s)) {
			return false
		}
	}
	if q.Country != "" && race.Country != q.Country {
		return false
	}
	if len(q.Provinces) > 0 && (race.Province == "" || !contains(q.Provinces, race.Province)) {
		return false
	}
	if q.Discipline != "" {
		disciplines := race.Disciplines
		if len(disciplines) == 0 && race.Discipline != "" {
			disciplines = []string{race.Discipline}
		}
		if !contains(disciplines, q.Discipline) {
			return false
		}
	}
	if len(q.Formats) > 0 && !contains(q.Formats, race.Format) && !overlaps(q.Formats, race.Formats) {
		return false
	}
	if len(q.Modalities) > 0 {
		modalities := race.Modalities
		if len(modalities) == 0 && race.Modality != "" {
			modalities = []string{race.Modality}
		}
		if !overlaps(q.Modalities, modalities) {
			return false
		}
	}
	return true
}

// Weeks groups the races of year that match q, reading start dates in loc.
//
// Without an active query every week touching year is returned, empty or
// not. With one, only weeks holding a matching race are returned, ordered by
// their Monday. Races within a week are ordered by start date.
func Weeks(races []models.Race, year int, q Query, loc *time.Location) []WeekGroup {
	if loc == nil {
		loc = time.Local
	}
	first := FirstMonday(year, loc)

	byWeek := map[int][]models.Race{}
	for _, r := range races {
		if r.StartDate.IsZero() {
			continue
		}
		start := r.StartDate.In(loc)
		if start.Year() != year || !q.Match(r) {
			continue
		}
		w := WeekOfYear(start, loc)
		byWeek[w] = append(byWeek[w], r)
	}

	if q.Active() {
		groups := make([]WeekGroup, 0, len(byWeek))
		for w, rs := range byWeek {
			monday := MondayOf(rs[0].StartDate, loc)
			groups = append(groups, newGroup(w, monday, rs))
		}
		sort.Slice(groups, func(i, j int) bool { return groups[i].StartDate.Before(groups[j].StartDate) })
		return groups
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	var groups []WeekGroup
	for w := 1; w <= maxWeeks; w++ {
		monday := first.AddDate(0, 0, (w-1)*7)
		sunday := monday.AddDate(0, 0, 6)
		if monday.After(yearEnd) {
			break
		}
		if sunday.Before(yearStart) {
			continue
		}
		groups = append(groups, newGroup(w, monday, byWeek[w]))
	}
	return groups
}

func newGroup(week int, monday time.Time, races []models.Race) WeekGroup {
	sorted := make([]models.Race, len(races))
	copy(sorted, races)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartDate.Before(sorted[j].StartDate) })
	return WeekGroup{
		Week:      week,
		StartDate: monday,
		EndDate:   monday.AddDate(0, 0, 6),
		Races:     sorted,
	}
}

// FirstMonday returns the Monday on or before January 1st of year.
func FirstMonday(year int, loc *time.Location) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return MondayOf(jan1, loc)
}

// MondayOf returns midnight of the Monday starting t's week.
func MondayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	back := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-back, 0, 0, 0, 0, loc)
}

// WeekOfYear returns t's week number within its own year.
func WeekOfYear(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	first := FirstMonday(t.Year(), loc)
	return daysBetween(first, t)/7 + 1
}

// MonthStarts returns, for each month of year, the index in groups of the
// first week holding a day of that month, or -1.
func MonthStarts(groups []WeekGroup, year int) [12]int {
	var out [12]int
	for i := range out {
		out[i] = -1
	}
	for gi, g := range groups {
		for d := 0; d < 7; d++ {
			day := g.StartDate.AddDate(0, 0, d)
			if day.Year() != year {
				continue
			}
			if m := int(day.Month()) - 1; out[m] == -1 {
				out[m] = gi
			}
		}
	}
	return out
}

// daysBetween counts calendar days from a to b, ignoring clock changes.
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// Fold lower-cases s and strips accents so "Córdoba" matches "cordoba".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func overlaps(a, b []string) bool {
	for _, x := range b {
		if contains(a, x) {
			return true
		}
	}
	return false
}
