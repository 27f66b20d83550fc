package catalog

import (
	"strings"
	"time"

	"github.com/padraicbc/racecal/models"
)

// Filter narrows a race list. Zero fields do not filter.
type Filter struct {
	Discipline string
	Province   string
	From       time.Time
	To         time.Time
}

// Apply returns the races matching f in their original order. Discipline and
// province compare case-insensitively against the whole value; From and To
// are inclusive bounds on the start date.
func (f Filter) Apply(races []models.Race) []models.Race {
	out := make([]models.Race, 0, len(races))
	for _, r := range races {
		if f.Discipline != "" && !strings.EqualFold(r.Discipline, f.Discipline) {
			continue
		}
		if f.Province != "" && !strings.EqualFold(r.Province, f.Province) {
			continue
		}
		if !f.From.IsZero() && r.StartDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && r.StartDate.After(f.To) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Find returns the first race with the given id.
func Find(races []models.Race, id int) (models.Race, bool) {
	for _, r := range races {
		if r.ID == id {
			return r, true
		}
	}
	return models.Race{}, false
}
