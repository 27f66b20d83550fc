package sheets

import (
	"fmt"
	"strings"
	"time"

	"github.com/padraicbc/racecal/models"
)

// Parser maps tokenized sheet rows to races.
type Parser struct {
	loc    *time.Location
	now    func() time.Time
	report Reporter
}

// Option configures a Parser.
type Option func(*Parser)

// WithLocation sets the zone whose midnight start dates are anchored to.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		if loc != nil {
			p.loc = loc
		}
	}
}

// WithClock sets the clock used to default the year of "ENE 7" style dates.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// WithReporter sets the diagnostics sink.
func WithReporter(r Reporter) Option {
	return func(p *Parser) { p.report = r }
}

// NewParser creates a Parser. Without options dates use time.Local, the
// wall clock, and diagnostics are discarded.
func NewParser(opts ...Option) *Parser {
	p := &Parser{loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse maps every data row of a CSV document, skipping the header and any
// rejected rows. Source order is preserved. The result is never nil.
func (p *Parser) Parse(text string) []models.Race {
	rows := TokenizeDocument(text)
	races := []models.Race{}
	for i := 1; i < len(rows); i++ {
		if row(rows[i]).blank() {
			continue
		}
		race, err := p.MapRow(rows[i], i)
		if err != nil {
			continue
		}
		races = append(races, race)
	}
	return races
}

// MapRow maps one tokenized row. rowIndex is the 1-based position among data
// rows and stands in for the id when the id column is unusable. Rows lacking
// a name, a start date or a discipline yield a *RowRejectedError.
func (p *Parser) MapRow(fields []string, rowIndex int) (models.Race, error) {
	r := row(fields)
	race := models.Race{ID: rowIndex}

	var unreadable []Column
	for _, c := range Columns {
		if !c.Mapped() {
			continue
		}
		if !c.parse(p, &race, r.cell(c.Index)) {
			unreadable = append(unreadable, c)
		}
	}

	race.Location = joinNonEmpty(", ", race.City, race.Province, race.Country)
	if race.Stages != nil {
		race.StageDetails = stageDetails(r, *race.Stages)
	}

	// Nameless rows are reported once, as a rejection.
	if race.Name != "" {
		for _, c := range unreadable {
			p.diagnose(Diagnostic{
				Row:     rowIndex,
				Name:    race.Name,
				Field:   c.Field,
				Value:   r.cell(c.Index),
				Message: "unparseable " + c.Field,
			})
		}
	}

	var missing []string
	if race.Name == "" {
		missing = append(missing, "name")
	}
	if race.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if race.Discipline == "" {
		missing = append(missing, "discipline")
	}
	if len(missing) > 0 {
		err := &RowRejectedError{Row: rowIndex, Name: race.Name, Missing: missing}
		p.diagnose(Diagnostic{
			Row:     rowIndex,
			Name:    race.Name,
			Field:   strings.Join(missing, ","),
			Value:   r.cell(ColStartDate),
			Message: "race skipped, missing required fields",
		})
		return models.Race{}, err
	}

	return race, nil
}

func (p *Parser) diagnose(d Diagnostic) {
	if p.report != nil {
		p.report(d)
	}
}

// deriveDistances reads the distance cell.
//
// With "/" the cell holds one "&" group per format and only the grouped form
// is produced. Otherwise every discipline shares the cell, the first value
// becomes the scalar distance, and the group is keyed by the first
// discipline (or the raw discipline string).
func deriveDistances(raw string, disciplines, formats []string, discipline string) (*float64, []models.DisciplineDistance) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	if strings.Contains(raw, "/") {
		groups := splitList(raw, "/")
		labels := formats
		switch {
		case len(labels) == 1 && len(groups) > 1:
			labels = make([]string, len(groups))
			for i := range labels {
				labels[i] = formats[0]
			}
		case len(labels) == 0:
			labels = make([]string, len(groups))
			for i := range labels {
				if len(disciplines) > 0 {
					labels[i] = disciplines[0]
				} else {
					labels[i] = fmt.Sprintf("Formato %d", i+1)
				}
			}
		}

		var out []models.DisciplineDistance
		for i, label := range labels {
			if i >= len(groups) {
				break
			}
			if ds := parseDistanceList(groups[i]); len(ds) > 0 {
				out = append(out, models.DisciplineDistance{Discipline: strings.TrimSpace(label), Distances: ds})
			}
		}
		return nil, out
	}

	var distances []float64
	if strings.Contains(raw, "&") {
		distances = parseDistanceList(raw)
	} else if d, ok := parseDistance(raw); ok {
		distances = []float64{d}
	}
	if len(distances) == 0 {
		return nil, nil
	}

	first := distances[0]
	label := discipline
	if len(disciplines) > 0 {
		label = disciplines[0]
	}
	if label == "" {
		return &first, nil
	}
	return &first, []models.DisciplineDistance{{Discipline: strings.TrimSpace(label), Distances: distances}}
}

// stageDetails reads up to MaxStageDetails five-column stage blocks.
func stageDetails(r row, stages int) []models.Stage {
	n := min(stages, MaxStageDetails)
	out := make([]models.Stage, 0, n)
	for num := 1; num <= n; num++ {
		st := models.Stage{
			Number:    num,
			Name:      r.cell(StageColumn(num, stageName)),
			StartDate: r.cell(StageColumn(num, stageStart)),
			EndDate:   r.cell(StageColumn(num, stageEnd)),
		}
		if v := r.cell(StageColumn(num, stageDistance)); v != "" {
			if f, ok := parseDecimal(v); ok {
				st.Distance = &f
			}
		}
		if v := r.cell(StageColumn(num, stageElevation)); v != "" {
			if f, ok := parseDecimal(v); ok {
				st.Elevation = &f
			}
		}
		out = append(out, st)
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
