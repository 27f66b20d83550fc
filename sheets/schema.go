package sheets

import (
	"strings"

	"github.com/padraicbc/racecal/models"
)

// Column positions of the race sheet. The sheet is read positionally, so a
// layout change in the spreadsheet is a change to this block and Columns only.
const (
	ColMonth        = iota // A: month label, reference only
	ColStartDate           // B
	ColName                // C
	ColID                  // D
	ColDiscipline          // E
	ColFormat              // F
	ColCity                // G
	ColProvince            // H
	ColCountry             // I
	ColModality            // J
	ColChampionship        // K: not mapped
	ColStages              // L
	ColDays                // M
	ColDistance            // N
	ColElevation           // O
	ColInstagram           // P
	ColPhone               // Q
	ColWebsite             // R
	ColRegistration        // S

	// LeadingColumns is the width of the fixed part of a row.
	LeadingColumns
)

// Stage detail blocks follow the fixed columns: T..X for stage 1, Y..AC for
// stage 2 and so on up to MaxStageDetails.
const (
	StageBlockWidth = 5
	MaxStageDetails = 8

	stageName      = 0
	stageDistance  = 1
	stageElevation = 2
	stageStart     = 3
	stageEnd       = 4
)

// Column describes one position of the fixed layout and how its cell is
// read into a race.
type Column struct {
	Index  int
	Header string
	Field  string

	parse cellParser
}

// cellParser stores one trimmed cell on race. It returns false when a
// non-empty value could not be read, leaving the field absent.
type cellParser func(p *Parser, race *models.Race, v string) bool

// Mapped reports whether the column feeds a race attribute.
func (c Column) Mapped() bool { return c.parse != nil }

// Columns is the fixed layout in sheet order. Field is the JSON name of the
// race attribute fed by the column, empty when the column is not mapped.
// Columns are applied in this order, so distance sees disciplines and formats.
var Columns = []Column{
	{ColMonth, "Mes", "", nil},
	{ColStartDate, "Fecha", "startDate", parseStartDateCell},
	{ColName, "Carrera", "name", text(func(r *models.Race, v string) { r.Name = v })},
	{ColID, "id", "id", parseIDCell},
	{ColDiscipline, "Discip.", "discipline", text(func(r *models.Race, v string) {
		r.Discipline, r.Disciplines = v, splitList(v, "/")
	})},
	{ColFormat, "Formato", "format", text(func(r *models.Race, v string) {
		r.Format, r.Formats = v, splitList(v, "/")
	})},
	{ColCity, "Localidad", "city", text(func(r *models.Race, v string) { r.City = v })},
	{ColProvince, "Provincia", "province", text(func(r *models.Race, v string) { r.Province = v })},
	{ColCountry, "País", "country", text(func(r *models.Race, v string) { r.Country = v })},
	{ColModality, "Modalidad", "modality", text(func(r *models.Race, v string) {
		r.Modality, r.Modalities = v, splitList(v, "&")
	})},
	{ColChampionship, "Campeonato", "", nil},
	{ColStages, "# Etapas", "stages", text(func(r *models.Race, v string) { r.Stages = optionalCount(v) })},
	{ColDays, "# Días", "days", text(func(r *models.Race, v string) { r.Days = optionalCount(v) })},
	{ColDistance, "Km", "distance", text(func(r *models.Race, v string) {
		r.Distance, r.DisciplineDistances = deriveDistances(v, r.Disciplines, r.Formats, r.Discipline)
	})},
	{ColElevation, "M+", "elevation", parseElevationCell},
	{ColInstagram, "Instagram", "instagram", text(func(r *models.Race, v string) { r.Instagram = v })},
	{ColPhone, "Tel", "contactPhone", text(func(r *models.Race, v string) { r.ContactPhone = v })},
	{ColWebsite, "Site", "website", text(func(r *models.Race, v string) { r.Website = v })},
	{ColRegistration, "Inscripcion", "registrationUrl", text(func(r *models.Race, v string) { r.RegistrationURL = v })},
}

// text wraps setters that cannot fail.
func text(set func(r *models.Race, v string)) cellParser {
	return func(_ *Parser, r *models.Race, v string) bool {
		set(r, v)
		return true
	}
}

func parseStartDateCell(p *Parser, r *models.Race, v string) bool {
	if v == "" {
		return true
	}
	t, ok := p.parseStartDate(v)
	if ok {
		r.StartDate = t
	}
	return ok
}

// parseIDCell keeps the row index already on r unless the cell holds a
// non-zero integer prefix.
func parseIDCell(_ *Parser, r *models.Race, v string) bool {
	if id, ok := leadingInt(v); ok && id != 0 {
		r.ID = id
	}
	return true
}

func parseElevationCell(_ *Parser, r *models.Race, v string) bool {
	if v == "" {
		return true
	}
	e, ok := parseElevation(v)
	if ok {
		r.Elevation = &e
	}
	return ok
}

func optionalCount(v string) *int {
	if n, ok := positiveInt(v); ok {
		return &n
	}
	return nil
}

// StageColumn returns the column index of offset within the block of the
// 1-based stage number.
func StageColumn(stage, offset int) int {
	return LeadingColumns + (stage-1)*StageBlockWidth + offset
}

// row gives bounds-safe access to the fields of a tokenized line.
type row []string

func (r row) cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func (r row) blank() bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
